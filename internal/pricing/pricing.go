package pricing

import (
	"fmt"
	"math"

	"github.com/abtweb/studio-api/internal/domain"
)

// TaxRate is the VAT rate applied on top of the service amount.
const TaxRate = 0.1

// Breakdown is a fully priced quote selection.
type Breakdown struct {
	Package       domain.PackageSelection
	Options       []domain.OptionSelection
	Maintenance   *domain.MaintenanceSelection
	Duration      int
	ServiceAmount int64
	TaxAmount     int64
	TotalAmount   int64
}

// Price resolves and prices a checkout selection against the catalog,
// applying package price and duration overrides from the saved settings.
// Unknown option ids contribute nothing; an unknown package is an error.
func Price(packageID string, optionIDs []string, maintenanceID string, settings domain.Settings) (Breakdown, error) {
	pkg, ok := Packages[packageID]
	if !ok {
		return Breakdown{}, fmt.Errorf("unknown package %q", packageID)
	}
	if tier, ok := settingsTier(settings, packageID); ok {
		if tier.Price > 0 {
			pkg.Price = tier.Price
		}
		if tier.Duration > 0 {
			pkg.Duration = tier.Duration
		}
	}

	b := Breakdown{
		Package: domain.PackageSelection{
			ID:    pkg.ID,
			Name:  pkg.Name,
			Price: pkg.Price,
		},
		Duration: pkg.Duration,
	}

	optionsTotal := int64(0)
	for _, id := range optionIDs {
		opt, ok := Options[id]
		if !ok {
			continue
		}
		b.Options = append(b.Options, domain.OptionSelection{
			ID:    opt.ID,
			Name:  opt.Name,
			Price: opt.Price,
		})
		optionsTotal += opt.Price
	}

	maintenanceTotal := int64(0)
	if maintenanceID != "" && maintenanceID != "none" {
		plan, ok := MaintenancePlans[maintenanceID]
		if !ok {
			return Breakdown{}, fmt.Errorf("unknown maintenance plan %q", maintenanceID)
		}
		b.Maintenance = &domain.MaintenanceSelection{
			Name:  plan.Name,
			Price: plan.Price,
		}
		maintenanceTotal = plan.Price
	}

	b.ServiceAmount = pkg.Price + optionsTotal + maintenanceTotal
	b.TaxAmount = int64(math.Round(float64(b.ServiceAmount) * TaxRate))
	b.TotalAmount = b.ServiceAmount + b.TaxAmount
	return b, nil
}

func settingsTier(settings domain.Settings, packageID string) (domain.PackageTier, bool) {
	switch packageID {
	case "basic":
		return settings.Packages.Basic, true
	case "standard":
		return settings.Packages.Standard, true
	case "premium":
		return settings.Packages.Premium, true
	default:
		return domain.PackageTier{}, false
	}
}
