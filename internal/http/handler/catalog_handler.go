package handler

import (
	"net/http"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/pricing"
	"github.com/abtweb/studio-api/internal/service"
	"go.uber.org/zap"
)

// CatalogHandler serves the public package, option, and maintenance catalog
// consumed by the checkout page. Prices reflect the saved settings overrides.
type CatalogHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewCatalogHandler(settingsService *service.SettingsService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{settingsService: settingsService, logger: logger}
}

type catalogPackage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration int    `json:"duration"`
}

type catalogItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog returns the full selectable catalog.
func (h *CatalogHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	settings := h.settingsService.Get(r.Context())

	packages := make([]catalogPackage, 0, len(pricing.Packages))
	for _, id := range []string{"basic", "standard", "premium"} {
		pkg := pricing.Packages[id]
		tier := tierFor(settings, id)
		if tier.Price > 0 {
			pkg.Price = tier.Price
		}
		if tier.Duration > 0 {
			pkg.Duration = tier.Duration
		}
		packages = append(packages, catalogPackage{
			ID:       pkg.ID,
			Name:     pkg.Name,
			Price:    pkg.Price,
			Duration: pkg.Duration,
		})
	}

	options := make([]catalogItem, 0, len(pricing.Options))
	for _, id := range []string{
		"domain", "hosting", "email", "social", "payment",
		"booking", "seo", "chat", "analytics", "multilang",
	} {
		opt := pricing.Options[id]
		options = append(options, catalogItem{ID: opt.ID, Name: opt.Name, Price: opt.Price})
	}

	maintenance := make([]catalogItem, 0, len(pricing.MaintenancePlans))
	for _, id := range []string{"none", "basic", "standard", "premium"} {
		plan := pricing.MaintenancePlans[id]
		maintenance = append(maintenance, catalogItem{ID: plan.ID, Name: plan.Name, Price: plan.Price})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"packages":    packages,
		"options":     options,
		"maintenance": maintenance,
	})
}

func tierFor(settings domain.Settings, id string) domain.PackageTier {
	switch id {
	case "basic":
		return settings.Packages.Basic
	case "standard":
		return settings.Packages.Standard
	case "premium":
		return settings.Packages.Premium
	default:
		return domain.PackageTier{}
	}
}
