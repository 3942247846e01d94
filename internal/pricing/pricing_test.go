package pricing_test

import (
	"testing"

	"github.com/abtweb/studio-api/internal/domain"
	"github.com/abtweb/studio-api/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_BasicPackageWithOption(t *testing.T) {
	b, err := pricing.Price("basic", []string{"domain"}, "", domain.DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, int64(99000), b.Package.Price)
	assert.Equal(t, int64(124000), b.ServiceAmount)
	assert.Equal(t, int64(12400), b.TaxAmount)
	assert.Equal(t, int64(136400), b.TotalAmount)
	assert.Equal(t, 3, b.Duration)
	assert.Nil(t, b.Maintenance)
}

func TestPrice_MaintenancePlanIncluded(t *testing.T) {
	b, err := pricing.Price("standard", nil, "basic", domain.DefaultSettings())
	require.NoError(t, err)

	require.NotNil(t, b.Maintenance)
	assert.Equal(t, int64(69000), b.Maintenance.Price)
	assert.Equal(t, int64(459000), b.ServiceAmount)
	assert.Equal(t, int64(45900), b.TaxAmount)
	assert.Equal(t, int64(504900), b.TotalAmount)
}

func TestPrice_NoneMaintenanceMeansNoPlan(t *testing.T) {
	b, err := pricing.Price("basic", nil, "none", domain.DefaultSettings())
	require.NoError(t, err)
	assert.Nil(t, b.Maintenance)
	assert.Equal(t, int64(99000), b.ServiceAmount)
}

func TestPrice_UnknownPackageFails(t *testing.T) {
	_, err := pricing.Price("enterprise", nil, "", domain.DefaultSettings())
	assert.Error(t, err)
}

func TestPrice_UnknownOptionIgnored(t *testing.T) {
	b, err := pricing.Price("basic", []string{"hologram", "seo"}, "", domain.DefaultSettings())
	require.NoError(t, err)

	require.Len(t, b.Options, 1)
	assert.Equal(t, "seo", b.Options[0].ID)
	assert.Equal(t, int64(154000), b.ServiceAmount)
}

func TestPrice_UnknownMaintenanceFails(t *testing.T) {
	_, err := pricing.Price("basic", nil, "platinum", domain.DefaultSettings())
	assert.Error(t, err)
}

func TestPrice_SettingsOverridePackagePriceAndDuration(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Packages.Basic = domain.PackageTier{Price: 150000, Duration: 5}

	b, err := pricing.Price("basic", nil, "", settings)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), b.Package.Price)
	assert.Equal(t, 5, b.Duration)
	assert.Equal(t, int64(165000), b.TotalAmount)
}

func TestPrice_TaxRoundsToNearest(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Packages.Basic = domain.PackageTier{Price: 99005, Duration: 3}

	b, err := pricing.Price("basic", nil, "", settings)
	require.NoError(t, err)

	// 99005 * 0.1 = 9900.5 rounds half away from zero
	assert.Equal(t, int64(9901), b.TaxAmount)
	assert.Equal(t, int64(108906), b.TotalAmount)
}
