package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingService_GetMarkup_DefaultsLazily(t *testing.T) {
	env := setupServiceTest(t)

	markup, err := env.pricing.GetMarkup()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(markup))

	// the default is persisted on first read
	var count int64
	require.NoError(t, env.db.Table("settings").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPricingService_SetMarkup_RepricesCatalog(t *testing.T) {
	env := setupServiceTest(t)

	product := env.createProduct(t, env.canvasInput("10x20", "20.00", 1))

	before, err := env.products.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, before.CustomerPrice)

	saved, err := env.pricing.SetMarkup(decimal.NewFromInt(75))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(75).Equal(saved))

	after, err := env.products.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, after.CustomerPrice)
	assert.Equal(t, 20.0, after.CostPrice)

	listing, err := env.products.ListProducts(ProductListOptions{ProductTypeID: env.canvas.ID})
	require.NoError(t, err)
	require.Len(t, listing.Products, 1)
	assert.Equal(t, 35.0, listing.Products[0].CustomerPrice)

	require.NotEmpty(t, env.publisher.events)
	last := env.publisher.events[len(env.publisher.events)-1]
	assert.Equal(t, EventMarkupUpdated, last.Type)
	require.NotNil(t, last.MarkupPercentage)
	assert.Equal(t, 75.0, *last.MarkupPercentage)
}

func TestPricingService_SetMarkup_Validation(t *testing.T) {
	env := setupServiceTest(t)

	tests := []struct {
		name    string
		pct     string
		wantErr bool
	}{
		{name: "Zero", pct: "0", wantErr: false},
		{name: "Fractional", pct: "62.5", wantErr: false},
		{name: "Negative", pct: "-10", wantErr: true},
		{name: "Absurd", pct: "5000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.pricing.SetMarkup(decimal.RequireFromString(tt.pct))
			if tt.wantErr {
				var validation *ValidationError
				require.ErrorAs(t, err, &validation)
				assert.Equal(t, "markup", validation.Field)
				return
			}
			require.NoError(t, err)
			got, err := env.pricing.GetMarkup()
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.pct).Equal(got))
		})
	}
}
