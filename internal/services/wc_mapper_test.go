package services

import (
	"context"
	"testing"

	"github.com/hallsamuel90/t14-wc-sync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMapper() *WcMapper {
	return NewWcMapper(&fakeResolver{
		brands:     map[string]int{"DBA": 18},
		categories: map[string]int{"Brake": 5},
		subCategories: map[string]int{
			"Brake|Drums and Rotors": 3,
		},
	})
}

func TestTurnToWc_IdentityFields(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.Equal(t, "DBA 92-95 MR-2 Turbo Rear Drilled & Slotted 4000 Series Rotor", product.Name)
	assert.Equal(t, "simple", product.Type)
	assert.Equal(t, "DBA 92-95 MR-2 Turbo Rear Drilled & Slotted 4000 Series Rotor", product.ShortDescription)
	assert.Equal(t, "4583XS", product.SKU)
	assert.Equal(t, float64(15), product.Dimensions.Length)
	assert.Equal(t, float64(15), product.Dimensions.Width)
	assert.Equal(t, float64(4), product.Dimensions.Height)
	assert.Equal(t, float64(13), product.Weight)
}

func TestTurnToWc_Price(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.Equal(t, "276.23", product.RegularPrice)
}

func TestTurnToWc_UnpricedItemStaysUnpriced(t *testing.T) {
	mapper := newTestMapper()

	unpriced := fakeRotorProduct()
	unpriced.Price = 0

	product, err := mapper.TurnToWc(context.Background(), unpriced)
	require.NoError(t, err)

	assert.Empty(t, product.RegularPrice)
}

func TestTurnToWc_DescriptionPrefersLong(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.Equal(t, fakeRotorProduct().LongDescription, product.Description)
}

func TestTurnToWc_DescriptionFallsBackToShort(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeLightBarNoLongDescription())
	require.NoError(t, err)

	assert.Equal(t,
		"Baja Designs 40in OnX6 Racer Arc Series Driving Pattern Wide LED Light Bar",
		product.Description)
}

func TestTurnToWc_Categories(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.Equal(t, []models.WcCategoryID{{ID: 5}, {ID: 3}}, product.Categories)
}

func TestTurnToWc_CategoriesCollapseDuplicates(t *testing.T) {
	mapper := NewWcMapper(&fakeResolver{
		brands:     map[string]int{"DBA": 18},
		categories: map[string]int{"Brake": 5},
		subCategories: map[string]int{
			"Brake|Drums and Rotors": 5, // same id as parent
		},
	})

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.Equal(t, []models.WcCategoryID{{ID: 5}}, product.Categories)
}

func TestTurnToWc_Brands(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.Equal(t, []int{18}, product.Brands)
}

func TestTurnToWc_Inventory(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.True(t, product.ManageStock)
	assert.Equal(t, 7, product.StockQuantity)
	assert.Equal(t, models.BackordersNo, product.Backorders)
	assert.False(t, product.BackordersAllowed)
}

func TestTurnToWc_BackordersNotifyWhenCarriedAndOutOfStock(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeProductOutOfStock())
	require.NoError(t, err)

	assert.Equal(t, models.BackordersNotify, product.Backorders)
	assert.True(t, product.BackordersAllowed)
}

func TestTurnToWc_BackordersNoWhenNotCarried(t *testing.T) {
	mapper := newTestMapper()

	notCarried := fakeProductOutOfStock()
	notCarried.RegularlyCarried = false

	product, err := mapper.TurnToWc(context.Background(), notCarried)
	require.NoError(t, err)

	assert.Equal(t, models.BackordersNo, product.Backorders)
	assert.False(t, product.BackordersAllowed)
}

func TestTurnToWc_PrimaryImage(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	require.Len(t, product.Images, 1)
	assert.Equal(t,
		"https://d32vzsop7y1h3k.cloudfront.net/cf5fe9a38d8506d29ecfa29b1034c25b.JPG",
		product.Images[0].Src)
}

func TestTurnToWc_ThumbnailWhenNoPrimary(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeProductNoPrimaryImage())
	require.NoError(t, err)

	require.Len(t, product.Images, 1)
	assert.Equal(t, "https://d5otzd52uv6zz.cloudfront.net/be0798de", product.Images[0].Src)
}

func TestTurnToWc_ThumbnailWhenPrimaryTooBig(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeProductOversizedImage())
	require.NoError(t, err)

	require.Len(t, product.Images, 1)
	assert.Equal(t, "https://d5otzd52uv6zz.cloudfront.net/be0798de", product.Images[0].Src)
}

func TestTurnToWc_NoImages(t *testing.T) {
	mapper := newTestMapper()

	bare := fakeProductNoPrimaryImage()
	bare.ThumbnailURL = ""

	product, err := mapper.TurnToWc(context.Background(), bare)
	require.NoError(t, err)

	assert.Empty(t, product.Images)
}

func TestTurnToWc_ImageSelectionIsIdempotent(t *testing.T) {
	mapper := newTestMapper()

	first, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)
	second, err := mapper.TurnToWc(context.Background(), fakeRotorProduct())
	require.NoError(t, err)

	assert.Equal(t, first.Images, second.Images)
}

func TestTurnToWc_NilAttributes(t *testing.T) {
	mapper := newTestMapper()

	product, err := mapper.TurnToWc(context.Background(), fakeProductNoAttributes())
	require.NoError(t, err)

	assert.NotNil(t, product.Attributes)
	assert.Empty(t, product.Attributes)
}

func TestTurnToWc_MissingNameFails(t *testing.T) {
	mapper := newTestMapper()

	broken := fakeRotorProduct()
	broken.Name = ""

	_, err := mapper.TurnToWc(context.Background(), broken)
	assert.ErrorIs(t, err, models.ErrMapping)
}
