package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hallsamuel90/t14-wc-sync/internal/models"
)

// ReferenceResolver resolves brand/category/sub-category names to store
// identifiers. Satisfied by CategoriesCache.
type ReferenceResolver interface {
	GetBrand(ctx context.Context, name string) (int, error)
	GetCategory(ctx context.Context, name string) (int, error)
	GetSubCategory(ctx context.Context, name, parentName string) (int, error)
}

// maxImageEdgePx is the largest edge the store accepts for a primary photo;
// bigger renditions fall back to the thumbnail.
const maxImageEdgePx = 1000

// WcMapper transforms merged vendor products into store products. Apart from
// reference resolution through the cache it is a pure function of its input.
type WcMapper struct {
	cache ReferenceResolver
}

// NewWcMapper creates a mapper bound to one run's reference cache
func NewWcMapper(cache ReferenceResolver) *WcMapper {
	return &WcMapper{cache: cache}
}

// TurnToWc maps one vendor product to a fresh store product
func (m *WcMapper) TurnToWc(ctx context.Context, p models.Turn14Product) (models.WcProduct, error) {
	if p.Name == "" {
		return models.WcProduct{}, fmt.Errorf("%w: item %s has no product name", models.ErrMapping, p.ID)
	}
	if p.SKU == "" {
		return models.WcProduct{}, fmt.Errorf("%w: item %s has no part number", models.ErrMapping, p.ID)
	}

	categories, err := m.mapCategories(ctx, p)
	if err != nil {
		return models.WcProduct{}, err
	}

	brandID, err := m.cache.GetBrand(ctx, p.Brand)
	if err != nil {
		return models.WcProduct{}, err
	}

	backorders := models.BackordersNo
	if p.RegularlyCarried && p.StockQuantity == 0 {
		backorders = models.BackordersNotify
	}

	return models.WcProduct{
		Name:             p.Name,
		Type:             models.ProductTypeSimple,
		Description:      mapDescription(p),
		ShortDescription: p.Name,
		SKU:              p.SKU,
		RegularPrice:     mapPrice(p),
		Brands:           []int{brandID},
		Categories:       categories,
		Dimensions: models.WcDimensions{
			Length: p.Length,
			Width:  p.Width,
			Height: p.Height,
		},
		Weight:            p.Weight,
		ManageStock:       true,
		Backorders:        backorders,
		BackordersAllowed: backorders == models.BackordersNotify,
		StockQuantity:     p.StockQuantity,
		Images:            mapImages(p),
		Attributes:        mapAttributes(p),
	}, nil
}

// mapPrice renders the vendor price the way the store expects, as a decimal
// string. Items the pricing endpoint never listed stay unpriced.
func mapPrice(p models.Turn14Product) string {
	if p.Price <= 0 {
		return ""
	}
	return strconv.FormatFloat(p.Price, 'f', 2, 64)
}

// mapDescription prefers the long description, falling back to the short one
func mapDescription(p models.Turn14Product) string {
	if p.LongDescription != "" {
		return p.LongDescription
	}
	return p.ShortDescription
}

// mapCategories resolves the category and, when present, the sub-category
// scoped by it. Duplicate identifiers collapse to one entry.
func (m *WcMapper) mapCategories(ctx context.Context, p models.Turn14Product) ([]models.WcCategoryID, error) {
	categories := make([]models.WcCategoryID, 0, 2)
	if p.Category == "" {
		return categories, nil
	}

	categoryID, err := m.cache.GetCategory(ctx, p.Category)
	if err != nil {
		return nil, err
	}
	categories = append(categories, models.WcCategoryID{ID: categoryID})

	if p.SubCategory == "" {
		return categories, nil
	}

	subCategoryID, err := m.cache.GetSubCategory(ctx, p.SubCategory, p.Category)
	if err != nil {
		return nil, err
	}
	if subCategoryID != categoryID {
		categories = append(categories, models.WcCategoryID{ID: subCategoryID})
	}
	return categories, nil
}

// mapImages picks exactly one image when any reference exists: the primary
// photo when it fits the size threshold, otherwise the thumbnail.
func mapImages(p models.Turn14Product) []models.WcImage {
	if p.PrimaryImage != nil && p.PrimaryImage.Width <= maxImageEdgePx && p.PrimaryImage.Height <= maxImageEdgePx {
		return []models.WcImage{{Src: p.PrimaryImage.URL}}
	}
	if p.ThumbnailURL != "" {
		return []models.WcImage{{Src: p.ThumbnailURL}}
	}
	if p.PrimaryImage != nil {
		// Oversized primary with no thumbnail beats no image at all
		return []models.WcImage{{Src: p.PrimaryImage.URL}}
	}
	return []models.WcImage{}
}

// mapAttributes converts vendor attributes, tolerating an absent collection
func mapAttributes(p models.Turn14Product) []models.WcAttribute {
	attributes := make([]models.WcAttribute, 0, len(p.Attributes))
	for _, attribute := range p.Attributes {
		attributes = append(attributes, models.WcAttribute{
			Name:    attribute.Name,
			Visible: true,
			Options: []string{attribute.Value},
		})
	}
	return attributes
}
