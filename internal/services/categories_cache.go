package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/hallsamuel90/t14-wc-sync/internal/models"
	"github.com/hallsamuel90/t14-wc-sync/internal/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// WcStoreAPI is the slice of the WooCommerce client the cache and the
// pipeline consume.
type WcStoreAPI interface {
	CreateProducts(ctx context.Context, batch *models.WcBatch) (*models.WcBatchResponse, error)
	FetchAllCategories(ctx context.Context) (map[string]models.WcCategory, error)
	CreateCategory(ctx context.Context, category models.WcCategory) (models.WcCategory, error)
	FetchAllBrands(ctx context.Context) (map[string]models.WcBrand, error)
	CreateBrand(ctx context.Context, name string) (models.WcBrand, error)
	FetchProductsByBrand(ctx context.Context, brandID int) ([]models.WcProduct, error)
}

// CategoriesCache resolves brand/category/sub-category names to store
// identifiers for the duration of one pipeline run. Lookups are memoized;
// unresolved names are created in the store exactly once, with concurrent
// lookups for the same name collapsed through singleflight. Failures are
// returned and never cached, so a later call may retry.
type CategoriesCache struct {
	store  WcStoreAPI
	logger *logging.SafeLogger
	group  singleflight.Group

	mu           sync.RWMutex
	resolved     map[string]int
	categories   map[string]models.WcCategory
	brands       map[string]models.WcBrand
	catsLoaded   bool
	brandsLoaded bool
}

// NewCategoriesCache creates an empty per-run cache backed by the store
func NewCategoriesCache(store WcStoreAPI, logger *logging.SafeLogger) *CategoriesCache {
	return &CategoriesCache{
		store:    store,
		logger:   logger,
		resolved: make(map[string]int),
	}
}

// GetCategory resolves a top-level category name to its store identifier
func (c *CategoriesCache) GetCategory(ctx context.Context, name string) (int, error) {
	return c.resolve(ctx, "category", "category|"+name, func() (int, error) {
		existing, err := c.lookupCategory(ctx, name, 0)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return existing.ID, nil
		}

		created, err := c.store.CreateCategory(ctx, models.WcCategory{Name: name})
		if err != nil {
			return 0, fmt.Errorf("%w: category %q: %v", models.ErrReferenceResolution, name, err)
		}
		c.rememberCategory(created)
		c.logger.Info("created store category", zap.String("name", name), zap.Int("id", created.ID))
		return created.ID, nil
	})
}

// GetSubCategory resolves a sub-category name scoped by its parent category
// name. The same sub-category name under different parents resolves to
// different identifiers.
func (c *CategoriesCache) GetSubCategory(ctx context.Context, name, parentName string) (int, error) {
	return c.resolve(ctx, "subcategory", "subcategory|"+parentName+"|"+name, func() (int, error) {
		parentID, err := c.GetCategory(ctx, parentName)
		if err != nil {
			return 0, err
		}

		existing, err := c.lookupCategory(ctx, name, parentID)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return existing.ID, nil
		}

		created, err := c.store.CreateCategory(ctx, models.WcCategory{Name: name, Parent: parentID})
		if err != nil {
			return 0, fmt.Errorf("%w: sub-category %q under %q: %v", models.ErrReferenceResolution, name, parentName, err)
		}
		c.rememberCategory(created)
		c.logger.Info("created store sub-category",
			zap.String("name", name),
			zap.String("parent", parentName),
			zap.Int("id", created.ID))
		return created.ID, nil
	})
}

// GetBrand resolves a brand name to its store identifier
func (c *CategoriesCache) GetBrand(ctx context.Context, name string) (int, error) {
	return c.resolve(ctx, "brand", "brand|"+name, func() (int, error) {
		if err := c.ensureBrandsLoaded(ctx); err != nil {
			return 0, err
		}

		c.mu.RLock()
		existing, ok := c.brands[name]
		c.mu.RUnlock()
		if ok {
			return existing.ID, nil
		}

		created, err := c.store.CreateBrand(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("%w: brand %q: %v", models.ErrReferenceResolution, name, err)
		}
		c.mu.Lock()
		c.brands[name] = created
		c.mu.Unlock()
		c.logger.Info("created store brand", zap.String("name", name), zap.Int("id", created.ID))
		return created.ID, nil
	})
}

// resolve memoizes one name under key, funneling concurrent misses for the
// same key into a single resolution call.
func (c *CategoriesCache) resolve(ctx context.Context, kind, key string, fn func() (int, error)) (int, error) {
	c.mu.RLock()
	id, ok := c.resolved[key]
	c.mu.RUnlock()
	if ok {
		observability.CategoryCacheLookups.WithLabelValues(kind, "hit").Inc()
		return id, nil
	}

	observability.CategoryCacheLookups.WithLabelValues(kind, "miss").Inc()
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent resolution may have landed while we waited
		c.mu.RLock()
		id, ok := c.resolved[key]
		c.mu.RUnlock()
		if ok {
			return id, nil
		}

		id, err := fn()
		if err != nil {
			return 0, err
		}

		c.mu.Lock()
		c.resolved[key] = id
		c.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// lookupCategory checks the bulk-loaded store categories for a name with the
// given parent, loading them on first use.
func (c *CategoriesCache) lookupCategory(ctx context.Context, name string, parentID int) (*models.WcCategory, error) {
	if err := c.ensureCategoriesLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if existing, ok := c.categories[name]; ok && existing.Parent == parentID {
		return &existing, nil
	}
	return nil, nil
}

func (c *CategoriesCache) rememberCategory(category models.WcCategory) {
	c.mu.Lock()
	c.categories[category.Name] = category
	c.mu.Unlock()
}

func (c *CategoriesCache) ensureCategoriesLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.catsLoaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	categories, err := c.store.FetchAllCategories(ctx)
	if err != nil {
		return fmt.Errorf("%w: loading categories: %v", models.ErrReferenceResolution, err)
	}

	c.mu.Lock()
	// First load wins; a racing loader has equivalent data
	if !c.catsLoaded {
		c.categories = categories
		c.catsLoaded = true
	}
	c.mu.Unlock()
	return nil
}

func (c *CategoriesCache) ensureBrandsLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.brandsLoaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	brands, err := c.store.FetchAllBrands(ctx)
	if err != nil {
		return fmt.Errorf("%w: loading brands: %v", models.ErrReferenceResolution, err)
	}

	c.mu.Lock()
	if !c.brandsLoaded {
		c.brands = brands
		c.brandsLoaded = true
	}
	c.mu.Unlock()
	return nil
}
