package services

import (
	"context"
	"sync"

	"github.com/hallsamuel90/t14-wc-sync/internal/models"
)

// fakeStore is an in-memory WcStoreAPI that auto-assigns identifiers and
// records every call
type fakeStore struct {
	mu sync.Mutex

	categories map[string]models.WcCategory
	brands     map[string]models.WcBrand
	products   []models.WcProduct
	nextID     int

	fetchCategoriesCalls int
	createCategoryCalls  int
	fetchBrandsCalls     int
	createBrandCalls     int
	batches              []models.WcBatch

	pushErr    error
	resolveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: make(map[string]models.WcCategory),
		brands:     make(map[string]models.WcBrand),
		nextID:     100,
	}
}

func (f *fakeStore) seedCategory(name string, id, parent int) {
	f.categories[name] = models.WcCategory{ID: id, Name: name, Parent: parent}
}

func (f *fakeStore) seedBrand(name string, id int) {
	f.brands[name] = models.WcBrand{ID: id, Name: name}
}

func (f *fakeStore) CreateProducts(ctx context.Context, batch *models.WcBatch) (*models.WcBatchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pushErr != nil {
		return nil, f.pushErr
	}

	// Record a deep copy; the pipeline reuses its batch buffer
	recorded := models.WcBatch{
		Create: append([]models.WcProduct(nil), batch.Create...),
		Update: append([]models.WcProduct(nil), batch.Update...),
		Delete: append([]int(nil), batch.Delete...),
	}
	f.batches = append(f.batches, recorded)
	return &models.WcBatchResponse{}, nil
}

func (f *fakeStore) FetchAllCategories(ctx context.Context) (map[string]models.WcCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolveErr != nil {
		return nil, f.resolveErr
	}

	f.fetchCategoriesCalls++
	out := make(map[string]models.WcCategory, len(f.categories))
	for name, category := range f.categories {
		out[name] = category
	}
	return out, nil
}

func (f *fakeStore) CreateCategory(ctx context.Context, category models.WcCategory) (models.WcCategory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolveErr != nil {
		return models.WcCategory{}, f.resolveErr
	}

	f.createCategoryCalls++
	f.nextID++
	category.ID = f.nextID
	f.categories[category.Name] = category
	return category, nil
}

func (f *fakeStore) FetchAllBrands(ctx context.Context) (map[string]models.WcBrand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolveErr != nil {
		return nil, f.resolveErr
	}

	f.fetchBrandsCalls++
	out := make(map[string]models.WcBrand, len(f.brands))
	for name, brand := range f.brands {
		out[name] = brand
	}
	return out, nil
}

func (f *fakeStore) CreateBrand(ctx context.Context, name string) (models.WcBrand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resolveErr != nil {
		return models.WcBrand{}, f.resolveErr
	}

	f.createBrandCalls++
	f.nextID++
	brand := models.WcBrand{ID: f.nextID, Name: name}
	f.brands[name] = brand
	return brand, nil
}

func (f *fakeStore) FetchProductsByBrand(ctx context.Context, brandID int) ([]models.WcProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.WcProduct(nil), f.products...), nil
}

func (f *fakeStore) recordedBatches() []models.WcBatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.WcBatch(nil), f.batches...)
}

// fakeTurn14 is an in-memory Turn14API
type fakeTurn14 struct {
	mu           sync.Mutex
	products     []models.Turn14Product
	authCalls    int
	fetchErr     error
	authErr      error
	fetchedBrand int
}

func (f *fakeTurn14) Authenticate(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authCalls++
	return f.authErr
}

func (f *fakeTurn14) FetchAllBrandData(ctx context.Context, brandID int) ([]models.Turn14Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.fetchedBrand = brandID
	return append([]models.Turn14Product(nil), f.products...), nil
}

// fakeResolver answers mapper lookups from fixed tables
type fakeResolver struct {
	brands        map[string]int
	categories    map[string]int
	subCategories map[string]int
}

func (f *fakeResolver) GetBrand(ctx context.Context, name string) (int, error) {
	return f.brands[name], nil
}

func (f *fakeResolver) GetCategory(ctx context.Context, name string) (int, error) {
	return f.categories[name], nil
}

func (f *fakeResolver) GetSubCategory(ctx context.Context, name, parentName string) (int, error) {
	return f.subCategories[parentName+"|"+name], nil
}
