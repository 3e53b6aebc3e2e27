package services

import (
	"context"
	"fmt"

	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/hallsamuel90/t14-wc-sync/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Turn14API is the slice of the vendor client the pipeline consumes.
type Turn14API interface {
	Authenticate(ctx context.Context) error
	FetchAllBrandData(ctx context.Context, brandID int) ([]models.Turn14Product, error)
}

// ProductSyncService runs one brand's sync as a fetch → map → accumulate →
// push pipeline. Every run owns a fresh reference cache; already-pushed
// batches are never rolled back on failure.
type ProductSyncService struct {
	turn14    Turn14API
	store     WcStoreAPI
	batchSize int
	logger    *logging.SafeLogger
}

// NewProductSyncService creates the pipeline with its two API collaborators
func NewProductSyncService(turn14 Turn14API, store WcStoreAPI, batchSize int, logger *logging.SafeLogger) *ProductSyncService {
	return &ProductSyncService{
		turn14:    turn14,
		store:     store,
		batchSize: batchSize,
		logger:    logger,
	}
}

// RunJob executes one sync job to completion. A returned error means the
// brand's run failed; the caller decides to log and move on.
func (s *ProductSyncService) RunJob(ctx context.Context, job SyncJob) error {
	ctx, span := otel.Tracer("pipeline").Start(ctx, "sync.run_job")
	defer span.End()
	span.SetAttributes(
		attribute.String("sync.job_type", string(job.Type)),
		attribute.Int("sync.brand_id", job.BrandID),
	)

	var err error
	switch job.Type {
	case JobResyncProducts:
		err = s.syncBrand(ctx, job, listCreate)
	case JobUpdateInventory, JobUpdatePricing:
		err = s.syncBrand(ctx, job, listUpdate)
	case JobRemoveStale:
		err = s.removeStale(ctx, job)
	default:
		err = fmt.Errorf("unknown job type %q", job.Type)
	}

	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// batch target lists
type batchList int

const (
	listCreate batchList = iota
	listUpdate
)

// syncBrand is the FETCH → MAP → (ACCUMULATE ⇄ PUSH) state machine. Mapped
// products land in the create or update list depending on the job type; a
// non-full trailing batch is still pushed.
func (s *ProductSyncService) syncBrand(ctx context.Context, job SyncJob, list batchList) error {
	stage := "fetch"
	fail := func(err error) error {
		s.logger.Error("brand sync failed",
			zap.String("job_type", string(job.Type)),
			zap.Int("brand_id", job.BrandID),
			zap.String("stage", stage),
			zap.Error(err))
		return err
	}

	if err := s.turn14.Authenticate(ctx); err != nil {
		return fail(err)
	}

	products, err := s.turn14.FetchAllBrandData(ctx, job.BrandID)
	if err != nil {
		return fail(err)
	}

	cache := NewCategoriesCache(s.store, s.logger)
	mapper := NewWcMapper(cache)

	batch := &models.WcBatch{}
	pushes := 0
	for _, product := range products {
		stage = "map"
		wcProduct, err := mapper.TurnToWc(ctx, product)
		if err != nil {
			return fail(err)
		}

		switch list {
		case listCreate:
			batch.Create = append(batch.Create, wcProduct)
		case listUpdate:
			batch.Update = append(batch.Update, wcProduct)
		}

		if batch.TotalSize() == s.batchSize {
			stage = "push"
			if _, err := s.store.CreateProducts(ctx, batch); err != nil {
				return fail(err)
			}
			batch.Reset()
			pushes++
		}
	}

	if batch.TotalSize() > 0 {
		stage = "push"
		if _, err := s.store.CreateProducts(ctx, batch); err != nil {
			return fail(err)
		}
		pushes++
	}

	s.logger.Info("brand sync complete",
		zap.String("job_type", string(job.Type)),
		zap.Int("brand_id", job.BrandID),
		zap.Int("products", len(products)),
		zap.Int("pushes", pushes))
	return nil
}

// removeStale deletes store products whose SKU the vendor no longer carries
// for the brand. Deletions go out in size-bounded batches like every other
// push.
func (s *ProductSyncService) removeStale(ctx context.Context, job SyncJob) error {
	stage := "fetch"
	fail := func(err error) error {
		s.logger.Error("stale removal failed",
			zap.String("job_type", string(job.Type)),
			zap.Int("brand_id", job.BrandID),
			zap.String("stage", stage),
			zap.Error(err))
		return err
	}

	if err := s.turn14.Authenticate(ctx); err != nil {
		return fail(err)
	}

	products, err := s.turn14.FetchAllBrandData(ctx, job.BrandID)
	if err != nil {
		return fail(err)
	}
	if len(products) == 0 {
		// Without a vendor listing there is no brand name to resolve and no
		// SKU set to diff against; skip rather than mass-delete.
		s.logger.Warn("vendor returned no products, skipping stale removal",
			zap.Int("brand_id", job.BrandID))
		return nil
	}

	carried := make(map[string]struct{}, len(products))
	for _, product := range products {
		carried[product.SKU] = struct{}{}
	}

	stage = "resolve"
	cache := NewCategoriesCache(s.store, s.logger)
	storeBrandID, err := cache.GetBrand(ctx, products[0].Brand)
	if err != nil {
		return fail(err)
	}

	stage = "fetch"
	storeProducts, err := s.store.FetchProductsByBrand(ctx, storeBrandID)
	if err != nil {
		return fail(err)
	}

	batch := &models.WcBatch{}
	removed := 0
	for _, storeProduct := range storeProducts {
		if _, ok := carried[storeProduct.SKU]; ok {
			continue
		}
		batch.Delete = append(batch.Delete, storeProduct.ID)
		removed++

		if batch.TotalSize() == s.batchSize {
			stage = "push"
			if _, err := s.store.CreateProducts(ctx, batch); err != nil {
				return fail(err)
			}
			batch.Reset()
		}
	}

	if batch.TotalSize() > 0 {
		stage = "push"
		if _, err := s.store.CreateProducts(ctx, batch); err != nil {
			return fail(err)
		}
	}

	s.logger.Info("stale removal complete",
		zap.Int("brand_id", job.BrandID),
		zap.Int("removed", removed))
	return nil
}
