package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/hallsamuel90/t14-wc-sync/internal/models"
	"github.com/hallsamuel90/t14-wc-sync/internal/observability"
	"github.com/hallsamuel90/t14-wc-sync/internal/utils/httpclient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	batchProductsResource     = "/wp-json/wc/v3/products/batch"
	productCategoriesResource = "/wp-json/wc/v3/products/categories"
	productBrandsResource     = "/wp-json/wc/v3/products/brands"
	productsResource          = "/wp-json/wc/v3/products"
)

// WcClient talks to the WooCommerce store API with basic auth. It never
// retries on its own; retry policy belongs to the pipeline.
type WcClient struct {
	baseURL      string
	clientKey    string
	clientSecret string
	pool         *httpclient.Pool
	logger       *logging.SafeLogger
}

// NewWcClient creates a new WooCommerce API client
func NewWcClient(baseURL, clientKey, clientSecret string, pool *httpclient.Pool, logger *logging.SafeLogger) *WcClient {
	return &WcClient{
		baseURL:      baseURL,
		clientKey:    clientKey,
		clientSecret: clientSecret,
		pool:         pool,
		logger:       logger,
	}
}

// CreateProducts posts one batch of product creates/updates/deletes and
// returns the store's per-item results
func (c *WcClient) CreateProducts(ctx context.Context, batch *models.WcBatch) (*models.WcBatchResponse, error) {
	ctx, span := otel.Tracer("woocommerce").Start(ctx, "wc.create_products")
	defer span.End()
	span.SetAttributes(attribute.Int("wc.batch_size", batch.TotalSize()))

	var out models.WcBatchResponse
	if err := c.do(ctx, http.MethodPost, batchProductsResource, nil, batch, &out); err != nil {
		observability.BatchPushes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: create_products: %v", models.ErrBatchPush, err)
	}

	observability.BatchPushes.WithLabelValues("ok").Inc()
	c.logger.Debug("pushed product batch",
		zap.Int("create", len(batch.Create)),
		zap.Int("update", len(batch.Update)),
		zap.Int("delete", len(batch.Delete)))
	return &out, nil
}

// FetchCategories fetches one page of product categories
func (c *WcClient) FetchCategories(ctx context.Context, page int) ([]models.WcCategory, error) {
	var out []models.WcCategory
	query := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.do(ctx, http.MethodGet, productCategoriesResource, query, nil, &out); err != nil {
		return nil, fmt.Errorf("%w: fetch_categories page %d: %v", models.ErrTransport, page, err)
	}
	return out, nil
}

// FetchAllCategories paginates categories until an empty page and keys them
// by name. Duplicate names are last-write-wins, matching store behavior.
func (c *WcClient) FetchAllCategories(ctx context.Context) (map[string]models.WcCategory, error) {
	ctx, span := otel.Tracer("woocommerce").Start(ctx, "wc.fetch_all_categories")
	defer span.End()

	all := make(map[string]models.WcCategory)
	for page := 1; ; page++ {
		categories, err := c.FetchCategories(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(categories) == 0 {
			break
		}
		for _, category := range categories {
			all[category.Name] = category
		}
	}

	span.SetAttributes(attribute.Int("wc.categories", len(all)))
	return all, nil
}

// CreateCategory creates one product category and returns the stored record
func (c *WcClient) CreateCategory(ctx context.Context, category models.WcCategory) (models.WcCategory, error) {
	ctx, span := otel.Tracer("woocommerce").Start(ctx, "wc.create_category")
	defer span.End()
	span.SetAttributes(attribute.String("wc.category", category.Name))

	var out models.WcCategory
	if err := c.do(ctx, http.MethodPost, productCategoriesResource, nil, category, &out); err != nil {
		return models.WcCategory{}, fmt.Errorf("%w: create_category %q: %v", models.ErrTransport, category.Name, err)
	}
	return out, nil
}

// FetchAllBrands paginates product brands until an empty page, keyed by name
func (c *WcClient) FetchAllBrands(ctx context.Context) (map[string]models.WcBrand, error) {
	ctx, span := otel.Tracer("woocommerce").Start(ctx, "wc.fetch_all_brands")
	defer span.End()

	all := make(map[string]models.WcBrand)
	for page := 1; ; page++ {
		var brands []models.WcBrand
		query := url.Values{"page": {strconv.Itoa(page)}}
		if err := c.do(ctx, http.MethodGet, productBrandsResource, query, nil, &brands); err != nil {
			return nil, fmt.Errorf("%w: fetch_brands page %d: %v", models.ErrTransport, page, err)
		}
		if len(brands) == 0 {
			break
		}
		for _, brand := range brands {
			all[brand.Name] = brand
		}
	}

	span.SetAttributes(attribute.Int("wc.brands", len(all)))
	return all, nil
}

// CreateBrand creates one product brand and returns the stored record
func (c *WcClient) CreateBrand(ctx context.Context, name string) (models.WcBrand, error) {
	ctx, span := otel.Tracer("woocommerce").Start(ctx, "wc.create_brand")
	defer span.End()
	span.SetAttributes(attribute.String("wc.brand", name))

	var out models.WcBrand
	if err := c.do(ctx, http.MethodPost, productBrandsResource, nil, models.WcBrand{Name: name}, &out); err != nil {
		return models.WcBrand{}, fmt.Errorf("%w: create_brand %q: %v", models.ErrTransport, name, err)
	}
	return out, nil
}

// FetchProductsByBrand paginates the store's products for one brand
func (c *WcClient) FetchProductsByBrand(ctx context.Context, brandID int) ([]models.WcProduct, error) {
	ctx, span := otel.Tracer("woocommerce").Start(ctx, "wc.fetch_products_by_brand")
	defer span.End()
	span.SetAttributes(attribute.Int("wc.brand_id", brandID))

	var all []models.WcProduct
	for page := 1; ; page++ {
		var products []models.WcProduct
		query := url.Values{
			"brand": {strconv.Itoa(brandID)},
			"page":  {strconv.Itoa(page)},
		}
		if err := c.do(ctx, http.MethodGet, productsResource, query, nil, &products); err != nil {
			return nil, fmt.Errorf("%w: fetch_products page %d: %v", models.ErrTransport, page, err)
		}
		if len(products) == 0 {
			break
		}
		all = append(all, products...)
	}

	span.SetAttributes(attribute.Int("wc.products", len(all)))
	return all, nil
}

// do issues one basic-auth request and decodes a 2xx JSON response into out
func (c *WcClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.clientKey, c.clientSecret)

	client := c.pool.Get()
	defer c.pool.Put(client)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
