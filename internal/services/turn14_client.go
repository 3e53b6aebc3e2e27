package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/hallsamuel90/t14-wc-sync/internal/logging"
	"github.com/hallsamuel90/t14-wc-sync/internal/models"
	"github.com/hallsamuel90/t14-wc-sync/internal/observability"
	"github.com/hallsamuel90/t14-wc-sync/internal/utils/httpclient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Turn14Client talks to the Turn14 vendor API. It exchanges client
// credentials for a bearer token and re-authenticates once, transparently,
// when a call comes back 401.
type Turn14Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	pool         *httpclient.Pool
	limiter      *rate.Limiter
	logger       *logging.SafeLogger

	mu    sync.RWMutex
	token string
}

// tokenResponse is the body of POST /token
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// NewTurn14Client creates a new Turn14 API client
func NewTurn14Client(baseURL, clientID, clientSecret string, pool *httpclient.Pool, logger *logging.SafeLogger) *Turn14Client {
	return &Turn14Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		pool:         pool,
		// Turn14 allows a handful of calls per second per account
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		logger:  logger,
	}
}

// Authenticate exchanges client credentials for a bearer token and installs
// it for subsequent calls
func (c *Turn14Client) Authenticate(ctx context.Context) error {
	ctx, span := otel.Tracer("turn14").Start(ctx, "turn14.authenticate")
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: token exchange: %v", models.ErrAuthentication, err)
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
	})
	if err != nil {
		return fmt.Errorf("%w: token request encoding: %v", models.ErrAuthentication, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: token request: %v", models.ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.pool.Get()
	defer c.pool.Put(client)

	resp, err := client.Do(req)
	if err != nil {
		observability.Turn14Requests.WithLabelValues("authenticate", "error").Inc()
		return fmt.Errorf("%w: token exchange: %v", models.ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.Turn14Requests.WithLabelValues("authenticate", strconv.Itoa(resp.StatusCode)).Inc()
		return fmt.Errorf("%w: token endpoint returned %s", models.ErrAuthentication, resp.Status)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("%w: token response decoding: %v", models.ErrAuthentication, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%w: token endpoint returned empty access_token", models.ErrAuthentication)
	}

	c.mu.Lock()
	c.token = token.AccessToken
	c.mu.Unlock()

	observability.Turn14Requests.WithLabelValues("authenticate", "ok").Inc()
	c.logger.Info("authenticated Turn14 API")
	return nil
}

// FetchItems fetches one page of brand items
func (c *Turn14Client) FetchItems(ctx context.Context, brandID, page int) (*models.Turn14ItemsPage, error) {
	var out models.Turn14ItemsPage
	path := fmt.Sprintf("/items/brand/%d", brandID)
	if err := c.getJSON(ctx, "fetch_items", path, page, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchItemData fetches one page of brand item data (descriptions, media)
func (c *Turn14Client) FetchItemData(ctx context.Context, brandID, page int) (*models.Turn14ItemDataPage, error) {
	var out models.Turn14ItemDataPage
	path := fmt.Sprintf("/items/data/brand/%d", brandID)
	if err := c.getJSON(ctx, "fetch_item_data", path, page, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchPricing fetches one page of brand pricing
func (c *Turn14Client) FetchPricing(ctx context.Context, brandID, page int) (*models.Turn14PricingPage, error) {
	var out models.Turn14PricingPage
	path := fmt.Sprintf("/pricing/brand/%d", brandID)
	if err := c.getJSON(ctx, "fetch_pricing", path, page, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchInventory fetches one page of brand inventory
func (c *Turn14Client) FetchInventory(ctx context.Context, brandID, page int) (*models.Turn14InventoryPage, error) {
	var out models.Turn14InventoryPage
	path := fmt.Sprintf("/inventory/brand/%d", brandID)
	if err := c.getJSON(ctx, "fetch_inventory", path, page, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchAllBrandData paginates every brand endpoint until an empty page and
// joins the results by item ID into the merged product list. Order follows
// the items endpoint.
func (c *Turn14Client) FetchAllBrandData(ctx context.Context, brandID int) ([]models.Turn14Product, error) {
	ctx, span := otel.Tracer("turn14").Start(ctx, "turn14.fetch_all_brand_data")
	defer span.End()
	span.SetAttributes(attribute.Int("turn14.brand_id", brandID))

	var items []models.Turn14Item
	for page := 1; ; page++ {
		p, err := c.FetchItems(ctx, brandID, page)
		if err != nil {
			return nil, err
		}
		if len(p.Data) == 0 {
			break
		}
		items = append(items, p.Data...)
	}

	dataByID := make(map[string]models.Turn14ItemData)
	for page := 1; ; page++ {
		p, err := c.FetchItemData(ctx, brandID, page)
		if err != nil {
			return nil, err
		}
		if len(p.Data) == 0 {
			break
		}
		for _, d := range p.Data {
			dataByID[d.ID] = d
		}
	}

	priceByID := make(map[string]float64)
	for page := 1; ; page++ {
		p, err := c.FetchPricing(ctx, brandID, page)
		if err != nil {
			return nil, err
		}
		if len(p.Data) == 0 {
			break
		}
		for _, pr := range p.Data {
			priceByID[pr.ID] = pr.Attributes.PurchaseCost
		}
	}

	stockByID := make(map[string]int)
	for page := 1; ; page++ {
		p, err := c.FetchInventory(ctx, brandID, page)
		if err != nil {
			return nil, err
		}
		if len(p.Data) == 0 {
			break
		}
		for _, inv := range p.Data {
			stockByID[inv.ID] = inv.TotalQuantity()
		}
	}

	products := make([]models.Turn14Product, 0, len(items))
	for _, item := range items {
		products = append(products, mergeBrandData(item, dataByID[item.ID], priceByID[item.ID], stockByID[item.ID]))
	}

	c.logger.Info("fetched brand data",
		zap.Int("brand_id", brandID),
		zap.Int("items", len(products)))
	span.SetAttributes(attribute.Int("turn14.items", len(products)))

	return products, nil
}

// mergeBrandData joins one item's identity, data, pricing and inventory rows
// into the immutable merged product.
func mergeBrandData(item models.Turn14Item, data models.Turn14ItemData, price float64, stock int) models.Turn14Product {
	p := models.Turn14Product{
		ID:               item.ID,
		Brand:            item.Attributes.Brand,
		Category:         item.Attributes.Category,
		SubCategory:      item.Attributes.Subcategory,
		Name:             item.Attributes.ProductName,
		SKU:              item.Attributes.MfrPartNumber,
		Price:            price,
		StockQuantity:    stock,
		RegularlyCarried: item.Attributes.RegularStock,
		ThumbnailURL:     item.Attributes.Thumbnail,
		Attributes:       data.Attributes,
	}

	if len(item.Attributes.Dimensions) > 0 {
		d := item.Attributes.Dimensions[0]
		p.Length = d.Length
		p.Width = d.Width
		p.Height = d.Height
		p.Weight = d.Weight
	}

	for _, desc := range data.Descriptions {
		switch desc.Type {
		case models.DescriptionTypeShort:
			p.ShortDescription = desc.Description
		case models.DescriptionTypeLong:
			p.LongDescription = desc.Description
		}
	}

	for _, file := range data.Files {
		if file.MediaContent != models.MediaContentPrimary || len(file.Links) == 0 {
			continue
		}
		// The last rendition is the full-size one
		link := file.Links[len(file.Links)-1]
		p.PrimaryImage = &models.Turn14Image{URL: link.URL, Width: link.Width, Height: link.Height}
		break
	}

	return p
}

// getJSON performs an authorized GET for one page of a brand resource. A 401
// triggers exactly one re-authentication followed by one retry; a second 401
// surfaces as an authentication error.
func (c *Turn14Client) getJSON(ctx context.Context, operation, path string, page int, out interface{}) error {
	ctx, span := otel.Tracer("turn14").Start(ctx, "turn14."+operation)
	defer span.End()
	span.SetAttributes(attribute.Int("turn14.page", page))

	authRetried := false
	for {
		status, body, err := c.doGet(ctx, path, page)
		if err != nil {
			observability.Turn14Requests.WithLabelValues(operation, "error").Inc()
			return fmt.Errorf("%w: %s page %d: %v", models.ErrTransport, operation, page, err)
		}

		if status == http.StatusUnauthorized {
			if authRetried {
				observability.Turn14Requests.WithLabelValues(operation, "401").Inc()
				return fmt.Errorf("%w: %s page %d: still unauthorized after re-authentication", models.ErrAuthentication, operation, page)
			}
			authRetried = true

			c.logger.Warn("token expired or invalid, re-authenticating",
				zap.String("operation", operation),
				zap.Int("page", page))
			if err := c.Authenticate(ctx); err != nil {
				return err
			}
			continue
		}

		if status != http.StatusOK {
			observability.Turn14Requests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
			return fmt.Errorf("%w: %s page %d: unexpected status %d", models.ErrTransport, operation, page, status)
		}

		// Past the last page the endpoints stop returning a data array. Leave
		// out empty so the caller sees an exhausted page, not an error.
		if !pageHasData(body) {
			observability.Turn14Requests.WithLabelValues(operation, "ok").Inc()
			return nil
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("%w: %s page %d: decoding response: %v", models.ErrTransport, operation, page, err)
		}

		observability.Turn14Requests.WithLabelValues(operation, "ok").Inc()
		return nil
	}
}

// pageHasData reports whether a paginated response body carries a data array.
// Anything else, an object, a string, null or a missing key, is the
// endpoint's end-of-pages marker.
func pageHasData(body []byte) bool {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return true // not an envelope at all; let the typed decode report it
	}
	data := bytes.TrimSpace(envelope.Data)
	return len(data) > 0 && data[0] == '['
}

// doGet issues one authorized GET and returns the raw status and body
func (c *Turn14Client) doGet(ctx context.Context, path string, page int) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}

	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	req.Header.Set("Authorization", "Bearer "+token)

	client := c.pool.Get()
	defer c.pool.Put(client)

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, body, nil
}
