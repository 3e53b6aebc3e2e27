package models

// Backorder policies accepted by the store.
const (
	BackordersNo     = "no"
	BackordersNotify = "notify"
)

// ProductTypeSimple is the only product type this sync produces.
const ProductTypeSimple = "simple"

// WcProduct is a destination store product. Instances are constructed by the
// mapper and never mutated afterwards; every run builds fresh ones.
type WcProduct struct {
	ID                int            `json:"id,omitempty"`
	Name              string         `json:"name"`
	Type              string         `json:"type"`
	Description       string         `json:"description"`
	ShortDescription  string         `json:"short_description"`
	SKU               string         `json:"sku"`
	RegularPrice      string         `json:"regular_price,omitempty"`
	Brands            []int          `json:"brands"`
	Categories        []WcCategoryID `json:"categories"`
	Dimensions        WcDimensions   `json:"dimensions"`
	Weight            float64        `json:"weight"`
	ManageStock       bool           `json:"manage_stock"`
	Backorders        string         `json:"backorders"`
	BackordersAllowed bool           `json:"backorders_allowed"`
	StockQuantity     int            `json:"stock_quantity"`
	Images            []WcImage      `json:"images"`
	Attributes        []WcAttribute  `json:"attributes"`
}

// WcCategoryID references a category by its store identifier.
type WcCategoryID struct {
	ID int `json:"id"`
}

// WcDimensions mirrors the store's dimensions object.
type WcDimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WcImage references a product image by source URL.
type WcImage struct {
	Src string `json:"src"`
}

// WcAttribute is a visible name/value product attribute.
type WcAttribute struct {
	Name    string   `json:"name"`
	Visible bool     `json:"visible"`
	Options []string `json:"options"`
}

// WcBatch is one batch-products request body. A batch is pushed as a unit and
// never partially retried.
type WcBatch struct {
	Create []WcProduct `json:"create"`
	Update []WcProduct `json:"update"`
	Delete []int       `json:"delete"`
}

// TotalSize reports how many records the batch carries across all three lists.
func (b *WcBatch) TotalSize() int {
	return len(b.Create) + len(b.Update) + len(b.Delete)
}

// Reset clears the batch for reuse after a push.
func (b *WcBatch) Reset() {
	b.Create = b.Create[:0]
	b.Update = b.Update[:0]
	b.Delete = b.Delete[:0]
}

// WcBatchResponse is the store's per-item result for a batch push.
type WcBatchResponse struct {
	Create []WcProduct `json:"create"`
	Update []WcProduct `json:"update"`
	Delete []WcProduct `json:"delete"`
}

// WcCategory is a store product category.
type WcCategory struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Parent int    `json:"parent"`
}

// WcBrand is a store product brand.
type WcBrand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
