package models

// Turn14Product is the merged, immutable view of one vendor item after all
// four brand endpoints (items, item data, pricing, inventory) have been joined.
type Turn14Product struct {
	ID               string
	Brand            string
	Category         string
	SubCategory      string
	Name             string
	ShortDescription string
	LongDescription  string
	Length           float64
	Width            float64
	Height           float64
	Weight           float64
	SKU              string
	Price            float64
	StockQuantity    int
	RegularlyCarried bool
	PrimaryImage     *Turn14Image
	ThumbnailURL     string
	Attributes       []Turn14Attribute
}

// Turn14Image is an image reference with its declared pixel dimensions.
type Turn14Image struct {
	URL    string
	Width  int
	Height int
}

// Turn14Attribute is a name/value pair attached to an item.
type Turn14Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Turn14ItemsPage is one page of GET items/brand/{brandId}. An empty Data
// slice terminates pagination.
type Turn14ItemsPage struct {
	Data []Turn14Item `json:"data"`
}

// Turn14Item is one catalog item as returned by the items endpoint.
type Turn14Item struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	Attributes Turn14ItemAttributes `json:"attributes"`
}

// Turn14ItemAttributes carries the item identity fields.
type Turn14ItemAttributes struct {
	ProductName   string            `json:"product_name"`
	MfrPartNumber string            `json:"mfr_part_number"`
	Brand         string            `json:"brand"`
	Category      string            `json:"category"`
	Subcategory   string            `json:"subcategory"`
	Dimensions    []Turn14Dimension `json:"dimensions"`
	Thumbnail     string            `json:"thumbnail"`
	RegularStock  bool              `json:"regular_stock"`
}

// Turn14Dimension is one boxed-dimension entry; the first box is the
// shippable product dimension.
type Turn14Dimension struct {
	BoxNumber int     `json:"box_number"`
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
}

// Turn14ItemDataPage is one page of GET items/data/brand/{brandId}.
type Turn14ItemDataPage struct {
	Data []Turn14ItemData `json:"data"`
}

// Turn14ItemData carries descriptions, media and attributes for one item.
type Turn14ItemData struct {
	ID           string              `json:"id"`
	Descriptions []Turn14Description `json:"descriptions"`
	Files        []Turn14File        `json:"files"`
	Attributes   []Turn14Attribute   `json:"attributes"`
}

// Description types as published by the vendor.
const (
	DescriptionTypeShort = "Product Description"
	DescriptionTypeLong  = "Market Description"
)

// Turn14Description is one typed description entry.
type Turn14Description struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// MediaContentPrimary marks the primary product photo among an item's files.
const MediaContentPrimary = "Photo - Primary"

// Turn14File is one media entry attached to an item.
type Turn14File struct {
	Type         string           `json:"type"`
	MediaContent string           `json:"media_content"`
	Links        []Turn14FileLink `json:"links"`
}

// Turn14FileLink is one rendition of a media file.
type Turn14FileLink struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Turn14PricingPage is one page of GET pricing/brand/{brandId}.
type Turn14PricingPage struct {
	Data []Turn14PricingItem `json:"data"`
}

// Turn14PricingItem carries the purchase cost for one item.
type Turn14PricingItem struct {
	ID         string `json:"id"`
	Attributes struct {
		PurchaseCost float64 `json:"purchase_cost"`
	} `json:"attributes"`
}

// Turn14InventoryPage is one page of GET inventory/brand/{brandId}.
type Turn14InventoryPage struct {
	Data []Turn14InventoryItem `json:"data"`
}

// Turn14InventoryItem carries per-warehouse stock for one item.
type Turn14InventoryItem struct {
	ID         string `json:"id"`
	Attributes struct {
		Inventory map[string]int `json:"inventory"`
	} `json:"attributes"`
}

// TotalQuantity sums stock across warehouses.
func (i Turn14InventoryItem) TotalQuantity() int {
	total := 0
	for _, qty := range i.Attributes.Inventory {
		total += qty
	}
	return total
}
