package types

// ProductStatus is the approval state of a catalog entry.
type ProductStatus string

const (
	ProductApproved   ProductStatus = "approved"
	ProductUnapproved ProductStatus = "unapproved"
)

// ProductRating is the aggregate review score of a product.
type ProductRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is the list-item view of a catalog entry, used on grids and in
// search results.
type Product struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Price       float64       `json:"price"`
	Category    string        `json:"category"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Rating      ProductRating `json:"rating"`
	Inventory   int           `json:"inventory"`
	Status      ProductStatus `json:"status,omitempty"`
}

// ProductDetail is the full view of a catalog entry, including the derived
// availability flags. The flags are computed once during normalization; see
// services.NormalizeProductDetail for the precedence order.
type ProductDetail struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Price              float64       `json:"price"`
	Description        string        `json:"description"`
	Category           string        `json:"category"`
	Image              string        `json:"image"`
	Rating             ProductRating `json:"rating"`
	InventoryTotal     int           `json:"inventoryTotal"`
	InventoryAvailable int           `json:"inventoryAvailable"`
	IsLowStock         bool          `json:"isLowStock"`
	IsOutOfStock       bool          `json:"isOutOfStock"`
	IsInStock          bool          `json:"isInStock"`
	Status             ProductStatus `json:"status,omitempty"`
	CreatedAt          string        `json:"createdAt,omitempty"`
	CreatedBy          string        `json:"createdBy,omitempty"`
}

// ProductDraft is the payload for creating or updating a catalog entry.
type ProductDraft struct {
	Title       string
	Price       float64
	Category    string
	Description string
	Image       string
	Inventory   int
	Status      ProductStatus
}

// PagedProducts is one page of a store product listing.
type PagedProducts struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
	HasMore    bool      `json:"hasMore"`
}
