package types

// CategoryCreator identifies the staff account that created or approved a
// category.
type CategoryCreator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CategoryProduct is the trimmed product view embedded in a category.
type CategoryProduct struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// Category is a catalog category with its approval audit trail. State is
// the backend's numeric approval state (0 pending, 1 approved).
type Category struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Slug       string            `json:"slug"`
	State      int               `json:"state"`
	CreatedBy  string            `json:"createdBy"`
	ApprovedBy string            `json:"approvedBy,omitempty"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt,omitempty"`
	ApprovedAt string            `json:"approvedAt,omitempty"`
	Creator    *CategoryCreator  `json:"creator,omitempty"`
	Approver   *CategoryCreator  `json:"approver,omitempty"`
	Products   []CategoryProduct `json:"products,omitempty"`
}
