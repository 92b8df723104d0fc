package mockapi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// mockUser is a seeded or registered account.
type mockUser struct {
	ID       string
	Email    string
	Username string
	Password string
	// Role is stored the way real deployments report it: sometimes a
	// string, sometimes a numeric code. The client must cope.
	Role      any
	CreatedAt time.Time
}

// mockProduct is a catalog entry.
type mockProduct struct {
	ID                 string
	Title              string
	Price              float64
	Category           string
	Image              string
	Description        string
	Rating             float64
	RatingCount        int
	InventoryTotal     int
	InventoryAvailable int
	Status             string
	CreatedAt          time.Time
	CreatedBy          string
}

type mockCartItem struct {
	ProductID string
	Quantity  int
	UnitPrice float64
	Title     string
	Image     string
}

type mockCart struct {
	ID            string
	UserID        string
	Items         []mockCartItem
	Status        string
	Address       string
	PaymentMethod int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type mockCategory struct {
	ID         string
	Name       string
	Slug       string
	State      int
	CreatedBy  string
	ApprovedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt time.Time
}

// state is the whole in-memory backend.
type state struct {
	mu         sync.Mutex
	users      map[string]*mockUser // by id
	tokens     map[string]string    // token -> user id
	products   map[string]*mockProduct
	categories map[string]*mockCategory
	carts      []*mockCart
}

func newUUID() string { return uuid.NewString() }

// seed populates the fixed accounts and a small catalog. Passwords are all
// "password"; this server exists for dev and tests only.
func seed() *state {
	s := &state{
		users:      make(map[string]*mockUser),
		tokens:     make(map[string]string),
		products:   make(map[string]*mockProduct),
		categories: make(map[string]*mockCategory),
	}

	now := time.Now().UTC()
	add := func(email, username string, role any) *mockUser {
		u := &mockUser{
			ID:        newUUID(),
			Email:     email,
			Username:  username,
			Password:  "password",
			Role:      role,
			CreatedAt: now,
		}
		s.users[u.ID] = u
		return u
	}
	add("shopper@example.com", "sam", "shopper")
	staff := add("employee@example.com", "erin", 1)
	add("admin@example.com", "ada", "superadmin")

	cats := []string{"Books", "Gadgets", "Home"}
	for _, name := range cats {
		c := &mockCategory{
			ID:         newUUID(),
			Name:       name,
			Slug:       strings.ToLower(name),
			State:      1,
			CreatedBy:  staff.ID,
			ApprovedBy: staff.ID,
			CreatedAt:  now,
			ApprovedAt: now,
		}
		s.categories[c.ID] = c
	}

	catalog := []mockProduct{
		{Title: "Go in Practice", Price: 39.90, Category: "Books", Rating: 4.7, RatingCount: 212, InventoryTotal: 40, InventoryAvailable: 14, Status: "approved"},
		{Title: "Mechanical Keyboard", Price: 89.00, Category: "Gadgets", Rating: 4.4, RatingCount: 96, InventoryTotal: 25, InventoryAvailable: 3, Status: "approved"},
		{Title: "Desk Lamp", Price: 24.50, Category: "Home", Rating: 4.1, RatingCount: 57, InventoryTotal: 60, InventoryAvailable: 0, Status: "approved"},
		{Title: "USB-C Dock", Price: 129.00, Category: "Gadgets", Rating: 4.8, RatingCount: 310, InventoryTotal: 18, InventoryAvailable: 18, Status: "approved"},
		{Title: "Prototype Teapot", Price: 15.00, Category: "Home", Rating: 0, RatingCount: 0, InventoryTotal: 5, InventoryAvailable: 5, Status: "unapproved"},
	}
	for i := range catalog {
		p := catalog[i]
		p.ID = newUUID()
		p.Image = fmt.Sprintf("https://img.example.com/%s.png", strings.ReplaceAll(strings.ToLower(p.Title), " ", "-"))
		p.Description = "Mock catalog entry for " + p.Title + "."
		p.CreatedAt = now
		p.CreatedBy = staff.ID
		s.products[p.ID] = &p
	}

	return s
}

// findUserByEmail returns the account for email, nil when unknown.
func (s *state) findUserByEmail(email string) *mockUser {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// activeCart returns the user's Active cart, creating one when create is
// set.
func (s *state) activeCart(userID string, create bool) *mockCart {
	for _, c := range s.carts {
		if c.UserID == userID && c.Status == "Active" {
			return c
		}
	}
	if !create {
		return nil
	}
	c := &mockCart{
		ID:        newUUID(),
		UserID:    userID,
		Status:    "Active",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	s.carts = append(s.carts, c)
	return c
}
