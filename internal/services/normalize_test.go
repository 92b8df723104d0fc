package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/shopfront/internal/types"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestDeepUnwrap(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		id   string
	}{
		{"bare object", `{"id":"p1"}`, "p1"},
		{"data envelope", `{"data":{"id":"p1"}}`, "p1"},
		{"nested envelopes", `{"result":{"value":{"item":{"id":"p1"}}}}`, "p1"},
		{"array head", `{"data":[{"id":"p1"},{"id":"p2"}]}`, "p1"},
		{"empty array", `{"data":[]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deepUnwrap(decode(t, tt.raw))
			assert.Equal(t, tt.id, firstString(got, idAliases))
		})
	}
}

func TestDeepUnwrapStopsAtSixLevels(t *testing.T) {
	raw := `{"data":{"data":{"data":{"data":{"data":{"data":{"data":{"id":"deep"}}}}}}}}`
	got := deepUnwrap(decode(t, raw))
	// Seven wrappers is past the limit; the payload stays wrapped.
	assert.Empty(t, firstString(got, idAliases))
}

func TestNormalizeProductAliases(t *testing.T) {
	legacy := decode(t, `{"_id":"p9","name":"Desk Lamp","imageUrl":"lamp.png","categoryName":"Home","price":"19.99"}`)
	p := NormalizeProduct(legacy)
	assert.Equal(t, "p9", p.ID)
	assert.Equal(t, "Desk Lamp", p.Title)
	assert.Equal(t, "lamp.png", p.Image)
	assert.Equal(t, "Home", p.Category)
	assert.Equal(t, 19.99, p.Price)

	clean := decode(t, `{"id":"p1","title":"Lamp","image":"a.png","category":"Home","price":12}`)
	q := NormalizeProduct(clean)
	assert.Equal(t, "p1", q.ID)
	assert.Equal(t, "Lamp", q.Title)
	assert.Equal(t, "a.png", q.Image)
	assert.Equal(t, 12.0, q.Price)
}

// List and detail payloads may spell inventory and status differently;
// both views must resolve them through the same alias order.
func TestNormalizeProductInventoryAndStatusAliases(t *testing.T) {
	spelled := decode(t, `{"id":"p2","title":"Mug","stock":4,"approvalStatus":"approved"}`)
	p := NormalizeProduct(spelled)
	assert.Equal(t, 4, p.Inventory)
	assert.Equal(t, types.ProductApproved, p.Status)

	d := NormalizeProductDetail(spelled)
	assert.Equal(t, p.Inventory, d.InventoryAvailable)
	assert.Equal(t, p.Status, d.Status)

	// The canonical spelling wins when both are present.
	mixed := decode(t, `{"id":"p3","inventoryAvailable":7,"stock":1,"status":"unapproved","approvalStatus":"approved"}`)
	q := NormalizeProduct(mixed)
	assert.Equal(t, 7, q.Inventory)
	assert.Equal(t, types.ProductStatus("unapproved"), q.Status)
}

func TestNormalizeProductRatingShapes(t *testing.T) {
	obj := NormalizeProduct(decode(t, `{"id":"a","rating":{"rate":4.5,"count":12}}`))
	assert.Equal(t, 4.5, obj.Rating.Rate)
	assert.Equal(t, 12, obj.Rating.Count)

	flat := NormalizeProduct(decode(t, `{"id":"b","rating":3.2,"ratingCount":7}`))
	assert.Equal(t, 3.2, flat.Rating.Rate)
	assert.Equal(t, 7, flat.Rating.Count)

	none := NormalizeProduct(decode(t, `{"id":"c"}`))
	assert.Zero(t, none.Rating.Rate)
	assert.Zero(t, none.Rating.Count)
}

func TestNormalizeProductDetailAvailability(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		inStock    bool
		lowStock   bool
		outOfStock bool
	}{
		{"explicit in-stock flag wins over zero inventory",
			`{"id":"a","isInStock":true,"inventoryAvailable":0}`, true, false, false},
		{"explicit in-stock false wins over positive inventory",
			`{"id":"b","isInStock":false,"inventoryAvailable":8}`, false, false, true},
		{"available alias counts as explicit in-stock",
			`{"id":"c","available":true}`, true, false, false},
		{"out-of-stock flag negated when no in-stock flag",
			`{"id":"d","isOutOfStock":false,"inventoryAvailable":0}`, true, false, false},
		{"out-of-stock true",
			`{"id":"e","isOutOfStock":true,"inventoryAvailable":8}`, false, false, true},
		{"inventory fallback positive",
			`{"id":"f","inventoryAvailable":9}`, true, false, false},
		{"inventory fallback zero",
			`{"id":"g","inventoryAvailable":0}`, false, false, true},
		{"low stock at five units",
			`{"id":"h","inventoryAvailable":5}`, true, true, false},
		{"low stock lower bound",
			`{"id":"i","inventoryAvailable":1}`, true, true, false},
		{"six units is not low stock",
			`{"id":"j","inventoryAvailable":6}`, true, false, false},
		{"stock alias feeds availability",
			`{"id":"k","stock":3}`, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NormalizeProductDetail(decode(t, tt.raw))
			assert.Equal(t, tt.inStock, d.IsInStock, "IsInStock")
			assert.Equal(t, tt.lowStock, d.IsLowStock, "IsLowStock")
			assert.Equal(t, tt.outOfStock, d.IsOutOfStock, "IsOutOfStock")
			assert.Equal(t, d.IsInStock, !d.IsOutOfStock, "flags must be complementary")
		})
	}
}

func TestNormalizeProductDetailEnvelopedLegacyShape(t *testing.T) {
	raw := decode(t, `{"data":{"_id":"p7","name":"Mechanical Keyboard","imageUrl":"kb.png","categoryName":"Gadgets","stock":3,"rating":4.1,"ratingCount":2}}`)
	d := NormalizeProductDetail(raw)
	assert.Equal(t, "p7", d.ID)
	assert.Equal(t, "Mechanical Keyboard", d.Title)
	assert.Equal(t, "kb.png", d.Image)
	assert.Equal(t, "Gadgets", d.Category)
	assert.Equal(t, 3, d.InventoryAvailable)
	assert.Equal(t, 3, d.InventoryTotal)
	assert.True(t, d.IsInStock)
	assert.True(t, d.IsLowStock)
	assert.Equal(t, 4.1, d.Rating.Rate)
	assert.Equal(t, 2, d.Rating.Count)
}

func TestNormalizeSession(t *testing.T) {
	s := NormalizeSession("tok", decode(t, `{"id":"u1","name":"Sam","email":"sam@example.com","role":"shopper"}`))
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, "Sam", s.Name)
	assert.Equal(t, types.RoleShopper, s.Role)
	assert.Equal(t, "tok", s.Token)

	// Sparse payload falls back to email for both id and display name.
	sparse := NormalizeSession("tok", decode(t, `{"email":"erin@example.com","role":1}`))
	assert.Equal(t, "erin@example.com", sparse.UserID)
	assert.Equal(t, "erin@example.com", sparse.Name)
	assert.Equal(t, types.RoleEmployee, sparse.Role)
}

func TestNormalizeSessionTokenNotSerialized(t *testing.T) {
	s := NormalizeSession("secret", decode(t, `{"id":"u1"}`))
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}

func TestNormalizeUserRecord(t *testing.T) {
	u := NormalizeUserRecord(decode(t, `{"_id":"u2","email":"ada@example.com","username":"ada","role":"superadmin"}`))
	assert.Equal(t, "u2", u.ID)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, types.RoleAdmin, u.Role)
}
