// Package services wraps the REST endpoints the storefront consumes. The
// backend contract is unstable: the same field can arrive under several
// names depending on the endpoint, so every payload is decoded into a
// loose map and normalized through explicit alias tables before any other
// code sees it.
package services

import (
	"strconv"
	"strings"

	"github.com/matthieukhl/shopfront/internal/types"
)

// Alias tables: known backend spellings for each canonical field, in
// precedence order. Extend these when the backend grows a new variant;
// never chain ad hoc fallbacks at call sites.
var (
	idAliases             = []string{"id", "_id"}
	titleAliases          = []string{"title", "name"}
	imageAliases          = []string{"image", "imageUrl"}
	categoryAliases       = []string{"category", "categoryName"}
	inventoryTotalAliases = []string{"inventoryTotal", "inventory", "stock"}
	inventoryAvailAliases = []string{"inventoryAvailable", "availableInventory", "inventory", "stock"}
	statusAliases         = []string{"status", "approvalStatus", "productStatus"}
	inStockAliases        = []string{"isInStock", "available"}
	outOfStockAliases     = []string{"isOutOfStock"}
	createdByAliases      = []string{"createdBy", "creatorId"}
	usernameAliases       = []string{"username", "name"}
)

// envelopeKeys are wrapper fields some endpoints nest their payload under.
var envelopeKeys = []string{"data", "result", "value", "item", "product"}

// deepUnwrap strips response envelopes (up to six levels, matching how
// deeply the backend has been observed to nest) and takes the head of any
// array it lands on.
func deepUnwrap(v any) map[string]any {
	for i := 0; i < 6; i++ {
		m, ok := v.(map[string]any)
		if !ok {
			break
		}
		unwrapped := false
		for _, k := range envelopeKeys {
			if inner, present := m[k]; present {
				v = inner
				unwrapped = true
				break
			}
		}
		if !unwrapped {
			break
		}
	}
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return map[string]any{}
		}
		v = arr[0]
	}
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func firstString(m map[string]any, aliases []string) string {
	for _, k := range aliases {
		if v, ok := m[k]; ok && v != nil {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s
				}
			case float64:
				return strconv.FormatFloat(s, 'f', -1, 64)
			}
		}
	}
	return ""
}

func firstNumber(m map[string]any, aliases []string) float64 {
	for _, k := range aliases {
		if v, ok := m[k]; ok && v != nil {
			if n, ok := asNumber(v); ok {
				return n
			}
		}
	}
	return 0
}

// firstBool returns the first alias present along with whether any alias
// was present at all; absence and false must stay distinguishable for the
// availability precedence rules.
func firstBool(m map[string]any, aliases []string) (bool, bool) {
	for _, k := range aliases {
		if v, ok := m[k]; ok && v != nil {
			return asBool(v), true
		}
	}
	return false, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	case float64:
		return b != 0
	case int:
		return b != 0
	default:
		return false
	}
}

func normalizeRating(m map[string]any) types.ProductRating {
	switch r := m["rating"].(type) {
	case map[string]any:
		return types.ProductRating{
			Rate:  firstNumber(r, []string{"rate"}),
			Count: int(firstNumber(r, []string{"count"})),
		}
	case float64:
		return types.ProductRating{
			Rate:  r,
			Count: int(firstNumber(m, []string{"ratingCount"})),
		}
	default:
		return types.ProductRating{}
	}
}

// NormalizeProduct maps one raw list item to the canonical list shape.
func NormalizeProduct(raw map[string]any) types.Product {
	return types.Product{
		ID:          firstString(raw, idAliases),
		Title:       firstString(raw, titleAliases),
		Price:       firstNumber(raw, []string{"price"}),
		Category:    firstString(raw, categoryAliases),
		Image:       firstString(raw, imageAliases),
		Description: firstString(raw, []string{"description"}),
		Rating:      normalizeRating(raw),
		Inventory:   int(firstNumber(raw, inventoryAvailAliases)),
		Status:      types.ProductStatus(firstString(raw, statusAliases)),
	}
}

// NormalizeProductDetail maps a raw detail payload (possibly enveloped) to
// the canonical detail shape and derives the availability flags.
//
// Availability precedence: an explicit in-stock flag wins; failing that the
// negation of an explicit out-of-stock flag; failing both, available
// inventory > 0. Low stock means in stock with at most five units left.
func NormalizeProductDetail(raw any) types.ProductDetail {
	p := deepUnwrap(raw)

	invTotal := int(firstNumber(p, inventoryTotalAliases))
	invAvail := int(firstNumber(p, inventoryAvailAliases))

	inStock := invAvail > 0
	if explicitIn, ok := firstBool(p, inStockAliases); ok {
		inStock = explicitIn
	} else if explicitOut, ok := firstBool(p, outOfStockAliases); ok {
		inStock = !explicitOut
	}

	return types.ProductDetail{
		ID:                 firstString(p, idAliases),
		Title:              firstString(p, titleAliases),
		Price:              firstNumber(p, []string{"price"}),
		Description:        firstString(p, []string{"description"}),
		Category:           firstString(p, categoryAliases),
		Image:              firstString(p, imageAliases),
		Rating:             normalizeRating(p),
		InventoryTotal:     invTotal,
		InventoryAvailable: invAvail,
		IsLowStock:         inStock && invAvail > 0 && invAvail <= 5,
		IsOutOfStock:       !inStock,
		IsInStock:          inStock,
		Status:             types.ProductStatus(firstString(p, statusAliases)),
		CreatedAt:          firstString(p, []string{"createdAt"}),
		CreatedBy:          firstString(p, createdByAliases),
	}
}

// NormalizeSession builds the canonical session from a raw auth response
// user payload. The role is parsed here, exactly once.
func NormalizeSession(token string, src map[string]any) types.Session {
	return types.Session{
		UserID:    firstString(src, []string{"id", "_id", "email", "username"}),
		Name:      firstString(src, []string{"name", "username", "email"}),
		Email:     firstString(src, []string{"email"}),
		Role:      types.ParseRole(src["role"]),
		AvatarURL: firstString(src, []string{"avatarUrl"}),
		Token:     token,
	}
}

// NormalizeUserRecord maps one raw user listing row.
func NormalizeUserRecord(raw map[string]any) types.UserRecord {
	return types.UserRecord{
		ID:        firstString(raw, idAliases),
		Email:     firstString(raw, []string{"email"}),
		Username:  firstString(raw, usernameAliases),
		Role:      types.ParseRole(raw["role"]),
		CreatedAt: firstString(raw, []string{"createdAt"}),
	}
}
