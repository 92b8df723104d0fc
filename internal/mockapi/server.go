// Package mockapi is an in-memory implementation of the storefront REST
// surface, used by the mockapi command for local development and by the
// end-to-end tests. It deliberately mirrors the real backend's quirks:
// field names vary between endpoints and some payloads arrive wrapped in
// a data envelope, so the client's normalization layer gets exercised.
package mockapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Server is the mock backend.
type Server struct {
	router *gin.Engine
	state  *state
}

// NewServer builds a seeded mock backend.
func NewServer() *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{router: router, state: seed()}
	s.setupRoutes()
	return s
}

// Handler exposes the router for httptest mounting.
func (s *Server) Handler() http.Handler { return s.router }

// Start runs the mock backend on addr.
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "mockapi"})
		})

		api.POST("/login", s.login)
		api.POST("/auth", s.register)
		api.POST("/logout", s.logout)
		api.POST("/admin/auth", s.createStaff)

		cart := api.Group("/Cart", s.requireAuth)
		{
			cart.GET("/active", s.cartActive)
			cart.GET("/my-carts", s.cartMine)
			cart.POST("/add-item", s.cartAddItem)
			cart.PUT("/update-item", s.cartUpdateItem)
			cart.DELETE("/remove-item/:id", s.cartRemoveItem)
			cart.POST("/checkout", s.cartCheckout)
			cart.POST("/clear", s.cartClear)
		}

		order := api.Group("/Order", s.requireAuth)
		{
			order.GET("/my-orders", s.orderMine)
			order.GET("/:id", s.orderByID)
		}

		api.GET("/store/products", s.storeProducts)

		api.GET("/product", s.productAll)
		api.GET("/product/approved", s.productApproved)
		api.GET("/product/pending-approval", s.requireStaff, s.productPending)
		api.GET("/product/:id", s.productByID)
		api.GET("/product/details/:id", s.productByID)
		api.POST("/product", s.requireStaff, s.productCreate)
		api.PUT("/product", s.requireStaff, s.productUpdate)
		api.DELETE("/product", s.requireStaff, s.productDelete)
		api.POST("/product/:id/approve", s.requireStaff, s.productApprove)

		api.GET("/categories", s.categoriesApproved)
		api.GET("/categories/all", s.requireStaff, s.categoriesAll)
		api.GET("/categories/search", s.categoriesSearch)
		api.GET("/categories/pending-approval", s.requireStaff, s.categoriesPending)
		api.POST("/categories", s.requireStaff, s.categoryCreate)
		api.PUT("/categories", s.requireStaff, s.categoryUpdate)
		api.DELETE("/categories", s.requireStaff, s.categoryDelete)
		api.POST("/categories/:id/approve", s.requireStaff, s.categoryApprove)

		api.GET("/users", s.requireStaff, s.usersList)
		api.PUT("/users/:id", s.requireStaff, s.userUpdate)
	}
}

// --- auth plumbing ---

func canonicalRole(role any) string {
	r := strings.ToLower(fmt.Sprintf("%v", role))
	switch {
	case r == "1" || strings.Contains(r, "employee"):
		return "employee"
	case r == "3" || strings.Contains(r, "admin"):
		return "superadmin"
	default:
		return "shopper"
	}
}

// currentUser resolves the bearer token; nil when missing or unknown.
func (s *Server) currentUser(c *gin.Context) *mockUser {
	h := c.GetHeader("Authorization")
	if h == "" {
		return nil
	}
	token := strings.TrimPrefix(h, "Bearer ")
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	id, ok := s.state.tokens[token]
	if !ok {
		return nil
	}
	return s.state.users[id]
}

func (s *Server) requireAuth(c *gin.Context) {
	if s.currentUser(c) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	c.Next()
}

func (s *Server) requireStaff(c *gin.Context) {
	u := s.currentUser(c)
	if u == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
		return
	}
	if r := canonicalRole(u.Role); r != "employee" && r != "superadmin" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "staff only"})
		return
	}
	c.Next()
}

func (s *Server) issueToken(u *mockUser) string {
	token := "mock-" + newUUID()
	s.state.mu.Lock()
	s.state.tokens[token] = u.ID
	s.state.mu.Unlock()
	return token
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password required"})
		return
	}
	s.state.mu.Lock()
	u := s.state.findUserByEmail(req.Email)
	s.state.mu.Unlock()
	if u == nil || u.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": s.issueToken(u),
		"user": gin.H{
			"id":       u.ID,
			"email":    u.Email,
			"username": u.Username,
			"role":     u.Role,
		},
	})
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email, username and password required"})
		return
	}
	s.state.mu.Lock()
	if s.state.findUserByEmail(req.Email) != nil {
		s.state.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	}
	u := &mockUser{
		ID:        newUUID(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		Role:      "shopper",
		CreatedAt: time.Now().UTC(),
	}
	s.state.users[u.ID] = u
	s.state.mu.Unlock()

	// Registration spreads the user across the top level, unlike login.
	c.JSON(http.StatusOK, gin.H{
		"token":    s.issueToken(u),
		"id":       u.ID,
		"email":    u.Email,
		"username": u.Username,
		"role":     u.Role,
	})
}

func (s *Server) logout(c *gin.Context) {
	h := c.GetHeader("Authorization")
	token := strings.TrimPrefix(h, "Bearer ")
	s.state.mu.Lock()
	delete(s.state.tokens, token)
	s.state.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) createStaff(c *gin.Context) {
	u := s.currentUser(c)
	if u == nil || canonicalRole(u.Role) != "superadmin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "superadmin only"})
		return
	}
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email, username and password required"})
		return
	}
	role := canonicalRole(req.Role)
	if role == "shopper" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "role must be employee or superadmin"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if s.state.findUserByEmail(req.Email) != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	}
	nu := &mockUser{
		ID:        newUUID(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  req.Password,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	s.state.users[nu.ID] = nu
	c.JSON(http.StatusOK, gin.H{"message": "created"})
}

// --- cart ---

// cartJSON renders a cart with server-computed totals: shipping is 4.99
// under a 50.00 subtotal, free above it.
func cartJSON(cart *mockCart) gin.H {
	items := make([]gin.H, 0, len(cart.Items))
	var before float64
	for _, it := range cart.Items {
		total := float64(it.Quantity) * it.UnitPrice
		before += total
		items = append(items, gin.H{
			"productId":    it.ProductID,
			"productTitle": it.Title,
			"quantity":     it.Quantity,
			"unitPrice":    it.UnitPrice,
			"totalPrice":   total,
			"productImage": it.Image,
		})
	}
	shipping := 0.0
	if before > 0 && before < 50 {
		shipping = 4.99
	}
	return gin.H{
		"id":                  cart.ID,
		"userId":              cart.UserID,
		"items":               items,
		"couponApplied":       nil,
		"totalBeforeDiscount": before,
		"totalAfterDiscount":  before,
		"shippingCost":        shipping,
		"finalTotal":          before + shipping,
		"createdAt":           cart.CreatedAt.Format(time.RFC3339),
		"updatedAt":           cart.UpdatedAt.Format(time.RFC3339),
		"status":              cart.Status,
		"address":             cart.Address,
		"paymentMethod":       cart.PaymentMethod,
	}
}

func (s *Server) cartActive(c *gin.Context) {
	u := s.currentUser(c)
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cart := s.state.activeCart(u.ID, true)
	c.JSON(http.StatusOK, cartJSON(cart))
}

func (s *Server) cartMine(c *gin.Context) {
	u := s.currentUser(c)
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	out := make([]gin.H, 0)
	for _, cart := range s.state.carts {
		if cart.UserID == u.ID {
			out = append(out, cartJSON(cart))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) cartAddItem(c *gin.Context) {
	u := s.currentUser(c)
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId and quantity required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	p, ok := s.state.products[req.ProductID]
	if !ok || p.Status != "approved" {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	if p.InventoryAvailable < req.Quantity {
		c.JSON(http.StatusConflict, gin.H{"message": "out of stock"})
		return
	}
	p.InventoryAvailable -= req.Quantity
	cart := s.state.activeCart(u.ID, true)
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == p.ID {
			cart.Items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, mockCartItem{
			ProductID: p.ID,
			Quantity:  req.Quantity,
			UnitPrice: p.Price,
			Title:     p.Title,
			Image:     p.Image,
		})
	}
	cart.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, cartJSON(cart))
}

func (s *Server) cartUpdateItem(c *gin.Context) {
	u := s.currentUser(c)
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId and quantity required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cart := s.state.activeCart(u.ID, false)
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no active cart"})
		return
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID != req.ProductID {
			continue
		}
		delta := req.Quantity - cart.Items[i].Quantity
		if p, ok := s.state.products[req.ProductID]; ok {
			if delta > p.InventoryAvailable {
				c.JSON(http.StatusConflict, gin.H{"message": "out of stock"})
				return
			}
			p.InventoryAvailable -= delta
		}
		cart.Items[i].Quantity = req.Quantity
		cart.UpdatedAt = time.Now().UTC()
		c.JSON(http.StatusOK, cartJSON(cart))
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "item not in cart"})
}

func (s *Server) cartRemoveItem(c *gin.Context) {
	u := s.currentUser(c)
	id := c.Param("id")
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cart := s.state.activeCart(u.ID, false)
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "no active cart"})
		return
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID != id {
			continue
		}
		if p, ok := s.state.products[id]; ok {
			p.InventoryAvailable += cart.Items[i].Quantity
		}
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		cart.UpdatedAt = time.Now().UTC()
		c.JSON(http.StatusOK, cartJSON(cart))
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "item not in cart"})
}

func (s *Server) cartCheckout(c *gin.Context) {
	u := s.currentUser(c)
	var req struct {
		Address       string `json:"address"`
		PaymentMethod int    `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Address) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "address required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cart := s.state.activeCart(u.ID, false)
	if cart == nil || len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cart is empty"})
		return
	}
	cart.Status = "CheckedOut"
	cart.Address = req.Address
	cart.PaymentMethod = req.PaymentMethod
	cart.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, cartJSON(cart))
}

func (s *Server) cartClear(c *gin.Context) {
	u := s.currentUser(c)
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cart := s.state.activeCart(u.ID, false)
	if cart != nil {
		for _, it := range cart.Items {
			if p, ok := s.state.products[it.ProductID]; ok {
				p.InventoryAvailable += it.Quantity
			}
		}
		cart.Items = nil
		cart.UpdatedAt = time.Now().UTC()
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleared"})
}

// --- orders (checked-out carts) ---

func orderJSON(cart *mockCart, customer string) gin.H {
	h := cartJSON(cart)
	items := h["items"]
	return gin.H{
		"id":           cart.ID,
		"orderNumber":  cart.ID[:8],
		"customerName": customer,
		"amount":       h["finalTotal"],
		"address":      cart.Address,
		"createdAt":    cart.CreatedAt.Format(time.RFC3339),
		"status":       "Processing",
		"items":        items,
	}
}

func (s *Server) orderMine(c *gin.Context) {
	u := s.currentUser(c)
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	out := make([]gin.H, 0)
	for _, cart := range s.state.carts {
		if cart.UserID == u.ID && cart.Status == "CheckedOut" {
			out = append(out, orderJSON(cart, u.Username))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) orderByID(c *gin.Context) {
	u := s.currentUser(c)
	id := c.Param("id")
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, cart := range s.state.carts {
		if cart.ID == id && cart.UserID == u.ID && cart.Status == "CheckedOut" {
			c.JSON(http.StatusOK, orderJSON(cart, u.Username))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
}

// --- products ---

// storeItemJSON is the clean shape the paged store listing uses.
func storeItemJSON(p *mockProduct) gin.H {
	return gin.H{
		"id":          p.ID,
		"title":       p.Title,
		"price":       p.Price,
		"category":    p.Category,
		"image":       p.Image,
		"description": p.Description,
		"rating":      gin.H{"rate": p.Rating, "count": p.RatingCount},
		"inventory":   p.InventoryAvailable,
		"status":      p.Status,
	}
}

// detailJSON is the legacy shape of the /api/product endpoints: different
// field names (name, imageUrl, categoryName, stock) and a numeric rating.
func detailJSON(p *mockProduct) gin.H {
	return gin.H{
		"id":                 p.ID,
		"name":               p.Title,
		"price":              p.Price,
		"categoryName":       p.Category,
		"imageUrl":           p.Image,
		"description":        p.Description,
		"rating":             p.Rating,
		"ratingCount":        p.RatingCount,
		"inventoryTotal":     p.InventoryTotal,
		"inventoryAvailable": p.InventoryAvailable,
		"stock":              p.InventoryAvailable,
		"status":             p.Status,
		"createdAt":          p.CreatedAt.Format(time.RFC3339),
		"createdBy":          p.CreatedBy,
	}
}

func (s *Server) productList(filter func(*mockProduct) bool) []gin.H {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	out := make([]gin.H, 0)
	for _, p := range s.state.products {
		if filter(p) {
			out = append(out, detailJSON(p))
		}
	}
	return out
}

func (s *Server) productAll(c *gin.Context) {
	// ?id= is an alternate detail spelling some deployments use.
	if id := c.Query("id"); id != "" {
		s.state.mu.Lock()
		p, ok := s.state.products[id]
		s.state.mu.Unlock()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": detailJSON(p)})
		return
	}
	c.JSON(http.StatusOK, s.productList(func(*mockProduct) bool { return true }))
}

func (s *Server) productApproved(c *gin.Context) {
	c.JSON(http.StatusOK, s.productList(func(p *mockProduct) bool { return p.Status == "approved" }))
}

func (s *Server) productPending(c *gin.Context) {
	c.JSON(http.StatusOK, s.productList(func(p *mockProduct) bool { return p.Status != "approved" }))
}

func (s *Server) productByID(c *gin.Context) {
	id := c.Param("id")
	s.state.mu.Lock()
	p, ok := s.state.products[id]
	s.state.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	// Details arrive wrapped in an envelope, as the real API does.
	c.JSON(http.StatusOK, gin.H{"data": detailJSON(p)})
}

func (s *Server) productCreate(c *gin.Context) {
	u := s.currentUser(c)
	var req struct {
		Title              string  `json:"title"`
		Price              float64 `json:"price"`
		Description        string  `json:"description"`
		Category           string  `json:"category"`
		ImageURL           string  `json:"imageUrl"`
		InventoryTotal     int     `json:"inventoryTotal"`
		InventoryAvailable int     `json:"inventoryAvailable"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, p := range s.state.products {
		if strings.EqualFold(p.Title, req.Title) && strings.EqualFold(p.Category, req.Category) {
			c.JSON(http.StatusConflict, gin.H{"message": "product already exists in this category"})
			return
		}
	}
	p := &mockProduct{
		ID:                 newUUID(),
		Title:              req.Title,
		Price:              req.Price,
		Category:           req.Category,
		Image:              req.ImageURL,
		Description:        req.Description,
		InventoryTotal:     req.InventoryTotal,
		InventoryAvailable: req.InventoryAvailable,
		Status:             "unapproved",
		CreatedAt:          time.Now().UTC(),
		CreatedBy:          u.ID,
	}
	s.state.products[p.ID] = p
	c.JSON(http.StatusOK, gin.H{"data": detailJSON(p)})
}

func (s *Server) productUpdate(c *gin.Context) {
	var req struct {
		ID                 string  `json:"id"`
		Title              string  `json:"title"`
		Price              float64 `json:"price"`
		Description        string  `json:"description"`
		Category           string  `json:"category"`
		ImageURL           string  `json:"imageUrl"`
		InventoryTotal     int     `json:"inventoryTotal"`
		InventoryAvailable int     `json:"inventoryAvailable"`
		Status             string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	p, ok := s.state.products[req.ID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Price > 0 {
		p.Price = req.Price
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Category != "" {
		p.Category = req.Category
	}
	if req.ImageURL != "" {
		p.Image = req.ImageURL
	}
	if req.InventoryTotal > 0 {
		p.InventoryTotal = req.InventoryTotal
		p.InventoryAvailable = req.InventoryAvailable
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (s *Server) productDelete(c *gin.Context) {
	var req struct {
		ID       string `json:"id"`
		Approved bool   `json:"approved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if _, ok := s.state.products[req.ID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	delete(s.state.products, req.ID)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) productApprove(c *gin.Context) {
	id := c.Param("id")
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	p, ok := s.state.products[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
		return
	}
	p.Status = "approved"
	c.JSON(http.StatusOK, gin.H{"message": "approved"})
}

// storeProducts is the public paged listing with search, filters and
// sorting. Only approved products are visible here.
func (s *Server) storeProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "12"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 12
	}
	title := strings.ToLower(strings.TrimSpace(c.Query("title")))
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	minPrice, hasMin := parseFloatQuery(c.Query("minPrice"))
	maxPrice, hasMax := parseFloatQuery(c.Query("maxPrice"))

	s.state.mu.Lock()
	matched := make([]*mockProduct, 0, len(s.state.products))
	for _, p := range s.state.products {
		if p.Status != "approved" {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if hasMin && p.Price < minPrice {
			continue
		}
		if hasMax && p.Price > maxPrice {
			continue
		}
		matched = append(matched, p)
	}
	s.state.mu.Unlock()

	sortBy := c.Query("sortBy")
	desc := strings.EqualFold(c.Query("sortDir"), "Desc")
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "Price":
			less = matched[i].Price < matched[j].Price
		case "Rating":
			less = matched[i].Rating < matched[j].Rating
		default:
			less = matched[i].Title < matched[j].Title
		}
		if desc {
			return !less
		}
		return less
	})

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	items := make([]gin.H, 0, end-start)
	for _, p := range matched[start:end] {
		items = append(items, storeItemJSON(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"page":       page,
		"pageSize":   pageSize,
		"totalItems": total,
		"totalPages": totalPages,
		"hasMore":    page < totalPages,
	})
}

func parseFloatQuery(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// --- categories ---

func (s *Server) categoryJSON(cat *mockCategory) gin.H {
	var creator, approver gin.H
	if u, ok := s.state.users[cat.CreatedBy]; ok {
		creator = gin.H{"id": u.ID, "name": u.Username, "email": u.Email}
	}
	if u, ok := s.state.users[cat.ApprovedBy]; ok {
		approver = gin.H{"id": u.ID, "name": u.Username, "email": u.Email}
	}
	products := make([]gin.H, 0)
	for _, p := range s.state.products {
		if strings.EqualFold(p.Category, cat.Name) {
			products = append(products, gin.H{
				"id": p.ID, "title": p.Title, "price": p.Price,
				"category": p.Category, "image": p.Image,
			})
		}
	}
	out := gin.H{
		"id":        cat.ID,
		"name":      cat.Name,
		"slug":      cat.Slug,
		"state":     cat.State,
		"createdBy": cat.CreatedBy,
		"createdAt": cat.CreatedAt.Format(time.RFC3339),
		"creator":   creator,
		"approver":  approver,
		"products":  products,
	}
	if cat.ApprovedBy != "" {
		out["approvedBy"] = cat.ApprovedBy
		out["approvedAt"] = cat.ApprovedAt.Format(time.RFC3339)
	}
	if !cat.UpdatedAt.IsZero() {
		out["updatedAt"] = cat.UpdatedAt.Format(time.RFC3339)
	}
	return out
}

func (s *Server) categoryList(filter func(*mockCategory) bool) []gin.H {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	out := make([]gin.H, 0)
	for _, cat := range s.state.categories {
		if filter(cat) {
			out = append(out, s.categoryJSON(cat))
		}
	}
	return out
}

func (s *Server) categoriesApproved(c *gin.Context) {
	c.JSON(http.StatusOK, s.categoryList(func(cat *mockCategory) bool { return cat.State == 1 }))
}

func (s *Server) categoriesAll(c *gin.Context) {
	c.JSON(http.StatusOK, s.categoryList(func(*mockCategory) bool { return true }))
}

func (s *Server) categoriesPending(c *gin.Context) {
	c.JSON(http.StatusOK, s.categoryList(func(cat *mockCategory) bool { return cat.State == 0 }))
}

func (s *Server) categoriesSearch(c *gin.Context) {
	term := strings.ToLower(strings.TrimSpace(c.Query("term")))
	c.JSON(http.StatusOK, s.categoryList(func(cat *mockCategory) bool {
		return term == "" || strings.Contains(strings.ToLower(cat.Name), term)
	}))
}

func (s *Server) categoryCreate(c *gin.Context) {
	u := s.currentUser(c)
	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for _, cat := range s.state.categories {
		if strings.EqualFold(cat.Name, req.Name) {
			c.JSON(http.StatusConflict, gin.H{"message": "category already exists"})
			return
		}
	}
	cat := &mockCategory{
		ID:        newUUID(),
		Name:      strings.TrimSpace(req.Name),
		Slug:      req.Slug,
		State:     0,
		CreatedBy: u.ID,
		CreatedAt: time.Now().UTC(),
	}
	s.state.categories[cat.ID] = cat
	c.JSON(http.StatusOK, s.categoryJSON(cat))
}

func (s *Server) categoryUpdate(c *gin.Context) {
	var req struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cat, ok := s.state.categories[req.ID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
		return
	}
	if req.Name != "" {
		cat.Name = req.Name
		cat.Slug = req.Slug
	}
	cat.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, s.categoryJSON(cat))
}

func (s *Server) categoryDelete(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id required"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if _, ok := s.state.categories[req.ID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
		return
	}
	delete(s.state.categories, req.ID)
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) categoryApprove(c *gin.Context) {
	u := s.currentUser(c)
	id := c.Param("id")
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	cat, ok := s.state.categories[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
		return
	}
	cat.State = 1
	cat.ApprovedBy = u.ID
	cat.ApprovedAt = time.Now().UTC()
	c.JSON(http.StatusOK, s.categoryJSON(cat))
}

// --- users ---

func (s *Server) usersList(c *gin.Context) {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	out := make([]gin.H, 0, len(s.state.users))
	for _, u := range s.state.users {
		out = append(out, gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"username":  u.Username,
			"role":      u.Role,
			"createdAt": u.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) userUpdate(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	u, ok := s.state.users[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Username != "" {
		u.Username = req.Username
	} else if req.Name != "" {
		u.Username = req.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"username":  u.Username,
		"role":      u.Role,
		"createdAt": u.CreatedAt.Format(time.RFC3339),
	})
}
