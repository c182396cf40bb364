package handler

import (
	"errors"

	"go-pos-inventory/internal/repository"
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) productError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrNegativePrice):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateProduct):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

// CreateProduct registers a product with generated SKU and code values
// POST /products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return h.productError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created successfully.", "data": product})
}

// GetProducts lists products with search/category/price/status filters
// GET /products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Search:      c.Query("search"),
		StockStatus: c.Query("stockStatus"),
	}

	if v := c.Query("category"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		filter.CategoryID = id
	}
	if minStr, maxStr := c.Query("minPrice"), c.Query("maxPrice"); minStr != "" && maxStr != "" {
		min, err1 := decimal.NewFromString(minStr)
		max, err2 := decimal.NewFromString(maxStr)
		if err1 != nil || err2 != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid price range"})
		}
		filter.MinPrice = &min
		filter.MaxPrice = &max
	}

	list, err := h.service.GetProducts(filter, c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to retrieve products."})
	}

	return c.JSON(list)
}

// GetProduct returns the full detail view
// GET /products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return h.productError(c, err)
	}

	return c.JSON(fiber.Map{"product": product})
}

// GetProductQuickView returns the POS-friendly subset of a product
// GET /products/:id/quick-view
func (h *ProductHandler) GetProductQuickView(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	p, err := h.service.GetProduct(id)
	if err != nil {
		return h.productError(c, err)
	}

	categoryName := ""
	if p.Category != nil {
		categoryName = p.Category.Name
	}

	return c.JSON(fiber.Map{
		"id":               p.ID,
		"productCode":      p.Code,
		"name":             p.Name,
		"sku":              p.SKU,
		"category":         categoryName,
		"price":            p.Price,
		"costPrice":        p.CostPrice,
		"profit":           p.Profit,
		"initialQty":       p.InitialQuantity,
		"stockQty":         p.StockQuantity,
		"reorderThreshold": p.ReorderThreshold,
		"status":           p.Status,
		"qrValue":          p.QRValue,
		"barcodeValue":     p.BarcodeValue,
		"thumbnail":        p.Image,
	})
}

// PrintProduct returns just the fields a label printer needs
// GET /products/:id/print
func (h *ProductHandler) PrintProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	p, err := h.service.GetProduct(id)
	if err != nil {
		return h.productError(c, err)
	}

	return c.JSON(fiber.Map{"product": fiber.Map{
		"id":           p.ID,
		"name":         p.Name,
		"productCode":  p.Code,
		"qrValue":      p.QRValue,
		"barcodeValue": p.BarcodeValue,
		"price":        p.Price,
	}})
}

// LookupProduct resolves a scanned/typed code to a product
// GET /products/lookup?code=...
func (h *ProductHandler) LookupProduct(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code parameter is required."})
	}

	product, err := h.service.Lookup(code)
	if err != nil {
		return h.productError(c, err)
	}

	return c.JSON(fiber.Map{"product": product})
}

// GetProductSuggestions returns typeahead matches
// GET /products/suggestions?q=...
func (h *ProductHandler) GetProductSuggestions(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.JSON(fiber.Map{"suggestions": []interface{}{}})
	}

	products, err := h.service.Suggest(q)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Lookup failed."})
	}

	return c.JSON(fiber.Map{"suggestions": products})
}

// UpdateProduct edits product fields (stock quantity excluded)
// PATCH /products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return h.productError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated successfully.", "product": product})
}

// DeleteProduct removes a product for good
// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return h.productError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted successfully.", "productId": id})
}
