package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"golden-elegance/models"
	"golden-elegance/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	catalogService *services.CatalogService
}

func NewProductController(catalogService *services.CatalogService) *ProductController {
	return &ProductController{catalogService: catalogService}
}

// @Summary Get all categories
// @Description Get list of all categories
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetAllCategories(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Categories retrieved",
		Data:    ctrl.catalogService.GetCategories(),
	})
}

// @Summary Get category
// @Description Get a category and its products by slug
// @Tags Categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{slug} [get]
func (ctrl *ProductController) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("slug")
	category, ok := ctrl.catalogService.GetCategoryBySlug(slug)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Category not found"})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Category retrieved",
		Data: gin.H{
			"category": category,
			"products": ctrl.catalogService.GetProductsByCategory(slug),
		},
	})
}

// @Summary Get products
// @Description List products, optionally filtered by category, price range, size and search text
// @Tags Products
// @Produce json
// @Param category query string false "Category slug, or all"
// @Param min_price query int false "Minimum price (inclusive)"
// @Param max_price query int false "Maximum price (inclusive)"
// @Param size query string false "Size label"
// @Param search query string false "Search text"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	minPrice, err := optionalInt(c.Query("min_price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid min_price", Error: err.Error()})
		return
	}
	maxPrice, err := optionalInt(c.Query("max_price"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid max_price", Error: err.Error()})
		return
	}

	products := ctrl.catalogService.FilterProducts(models.ProductFilter{
		Category: strings.TrimSpace(c.Query("category")),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Size:     strings.TrimSpace(c.Query("size")),
		Search:   c.Query("search"),
	})

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
	})
}

// @Summary Get featured products
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/featured [get]
func (ctrl *ProductController) GetFeaturedProducts(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Featured products retrieved",
		Data:    ctrl.catalogService.GetFeaturedProducts(),
	})
}

// @Summary Get bestseller products
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products/bestsellers [get]
func (ctrl *ProductController) GetBestsellerProducts(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Bestseller products retrieved",
		Data:    ctrl.catalogService.GetBestsellerProducts(),
	})
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, ok := ctrl.productFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Product retrieved",
		Data:    product,
	})
}

// @Summary Get related products
// @Description Other products from the same category
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Param limit query int false "Maximum results" default(4)
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/related [get]
func (ctrl *ProductController) GetRelatedProducts(c *gin.Context) {
	product, ok := ctrl.productFromPath(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultRelatedLimit)))

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Related products retrieved",
		Data:    ctrl.catalogService.GetRelatedProducts(product.ID, product.Category, limit),
	})
}

// @Summary Search products
// @Description Navbar search preview: at most 5 matches plus the total
// @Tags Products
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} models.Response
// @Router /search [get]
func (ctrl *ProductController) Search(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Search results",
		Data:    ctrl.catalogService.SearchPreview(c.Query("q")),
	})
}

func (ctrl *ProductController) productFromPath(c *gin.Context) (models.Product, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		return models.Product{}, false
	}
	product, ok := ctrl.catalogService.GetProductByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product not found"})
		return models.Product{}, false
	}
	return product, true
}

func optionalInt(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
