package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/jrbgold/jrb-backend/internal/middleware"
)

const priceListFilename = "jrb-gold-price-list.xlsx"

type ProductController struct {
	productService   service.ProductService
	priceListService service.PriceListService
}

func NewProductController(productService service.ProductService, priceListService service.PriceListService) *ProductController {
	return &ProductController{
		productService:   productService,
		priceListService: priceListService,
	}
}

// ListProducts returns the catalog priced at current rates
// GET /api/v1/products?category=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	category := c.Query("category")

	products, err := ctrl.productService.ListProducts(category)
	if err != nil {
		log.Error("Failed to fetch products", err, map[string]interface{}{
			"category": category,
		})
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"category": category,
		"count":    len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetFeaturedProducts GET /api/v1/products/featured?limit=8
func (ctrl *ProductController) GetFeaturedProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	products, err := ctrl.productService.GetFeaturedProducts(limit)
	if err != nil {
		log.Error("Failed to fetch featured products", err, map[string]interface{}{
			"limit": limit,
		})
		apperrors.InternalError(c, "Failed to fetch featured products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DownloadPriceList streams the priced catalog as an xlsx workbook
// GET /api/v1/products/price-list.xlsx
func (ctrl *ProductController) DownloadPriceList(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.priceListService.Export()
	if err != nil {
		log.Error("Failed to export price list", err)
		apperrors.InternalError(c, "Failed to export price list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+priceListFilename+`"`)
	c.Data(http.StatusOK, service.PriceListContentType, data)
}

// PublishPriceList uploads the workbook and returns a download link (Admin only)
// POST /api/v1/admin/price-list
func (ctrl *ProductController) PublishPriceList(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	published, err := ctrl.priceListService.Publish(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrPriceListUnavailable) {
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.PriceListUnavailable, "Price list storage is not configured")
			return
		}
		log.Error("Failed to publish price list", err)
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.PriceListPublishFail, "Failed to publish price list")
		return
	}

	log.Info("Price list published", map[string]interface{}{
		"key": published.Key,
	})

	c.JSON(http.StatusCreated, gin.H{
		"price_list": published,
	})
}
