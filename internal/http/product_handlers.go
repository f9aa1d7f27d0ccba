package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ecofinds/internal/domain"
	"ecofinds/internal/service"
	"ecofinds/internal/storage"
)

type createProductRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description *string          `json:"description"`
	Category    string           `json:"category" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string           `json:"image_url"`
}

type updateProductRequest struct {
	Title       *string          `json:"title"`
	Description optionalString   `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.svc.Products.Create(c.Request.Context(), service.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
	}, currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productToResponse(*product))
}

func (h *Handler) listProducts(c *gin.Context) {
	filter, ok := pageFilter(c)
	if !ok {
		return
	}
	filter.Category = strings.TrimSpace(c.Query("category"))
	filter.Search = strings.TrimSpace(c.Query("search"))

	products, err := h.svc.Products.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productsToResponse(products))
}

func (h *Handler) listMyProducts(c *gin.Context) {
	filter, ok := pageFilter(c)
	if !ok {
		return
	}
	filter.OwnerID = currentUser(c).ID

	products, err := h.svc.Products.List(c.Request.Context(), filter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productsToResponse(products))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.svc.Products.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productToResponse(*product))
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.svc.Products.Update(c.Request.Context(), id, domain.ProductPatch{
		Title:            req.Title,
		Description:      req.Description.Value,
		ClearDescription: req.Description.Set && req.Description.Value == nil,
		Category:         req.Category,
		Price:            req.Price,
		ImageURL:         req.ImageURL,
	}, currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, productToResponse(*product))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Products.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailBody("Product deleted"))
}

func (h *Handler) uploadImage(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, detailBody("Image storage is not configured"))
		return
	}

	// multipart framing needs headroom above the file limit
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, detailBody("File too large"))
			return
		}
		c.JSON(http.StatusBadRequest, detailBody("A multipart file field named file is required"))
		return
	}
	if header.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, detailBody("File too large"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, detailBody("Only image uploads are accepted"))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer file.Close()

	key := storage.ObjectKey(h.imageKeyPrefix, uuid.NewString()+strings.ToLower(filepath.Ext(header.Filename)))
	url, err := h.storage.Upload(c.Request.Context(), key, file, contentType)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImageUploadResponse{ImageURL: url})
}

// optionalString tells an absent JSON field (Set false) from an explicit
// null (Set true, Value nil).
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func pageFilter(c *gin.Context) (domain.ProductFilter, bool) {
	filter := domain.ProductFilter{Limit: service.DefaultPageLimit}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, detailBody("limit must be an integer"))
			return filter, false
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, detailBody("offset must be an integer"))
			return filter, false
		}
		filter.Offset = offset
	}
	return filter, true
}
