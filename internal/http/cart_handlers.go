package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ecofinds/internal/service"
)

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

func (h *Handler) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	item, err := h.svc.Cart.Add(c.Request.Context(), req.ProductID, currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, cartItemToResponse(*item))
}

func (h *Handler) listCart(c *gin.Context) {
	items, err := h.svc.Cart.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]CartItemResponse, len(items))
	for i := range items {
		resp[i] = cartItemToResponse(items[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) removeFromCart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Cart.Remove(c.Request.Context(), id, currentUser(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detailBody("Item removed from cart"))
}

func (h *Handler) checkout(c *gin.Context) {
	purchases, err := h.svc.Checkout.Checkout(c.Request.Context(), currentUser(c))
	if err != nil {
		if errors.Is(err, service.ErrCheckoutConflict) {
			h.metrics.RecordCheckoutConflict()
		}
		h.writeError(c, err)
		return
	}

	h.metrics.RecordCheckout(len(purchases))
	c.JSON(http.StatusOK, detailBody(fmt.Sprintf("%d purchases created successfully", len(purchases))))
}

func (h *Handler) listPurchases(c *gin.Context) {
	purchases, err := h.svc.Purchases.List(c.Request.Context(), currentUser(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		resp[i] = purchaseToResponse(purchases[i])
	}
	c.JSON(http.StatusOK, resp)
}
