package http

import (
	"time"

	"github.com/shopspring/decimal"

	"ecofinds/internal/domain"
)

type UserResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	CreatedAt string  `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ProductResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	OwnerID     int64           `json:"owner_id"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

type CartItemResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	AddedAt   string `json:"added_at"`
}

type PurchaseResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	ProductID   int64  `json:"product_id"`
	PurchasedAt string `json:"purchased_at"`
}

type ImageUploadResponse struct {
	ImageURL string `json:"image_url"`
}

func userToResponse(u domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.Username != "" {
		username := u.Username
		resp.Username = &username
	}
	return resp
}

func productToResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func productsToResponse(products []domain.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(products[i])
	}
	return resp
}

func cartItemToResponse(item domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		AddedAt:   item.AddedAt.Format(time.RFC3339),
	}
}

func purchaseToResponse(p domain.Purchase) PurchaseResponse {
	return PurchaseResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		ProductID:   p.ProductID,
		PurchasedAt: p.PurchasedAt.Format(time.RFC3339),
	}
}
