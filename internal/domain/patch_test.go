package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductPatchApply(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p := Product{
		ID:        7,
		Title:     "Bike",
		Category:  "sports",
		Price:     decimal.RequireFromString("120.00"),
		ImageURL:  "placeholder.png",
		OwnerID:   3,
		CreatedAt: created,
	}

	title := "Road bike"
	price := decimal.RequireFromString("99.50")
	desc := "barely used"
	ProductPatch{Title: &title, Price: &price, Description: &desc}.Apply(&p)

	assert.Equal(t, "Road bike", p.Title)
	assert.True(t, p.Price.Equal(price))
	if assert.NotNil(t, p.Description) {
		assert.Equal(t, "barely used", *p.Description)
	}
	assert.Equal(t, "sports", p.Category)
	assert.Equal(t, "placeholder.png", p.ImageURL)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, int64(3), p.OwnerID)
	assert.Equal(t, created, p.CreatedAt)

	desc = "changed later"
	assert.Equal(t, "barely used", *p.Description)
}

func TestProductPatchApply_ClearDescription(t *testing.T) {
	desc := "scratched"
	p := Product{Title: "Lamp", Description: &desc}

	ProductPatch{}.Apply(&p)
	if assert.NotNil(t, p.Description) {
		assert.Equal(t, "scratched", *p.Description)
	}

	other := "ignored"
	ProductPatch{Description: &other, ClearDescription: true}.Apply(&p)
	assert.Nil(t, p.Description)
	assert.Equal(t, "Lamp", p.Title)
}

func TestUserPatchApply(t *testing.T) {
	u := User{ID: 1, Email: "a@example.com", Username: "alice"}

	UserPatch{}.Apply(&u)
	assert.Equal(t, User{ID: 1, Email: "a@example.com", Username: "alice"}, u)

	name := "ally"
	UserPatch{Username: &name}.Apply(&u)
	assert.Equal(t, "ally", u.Username)
	assert.Equal(t, "a@example.com", u.Email)
}
