package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing owned by the user who created it.
type Product struct {
	ID          int64
	Title       string
	Description *string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch holds the client-settable product fields. ID, OwnerID and
// CreatedAt are never client-settable.
type ProductPatch struct {
	Title       *string
	Description *string
	// ClearDescription removes the description; it wins over Description.
	ClearDescription bool
	Category         *string
	Price            *decimal.Decimal
	ImageURL         *string
}

// Apply copies the set fields of the patch onto p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	switch {
	case pp.ClearDescription:
		p.Description = nil
	case pp.Description != nil:
		desc := *pp.Description
		p.Description = &desc
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter";
// Limit and Offset are expected to be normalised by the caller.
type ProductFilter struct {
	Category string
	Search   string
	OwnerID  int64
	Limit    int
	Offset   int
}
