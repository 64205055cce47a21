package domain

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

type StockLevel string

const (
	StockInStock    StockLevel = "in_stock"
	StockLow        StockLevel = "low_stock"
	StockOutOfStock StockLevel = "out_of_stock"
)

func (s StockLevel) Valid() bool {
	switch s {
	case StockInStock, StockLow, StockOutOfStock:
		return true
	}
	return false
}

// Product is immutable once stored. Prices carry two decimal places.
type Product struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Category       string
	Brand          string
	Image          string
	Storage        *string
	Color          *string
	InStock        bool
	StockLevel     StockLevel
	Rating         decimal.Decimal
	ReviewCount    int
	Features       []string
	Specifications json.RawMessage
}

// Clone returns a copy that shares no mutable memory with p.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	if p.Storage != nil {
		v := *p.Storage
		out.Storage = &v
	}
	if p.Color != nil {
		v := *p.Color
		out.Color = &v
	}
	out.Features = slices.Clone(p.Features)
	out.Specifications = slices.Clone(p.Specifications)
	return out
}

// NewProduct is the creation input. Nil optional fields take their defaults:
// in stock, "in_stock" level, rating 0, no reviews, no features.
type NewProduct struct {
	ID             string
	Name           string
	Description    string
	Price          decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Category       string
	Brand          string
	Image          string
	Storage        *string
	Color          *string
	InStock        *bool
	StockLevel     StockLevel
	Rating         *decimal.Decimal
	ReviewCount    *int
	Features       []string
	Specifications json.RawMessage
}
