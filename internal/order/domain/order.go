package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	Email     string
	FirstName string
	LastName  string
}

type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

type Order struct {
	ID         string
	Number     string
	SessionID  string
	Status     string
	Customer   Customer
	Shipping   Address
	PaymentRef string
	CardLast4  string
	SubTotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	ItemCount  int
	OrderItems []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

type CreateOrderRequest struct {
	SessionID  string
	Customer   Customer
	Shipping   Address
	PaymentRef string
	CardLast4  string
	Tax        decimal.Decimal
	Items      []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type OrderResponse struct {
	ID        string
	Number    string
	Status    string
	SubTotal  decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}
