package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dwikikusuma/techhub-store/internal/order/domain"
)

type orderRecord struct {
	ID         string          `gorm:"primaryKey;type:varchar(36)"`
	Number     string          `gorm:"type:varchar(32);not null"`
	SessionID  string          `gorm:"type:varchar(128);not null;index"`
	Status     string          `gorm:"type:varchar(16);not null"`
	Email      string          `gorm:"not null"`
	FirstName  string          `gorm:"not null"`
	LastName   string          `gorm:"not null"`
	Street     string          `gorm:"not null"`
	City       string          `gorm:"not null"`
	State      string          `gorm:"not null"`
	ZipCode    string          `gorm:"not null"`
	PaymentRef string          `gorm:"not null"`
	CardLast4  string          `gorm:"type:varchar(4);not null"`
	Subtotal   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ItemCount  int             `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []orderItemRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `gorm:"type:varchar(36);not null;index"`
	Position  int             `gorm:"not null"`
	ProductID string          `gorm:"type:varchar(64);not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type OrderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&orderRecord{}, &orderItemRecord{})
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	rec := orderRecord{
		ID:         order.ID,
		Number:     order.Number,
		SessionID:  order.SessionID,
		Status:     order.Status,
		Email:      order.Customer.Email,
		FirstName:  order.Customer.FirstName,
		LastName:   order.Customer.LastName,
		Street:     order.Shipping.Street,
		City:       order.Shipping.City,
		State:      order.Shipping.State,
		ZipCode:    order.Shipping.ZipCode,
		PaymentRef: order.PaymentRef,
		CardLast4:  order.CardLast4,
		Subtotal:   order.SubTotal,
		Tax:        order.Tax,
		Total:      order.Total,
		ItemCount:  order.ItemCount,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i, item := range order.OrderItems {
			expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
			if !item.LineTotal.Equal(expected) {
				return fmt.Errorf("item %d: line total mismatch", i)
			}

			row := orderItemRecord{
				ID:        item.ID,
				OrderID:   rec.ID,
				Position:  i,
				ProductID: item.ProductID,
				Name:      item.Name,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
				LineTotal: item.LineTotal,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}
			rec.Items = append(rec.Items, row)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return toDomain(rec), nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, id string) (domain.Order, bool, error) {
	var rec orderRecord
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, err
	}
	return toDomain(rec), true, nil
}

func toDomain(rec orderRecord) domain.Order {
	items := make([]domain.OrderItem, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, domain.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice.Round(2),
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal.Round(2),
		})
	}

	return domain.Order{
		ID:         rec.ID,
		Number:     rec.Number,
		SessionID:  rec.SessionID,
		Status:     rec.Status,
		Customer:   domain.Customer{Email: rec.Email, FirstName: rec.FirstName, LastName: rec.LastName},
		Shipping:   domain.Address{Street: rec.Street, City: rec.City, State: rec.State, ZipCode: rec.ZipCode},
		PaymentRef: rec.PaymentRef,
		CardLast4:  rec.CardLast4,
		SubTotal:   rec.Subtotal.Round(2),
		Tax:        rec.Tax.Round(2),
		Total:      rec.Total.Round(2),
		ItemCount:  rec.ItemCount,
		OrderItems: items,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
