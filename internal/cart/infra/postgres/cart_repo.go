package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwikikusuma/techhub-store/internal/cart/domain"
)

type cartItemRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	SessionID string `gorm:"type:varchar(128);not null;uniqueIndex:ux_cart_items_session_product,priority:1"`
	ProductID string `gorm:"type:varchar(64);not null;uniqueIndex:ux_cart_items_session_product,priority:2"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (cartItemRecord) TableName() string { return "cart_items" }

// CartRepo persists carts through gorm on Postgres or SQLite. The
// (session_id, product_id) unique index makes merge-on-add a single upsert.
type CartRepo struct {
	db    *gorm.DB
	newID func() string
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db, newID: uuid.NewString}
}

func (r *CartRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&cartItemRecord{})
}

// AddItem upserts the line. The conflict update only fires while the merged
// quantity stays within domain.MaxQuantity; otherwise no row changes.
func (r *CartRepo) AddItem(ctx context.Context, sessionID, productID string, quantity int) (domain.CartItem, error) {
	if quantity > domain.MaxQuantity {
		return domain.CartItem{}, domain.ErrQuantityLimit
	}

	now := time.Now().UTC()
	rec := cartItemRecord{
		ID:        r.newID(),
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var out cartItemRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": now,
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "cart_items.quantity + excluded.quantity <= ?", Vars: []interface{}{domain.MaxQuantity}},
			}},
		}).Create(&rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrQuantityLimit
		}
		return tx.Where("session_id = ? AND product_id = ?", sessionID, productID).First(&out).Error
	})
	if err != nil {
		return domain.CartItem{}, err
	}
	return toDomain(out), nil
}

func (r *CartRepo) GetItem(ctx context.Context, itemID string) (domain.CartItem, bool, error) {
	var rec cartItemRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CartItem{}, false, nil
	}
	if err != nil {
		return domain.CartItem{}, false, err
	}
	return toDomain(rec), true, nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, itemID string, quantity int) (domain.CartItem, bool, error) {
	var (
		rec   cartItemRecord
		found bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&cartItemRecord{}).Where("id = ?", itemID).Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now().UTC(),
		})
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		found = true
		return tx.First(&rec, "id = ?", itemID).Error
	})
	if err != nil || !found {
		return domain.CartItem{}, false, err
	}
	return toDomain(rec), true, nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, itemID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&cartItemRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CartRepo) ClearSession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&cartItemRecord{}).Error
}

func (r *CartRepo) ListItems(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	var rows []cartItemRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CartItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func toDomain(rec cartItemRecord) domain.CartItem {
	return domain.CartItem{
		ID:        rec.ID,
		SessionID: rec.SessionID,
		ProductID: rec.ProductID,
		Quantity:  rec.Quantity,
	}
}
