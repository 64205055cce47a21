package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dwikikusuma/techhub-store/internal/catalog/app"
	"github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

type productRecord struct {
	ID             string              `gorm:"primaryKey;type:varchar(64)"`
	Position       int64               `gorm:"not null;index"`
	Name           string              `gorm:"not null"`
	Description    string              `gorm:"type:text"`
	Price          decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	OriginalPrice  decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Category       string              `gorm:"not null;index"`
	Brand          string              `gorm:"not null"`
	Image          string
	Storage        *string
	Color          *string
	InStock        bool   `gorm:"not null"`
	StockLevel     string `gorm:"type:varchar(16);not null"`
	Rating         decimal.Decimal `gorm:"type:numeric(3,1);not null"`
	ReviewCount    int             `gorm:"not null"`
	Features       datatypes.JSON
	Specifications datatypes.JSON
	CreatedAt      time.Time
}

func (productRecord) TableName() string { return "products" }

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&productRecord{})
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	rec := toRecord(p)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&productRecord{}).Where("id = ?", rec.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %q", app.ErrDuplicate, rec.ID)
		}

		var last struct{ Max int64 }
		if err := tx.Model(&productRecord{}).Select("COALESCE(MAX(position), 0) AS max").Scan(&last).Error; err != nil {
			return err
		}
		rec.Position = last.Max + 1
		return tx.Create(&rec).Error
	})
	if isUniqueViolation(err) {
		return domain.Product{}, fmt.Errorf("%w: %q", app.ErrDuplicate, rec.ID)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return fromRecord(rec), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	var rec productRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, err
	}
	return fromRecord(rec), true, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productRecord
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRecord(row))
	}
	return out, nil
}

func toRecord(p domain.Product) productRecord {
	rec := productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Brand:       p.Brand,
		Image:       p.Image,
		Storage:     p.Storage,
		Color:       p.Color,
		InStock:     p.InStock,
		StockLevel:  string(p.StockLevel),
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
	}
	if p.OriginalPrice != nil {
		rec.OriginalPrice = decimal.NewNullDecimal(*p.OriginalPrice)
	}
	if features, err := json.Marshal(p.Features); err == nil {
		rec.Features = datatypes.JSON(features)
	}
	if len(p.Specifications) > 0 {
		rec.Specifications = datatypes.JSON(p.Specifications)
	}
	return rec
}

func fromRecord(rec productRecord) domain.Product {
	p := domain.Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Price:       rec.Price.Round(2),
		Category:    rec.Category,
		Brand:       rec.Brand,
		Image:       rec.Image,
		Storage:     rec.Storage,
		Color:       rec.Color,
		InStock:     rec.InStock,
		StockLevel:  domain.StockLevel(rec.StockLevel),
		Rating:      rec.Rating,
		ReviewCount: rec.ReviewCount,
	}
	if rec.OriginalPrice.Valid {
		op := rec.OriginalPrice.Decimal.Round(2)
		p.OriginalPrice = &op
	}
	if len(rec.Specifications) > 0 {
		p.Specifications = json.RawMessage(rec.Specifications)
	}
	if len(rec.Features) > 0 {
		_ = json.Unmarshal(rec.Features, &p.Features)
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}

// isUniqueViolation catches the insert race the existence check cannot.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
