package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("product already exists")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// CreateProduct validates in, fills defaults and stores the product. It backs
// catalog seeding only; products are read-only over the API.
func (s *Service) CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	brand := strings.TrimSpace(in.Brand)

	switch {
	case name == "":
		return domain.Product{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case category == "":
		return domain.Product{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	case brand == "":
		return domain.Product{}, fmt.Errorf("%w: brand is required", ErrInvalidInput)
	case in.Price.IsNegative():
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case in.OriginalPrice != nil && in.OriginalPrice.IsNegative():
		return domain.Product{}, fmt.Errorf("%w: original price must not be negative", ErrInvalidInput)
	case in.StockLevel != "" && !in.StockLevel.Valid():
		return domain.Product{}, fmt.Errorf("%w: unknown stock level %q", ErrInvalidInput, in.StockLevel)
	}

	p := domain.Product{
		ID:             strings.TrimSpace(in.ID),
		Name:           name,
		Description:    in.Description,
		Price:          in.Price.Round(2),
		Category:       category,
		Brand:          brand,
		Image:          in.Image,
		Storage:        in.Storage,
		Color:          in.Color,
		InStock:        true,
		StockLevel:     domain.StockInStock,
		Rating:         decimal.Zero,
		Features:       in.Features,
		Specifications: in.Specifications,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if in.OriginalPrice != nil {
		op := in.OriginalPrice.Round(2)
		p.OriginalPrice = &op
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.StockLevel != "" {
		p.StockLevel = in.StockLevel
	}
	if in.Rating != nil {
		p.Rating = in.Rating.Round(1)
	}
	if in.ReviewCount != nil {
		if *in.ReviewCount < 0 {
			return domain.Product{}, fmt.Errorf("%w: review count must not be negative", ErrInvalidInput)
		}
		p.ReviewCount = *in.ReviewCount
	}
	if p.Features == nil {
		p.Features = []string{}
	}

	return s.repo.Create(ctx, p.Clone())
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	p, ok, err := s.FindProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

// FindProduct is GetProduct for callers that treat absence as a normal outcome.
func (s *Service) FindProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, false, nil
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// ListByCategory matches the category exactly. An unknown category yields an empty list.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.Browse(ctx, domain.Filter{Category: category})
}

// Browse filters the catalog and applies a stable sort; featured keeps insertion order.
func (s *Service) Browse(ctx context.Context, f domain.Filter) ([]domain.Product, error) {
	order, ok := domain.ParseSortOrder(string(f.Sort))
	if !ok {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, f.Sort)
	}
	for _, r := range f.PriceRanges {
		if _, ok := domain.ParsePriceRange(string(r)); !ok {
			return nil, fmt.Errorf("%w: unknown price range %q", ErrInvalidInput, r)
		}
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if f.Match(p) {
			out = append(out, p)
		}
	}

	switch order {
	case domain.SortPriceLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case domain.SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case domain.SortNewest:
		// Collator is not safe for concurrent use.
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b domain.Product) int { return col.CompareString(b.Name, a.Name) })
	case domain.SortBestSelling:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.ReviewCount - a.ReviewCount })
	}
	return out, nil
}

func (s *Service) Facets(ctx context.Context) (domain.Facets, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return domain.Facets{}, err
	}

	f := domain.Facets{Brands: []string{}, Storages: []string{}}
	for _, p := range all {
		if !slices.Contains(f.Brands, p.Brand) {
			f.Brands = append(f.Brands, p.Brand)
		}
		if p.Storage != nil && !slices.Contains(f.Storages, *p.Storage) {
			f.Storages = append(f.Storages, *p.Storage)
		}
	}
	return f, nil
}
