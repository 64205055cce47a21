package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

type fakeRepo struct {
	products []domain.Product
	listErr  error
}

func (f *fakeRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeRepo) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]domain.Product, error) {
	return f.products, f.listErr
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func seeded(t *testing.T) *Service {
	t.Helper()
	svc := NewService(&fakeRepo{})
	ctx := context.Background()
	in := []domain.NewProduct{
		{ID: "phone-a", Name: "Alpha Phone", Price: price("1099.00"), Category: "smartphones", Brand: "Apple", Storage: strPtr("256GB"), ReviewCount: intPtr(2847)},
		{ID: "phone-b", Name: "Beta Phone", Price: price("699.00"), Category: "smartphones", Brand: "Google", Storage: strPtr("128GB"), ReviewCount: intPtr(892)},
		{ID: "pad", Name: "Charging Pad", Price: price("49.00"), Category: "accessories", Brand: "TechHub", ReviewCount: intPtr(567)},
		{ID: "phone-c", Name: "Gamma Phone", Price: price("500.00"), Category: "smartphones", Brand: "Apple", Storage: strPtr("128GB")},
	}
	for _, p := range in {
		if _, err := svc.CreateProduct(ctx, p); err != nil {
			t.Fatalf("seed %s: %v", p.ID, err)
		}
	}
	return svc
}

func intPtr(n int) *int { return &n }

func ids(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, domain.NewProduct{Name: "   ", Category: "accessories", Brand: "TechHub"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, domain.NewProduct{Name: "Case", Category: "accessories", Brand: "TechHub", Price: price("-1")})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown stock level -> invalid", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, domain.NewProduct{Name: "Case", Category: "accessories", Brand: "TechHub", StockLevel: "plenty"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCreateProductDefaults(t *testing.T) {
	svc := NewService(&fakeRepo{})

	p, err := svc.CreateProduct(context.Background(), domain.NewProduct{
		Name: "Case", Category: "accessories", Brand: "TechHub", Price: price("29"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if !p.InStock || p.StockLevel != domain.StockInStock {
		t.Fatalf("expected in stock defaults, got %v %q", p.InStock, p.StockLevel)
	}
	if !p.Rating.IsZero() || p.ReviewCount != 0 {
		t.Fatalf("expected zero rating and reviews, got %s %d", p.Rating, p.ReviewCount)
	}
	if p.Features == nil || len(p.Features) != 0 {
		t.Fatalf("expected empty features, got %#v", p.Features)
	}
	if p.Price.StringFixed(2) != "29.00" {
		t.Fatalf("expected 29.00, got %s", p.Price.StringFixed(2))
	}
}

func TestGetProduct(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()

	p, err := svc.GetProduct(ctx, "pad")
	if err != nil || p.Name != "Charging Pad" {
		t.Fatalf("expected pad, got %v %v", p, err)
	}

	if _, err := svc.GetProduct(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, ok, err := svc.FindProduct(ctx, "missing")
	if ok || err != nil {
		t.Fatalf("expected absent without error, got %v %v", ok, err)
	}
}

func TestListByCategory(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()

	got, err := svc.ListByCategory(ctx, "smartphones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"phone-a", "phone-b", "phone-c"}; !equal(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}

	got, err = svc.ListByCategory(ctx, "tablets")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %v %v", ids(got), err)
	}
}

func TestBrowse(t *testing.T) {
	svc := seeded(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{"featured keeps insertion order", domain.Filter{}, []string{"phone-a", "phone-b", "pad", "phone-c"}},
		{"brand", domain.Filter{Brands: []string{"Apple"}}, []string{"phone-a", "phone-c"}},
		{"storage skips products without storage", domain.Filter{Storages: []string{"128GB"}}, []string{"phone-b", "phone-c"}},
		{"price bands are or-ed", domain.Filter{PriceRanges: []domain.PriceRange{domain.PriceUnder200, domain.PriceOver800}}, []string{"phone-a", "pad"}},
		{"500 sits in both inner bands", domain.Filter{PriceRanges: []domain.PriceRange{domain.Price200To500}}, []string{"phone-c"}},
		{"price-low", domain.Filter{Sort: domain.SortPriceLow}, []string{"pad", "phone-c", "phone-b", "phone-a"}},
		{"price-high", domain.Filter{Sort: domain.SortPriceHigh}, []string{"phone-a", "phone-b", "phone-c", "pad"}},
		{"newest is name descending", domain.Filter{Sort: domain.SortNewest}, []string{"phone-c", "pad", "phone-b", "phone-a"}},
		{"best-selling", domain.Filter{Sort: domain.SortBestSelling}, []string{"phone-a", "phone-b", "pad", "phone-c"}},
		{"popular is an alias for best-selling", domain.Filter{Sort: "popular"}, []string{"phone-a", "phone-b", "pad", "phone-c"}},
		{"sort is case-insensitive", domain.Filter{Sort: "Best-Selling"}, []string{"phone-a", "phone-b", "pad", "phone-c"}},
		{"dimensions are and-ed", domain.Filter{Brands: []string{"Apple"}, PriceRanges: []domain.PriceRange{domain.Price500To800}}, []string{"phone-c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Browse(ctx, tc.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equal(ids(got), tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, ids(got))
			}
		})
	}

	t.Run("unknown sort -> invalid", func(t *testing.T) {
		if _, err := svc.Browse(ctx, domain.Filter{Sort: "cheapest"}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestBrowseNewestIgnoresCase(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()
	for _, p := range []domain.NewProduct{
		{ID: "a", Name: "apple case", Price: price("10.00"), Category: "accessories", Brand: "TechHub"},
		{ID: "b", Name: "Banana dock", Price: price("10.00"), Category: "accessories", Brand: "TechHub"},
		{ID: "c", Name: "cherry cable", Price: price("10.00"), Category: "accessories", Brand: "TechHub"},
	} {
		if _, err := svc.CreateProduct(ctx, p); err != nil {
			t.Fatalf("seed %s: %v", p.ID, err)
		}
	}

	got, err := svc.Browse(ctx, domain.Filter{Sort: domain.SortNewest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"c", "b", "a"}; !equal(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestFacets(t *testing.T) {
	svc := seeded(t)

	f, err := svc.Facets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"Apple", "Google", "TechHub"}; !equal(f.Brands, want) {
		t.Fatalf("expected brands %v, got %v", want, f.Brands)
	}
	if want := []string{"256GB", "128GB"}; !equal(f.Storages, want) {
		t.Fatalf("expected storages %v, got %v", want, f.Storages)
	}
}

func TestListErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&fakeRepo{listErr: boom})

	if _, err := svc.Browse(context.Background(), domain.Filter{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
