package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/techhub-store/internal/checkout/domain"
	"github.com/dwikikusuma/techhub-store/pkg/logger"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentDeclined = errors.New("payment declined")
)

type Deps struct {
	Cart     CartStore
	Catalog  CatalogReader
	Orders   OrderPlacer
	Payments PaymentAuthorizer
	Logger   *zap.Logger

	MaxConcurrent int
}

type Service struct {
	Cart     CartStore
	Catalog  CatalogReader
	Orders   OrderPlacer
	Payments PaymentAuthorizer

	log           *zap.Logger
	tracer        trace.Tracer
	maxConcurrent int
}

func NewService(deps Deps) *Service {
	if deps.MaxConcurrent <= 0 {
		deps.MaxConcurrent = 10
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Service{
		Cart:          deps.Cart,
		Catalog:       deps.Catalog,
		Orders:        deps.Orders,
		Payments:      deps.Payments,
		log:           deps.Logger,
		tracer:        otel.Tracer("github.com/dwikikusuma/techhub-store/internal/checkout"),
		maxConcurrent: deps.MaxConcurrent,
	}
}

// Summarize joins the session's cart items with the catalog and computes the
// totals. Items whose product no longer resolves are dropped without error.
func (s *Service) Summarize(ctx context.Context, sessionID string) (domain.Summary, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Summary{}, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	ctx, span := s.tracer.Start(ctx, "checkout.Summarize")
	defer span.End()

	items, err := s.Cart.ListItems(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list cart items")
		return domain.Summary{}, err
	}

	resolved := make([]*domain.Line, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		g.Go(func() error {
			it := items[idx]
			product, ok, err := s.Catalog.FindProduct(gctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", it.ProductID, err)
			}
			if !ok {
				s.log.Debug("dropping stale cart item",
					zap.String("item_id", it.ID),
					zap.String("product_id", it.ProductID),
					logger.SessionID(sessionID),
				)
				return nil
			}
			resolved[idx] = &domain.Line{
				ItemID:    it.ID,
				SessionID: it.SessionID,
				Quantity:  it.Quantity,
				Product:   product,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve products")
		return domain.Summary{}, err
	}

	lines := make([]domain.Line, 0, len(resolved))
	for _, l := range resolved {
		if l != nil {
			lines = append(lines, *l)
		}
	}

	summary := domain.NewSummary(sessionID, lines)
	span.SetAttributes(
		attribute.Int("cart.lines", len(summary.Lines)),
		attribute.Int("cart.item_count", summary.ItemCount),
		attribute.String("cart.total", summary.Total.StringFixed(2)),
	)
	return summary, nil
}
