package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cartapp "github.com/dwikikusuma/techhub-store/internal/cart/app"
	cartadapter "github.com/dwikikusuma/techhub-store/internal/cart/infra/adapter"
	catalogapp "github.com/dwikikusuma/techhub-store/internal/catalog/app"
	"github.com/dwikikusuma/techhub-store/internal/catalog/infra/seed"
	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/techhub-store/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/techhub-store/internal/checkout/infra/payment"
	"github.com/dwikikusuma/techhub-store/internal/httpapi"
	orderapp "github.com/dwikikusuma/techhub-store/internal/order/app"
	"github.com/dwikikusuma/techhub-store/pkg/config"
	"github.com/dwikikusuma/techhub-store/pkg/logger"
	"github.com/dwikikusuma/techhub-store/pkg/shutdown"
	"github.com/dwikikusuma/techhub-store/pkg/telemetry"
)

const serviceName = "storefront"

var version = "dev"

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   serviceName,
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("storefront stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	log.Info("bye")
}

func run(cfg config.Config, log *zap.Logger) (err error) {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Resources acquired before the servers start; released if startup fails.
	var acquired shutdown.Stack
	defer acquired.Unwind(&err, cfg.ShutdownTimeout)

	shutdownTracing, err := telemetry.Init(ctx, log, telemetry.Config{
		Enabled:     cfg.OTelEnabled,
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		Version:     version,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    cfg.OTelInsecure,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	acquired.Push(shutdown.Hook(shutdownTracing))

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("stores: %w", err)
	}
	acquired.Push(st.close)

	// Catalog
	catalogSvc := catalogapp.NewService(st.products)
	created, err := seed.LoadFile(ctx, catalogSvc, cfg.CatalogSeedFile)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Info("catalog seeded", zap.Int("created", created), zap.String("backend", cfg.StoreBackend))

	// Cart
	cartSvc := cartapp.NewService(st.cart, cartadapter.NewCatalogChecker(catalogSvc))

	// Orders
	orderSvc := orderapp.NewService(st.orders)

	// Checkout (adapters)
	checkoutSvc := checkoutapp.NewService(checkoutapp.Deps{
		Cart:          checkoutadapter.NewCartServiceReader(cartSvc),
		Catalog:       catalogSvc,
		Orders:        checkoutadapter.NewOrderServicePlacer(orderSvc),
		Payments:      payment.NewSimulator(cfg.PaymentDelay),
		Logger:        log.Named("checkout"),
		MaxConcurrent: cfg.SummaryMaxConcurrent,
	})

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(httpapi.RouterConfig{
		ServiceName: serviceName,
		Logger:      log.Named("http"),
		CORSOrigins: cfg.CORSAllowedOrigins,
		Catalog:     catalogSvc,
		Cart:        cartSvc,
		Checkout:    checkoutSvc,
		Orders:      orderSvc,
		Ready:       st.ready,
	})
	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := httpapi.NewServer(httpAddr, router)

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", grpcAddr, err)
	}
	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	release := acquired.Release()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", zap.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthSrv.Shutdown()

		if err := shutdown.Graceful(cfg.ShutdownTimeout, httpServer.Shutdown, stopGRPC(grpcServer, log)); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
		return shutdown.Graceful(cfg.ShutdownTimeout, release...)
	})

	return g.Wait()
}

func stopGRPC(s *grpc.Server, log *zap.Logger) shutdown.Hook {
	return func(ctx context.Context) error {
		stopped := make(chan struct{})
		go func() {
			s.GracefulStop()
			close(stopped)
		}()

		select {
		case <-ctx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			s.Stop()
			return ctx.Err()
		case <-stopped:
			return nil
		}
	}
}
