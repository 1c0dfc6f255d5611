// Package app wires the storefront together: seed data, in-memory stores,
// domain services, the HTTP server, and graceful shutdown.
package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/snapmen/storefront/internal/cart"
	"github.com/snapmen/storefront/internal/domain/order"
	"github.com/snapmen/storefront/internal/handler"
	"github.com/snapmen/storefront/internal/memstore"
	"github.com/snapmen/storefront/internal/seed"
	"github.com/snapmen/storefront/pkg/health"
	"github.com/snapmen/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, _ *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	data, err := seed.Load()
	if err != nil {
		return errors.Wrap(err, "load seed data")
	}

	// In-memory stores seeded with the embedded catalog.
	products := memstore.NewProductStore(data.Products)
	categories := memstore.NewCategoryStore(data.Categories)
	coupons := memstore.NewCouponStore(data.Coupons)
	addresses := memstore.NewAddressStore(data.Addresses)
	orderStore := memstore.NewOrderStore()
	storeConfig := memstore.NewConfigStore(data.Config)
	feed := memstore.NewNotificationStore(data.Notifications)

	if cfg.PromoPath != "" {
		if err := loadPromoSnapshot(ctx, cfg.PromoPath, coupons); err != nil {
			return errors.Wrap(err, "load promo snapshot")
		}
	}

	// The single shopper session and its services.
	session := cart.NewSession()
	wishlist := cart.NewWishlist()
	orderService := order.NewService(
		session, order.NewBuilder(), products, addresses, orderStore, storeConfig,
	)

	healthSvc := health.New()
	healthSvc.AddCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.SetReady(true)

	h := handler.NewHandler(
		handler.Config{AdminKey: cfg.AdminKey},
		products, categories, coupons,
		orderService, session, wishlist,
		addresses, storeConfig, feed,
	)

	mux := http.NewServeMux()
	mux.Handle("/livez", healthSvc.LivenessHandler())
	mux.Handle("/readyz", healthSvc.ReadinessHandler())
	mux.Handle("/api/", h.Routes())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				AllowHeaders: []string{"Content-Type", "X-Admin-Key"},
				MaxAge:       86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Logging(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// loadPromoSnapshot merges promo-ingest output into the coupon store.
// Admin-curated codes keep priority over imported ones.
func loadPromoSnapshot(ctx context.Context, path string, coupons *memstore.CouponStore) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open snapshot")
	}
	defer f.Close()

	imported, err := seed.DecodePromoCoupons(f)
	if err != nil {
		return errors.Wrap(err, "decode snapshot")
	}

	added := coupons.Import(ctx, imported)
	zctx.From(ctx).Info("promo snapshot loaded",
		zap.String("path", path),
		zap.Int("total", len(imported)),
		zap.Int("added", added),
	)
	return nil
}
