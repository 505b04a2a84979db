package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"flex_reviews/internal/adapters/google"
	server "flex_reviews/internal/adapters/http_server"
	hostawayad "flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/adapters/observability"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	"flex_reviews/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// seed the store: live Hostaway when credentials exist, bundled
	// export otherwise
	raws := loadRawReviews(ctx, cfg)
	reviews := app.NormalizeReviews(raws)
	store := memory.New(reviews)
	log.Info().Int("raw", len(raws)).Int("normalized", store.Len()).Msg("review store seeded")

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewReviewService(store, cache, cfg.CacheTTL)

	// http
	srv := server.New(server.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.Mount("/api/google/explore", google.ExploreHandler())
	srv.MountHandlers(&server.Handlers{Svc: svc})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("shutdown complete")
}

// loadRawReviews fetches from the Hostaway API when an API key is
// configured, falling back to the bundled static export on any failure
// or an empty result. The export is the source of truth in dev.
func loadRawReviews(ctx context.Context, cfg shared.Config) []domain.RawReview {
	if cfg.HostawayKey != "" {
		client, err := hostawayad.New(cfg.HostawayBase, cfg.HostawayKey, cfg.HostawayRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Hostaway client")
		}
		fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		raws, err := client.FetchReviews(fetchCtx)
		if err == nil && len(raws) > 0 {
			log.Info().Int("count", len(raws)).Msg("reviews fetched from Hostaway")
			return raws
		}
		log.Warn().Err(err).Int("count", len(raws)).Msg("Hostaway fetch unusable; using bundled export")
	}

	raws, err := hostawayad.SeedReviews(cfg.ReviewsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load bundled review export")
	}
	return raws
}
