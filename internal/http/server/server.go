// Package server arma el handler completo del servicio y corre el
// http.Server con apagado ordenado.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"github.com/jefer15/debt-management-back/internal/cache"
	memcache "github.com/jefer15/debt-management-back/internal/cache/memory"
	rediscache "github.com/jefer15/debt-management-back/internal/cache/redis"
	"github.com/jefer15/debt-management-back/internal/config"
	httpx "github.com/jefer15/debt-management-back/internal/http"
	authctrl "github.com/jefer15/debt-management-back/internal/http/controllers/auth"
	debtctrl "github.com/jefer15/debt-management-back/internal/http/controllers/debt"
	healthctrl "github.com/jefer15/debt-management-back/internal/http/controllers/health"
	"github.com/jefer15/debt-management-back/internal/http/router"
	authsvc "github.com/jefer15/debt-management-back/internal/http/services/auth"
	debtsvc "github.com/jefer15/debt-management-back/internal/http/services/debt"
	jwtx "github.com/jefer15/debt-management-back/internal/jwt"
	"github.com/jefer15/debt-management-back/internal/observability/logger"
	"github.com/jefer15/debt-management-back/internal/rate"
	"github.com/jefer15/debt-management-back/internal/store/pg"
)

// BuildHandler cablea servicios, controllers y middlewares sobre las
// dependencias ya conectadas y devuelve el handler raíz.
func BuildHandler(cfg *config.Config, store *pg.Store) (http.Handler, error) {
	issuer := jwtx.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTTL())

	c := buildCache(cfg)

	registerSvc := authsvc.NewRegisterService(authsvc.RegisterDeps{Users: store.Users})
	loginSvc := authsvc.NewLoginService(authsvc.LoginDeps{Users: store.Users, Issuer: issuer})
	debtService := debtsvc.NewService(debtsvc.Deps{Repo: store.Debts, Cache: c})

	metricsHandler, err := httpx.RegisterMetrics(httpx.MetricsConfig{
		Pool: store.Pool,
	})
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	var limiter rate.Limiter
	if cfg.Rate.Enabled && cfg.Cache.Redis.Addr != "" {
		client := rdb.NewClient(&rdb.Options{Addr: cfg.Cache.Redis.Addr, DB: cfg.Cache.Redis.DB})
		limiter = rate.NewRedisLimiter(client, "rl:login:", cfg.Rate.Login.Limit, cfg.RateLoginWindow())
	}

	handler := router.New(router.Deps{
		Auth:        authctrl.NewController(registerSvc, loginSvc),
		Debt:        debtctrl.NewController(debtService),
		Health:      healthctrl.NewController(store),
		Issuer:      issuer,
		Metrics:     metricsHandler,
		RateLimiter: limiter,
		RateWindow:  cfg.RateLoginWindow(),
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
	}, httpx.WithMetrics)

	return handler, nil
}

// Run levanta el http.Server y bloquea hasta que ctx se cancele,
// drenando conexiones antes de salir.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.L().Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func buildCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.Kind == "redis" {
		return rediscache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
	}
	return memcache.New(cfg.MemoryDefaultTTL())
}
