// Command dltally-api serves the reconciled daily summary over HTTP
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dltally/internal/platform/config"
	"dltally/internal/platform/logger"
	phttp "dltally/internal/platform/net/http"
	"dltally/internal/platform/net/middleware"
	"dltally/internal/platform/store"

	"dltally/internal/services/api"

	"github.com/go-chi/chi/v5"
)

const service = "dltally-api"

func main() {
	root := config.New()
	apiCfg := root.Prefix("DLT_API_")

	var (
		fAddr     = flag.String("addr", apiCfg.MayString("ADDR", ":4000"), "listen address")
		fSwagger  = flag.Bool("swagger", apiCfg.MayBool("SWAGGER", true), "serve /api/docs")
		fProfiler = flag.Bool("profiler", apiCfg.MayBool("PROFILER", false), "serve pprof under /debug")
	)
	flag.Parse()

	l := logger.Named(service)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(service), store.WithLogger(*logger.Get()))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	srv := phttp.NewServer(*fAddr, func(m *chi.Mux) {
		m.Use(middleware.Defaults(apiCfg.MayDuration("TIMEOUT", 15*time.Second))...)
		m.Use(middleware.AccessLog(middleware.AccessLogOptions{Slow: apiCfg.MayDuration("SLOW", time.Second)}))
		if origins := apiCfg.MayCSV("CORS_ORIGINS", nil); len(origins) > 0 {
			m.Use(middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins, MaxAge: 300}))
		}
	})

	api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		ServiceName:    service,
		EnableSwagger:  *fSwagger,
		EnableProfiler: *fProfiler,
	})

	l.Info().Str("addr", srv.Addr()).Msg("listening")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
