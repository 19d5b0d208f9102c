// Package api composes the read-only HTTP surface over daily summaries
package api

//go:generate swag init --v3.1 -g api.go -d ./,./summary/http,./meta/http,../../core/version -o ./docs --ot go --instanceName api

import (
	"dltally/internal/modkit"
	"dltally/internal/modkit/swaggerkit"
	"dltally/internal/platform/config"
	"dltally/internal/platform/logger"
	phttp "dltally/internal/platform/net/http"
	"dltally/internal/platform/store"

	metahttp "dltally/internal/services/api/meta/http"
	metamod "dltally/internal/services/api/meta/module"
	summod "dltally/internal/services/api/summary/module"
)

// @title         dltally API
// @version       1.0
// @description   Read only access to the reconciled daily download summaries
// @BasePath      /v1

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	ServiceName    string
	EnableSwagger  bool
	EnableProfiler bool
}

// versioned modules share Deps and mount under /v1
var versioned = []modkit.Builder{
	summod.New,
}

// Mount mounts the API onto r; opt.Store must be set for the /v1 routes
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log: *logger.Named("api"),
		Cfg: opt.Config,
	}
	var guard metahttp.Guard
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		guard = opt.Store
	}
	name := opt.ServiceName
	if name == "" {
		name = "dltally-api"
	}

	metamod.New(name, guard).MountRoutes(r)
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	mods := make([]modkit.Module, 0, len(versioned))
	for _, b := range versioned {
		mods = append(mods, b(deps))
	}
	r.Route("/v1", func(v1 phttp.Router) {
		modkit.MountAll(v1, mods...)
	})
}
