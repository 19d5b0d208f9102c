// Package swaggerkit serves the API's OpenAPI document and the Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "dltally/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	docsRoot = "/api/docs"
	specPath = docsRoot + "/doc.json"
)

// Mount serves the UI at /api/docs/ and the decorated spec at
// /api/docs/doc.json. Nothing is mounted when enabled is false.
func Mount(r phttp.Router, enabled bool, mutators ...SpecMutator) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(specPath),
		httpSwagger.DocExpansion("list"),
	)

	r.Get(docsRoot, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsRoot+"/", http.StatusPermanentRedirect)
	})
	r.Get(specPath, serveDocJSON(mutators...))
	r.Handle(docsRoot+"/*", ui)
}
