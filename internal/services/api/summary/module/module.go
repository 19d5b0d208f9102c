// Package module wires the summary read API using modkit
package module

import (
	"dltally/internal/modkit"
	"dltally/internal/modkit/httpkit"
	sumhttp "dltally/internal/services/api/summary/http"
	sumrepo "dltally/internal/services/api/summary/repo"
	sumsvc "dltally/internal/services/api/summary/service"
)

// New builds the summary module, mounted at /summary unless overridden.
// deps.PG is required.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("summary"), modkit.WithPrefix("/summary")}, opts...)...)
	svc := sumsvc.New(deps.PG, sumrepo.NewPG(), FromConfig(deps.Cfg).MaxWindowDays)

	return b.Module(func(r httpkit.Router) { sumhttp.Register(r, svc) })
}
