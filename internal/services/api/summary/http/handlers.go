// Package http provides http transport for the daily summary
package http

import (
	stdhttp "net/http"

	"dltally/internal/modkit/httpkit"
	"dltally/internal/services/api/summary/domain"
	svc "dltally/internal/services/api/summary/service"
)

// Register mounts summary endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// daily series in a window
	httpkit.GetQuery[domain.WindowInput](r, "/", h.window)

	// window sum by derivation method
	httpkit.GetQuery[domain.WindowInput](r, "/totals", h.totals)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /summary Summary summaryWindow
// @Summary Net new downloads per day
// @Description Rows are ordered oldest first; days without a row are omitted.
// @Tags Summary
// @Produce json
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {array} domain.Row "ok"
// @Failure 400 {object} httpkit.Envelope "invalid window"
// @Router /summary [get]
func (h *handlers) window(r *stdhttp.Request, in domain.WindowInput) (any, error) {
	return h.svc.Window(r.Context(), in)
}

// swagger:route GET /summary/totals Summary summaryTotals
// @Summary Window total by derivation method
// @Tags Summary
// @Produce json
// @Param from query string true "First day (YYYY-MM-DD)"
// @Param to query string true "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} domain.Totals "ok"
// @Failure 400 {object} httpkit.Envelope "invalid window"
// @Router /summary/totals [get]
func (h *handlers) totals(r *stdhttp.Request, in domain.WindowInput) (any, error) {
	return h.svc.Totals(r.Context(), in)
}
