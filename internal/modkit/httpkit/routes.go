package httpkit

import (
	"net/http"
	"strings"
)

// MountUnder registers mount's routes below prefix with mw applied to them
// only. An empty or "/" prefix mounts at the router root inside a group.
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	with := func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	}
	if strings.Trim(prefix, "/") == "" {
		r.Group(with)
		return
	}
	r.Route(prefix, with)
}
