package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"dltally/internal/platform/config"
	perr "dltally/internal/platform/errors"
	"dltally/internal/services/api/docs"
)

// SpecMutator edits the parsed spec before it is served
type SpecMutator func(spec map[string]any)

var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON parses the generated spec on every request, decorates it and
// applies mutators last
func serveDocJSON(mutators ...SpecMutator) http.HandlerFunc {
	suffix := config.New().Prefix("DLT_API_").MayString("DOCS_TITLE_SUFFIX", "")

	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/v1")
		if suffix != "" {
			info := child(spec, "info")
			if title, ok := info["title"].(string); ok {
				info["title"] = title + " " + suffix
			}
		}
		child(child(spec, "components"), "schemas")["ErrorResponse"] = errorSchema
		addDefaultResponse(spec, "400", errorResponse(http.StatusBadRequest, perr.ErrorCodeValidation, "from is a required field", "from"))
		addDefaultResponse(spec, "500", errorResponse(http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered", ""))
		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureServers makes the document one the bundled UI renders: OAS 3.0.3
// with at least one server
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if s, _ := spec["servers"].([]any); len(s) == 0 {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// errorSchema is phttp.Envelope as it looks on a failed request
var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope",
	"required":    []any{"status_code", "status"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
}

func errorResponse(status int, code perr.ErrorCode, msg, field string) map[string]any {
	example := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        code,
		"error":       msg,
		"request_id":  "dltally-api/Xk2Pq9-000042",
	}
	if field != "" {
		example["field"] = field
	}
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}

// addDefaultResponse sets resp under status on each operation that has no
// response for it yet
func addDefaultResponse(spec map[string]any, status string, resp map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for method, op := range ops {
			if method == "servers" || method == "parameters" {
				continue
			}
			if op, ok := op.(map[string]any); ok {
				if responses := child(op, "responses"); responses[status] == nil {
					responses[status] = resp
				}
			}
		}
	}
}
