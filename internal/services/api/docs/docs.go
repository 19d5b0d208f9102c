// Package docs holds the OpenAPI document for the read API.
// Regenerate with `go generate ./internal/services/api` after changing handler annotations.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.BasePath}}"
        }
    ],
    "paths": {
        "/summary": {
            "get": {
                "description": "Rows are ordered oldest first; days without a row are omitted.",
                "tags": ["Summary"],
                "summary": "Net new downloads per day",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "description": "First day (YYYY-MM-DD)", "schema": {"type": "string", "format": "date"}},
                    {"name": "to", "in": "query", "required": true, "description": "Last day, inclusive (YYYY-MM-DD)", "schema": {"type": "string", "format": "date"}}
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Row"}}
                            }
                        }
                    },
                    "400": {
                        "description": "invalid window",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/httpkit.Envelope"}
                            }
                        }
                    }
                }
            }
        },
        "/summary/totals": {
            "get": {
                "tags": ["Summary"],
                "summary": "Window total by derivation method",
                "parameters": [
                    {"name": "from", "in": "query", "required": true, "description": "First day (YYYY-MM-DD)", "schema": {"type": "string", "format": "date"}},
                    {"name": "to", "in": "query", "required": true, "description": "Last day, inclusive (YYYY-MM-DD)", "schema": {"type": "string", "format": "date"}}
                ],
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/domain.Totals"}
                            }
                        }
                    },
                    "400": {
                        "description": "invalid window",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/httpkit.Envelope"}
                            }
                        }
                    }
                }
            }
        },
        "/healthz": {
            "servers": [{"url": "/"}],
            "get": {
                "tags": ["Meta"],
                "summary": "Liveness and store readiness",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.HealthResponse"}}}
                    },
                    "503": {
                        "description": "store unreachable",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.HealthResponse"}}}
                    }
                }
            }
        },
        "/version": {
            "servers": [{"url": "/"}],
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "responses": {
                    "200": {
                        "description": "ok",
                        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/version.BuildInfo"}}}
                    }
                }
            }
        }
    },
    "components": {
        "schemas": {
            "domain.Row": {
                "type": "object",
                "properties": {
                    "day": {"type": "string", "example": "2025-08-01"},
                    "delta": {"type": "integer", "format": "int64", "example": 42},
                    "method": {"type": "string", "enum": ["initial", "observed", "even", "pattern"], "example": "even"},
                    "derived_at": {"type": "string", "format": "date-time", "example": "2025-08-02T03:00:00Z"}
                }
            },
            "domain.MethodTotal": {
                "type": "object",
                "properties": {
                    "method": {"type": "string", "example": "observed"},
                    "days": {"type": "integer", "format": "int64", "example": 28},
                    "delta": {"type": "integer", "format": "int64", "example": 1170}
                }
            },
            "domain.Totals": {
                "type": "object",
                "properties": {
                    "from": {"type": "string", "example": "2025-08-01"},
                    "to": {"type": "string", "example": "2025-08-31"},
                    "days": {"type": "integer", "example": 31},
                    "missing": {"type": "integer", "example": 0},
                    "delta": {"type": "integer", "format": "int64", "example": 1302},
                    "by_method": {"type": "array", "items": {"$ref": "#/components/schemas/domain.MethodTotal"}}
                }
            },
            "http.HealthResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "example": "ok"},
                    "service": {"type": "string", "example": "dltally-api"},
                    "store": {"type": "string", "example": "ok"},
                    "error": {"type": "string"},
                    "started": {"type": "string", "example": "2025-09-03T13:00:00Z"},
                    "uptime": {"type": "integer", "example": 300}
                }
            },
            "version.BuildInfo": {
                "type": "object",
                "properties": {
                    "service": {"type": "string", "example": "dltally-api"},
                    "version": {"type": "string", "example": "v0.3.1"},
                    "commit": {"type": "string", "example": "9f1c2ab"},
                    "date": {"type": "string", "example": "2025-09-02"}
                }
            },
            "httpkit.Envelope": {
                "type": "object",
                "properties": {
                    "status_code": {"type": "integer", "example": 400},
                    "status": {"type": "string", "example": "Bad Request"},
                    "code": {"type": "integer", "example": 6},
                    "error": {"type": "string", "example": "to must be a date formatted as 2006-01-02"},
                    "field": {"type": "string", "example": "to"},
                    "request_id": {"type": "string"},
                    "data": {}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "dltally API",
	Description:      "Daily net download counts reconciled from release asset snapshots.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
