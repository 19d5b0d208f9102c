package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "dltally/internal/platform/errors"
	pnet "dltally/internal/platform/net"
)

// Envelope wraps every API body. Exactly one of Data or Error is set.
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON encodes v with the given status. Encode errors mean the client
// went away, so they are dropped.
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers produce. A Body that is an error
// is rendered as an error envelope and picks its own status.
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error is a response whose status comes from err's code
func Error(err error) Response { return Response{Body: err} }

// Handle turns a return-style handler into a net/http one
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		for k, vs := range resp.Header {
			w.Header()[k] = append(w.Header()[k], vs...)
		}
		env := resp.envelope()
		env.RequestID = pnet.RequestID(r.Context())
		JSON(w, env.StatusCode, env)
	}
}

func (resp Response) envelope() Envelope {
	if err, ok := resp.Body.(error); ok && err != nil {
		status, wire := perr.HTTP(err)
		return Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			Code:       wire.Code,
			Error:      wire.Message,
			Field:      wire.Field,
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	return Envelope{StatusCode: status, Status: stdhttp.StatusText(status), Data: resp.Body}
}
