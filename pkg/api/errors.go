package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hirewatch/hirewatch/pkg/whttp"
)

// Kind buckets every gateway failure into one of the categories the UI
// layer knows how to phrase. Classification is total: anything that fits
// nothing else lands in KindUnknown.
type Kind string

const (
	KindBadRequest         Kind = "bad_request"
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindServerError        Kind = "server_error"
	KindNetworkTimeout     Kind = "network_timeout"
	KindNetworkUnreachable Kind = "network_unreachable"
	KindUnknown            Kind = "unknown"
)

var kindPhrases = map[Kind]string{
	KindBadRequest:         "invalid request",
	KindUnauthorized:       "authentication required",
	KindForbidden:          "access denied",
	KindNotFound:           "not found",
	KindServerError:        "backend error",
	KindNetworkTimeout:     "request timed out",
	KindNetworkUnreachable: "backend unreachable",
	KindUnknown:            "unexpected response",
}

// Error is the classified form of any gateway failure.
type Error struct {
	Kind   Kind
	Status int    // HTTP status, 0 when no response arrived
	Op     string // e.g. "offers.update"
	Detail string // backend-provided detail, when present
	Err    error  // underlying transport error, when present
}

func (e *Error) Error() string {
	msg := kindPhrases[e.Kind]
	if msg == "" {
		msg = kindPhrases[KindUnknown]
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	switch {
	case e.Detail != "":
		msg += ": " + e.Detail
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	case e.Status != 0:
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind extracts the classification from any error chain. Errors that
// did not come from the gateway report KindUnknown.
func ErrorKind(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err classifies as the given kind.
func IsKind(err error, kind Kind) bool {
	return ErrorKind(err) == kind
}

// statusKinds maps response statuses 1:1 onto kinds. 422 is FastAPI's
// validation failure and counts as a bad request.
var statusKinds = map[int]Kind{
	http.StatusBadRequest:          KindBadRequest,
	http.StatusUnprocessableEntity: KindBadRequest,
	http.StatusUnauthorized:        KindUnauthorized,
	http.StatusForbidden:           KindForbidden,
	http.StatusNotFound:            KindNotFound,
}

func classifyStatus(status int) Kind {
	if kind, ok := statusKinds[status]; ok {
		return kind
	}
	if status >= 500 {
		return KindServerError
	}
	return KindUnknown
}

// classifyResponse turns a non-2xx response into an *Error, salvaging the
// most readable detail available: the JSON detail field (plain string or
// FastAPI validation array), then the HTML title, then a body snippet.
func classifyResponse(op string, res *whttp.WHTTPRes) *Error {
	detail := ""
	if d := gjson.Get(res.BodyString, "detail"); d.Exists() {
		if d.IsArray() {
			detail = gjson.Get(res.BodyString, "detail.0.msg").String()
		} else {
			detail = d.String()
		}
	}
	if detail == "" {
		detail = res.HTTPTitle
	}
	if detail == "" {
		detail = bodySnippet(res.BodyString)
	}

	return &Error{
		Kind:   classifyStatus(res.StatusCode),
		Status: res.StatusCode,
		Op:     op,
		Detail: detail,
	}
}

// classifyTransport turns a failed round trip (no response at all) into an
// *Error, separating timeouts from unreachable backends.
func classifyTransport(op string, err error) *Error {
	kind := KindNetworkUnreachable

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = KindNetworkTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindNetworkTimeout
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

func bodySnippet(body string) string {
	s := strings.TrimSpace(body)
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
