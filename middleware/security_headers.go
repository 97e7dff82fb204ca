package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mnehpets/learnspring/endpoint"
)

// Header names set by SecurityHeadersProcessor.
const (
	HeaderContentTypeOptions        = "X-Content-Type-Options"
	HeaderFrameOptions              = "X-Frame-Options"
	HeaderReferrerPolicy            = "Referrer-Policy"
	HeaderContentSecurityPolicy     = "Content-Security-Policy"
	HeaderCrossOriginResourcePolicy = "Cross-Origin-Resource-Policy"
	HeaderStrictTransportSecurity   = "Strict-Transport-Security"
)

// SecurityHeadersProcessor sets a fixed set of response headers before the
// endpoint runs.
//
// The defaults from NewSecurityHeadersProcessor suit plain-text and JSON APIs:
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - Referrer-Policy: no-referrer
//   - Content-Security-Policy: default-src 'none'; frame-ancestors 'none'
//   - Cross-Origin-Resource-Policy: same-origin
//
// HSTS is off by default since the server listens on plain HTTP; enable it
// with WithHSTS when served behind TLS.
type SecurityHeadersProcessor struct {
	headers map[string]string
}

// SecurityHeadersOption configures a SecurityHeadersProcessor.
type SecurityHeadersOption func(*SecurityHeadersProcessor)

// NewSecurityHeadersProcessor returns a processor with API defaults.
func NewSecurityHeadersProcessor(opts ...SecurityHeadersOption) *SecurityHeadersProcessor {
	p := &SecurityHeadersProcessor{
		headers: map[string]string{
			HeaderContentTypeOptions:        "nosniff",
			HeaderFrameOptions:              "DENY",
			HeaderReferrerPolicy:            "no-referrer",
			HeaderContentSecurityPolicy:     "default-src 'none'; frame-ancestors 'none'",
			HeaderCrossOriginResourcePolicy: "same-origin",
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithHeader sets header name to value. An empty value disables the header.
func WithHeader(name, value string) SecurityHeadersOption {
	return func(p *SecurityHeadersProcessor) {
		name = http.CanonicalHeaderKey(name)
		if value == "" {
			delete(p.headers, name)
			return
		}
		p.headers[name] = value
	}
}

// WithHSTS enables Strict-Transport-Security. maxAge is in seconds; a
// non-positive maxAge disables the header.
func WithHSTS(maxAge int, includeSubDomains bool) SecurityHeadersOption {
	return WithHeader(HeaderStrictTransportSecurity, formatHSTS(maxAge, includeSubDomains))
}

// Headers returns a copy of the configured headers.
func (p *SecurityHeadersProcessor) Headers() http.Header {
	h := make(http.Header, len(p.headers))
	for k, v := range p.headers {
		h.Set(k, v)
	}
	return h
}

// Process implements endpoint.Processor.
func (p *SecurityHeadersProcessor) Process(w http.ResponseWriter, r *http.Request, next endpoint.NextFunc) error {
	for k, v := range p.headers {
		w.Header().Set(k, v)
	}
	return next(w, r)
}

func formatHSTS(maxAge int, includeSubDomains bool) string {
	if maxAge <= 0 {
		return ""
	}
	parts := []string{"max-age=" + strconv.Itoa(maxAge)}
	if includeSubDomains {
		parts = append(parts, "includeSubDomains")
	}
	return strings.Join(parts, "; ")
}

var _ endpoint.Processor = (*SecurityHeadersProcessor)(nil)
