// Package endpoint is the small HTTP framework the learnspring controllers are
// built on.
//
// A request passes through three phases:
//
//  1. Process: zero or more Processors run in order. They may inspect or wrap
//     the request and response writer, or short-circuit by returning an error.
//  2. Endpoint: the EndpointFunc receives params decoded from the request
//     (see Unmarshal) and returns a Renderer. It never writes the response
//     itself.
//  3. Render: the Renderer writes status, headers and body.
//
// Routing is left to http.ServeMux; controllers register EndpointHandlers on
// a mux explicitly.
package endpoint

import (
	"errors"
	"net/http"
)

// EndpointError is a client-visible error that maps directly to an HTTP status code.
type EndpointError struct {
	Status int
	// Message is a short, human-readable description suitable for an HTTP error body.
	Message string
	Cause   error
}

func (e *EndpointError) Error() string {
	if e == nil {
		return "endpoint: error: <nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
		if msg == "" {
			msg = "unknown error"
		}
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *EndpointError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Error creates a new EndpointError. If err already is (or wraps) an
// EndpointError, err is returned unchanged.
func Error(status int, message string, err error) error {
	var ee *EndpointError
	if errors.As(err, &ee) {
		return err
	}
	return &EndpointError{Status: status, Message: message, Cause: err}
}

// Renderer writes a response into an http.ResponseWriter.
//
// Renderers MUST call w.WriteHeader. A non-nil error means the response could
// not be written; if nothing was written yet the handler answers 500.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(w http.ResponseWriter, r *http.Request) error

func (f RendererFunc) Render(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// NextFunc continues a processor chain.
type NextFunc func(w http.ResponseWriter, r *http.Request) error

// Processor is middleware-style logic that runs before the Renderer.
//
// Processors MUST call next unless they intend to short-circuit the request,
// and MUST NOT write the response body themselves. If a processor returns a
// non-nil error the chain stops and the error becomes the response.
type Processor interface {
	Process(w http.ResponseWriter, r *http.Request, next NextFunc) error
}

// ProcessorFunc adapts a function to a Processor.
type ProcessorFunc func(w http.ResponseWriter, r *http.Request, next NextFunc) error

func (f ProcessorFunc) Process(w http.ResponseWriter, r *http.Request, next NextFunc) error {
	return f(w, r, next)
}

// EndpointFunc holds the business logic of a route.
//
// params is populated from the request by Unmarshal before the call; use
// struct{} for routes without parameters.
type EndpointFunc[P any] func(w http.ResponseWriter, r *http.Request, params P) (Renderer, error)

// EndpointHandler is the http.Handler wrapper for an EndpointFunc.
type EndpointHandler[P any] struct {
	Endpoint   EndpointFunc[P]
	Processors []Processor
}

// Handler constructs an EndpointHandler.
//
// This helper exists to enable type inference for the params type P.
func Handler[P any](fn EndpointFunc[P], processors ...Processor) *EndpointHandler[P] {
	return &EndpointHandler[P]{
		Endpoint:   fn,
		Processors: processors,
	}
}

// HandleFunc adapts an EndpointFunc into an http.HandlerFunc.
func HandleFunc[P any](fn EndpointFunc[P], processors ...Processor) http.HandlerFunc {
	return Handler(fn, processors...).ServeHTTP
}

// ServeHTTP implements http.Handler.
func (h *EndpointHandler[P]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Endpoint == nil {
		http.Error(w, "endpoint: nil EndpointFunc", http.StatusInternalServerError)
		return
	}

	var run func(i int, w2 http.ResponseWriter, r2 *http.Request) error
	run = func(i int, w2 http.ResponseWriter, r2 *http.Request) error {
		if i < len(h.Processors) {
			if h.Processors[i] == nil {
				return errors.New("endpoint: nil processor")
			}
			return h.Processors[i].Process(w2, r2, func(w3 http.ResponseWriter, r3 *http.Request) error {
				return run(i+1, w3, r3)
			})
		}

		var params P
		if err := Unmarshal(r2, &params); err != nil {
			return err
		}
		renderer, err := h.Endpoint(w2, r2, params)
		if err != nil {
			return err
		}
		if renderer == nil {
			return errors.New("endpoint: nil renderer")
		}
		return renderer.Render(w2, r2)
	}

	if err := run(0, w, r); err != nil {
		WriteError(w, err)
	}
}

// WriteError writes err as a plain-text HTTP error response. EndpointErrors
// keep their status and message; any other error becomes a 500 carrying the
// error text.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	var ee *EndpointError
	if errors.As(err, &ee) && ee != nil {
		if ee.Status >= 100 {
			status = ee.Status
		}
		message = ee.Message
		if message == "" {
			message = http.StatusText(status)
		}
	}
	http.Error(w, message, status)
}
