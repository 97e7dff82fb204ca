package controller

import (
	"net/http"

	"github.com/mnehpets/learnspring/endpoint"
)

// Controller is implemented by every type that owns routes.
type Controller interface {
	Register(mux *http.ServeMux, processors ...endpoint.Processor)
}

// Mount registers each controller on mux with the shared processors.
func Mount(mux *http.ServeMux, controllers []Controller, processors ...endpoint.Processor) {
	for _, c := range controllers {
		c.Register(mux, processors...)
	}
}

var _ Controller = (*HelloWorldController)(nil)
