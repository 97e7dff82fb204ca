// Package controller binds HTTP routes to endpoint functions.
package controller

import (
	"net/http"

	"github.com/mnehpets/learnspring/endpoint"
)

// HelloPattern is the route served by HelloWorldController.
const HelloPattern = "GET /hello"

// HelloWorldController answers GET /hello with a fixed plain-text body.
type HelloWorldController struct{}

// NewHelloWorldController returns a HelloWorldController.
func NewHelloWorldController() *HelloWorldController {
	return &HelloWorldController{}
}

// Hello always renders 200 "hello".
func (c *HelloWorldController) Hello(_ http.ResponseWriter, _ *http.Request, _ struct{}) (endpoint.Renderer, error) {
	return endpoint.Plain("hello"), nil
}

// Register adds the controller's routes to mux, each wrapped with processors.
func (c *HelloWorldController) Register(mux *http.ServeMux, processors ...endpoint.Processor) {
	mux.Handle(HelloPattern, endpoint.Handler(c.Hello, processors...))
}
