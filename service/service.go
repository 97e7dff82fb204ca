// Package service holds the business logic of the demo application, kept
// apart from any HTTP concerns.
package service

// WelcomeMessage is the fixed text returned by DemoService.WelcomeMessage.
const WelcomeMessage = "Welcome to this Demo application."

// helloPrefix is prepended verbatim to the user name.
const helloPrefix = "Hello "

// DemoService produces the demo application's messages.
//
// Implementations must be safe for concurrent use.
type DemoService interface {
	// HelloMessage greets user. The name is used as given: no trimming,
	// escaping or validation is applied.
	HelloMessage(user string) string
	// WelcomeMessage returns the application's welcome text.
	WelcomeMessage() string
}

// Demo is the stateless DemoService implementation.
type Demo struct{}

// NewDemoService returns the default DemoService.
func NewDemoService() *Demo {
	return &Demo{}
}

func (*Demo) HelloMessage(user string) string {
	return helloPrefix + user
}

func (*Demo) WelcomeMessage() string {
	return WelcomeMessage
}

var _ DemoService = (*Demo)(nil)
