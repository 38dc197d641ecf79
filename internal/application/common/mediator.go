package common

import (
	"context"
	"fmt"
	"reflect"
)

// Request is a coordinator command or query. Handlers receive the concrete
// pointer type they registered for.
type Request interface{}

// Response is whatever a handler returns for its request
type Response interface{}

// RequestHandler executes one request type end to end
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// Mediator routes each request to the single handler registered for its
// concrete type. The CLI and the daemon loop talk to the application layer
// only through Send.
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
}

type mediator struct {
	handlers map[reflect.Type]RequestHandler
}

// NewMediator creates an empty mediator. Registration happens at startup,
// before any Send; the map is not guarded for concurrent registration.
func NewMediator() Mediator {
	return &mediator{
		handlers: make(map[reflect.Type]RequestHandler),
	}
}

// Register binds a handler to one request type. A second registration for
// the same type is a wiring mistake and is rejected.
func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("cannot register a handler without a request type")
	}

	if handler == nil {
		return fmt.Errorf("cannot register a nil handler for %s", requestType)
	}

	if _, exists := m.handlers[requestType]; exists {
		return fmt.Errorf("duplicate handler registration for %s", requestType)
	}

	m.handlers[requestType] = handler
	return nil
}

// Send routes the request to its handler and returns the handler's result
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("cannot dispatch a nil request")
	}

	requestType := reflect.TypeOf(request)
	handler, ok := m.handlers[requestType]

	if !ok {
		return nil, fmt.Errorf("no handler wired for %s", requestType)
	}

	return handler.Handle(ctx, request)
}

// RegisterHandler registers a handler with the request type inferred from T.
// T is the pointer type the callers will Send, e.g. *RegisterNeedCommand.
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	requestType := reflect.TypeOf(zero)
	return m.Register(requestType, handler)
}
