// Package di provides dependency injection container
package di

import (
	"github.com/jonboulle/clockwork"

	"github.com/ssargent/caresave/pkg/api" //nolint:depguard
)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	clock         clockwork.Clock
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
		clock:         clockwork.NewRealClock(),
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// GetClock returns the clock used to stamp profiles and saves
func (c *Container) GetClock() clockwork.Clock {
	return c.clock
}

// SetClock allows overriding the clock (for testing)
func (c *Container) SetClock(clock clockwork.Clock) {
	c.clock = clock
}
