// Package di provides dependency injection infrastructure for the auctiond process.
package di

import (
	"errors"
	"sync"
)

// Container is the dependency injection container.
// It manages service registration and resolution.
type Container struct {
	mu       sync.RWMutex
	services map[string]interface{}
	builders map[string]Builder
	building map[string]*build
	closers  []Closer
}

// build is one in-flight builder run that concurrent Gets wait on.
type build struct {
	done    chan struct{}
	service interface{}
	err     error
}

// Closer releases a built service. Closers run in reverse registration order.
type Closer func() error

// Builder is a function that creates a service instance.
type Builder func(c *Container) (interface{}, error)

// New creates a new dependency injection container.
func New() *Container {
	return &Container{
		services: make(map[string]interface{}),
		builders: make(map[string]Builder),
		building: make(map[string]*build),
	}
}

// Register registers a service instance.
func (c *Container) Register(name string, service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterBuilder registers a builder function for lazy instantiation.
func (c *Container) RegisterBuilder(name string, builder Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = builder
}

// Get retrieves a service by name, building it on first use. Each builder
// runs at most once at a time; concurrent Gets for the same name wait for it.
// Builders run without the lock held so they can resolve other services, but
// a builder must not Get its own name.
func (c *Container) Get(name string) (interface{}, error) {
	c.mu.Lock()
	if service, exists := c.services[name]; exists {
		c.mu.Unlock()
		return service, nil
	}
	if b, inFlight := c.building[name]; inFlight {
		c.mu.Unlock()
		<-b.done
		return b.service, b.err
	}
	builder, hasBuilder := c.builders[name]
	if !hasBuilder {
		c.mu.Unlock()
		return nil, errors.New("service not found: " + name)
	}
	b := &build{done: make(chan struct{})}
	c.building[name] = b
	c.mu.Unlock()

	b.service, b.err = builder(c)

	c.mu.Lock()
	delete(c.building, name)
	if b.err == nil {
		c.services[name] = b.service
	}
	c.mu.Unlock()
	close(b.done)
	return b.service, b.err
}

// OnClose registers fn to run on Close.
func (c *Container) OnClose(fn Closer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, fn)
}

// Close runs the registered closers, newest first, and returns the first
// error.
func (c *Container) Close() error {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// MustGet retrieves a service or panics if not found.
func (c *Container) MustGet(name string) interface{} {
	service, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return service
}

// Has checks if a service is registered.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.services[name]
	if exists {
		return true
	}
	_, exists = c.builders[name]
	return exists
}

// ServiceNames returns all registered service names.
func (c *Container) ServiceNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make(map[string]bool)
	for name := range c.services {
		names[name] = true
	}
	for name := range c.builders {
		names[name] = true
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	return result
}

// Clear removes all services and builders.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services = make(map[string]interface{})
	c.builders = make(map[string]Builder)
}

// Service names constants for type-safe access.
const (
	ServiceConfig   = "config"
	ServiceDatabase = "database"
	ServiceStore    = "store"
	ServiceLedger   = "ledger"
	ServiceJournal  = "journal"
	ServiceEngine   = "engine"
)
