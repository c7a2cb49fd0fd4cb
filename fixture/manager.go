package fixture

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kbukum/testhost/component"
)

// Manager provides lifecycle management for multiple test components.
// It allows starting, stopping, and resetting components together,
// making it easier to manage suites with more than one fixture.
type Manager struct {
	ctx        context.Context
	components []component.Resettable
	mu         sync.RWMutex
}

// NewManager creates a new test component manager.
func NewManager(ctx context.Context) *Manager {
	return &Manager{
		ctx:        ctx,
		components: make([]component.Resettable, 0),
	}
}

// Add registers a test component with the manager.
func (m *Manager) Add(c component.Resettable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, c)
}

// Get retrieves a component by name. Returns nil if not found.
func (m *Manager) Get(name string) component.Resettable {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// StartAll starts all registered components in order.
// If any component fails to start, returns immediately with that error.
func (m *Manager) StartAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.components {
		if err := c.Start(m.ctx); err != nil {
			return fmt.Errorf("failed to start component %s: %w", c.Name(), err)
		}
	}
	return nil
}

// StopAll stops all registered components in reverse order. Even if some
// components fail to stop, continues stopping others and returns a
// combined error with all failures.
func (m *Manager) StopAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var errs []error
	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]
		if err := c.Stop(m.ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop component %s: %w", c.Name(), err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ResetAll resets all registered components to their initial state.
// If any component fails to reset, returns immediately with that error.
func (m *Manager) ResetAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.components {
		if err := c.Reset(m.ctx); err != nil {
			return fmt.Errorf("failed to reset component %s: %w", c.Name(), err)
		}
	}
	return nil
}

// Cleanup is an alias for StopAll, provided for convenience with defer
// or testing.T.Cleanup().
func (m *Manager) Cleanup() error {
	return m.StopAll()
}
