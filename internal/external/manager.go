package external

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/etkecc/go-kit"
	"github.com/rs/zerolog"
)

// Provider verifies an email with an external service
type Provider interface {
	ID() string
	Verify(ctx context.Context, email string) *Outcome
}

// Factory creates a provider
type Factory func() Provider

// Manager resolves providers by driver name
type Manager struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

type builtin struct {
	request RequestBuilder
	mapper  Mapper
}

var builtins = map[string]builtin{
	"abstract":               {apiKeyRequest, mapAbstract},
	"bouncer":                {apiKeyRequest, mapBouncer},
	"emailable":              {apiKeyRequest, mapEmailable},
	"kickbox":                {kickboxRequest, mapKickbox},
	"neverbounce":            {neverBounceRequest, mapNeverBounce},
	"quickemailverification": {quickEmailVerificationRequest, mapQuickEmailVerification},
	"verifiedemail":          {verifiedEmailRequest, mapVerifiedEmail},
	"zerobounce":             {zeroBounceRequest, mapZeroBounce},
}

// NewManager creates a manager with built-in drivers and the null driver registered.
// creds are provider credentials keyed by driver name
func NewManager(creds map[string]Credentials, client *Client, log *zerolog.Logger) *Manager {
	m := &Manager{factories: make(map[string]Factory, len(builtins)+1)}
	m.Register(NullID, func() Provider { return Null{} })
	for id, b := range builtins {
		m.Register(id, func() Provider {
			return NewDriver(id, creds[id], client, b.request, b.mapper, log)
		})
	}

	return m
}

// Register a driver factory, replacing existing one with the same name
func (m *Manager) Register(name string, factory Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.factories[strings.ToLower(name)] = factory
}

// Driver resolves provider by name, empty name resolves to the null driver
func (m *Manager) Driver(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = NullID
	}

	m.mu.RLock()
	factory, ok := m.factories[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}

	return factory(), nil
}

// Drivers returns sorted list of registered driver names
func (m *Manager) Drivers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return kit.MapKeys(m.factories)
}
