package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// IntegrationDefinition describes one optional UI integration the
// bootstrapper can enable: what it is called and the schema its
// configuration must satisfy.
type IntegrationDefinition struct {
	Code        string
	Name        string
	Description string
	Schema      map[string]any
}

// SetupFunc wires an integration into the page: it registers handlers on
// the dispatcher and initializes widget state for matching elements.
type SetupFunc func(ctx context.Context, env *Env, cfg map[string]any) error

// IntegrationHook lets packages register integrations during init().
type IntegrationHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []IntegrationHook
)

// RegisterIntegrationHook registers a hook executed against new registries.
func RegisterIntegrationHook(h IntegrationHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Registry holds the integrations the bootstrapper knows how to enable.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]IntegrationDefinition
	setups      map[string]SetupFunc
}

// NewRegistry builds a registry seeded with the default integrations and
// applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions: map[string]IntegrationDefinition{},
		setups:      map[string]SetupFunc{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *Registry) registerDefaults() {
	for _, def := range DefaultIntegrationDefinitions() {
		_ = r.RegisterDefinition(def)
		if setup, ok := defaultSetups[def.Code]; ok {
			_ = r.RegisterSetup(def.Code, setup)
		}
	}
}

// ApplyHooks executes registered integration hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDefinition stores integration metadata.
func (r *Registry) RegisterDefinition(def IntegrationDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("dashboard: integration code is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// RegisterSetup associates a setup implementation with a definition.
func (r *Registry) RegisterSetup(code string, setup SetupFunc) error {
	if code == "" {
		return fmt.Errorf("dashboard: integration code is required to register setup")
	}
	if setup == nil {
		return fmt.Errorf("dashboard: setup cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("dashboard: integration %s not found", code)
	}
	r.setups[code] = setup
	return nil
}

// Definition fetches an integration definition by code.
func (r *Registry) Definition(code string) (IntegrationDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Setup fetches an integration setup by code.
func (r *Registry) Setup(code string) (SetupFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	setup, ok := r.setups[code]
	return setup, ok
}

// Definitions returns all registered definitions.
func (r *Registry) Definitions() []IntegrationDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]IntegrationDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	return defs
}
