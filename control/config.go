// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and hot-reload
// propagation, backing api.Control.SetConfig for this module's own
// keys (currently just "metrics.enabled", set by facade.Service.Start).

package control

import (
	"fmt"
	"sync"

	"github.com/momentics/eventqueue/api"
)

// boolKeys lists config keys this module expects to hold a bool,
// checked by SetConfig so a caller's typo surfaces immediately instead
// of silently storing a value GetConfig callers won't type-assert
// correctly later.
var boolKeys = map[string]bool{
	"metrics.enabled": true,
}

// ConfigStore is a dynamic key/value map with atomic snapshot and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func()
}

// NewConfigStore initializes a new config store with empty data.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{
		config:    make(map[string]any),
		listeners: make([]func(), 0),
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	copy := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		copy[k] = v
	}
	return copy
}

// SetConfig merges new values and dispatches reload if needed. A value
// supplied for a key in boolKeys that isn't a bool is rejected with
// api.ErrInvalidArgument and the whole update is refused, rather than
// partially applied.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) error {
	for k, v := range newCfg {
		if boolKeys[k] {
			if _, ok := v.(bool); !ok {
				return fmt.Errorf("%w: config key %q must be bool, got %T", api.ErrInvalidArgument, k, v)
			}
		}
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range newCfg {
		cs.config[k] = v
	}
	cs.dispatchReload()
	return nil
}

// OnReload registers a listener hook called on config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}

// dispatchReload invokes all listeners.
func (cs *ConfigStore) dispatchReload() {
	for _, fn := range cs.listeners {
		go fn()
	}
}
