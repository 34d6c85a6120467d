// control/control.go
// Author: momentics <momentics@gmail.com>
//
// Wires ConfigStore, MetricsRegistry, and DebugProbes behind the
// single api.Control surface facade.Service exposes to callers.

package control

import (
	"log"

	"github.com/momentics/eventqueue/api"
)

// Runtime composes the package's three independent stores into the
// api.Control contract.
type Runtime struct {
	config  *ConfigStore
	metrics *MetricsRegistry
	debug   *DebugProbes
}

// NewRuntime creates an empty Runtime, logging through logger (or
// log.Default() if nil).
func NewRuntime(logger *log.Logger) *Runtime {
	if logger == nil {
		logger = log.Default()
	}
	r := &Runtime{
		config:  NewConfigStore(),
		metrics: NewMetricsRegistry(),
		debug:   NewDebugProbes(logger),
	}
	RegisterPlatformProbes(r.debug)
	return r
}

func (r *Runtime) GetConfig() map[string]any          { return r.config.GetSnapshot() }
func (r *Runtime) SetConfig(cfg map[string]any) error { return r.config.SetConfig(cfg) }
func (r *Runtime) Stats() map[string]any              { return r.metrics.GetSnapshot() }
func (r *Runtime) OnReload(fn func())                 { r.config.OnReload(fn) }
func (r *Runtime) RegisterDebugProbe(name string, fn func() any) {
	r.debug.RegisterProbe(name, fn)
}

// IncMetric increments a counter exposed through Stats, bypassing the
// read-only api.Control surface for the module's own instrumentation
// (facade.Service uses it for the dispatcher's drop count).
func (r *Runtime) IncMetric(key string, delta int64) { r.metrics.Inc(key, delta) }

// DumpProbes returns the current debug-probe snapshot.
func (r *Runtime) DumpProbes() map[string]any { return r.debug.DumpState() }

var _ api.Control = (*Runtime)(nil)
