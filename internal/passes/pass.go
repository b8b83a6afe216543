// Package passes defines the module pass interface and the registry
// the pass manager builds pipelines from.
package passes

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Dobios/circt/internal/diag"
	"github.com/Dobios/circt/internal/fir"
)

// Pass is one transformation or verification step over a single
// module. Run is handed a mutable module for the duration of the call
// and must not retain it. Implementations are single-threaded; the
// pass manager owns any parallelism across modules.
type Pass interface {
	Name() string
	Run(ctx context.Context, m *fir.Module, r diag.Reporter) error
}

// Factory produces a fresh pass instance. The pass manager calls it
// once per pipeline build so passes may keep per-run state in fields.
type Factory func() Pass

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a factory under a pass name. Registering the same name
// twice is a programmer error and panics.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("passes: duplicate registration of %q", name))
	}
	registry[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names returns all registered pass names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
