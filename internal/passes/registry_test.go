package passes

import (
	"slices"
	"testing"
)

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	names := Names()
	for _, want := range []string{"check-connects", "drop-nodes", "foo-wires"} {
		if !slices.Contains(names, want) {
			t.Errorf("pass %q missing from registry: %v", want, names)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
}

func TestRegistry_UnknownLookup(t *testing.T) {
	if _, ok := Lookup("no-such-pass"); ok {
		t.Error("Lookup returned a factory for an unregistered name")
	}
}

func TestRegistry_FactoryReturnsFreshInstances(t *testing.T) {
	factory, ok := Lookup("foo-wires")
	if !ok {
		t.Fatal("foo-wires not registered")
	}
	a, b := factory(), factory()
	if a == b {
		t.Error("factory returned the same instance twice")
	}
	if a.Name() != "foo-wires" {
		t.Errorf("Name() = %q, want foo-wires", a.Name())
	}
}
