/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapx

import (
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/mapx/apis"
	"dirpx.dev/mapx/config"
	"dirpx.dev/mapx/registry"
)

// init publishes the initial snapshot with a default registry.
func init() {
	cfg := config.DefaultConfig()
	st.Store(&state{cfg: cfg, reg: registry.New(cfg)})
}

// Apply copies the configured fields from src onto dst using the mapping
// registered for their type pair in the global registry.
func Apply(src, dst any) error {
	return ApplyIn(Registry(), src, dst)
}

// ApplyWith is Apply with a per-call override. The override runs against
// the shared configuration instance owned by the registry before execution;
// its mutations are not scoped to this call.
func ApplyWith(src, dst any, ov apis.Override) error {
	return ApplyInWith(Registry(), src, dst, ov)
}

// ApplyIn is Apply against an explicit registry. Tests and embedders that
// need isolation construct their own registry instead of sharing the
// global one.
func ApplyIn(reg apis.Registry, src, dst any) error {
	return ApplyInWith(reg, src, dst, nil)
}

// ApplyInWith resolves the mapping for (type-of-src, type-of-dst) in reg,
// runs the override if one is given, and executes the mapping on the
// instance pair.
func ApplyInWith(reg apis.Registry, src, dst any, ov apis.Override) error {
	m, err := reg.Lookup(reflect.TypeOf(src), reflect.TypeOf(dst))
	if err != nil {
		return err
	}
	if ov != nil {
		if err := ov(m); err != nil {
			return err
		}
	}
	return m.Execute(src, dst)
}

// Register stores m in the global registry.
// This is a convenience wrapper around the global reg.
func Register(m apis.Mapping) error {
	return st.Load().reg.Register(m)
}

// Registry returns the global mapx reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global mapx reg to reg and pins it: SetConfig will
// not rebuild a pinned registry until UnpinRegistry is called.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			reg:  reg,
			preg: true,
		},
	)
}

// Config returns the global mapx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global mapx configuration to cfg.
// Unless the registry is pinned, a new registry is built for cfg and the
// existing entries are migrated into it.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build a new reg for the new cfg unless pinned.
	nreg := old.reg
	if !old.preg {
		nreg = rebuild(cfg, old.reg)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			reg:  nreg,
			preg: old.preg,
		},
	)
}

// IsRegistryPinned returns whether the global mapx reg is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// UnpinRegistry makes the global mapx reg rebuildable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			reg:  old.reg,
			preg: false,
		},
	)
}

// SetAll explicitly sets all global mapx state components.
//
// A nil cfg keeps the current configuration. A nil reg builds a fresh,
// unpinned registry for the resulting configuration; a non-nil reg is
// installed and pinned. This is mainly used by tests to get a clean
// deterministic state between test cases.
func SetAll(cfg *apis.Config, reg apis.Registry) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Registry
	nreg := reg
	npreg := true
	if nreg == nil {
		nreg = registry.New(ncfg)
		npreg = false
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			reg:  nreg,
			preg: npreg,
		},
	)
}

// rebuild constructs a registry for cfg and migrates entries from prev.
func rebuild(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, e := range prev.Entries() {
			_ = nreg.Register(e.Mapping)
		}
	}
	return nreg
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global mapx state.
var st atomic.Pointer[state]

// state is the global mapx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global mapx configuration.
	cfg apis.Config
	// reg is the global mapx reg.
	reg apis.Registry
	// preg indicates whether the reg is pinned (not rebuilt by SetConfig).
	preg bool
}
