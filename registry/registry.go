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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/mapx/apis"
	"dirpx.dev/mapx/config"
	uref "dirpx.dev/mapx/utils/reflect"
)

var (
	// ErrNilMapping is returned when a nil mapping is provided.
	ErrNilMapping = errors.New("mapx(registry): nil mapping provided")
	// ErrConfigurationNotFound indicates that no mapping is registered for
	// the requested (source, target) type pair.
	ErrConfigurationNotFound = errors.New("mapx(registry): no mapping for type pair")
)

// New constructs a Registry that normalizes lookup types according to cfg.
// Only MaxUnwrap is used here (AllowConvert is irrelevant for lookups).
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// pair keys one (source, target) association. reflect.Type values are
// comparable, so the pair works as a map key.
type pair struct {
	src, dst reflect.Type
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration used for type normalization.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps pair to apis.Mapping.
	m sync.Map // map[pair]apis.Mapping
	// count tracks the number of registered pairs.
	count int
}

// Register stores m under its (SourceType, TargetType) pair. Registering a
// pair again replaces the previous mapping: a pair resolves to exactly one
// configuration and the last registration wins.
func (r *registry) Register(m apis.Mapping) error {
	if m == nil {
		return ErrNilMapping
	}

	src, err := uref.Base(m.SourceType(), r.cfg)
	if err != nil {
		return err
	}
	dst, err := uref.Base(m.TargetType(), r.cfg)
	if err != nil {
		return err
	}

	k := pair{src: src, dst: dst}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, existed := r.m.Load(k); !existed {
		r.count++
	}
	r.m.Store(k, m)
	return nil
}

// Lookup resolves the mapping for a (source, target) pair. Both types are
// normalized to their base struct type before the lookup. Resolution is
// strictly by pair: any miss, including non-struct lookup types, surfaces
// ErrConfigurationNotFound with the pair for diagnosis.
func (r *registry) Lookup(src, dst reflect.Type) (apis.Mapping, error) {
	bs, err := uref.Base(src, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v -> %v", ErrConfigurationNotFound, src, dst)
	}
	bd, err := uref.Base(dst, r.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v -> %v", ErrConfigurationNotFound, src, dst)
	}

	if v, ok := r.m.Load(pair{src: bs, dst: bd}); ok {
		return v.(apis.Mapping), nil
	}
	return nil, fmt.Errorf("%w: %v -> %v", ErrConfigurationNotFound, bs, bd)
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		k := key.(pair)
		entries = append(entries, apis.Entry{
			Source:  k.src,
			Target:  k.dst,
			Mapping: value.(apis.Mapping),
		})
		return true
	})
	return entries
}

// Count returns the number of registered pairs.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered pairs.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
