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

package mapping

import (
	"fmt"
	"reflect"

	"dirpx.dev/mapx/config"
	"dirpx.dev/mapx/field"
)

// Mapping is the typed, chainable builder over one (S, T) configuration.
//
// Directives record the first configuration error instead of returning it,
// so calls can chain; Err and Execute surface it. The embedded core is the
// shared apis.Mapping instance that the registry owns and per-call
// overrides mutate.
type Mapping[S, T any] struct {
	*core
}

// New constructs an empty mapping configuration for the (S, T) pair.
// Both S and T must be struct types; violations surface via Err.
func New[S, T any](opts ...config.Option) *Mapping[S, T] {
	cfg := config.NewConfig(opts...)
	src := reflect.TypeOf((*S)(nil)).Elem()
	dst := reflect.TypeOf((*T)(nil)).Elem()

	c := &core{src: src, dst: dst, cfg: cfg, entries: make(map[string]entry)}
	if src.Kind() != reflect.Struct || dst.Kind() != reflect.Struct {
		c.err = fmt.Errorf("%w: %s -> %s", ErrNotStructPair, src, dst)
	}
	return &Mapping[S, T]{core: c}
}

// Field declares ref with the default translation: copy the same-named
// source field. Declaring an already-declared field leaves its current
// translation untouched.
func (m *Mapping[S, T]) Field(ref field.Ref[T]) *Mapping[S, T] {
	if m.err != nil {
		return m
	}
	f, err := field.ByRef(ref)
	if err != nil {
		m.err = err
		return m
	}
	if err := m.declare(f); err != nil {
		m.err = err
	}
	return m
}

// FieldFunc declares ref with fn as its translation, replacing any prior
// translation for the field. An explicit translation always wins.
func (m *Mapping[S, T]) FieldFunc(ref field.Ref[T], fn func(*S) any) *Mapping[S, T] {
	if m.err != nil {
		return m
	}
	f, err := field.ByRef(ref)
	if err != nil {
		m.err = err
		return m
	}
	if fn == nil {
		m.err = fmt.Errorf("%w: field %q (%s -> %s)", ErrNilTranslation, f.Name, m.src, m.dst)
		return m
	}
	m.override(f, func(srcPtr reflect.Value) reflect.Value {
		return erase(fn(srcPtr.Interface().(*S)))
	})
	return m
}

// Ignore removes ref's entry. Ignoring an undeclared field is a no-op.
func (m *Mapping[S, T]) Ignore(ref field.Ref[T]) *Mapping[S, T] {
	if m.err != nil {
		return m
	}
	f, err := field.ByRef(ref)
	if err != nil {
		m.err = err
		return m
	}
	m.ignore(f)
	return m
}

// Err reports the first configuration error recorded by the builder, if any.
func (m *Mapping[S, T]) Err() error {
	return m.err
}
