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
	"errors"
	"fmt"
	"reflect"
	"sort"

	"dirpx.dev/mapx/apis"
	"dirpx.dev/mapx/field"
)

var (
	// ErrTranslationFailure is returned when a translation function panics
	// during execution.
	ErrTranslationFailure = errors.New("mapx(mapping): translation function failed")
	// ErrNoSourceField is returned when a field is declared without a
	// translation and the source type has no usable same-named field.
	ErrNoSourceField = errors.New("mapx(mapping): no matching source field for default translation")
	// ErrNilTranslation is returned when a nil translation function is provided.
	ErrNilTranslation = errors.New("mapx(mapping): nil translation function provided")
	// ErrNotStructPair indicates that a mapping was constructed for
	// non-struct source or target types.
	ErrNotStructPair = errors.New("mapx(mapping): mapping requires struct source and target types")
	// ErrUnaddressableTarget is returned when the target instance is not a
	// settable (non-nil pointer) value.
	ErrUnaddressableTarget = errors.New("mapx(mapping): target instance is not a settable pointer")
	// ErrInstanceMismatch is returned when an instance does not match the
	// configured type pair.
	ErrInstanceMismatch = errors.New("mapx(mapping): instance does not match the configured type pair")
)

// core is the untyped mapping configuration for one (source, target) struct
// type pair. It implements apis.Mapping and is the shared instance the
// registry hands to per-call overrides. Mutation and execution on the same
// core are not synchronized; concurrent use requires external coordination.
type core struct {
	// src is the base source struct type.
	src reflect.Type
	// dst is the base target struct type.
	dst reflect.Type
	// cfg is the configuration the mapping was built with.
	cfg apis.Config
	// err is the first configuration error recorded by the typed builder.
	err error
	// entries maps target field name to its active directive.
	entries map[string]entry
}

// entry binds a resolved target field and its accessor to a translation.
type entry struct {
	field field.Field
	acc   apis.Accessor
	// translate produces the field's value from a *S source pointer.
	// Result types are erased here; the accessor re-checks at the write
	// boundary.
	translate func(srcPtr reflect.Value) reflect.Value
}

// Ensure core implements apis.Mapping.
var _ apis.Mapping = (*core)(nil)

// SourceType returns the base source struct type.
func (c *core) SourceType() reflect.Type { return c.src }

// TargetType returns the base target struct type.
func (c *core) TargetType() reflect.Type { return c.dst }

// DeclareField installs the default translation for name unless an entry
// already exists. Re-declaring without a function is a refresh, not an
// override: the current translation stays untouched.
func (c *core) DeclareField(name string) error {
	f, err := field.ByName(c.dst, name)
	if err != nil {
		return err
	}
	return c.declare(f)
}

// OverrideField installs or replaces the translation for name.
func (c *core) OverrideField(name string, fn apis.TranslateFunc) error {
	f, err := field.ByName(c.dst, name)
	if err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("%w: field %q (%s -> %s)", ErrNilTranslation, name, c.src, c.dst)
	}
	c.override(f, func(srcPtr reflect.Value) reflect.Value {
		return erase(fn(srcPtr.Interface()))
	})
	return nil
}

// IgnoreField removes the entry for name. Removing an absent entry is a no-op.
func (c *core) IgnoreField(name string) error {
	f, err := field.ByName(c.dst, name)
	if err != nil {
		return err
	}
	c.ignore(f)
	return nil
}

// Fields returns the declared field names, sorted for stable diagnostics.
func (c *core) Fields() []string {
	out := make([]string, 0, len(c.entries))
	for name := range c.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// declare installs the default translation for f if no entry exists.
func (c *core) declare(f field.Field) error {
	if _, ok := c.entries[f.Name]; ok {
		return nil
	}
	tr, err := c.defaultTranslation(f)
	if err != nil {
		return err
	}
	c.entries[f.Name] = entry{field: f, acc: f.Accessor(), translate: tr}
	return nil
}

// override installs or replaces f's entry with the given translation.
func (c *core) override(f field.Field, tr func(reflect.Value) reflect.Value) {
	c.entries[f.Name] = entry{field: f, acc: f.Accessor(), translate: tr}
}

// ignore deletes f's entry if present.
func (c *core) ignore(f field.Field) {
	delete(c.entries, f.Name)
}

// defaultTranslation reads the same-named exported source field. The source
// field must fit the target field's write boundary at declare time, so a
// bad default never survives to execution.
func (c *core) defaultTranslation(f field.Field) (func(reflect.Value) reflect.Value, error) {
	sf, err := field.ByName(c.src, f.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no usable field %q (target %s.%s)",
			ErrNoSourceField, c.src, f.Name, c.dst, f.Name)
	}
	if !sf.Type.AssignableTo(f.Type) && !(c.cfg.AllowConvert && sf.Type.ConvertibleTo(f.Type)) {
		return nil, fmt.Errorf("%w: cannot store %s into %s.%s (%s)",
			field.ErrIncompatibleValue, sf.Type, f.Owner, f.Name, f.Type)
	}
	idx := sf.Index
	return func(srcPtr reflect.Value) reflect.Value {
		return srcPtr.Elem().Field(idx)
	}, nil
}

// erase converts a translation result to a reflect.Value, mapping nil to
// the invalid value (the accessor writes the field's zero value for it).
func erase(out any) reflect.Value {
	if out == nil {
		return reflect.Value{}
	}
	return reflect.ValueOf(out)
}
