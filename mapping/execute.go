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
)

// Execute applies every entry to one (src, dst) instance pair.
//
// Entries are visited in map order, which is unspecified. Every declared,
// non-ignored field is written exactly once; undeclared fields on dst stay
// untouched. A failing entry aborts the remaining writes: fields processed
// before the failure stay written, fields not yet processed stay unwritten.
// There is no rollback; a failed target must be treated as invalid.
func (c *core) Execute(src, dst any) error {
	if c.err != nil {
		return c.err
	}

	srcPtr, err := c.sourcePtr(src)
	if err != nil {
		return err
	}
	dstVal, err := c.targetValue(dst)
	if err != nil {
		return err
	}

	for name, e := range c.entries {
		v, err := c.translate(name, e, srcPtr)
		if err != nil {
			return err
		}
		if err := e.acc.Set(dstVal, v, c.cfg); err != nil {
			return fmt.Errorf("%s -> %s: %w", c.src, c.dst, err)
		}
	}
	return nil
}

// translate invokes the entry's translation, converting a panic into
// ErrTranslationFailure with field and type-pair context.
func (c *core) translate(name string, e entry, srcPtr reflect.Value) (v reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: field %q (%s -> %s): %v",
				ErrTranslationFailure, name, c.src, c.dst, r)
		}
	}()
	return e.translate(srcPtr), nil
}

// sourcePtr normalizes src to a pointer to the base source struct.
// A by-value source is copied so translations always receive a *S.
func (c *core) sourcePtr(src any) (reflect.Value, error) {
	rv := reflect.ValueOf(src)
	if !rv.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: nil source (want %s)", ErrInstanceMismatch, c.src)
	}

	maxUnwrap := c.cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	for i := 0; i < maxUnwrap && rv.Kind() == reflect.Ptr; i++ {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil source (want %s)", ErrInstanceMismatch, c.src)
		}
		if rv.Type().Elem() == c.src {
			return rv, nil
		}
		rv = rv.Elem()
	}
	if rv.Type() != c.src {
		return reflect.Value{}, fmt.Errorf("%w: source %s (want %s)", ErrInstanceMismatch, rv.Type(), c.src)
	}

	p := reflect.New(c.src)
	p.Elem().Set(rv)
	return p, nil
}

// targetValue normalizes dst to the settable base target struct value.
func (c *core) targetValue(dst any) (reflect.Value, error) {
	rv := reflect.ValueOf(dst)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrUnaddressableTarget, c.src, c.dst)
	}

	maxUnwrap := c.cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	for i := 0; i < maxUnwrap && rv.Kind() == reflect.Ptr; i++ {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrUnaddressableTarget, c.src, c.dst)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || rv.Type() != c.dst {
		return reflect.Value{}, fmt.Errorf("%w: target %s (want %s)", ErrInstanceMismatch, reflect.TypeOf(dst), c.dst)
	}
	if !rv.CanSet() {
		return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrUnaddressableTarget, c.src, c.dst)
	}
	return rv, nil
}
