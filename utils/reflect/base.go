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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/mapx/apis"
	"dirpx.dev/mapx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotStruct indicates that the provided type (after unwrapping
	// pointers) is not a struct type.
	ErrReflectNotStruct = errors.New("reflect: type is not a struct")
)

// Base unwraps pointers according to cfg (MaxUnwrap) and returns the
// underlying struct type, or an error if none is reached.
//
// Unwrapping policy:
//   - ptr -> Elem(), up to MaxUnwrap times
//   - anything that is not a struct afterwards -> ErrReflectNotStruct
//
// If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Base(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; i < maxUnwrap && t.Kind() == reflect.Ptr; i++ {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, ErrReflectNotStruct
	}
	return t, nil
}

// BaseOf is a convenience over Base for instance values.
func BaseOf(v any, cfg apis.Config) (reflect.Type, error) {
	if v == nil {
		return nil, ErrReflectNilType
	}
	return Base(reflect.TypeOf(v), cfg)
}
