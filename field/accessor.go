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

package field

import (
	"fmt"
	"reflect"

	"dirpx.dev/mapx/apis"
)

// Accessor returns the get/set capability for f. The capability addresses
// the field by its resolved index, so no member lookup happens per call.
func (f Field) Accessor() apis.Accessor {
	return accessor{f: f}
}

// accessor implements apis.Accessor for a single resolved field.
type accessor struct {
	f Field
}

// Ensure accessor implements apis.Accessor.
var _ apis.Accessor = accessor{}

// Get reads the field from a struct instance.
func (a accessor) Get(instance reflect.Value) reflect.Value {
	return instance.Field(a.f.Index)
}

// Set writes value into the field on a settable struct instance.
// An invalid value (a translation returned nil) writes the zero value.
func (a accessor) Set(instance reflect.Value, value reflect.Value, cfg apis.Config) error {
	fv := instance.Field(a.f.Index)
	if !value.IsValid() {
		fv.Set(reflect.Zero(a.f.Type))
		return nil
	}
	switch {
	case value.Type().AssignableTo(a.f.Type):
		fv.Set(value)
	case cfg.AllowConvert && value.Type().ConvertibleTo(a.f.Type):
		fv.Set(value.Convert(a.f.Type))
	default:
		return fmt.Errorf("%w: cannot store %s into %s.%s (%s)",
			ErrIncompatibleValue, value.Type(), a.f.Owner, a.f.Name, a.f.Type)
	}
	return nil
}
