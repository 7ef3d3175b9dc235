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

package apis

import "reflect"

// Accessor is the get/set capability for one resolved field. A Mapping
// builds one Accessor per declared field at configuration time so that
// execution never repeats reflective member lookups.
type Accessor interface {
	// Get reads the field from a struct instance.
	Get(instance reflect.Value) reflect.Value

	// Set writes value into the field on a settable struct instance.
	// The write boundary is enforced here: assignable values are stored
	// as-is, convertible values are converted when cfg.AllowConvert is set.
	Set(instance reflect.Value, value reflect.Value, cfg Config) error
}
