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

// TranslateFunc produces the value for one target field from a source
// instance. The source is always handed over as a pointer to the base
// source struct. A nil result writes the zero value of the target field.
type TranslateFunc func(src any) any

// Override mutates a resolved Mapping before execution. Overrides operate
// on the shared configuration instance owned by the registry; they are not
// scoped to a single call.
type Override func(m Mapping) error

// Mapping is the set of active field directives for one (source, target)
// struct type pair: which target fields are written, and how each value is
// produced from the source. Implementations define no internal locking;
// concurrent mutation and execution of the same Mapping requires external
// synchronization.
type Mapping interface {
	// SourceType returns the base source struct type.
	SourceType() reflect.Type

	// TargetType returns the base target struct type.
	TargetType() reflect.Type

	// DeclareField installs the default translation for the named target
	// field (read the same-named source field) unless an entry already
	// exists, in which case the current translation is left untouched.
	DeclareField(name string) error

	// OverrideField installs or replaces the translation for the named
	// target field. An explicit translation always wins.
	OverrideField(name string, fn TranslateFunc) error

	// IgnoreField removes the entry for the named target field.
	// Removing an absent entry is a no-op, not an error.
	IgnoreField(name string) error

	// Fields returns a sorted snapshot of declared field names.
	Fields() []string

	// Execute applies every entry to one (src, dst) instance pair.
	// Entry order is unspecified and must not be relied upon.
	Execute(src, dst any) error
}
