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

// Registry resolves a (source, target) struct type pair to the single
// Mapping configured for it. The registry exclusively owns all mapping
// instances; executors only borrow a reference for the duration of a call.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register stores m under its (SourceType, TargetType) pair.
	// Registering a pair again replaces the previous mapping.
	Register(m Mapping) error

	// Lookup resolves the mapping for a type pair. Both types are
	// normalized to their base struct type before the lookup. Resolution
	// is strictly by pair: a miss is an error, never a near match.
	Lookup(src, dst reflect.Type) (Mapping, error)

	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry

	// Count returns the number of registered pairs.
	Count() int

	// Reset clears all registered pairs.
	Reset()
}

// Entry is a single (pair, mapping) association in a Registry snapshot.
type Entry struct {
	// Source is the base source struct type.
	Source reflect.Type
	// Target is the base target struct type.
	Target reflect.Type
	// Mapping is the configuration registered for the pair.
	Mapping Mapping
}
