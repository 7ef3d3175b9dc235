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

// Package mapx copies compatible field values from one struct instance
// (the "source") onto another (the "target") under an explicit per-pair
// configuration that can override, translate, or suppress individual
// fields.
//
// mapx is for callers who need to project data between two otherwise
// unrelated record shapes — domain model to view model, wire DTO to
// storage row — without hand-writing copy code for every pair, and
// without giving up control over what gets copied. Nothing is mapped by
// convention: every participating target field is declared explicitly.
//
// # Design
//
// The core of mapx is the mapping configuration: for one (source, target)
// struct type pair it holds a set of field directives, each binding one
// target field to a translation function that produces its value from a
// source instance.
//
//   - field: resolves a field reference into a stable field identity plus
//     a get/set capability. References are either typed selectors
//     (field.ByRef(func(u *User) any { return &u.Email })) checked by the
//     compiler, or plain names (field.ByName) for the dynamic override
//     surface. Anything that is not a direct, exported field of the
//     target struct is rejected at configuration time with
//     ErrInvalidFieldReference — never at execution time.
//
//   - mapping: the configuration aggregate and its executor. The typed
//     builder chains:
//
//     m := mapping.New[User, UserView]().
//     Field(func(v *UserView) any { return &v.Name }).
//     FieldFunc(func(v *UserView) any { return &v.Email },
//     func(u *User) any { return strings.ToLower(u.Email) }).
//     Ignore(func(v *UserView) any { return &v.Internal })
//
//     Declaring a field without a function installs the default
//     translation: read the same-named source field. Declaring a field
//     again with a function replaces its translation (last write wins);
//     ignoring deletes the entry. Execute applies every entry to one
//     concrete instance pair.
//
//   - registry: a process-wide store resolving a (source, target) type
//     pair to the single configuration for that pair. Lookup is strictly
//     by pair; a miss is ErrConfigurationNotFound, never a near match.
//
// The root package ties these together behind the caller-facing entry
// points:
//
//	err := mapx.Apply(&user, &view)
//	err := mapx.ApplyWith(&user, &view, func(m apis.Mapping) error {
//	        return m.IgnoreField("Email")
//	})
//
// ApplyWith hands the override the shared configuration instance owned by
// the registry. Overrides are not call-scoped: a directive applied in an
// override stays applied for every later call on the same pair. Callers
// that need per-call variation should configure separate registries.
//
// # Execution model
//
// Execute is a bounded, in-memory loop over the configuration's entries;
// no I/O, no suspension, no cancellation. Entry order is unspecified.
// Each entry invokes its translation with a pointer to the source and
// writes the result through the field's capability. Failures surface as
// wrapped sentinel errors carrying the field name and type pair:
//
//   - mapping.ErrTranslationFailure: a translation panicked. The panic is
//     recovered, the remaining entries are skipped, and fields already
//     processed stay written — there is no rollback, so a failed target
//     must be treated as invalid.
//   - field.ErrIncompatibleValue: a produced value does not fit its
//     target field at the write boundary.
//
// # Global API
//
// The package holds an atomic pointer to an immutable state snapshot
// (configuration + registry), exactly one per process. Readers load the
// pointer and never lock:
//
//	mapx.Register(m)
//	err := mapx.Apply(&src, &dst)
//
// Writers (SetConfig, SetRegistry, SetAll) take a short build mutex,
// assemble a brand-new snapshot, and publish it atomically. SetConfig
// rebuilds the registry for the new configuration and migrates its
// entries, unless the registry was pinned via SetRegistry. SetAll is the
// hard-reset API used by tests for deterministic state.
//
// # Concurrency model
//
// Registry reads and writes are safe for concurrent use. A mapping
// configuration itself defines no locking discipline: executing a pair
// while another goroutine mutates the same configuration (directly or via
// an override) is undefined behavior unless the caller synchronizes
// access externally.
//
// # Scope
//
// mapx is intentionally small. It is not a deep-object-graph cloner, not
// a collection mapper, and not a validation framework; it carries no
// schema versioning and no convention-based implicit mapping. It solves
// one job:
//
//	"Copy the declared, non-ignored fields of one struct onto another,
//	 the way the pair's configuration says to."
package mapx
