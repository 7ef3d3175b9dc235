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
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrInvalidFieldReference is returned when a field reference does not
	// resolve to a direct, exported field of the owning struct type.
	ErrInvalidFieldReference = errors.New("mapx(field): invalid field reference")
	// ErrIncompatibleValue is returned when a value cannot be stored into
	// the field it targets.
	ErrIncompatibleValue = errors.New("mapx(field): incompatible value for field")
)

// Field identifies one exported, top-level field of a struct type.
// The (Owner, Name) pair is the stable identity used as the mapping key.
type Field struct {
	// Owner is the struct type declaring the field.
	Owner reflect.Type
	// Name is the field's name. Unique per owner.
	Name string
	// Index is the field's top-level index in Owner.
	Index int
	// Type is the field's declared type.
	Type reflect.Type
}

// cacheKey memoizes resolution per (owner, name).
type cacheKey struct {
	owner reflect.Type
	name  string
}

// fieldCache caches successful resolutions. Resolution is a pure function
// of its inputs, so entries never invalidate.
var fieldCache sync.Map // key: cacheKey, val: Field

// ByName resolves name to a direct exported field of owner.
func ByName(owner reflect.Type, name string) (Field, error) {
	if owner == nil || owner.Kind() != reflect.Struct {
		return Field{}, fmt.Errorf("%w: owner %v is not a struct type", ErrInvalidFieldReference, owner)
	}

	key := cacheKey{owner: owner, name: name}
	if v, ok := fieldCache.Load(key); ok {
		return v.(Field), nil
	}

	sf, ok := owner.FieldByName(name)
	if !ok {
		return Field{}, fmt.Errorf("%w: %s has no field %q", ErrInvalidFieldReference, owner, name)
	}
	if sf.PkgPath != "" {
		return Field{}, fmt.Errorf("%w: %s.%s is unexported", ErrInvalidFieldReference, owner, name)
	}
	if len(sf.Index) != 1 {
		return Field{}, fmt.Errorf("%w: %s.%s is promoted from an embedded struct", ErrInvalidFieldReference, owner, name)
	}

	f := Field{Owner: owner, Name: name, Index: sf.Index[0], Type: sf.Type}
	fieldCache.Store(key, f)
	return f, nil
}

// Ref names one field of T by returning its address:
//
//	field.ByRef(func(u *User) any { return &u.Email })
//
// Anything other than the address of a direct field of the given *T is
// rejected at resolution time.
type Ref[T any] func(*T) any

// ByRef resolves a typed selector to the field it addresses.
//
// The selector runs against a probe instance; the pointer it returns pins
// the field by offset and element type. Method results, computed values,
// pointers to locals, and pointers into nested structs all fail with
// ErrInvalidFieldReference.
func ByRef[T any](ref Ref[T]) (Field, error) {
	owner := reflect.TypeOf((*T)(nil)).Elem()
	if owner.Kind() != reflect.Struct {
		return Field{}, fmt.Errorf("%w: %v is not a struct type", ErrInvalidFieldReference, owner)
	}
	if ref == nil {
		return Field{}, fmt.Errorf("%w: nil selector for %v", ErrInvalidFieldReference, owner)
	}

	probe := reflect.New(owner)
	out := ref(probe.Interface().(*T))
	if out == nil {
		return Field{}, fmt.Errorf("%w: selector for %v returned nil", ErrInvalidFieldReference, owner)
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return Field{}, fmt.Errorf("%w: selector for %v must return the address of a field", ErrInvalidFieldReference, owner)
	}

	base := probe.Pointer()
	addr := rv.Pointer()
	if addr < base || addr >= base+owner.Size() {
		return Field{}, fmt.Errorf("%w: selector for %v returned a pointer outside the instance", ErrInvalidFieldReference, owner)
	}

	off := addr - base
	want := rv.Type().Elem()
	for i := 0; i < owner.NumField(); i++ {
		sf := owner.Field(i)
		if sf.Offset != off || sf.Type != want {
			continue
		}
		if sf.PkgPath != "" {
			return Field{}, fmt.Errorf("%w: %s.%s is unexported", ErrInvalidFieldReference, owner, sf.Name)
		}
		return Field{Owner: owner, Name: sf.Name, Index: i, Type: sf.Type}, nil
	}
	return Field{}, fmt.Errorf("%w: selector for %v does not address a direct field", ErrInvalidFieldReference, owner)
}
