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

package field_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/mapx/config"
	"dirpx.dev/mapx/field"
)

type record struct {
	Name  string
	Count int64
}

func TestAccessor_GetSet(t *testing.T) {
	cfg := config.DefaultConfig()
	f, err := field.ByName(reflect.TypeOf(record{}), "Name")
	require.NoError(t, err)
	acc := f.Accessor()

	r := record{Name: "before"}
	inst := reflect.ValueOf(&r).Elem()

	require.Equal(t, "before", acc.Get(inst).Interface())

	require.NoError(t, acc.Set(inst, reflect.ValueOf("after"), cfg))
	require.Equal(t, "after", r.Name)
}

func TestAccessor_SetConvertible(t *testing.T) {
	f, err := field.ByName(reflect.TypeOf(record{}), "Count")
	require.NoError(t, err)
	acc := f.Accessor()

	var r record
	inst := reflect.ValueOf(&r).Elem()

	// int -> int64 is convertible, not assignable.
	require.NoError(t, acc.Set(inst, reflect.ValueOf(7), config.DefaultConfig()))
	require.Equal(t, int64(7), r.Count)

	err = acc.Set(inst, reflect.ValueOf(9), config.NewConfig(config.WithAllowConvert(false)))
	require.ErrorIs(t, err, field.ErrIncompatibleValue)
	require.Equal(t, int64(7), r.Count)
}

func TestAccessor_SetIncompatible(t *testing.T) {
	cfg := config.DefaultConfig()
	f, err := field.ByName(reflect.TypeOf(record{}), "Name")
	require.NoError(t, err)
	acc := f.Accessor()

	var r record
	inst := reflect.ValueOf(&r).Elem()

	err = acc.Set(inst, reflect.ValueOf([]int{1}), cfg)
	require.ErrorIs(t, err, field.ErrIncompatibleValue)
}

func TestAccessor_SetInvalidWritesZero(t *testing.T) {
	cfg := config.DefaultConfig()
	f, err := field.ByName(reflect.TypeOf(record{}), "Name")
	require.NoError(t, err)
	acc := f.Accessor()

	r := record{Name: "set"}
	inst := reflect.ValueOf(&r).Elem()

	require.NoError(t, acc.Set(inst, reflect.Value{}, cfg))
	require.Equal(t, "", r.Name)
}
