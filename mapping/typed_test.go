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

package mapping_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/mapx/apis"
	"dirpx.dev/mapx/field"
	"dirpx.dev/mapx/mapping"
)

// The typed builder satisfies the untyped contract the registry stores.
var _ apis.Mapping = mapping.New[account, accountView]()

func TestTyped_Chaining(t *testing.T) {
	m := mapping.New[account, accountView]()
	require.Same(t, m, m.Field(func(v *accountView) any { return &v.Name }))
	require.Same(t, m, m.Ignore(func(v *accountView) any { return &v.Email }))
	require.NoError(t, m.Err())
}

func TestTyped_LastWriteWins(t *testing.T) {
	m := mapping.New[account, accountView]().
		FieldFunc(func(v *accountView) any { return &v.Name }, func(a *account) any { return "first" }).
		FieldFunc(func(v *accountView) any { return &v.Name }, func(a *account) any { return "second" })
	require.NoError(t, m.Err())

	var dst accountView
	require.NoError(t, m.Execute(&account{}, &dst))
	require.Equal(t, "second", dst.Name)
}

func TestTyped_ExplicitOverrideBeatsDefault(t *testing.T) {
	m := mapping.New[account, accountView]().
		Field(func(v *accountView) any { return &v.Email }).
		FieldFunc(func(v *accountView) any { return &v.Email }, func(a *account) any {
			return strings.ToLower(a.Email)
		})
	require.NoError(t, m.Err())

	src := account{Email: "Ada@Example.COM"}
	var dst accountView
	require.NoError(t, m.Execute(&src, &dst))
	require.Equal(t, "ada@example.com", dst.Email)
}

func TestTyped_IgnoreThenRedeclare(t *testing.T) {
	m := mapping.New[account, accountView]().
		FieldFunc(func(v *accountView) any { return &v.Name }, func(a *account) any { return "custom" }).
		Ignore(func(v *accountView) any { return &v.Name }).
		Field(func(v *accountView) any { return &v.Name })
	require.NoError(t, m.Err())

	// Re-adding after ignore creates a fresh default entry, not the old
	// custom translation.
	src := account{Name: "ada"}
	var dst accountView
	require.NoError(t, m.Execute(&src, &dst))
	require.Equal(t, "ada", dst.Name)
}

func TestTyped_InvalidSelectorFailsAtConfigurationTime(t *testing.T) {
	m := mapping.New[account, accountView]().
		FieldFunc(func(v *accountView) any {
			s := v.Name + v.Email
			return &s
		}, func(a *account) any { return "never" })
	require.ErrorIs(t, m.Err(), field.ErrInvalidFieldReference)

	// The sticky error also surfaces at execution.
	require.ErrorIs(t, m.Execute(&account{}, &accountView{}), field.ErrInvalidFieldReference)

	// Later directives are no-ops once the builder failed.
	m.Field(func(v *accountView) any { return &v.Name })
	require.Empty(t, m.Fields())
}

func TestTyped_NonStructPair(t *testing.T) {
	m := mapping.New[int, accountView]()
	require.ErrorIs(t, m.Err(), mapping.ErrNotStructPair)
	require.ErrorIs(t, m.Execute(0, &accountView{}), mapping.ErrNotStructPair)
}

func TestTyped_NilTranslation(t *testing.T) {
	m := mapping.New[account, accountView]().
		FieldFunc(func(v *accountView) any { return &v.Name }, nil)
	require.ErrorIs(t, m.Err(), mapping.ErrNilTranslation)
}

func TestTyped_IndependentPairsShareNoState(t *testing.T) {
	m1 := mapping.New[account, accountView]().
		Field(func(v *accountView) any { return &v.Name })
	m2 := mapping.New[accountView, account]().
		Field(func(a *account) any { return &a.Email })
	require.NoError(t, m1.Err())
	require.NoError(t, m2.Err())

	require.Equal(t, []string{"Name"}, m1.Fields())
	require.Equal(t, []string{"Email"}, m2.Fields())

	m1.Ignore(func(v *accountView) any { return &v.Name })
	require.Empty(t, m1.Fields())
	require.Equal(t, []string{"Email"}, m2.Fields())
}
