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

package mapx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/mapx"
	"dirpx.dev/mapx/apis"
	"dirpx.dev/mapx/config"
	"dirpx.dev/mapx/mapping"
	"dirpx.dev/mapx/registry"
)

type user struct {
	Name  string
	Email string
	Admin bool
}

type userView struct {
	Name  string
	Email string
}

// reset restores a clean deterministic global snapshot.
func reset(tb testing.TB) {
	tb.Helper()
	mapx.SetAll(nil, nil)
}

func newUserMapping(tb testing.TB) *mapping.Mapping[user, userView] {
	tb.Helper()
	m := mapping.New[user, userView]().
		Field(func(v *userView) any { return &v.Name }).
		Field(func(v *userView) any { return &v.Email })
	require.NoError(tb, m.Err())
	return m
}

func TestApply(t *testing.T) {
	reset(t)
	require.NoError(t, mapx.Register(newUserMapping(t)))

	src := user{Name: "ada", Email: "ada@example.com", Admin: true}
	var dst userView
	require.NoError(t, mapx.Apply(&src, &dst))
	require.Equal(t, userView{Name: "ada", Email: "ada@example.com"}, dst)
}

func TestApply_UnknownPair(t *testing.T) {
	reset(t)

	var dst userView
	err := mapx.Apply(&user{}, &dst)
	require.ErrorIs(t, err, registry.ErrConfigurationNotFound)
}

func TestApplyWith_OverrideMutatesSharedConfiguration(t *testing.T) {
	reset(t)
	require.NoError(t, mapx.Register(newUserMapping(t)))

	src := user{Name: "ada", Email: "Ada@Example.COM"}
	var dst userView
	err := mapx.ApplyWith(&src, &dst, func(m apis.Mapping) error {
		return m.OverrideField("Email", func(s any) any {
			return strings.ToLower(s.(*user).Email)
		})
	})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", dst.Email)

	// Overrides are not call-scoped: the shared configuration keeps the
	// directive for subsequent plain calls.
	var again userView
	require.NoError(t, mapx.Apply(&src, &again))
	require.Equal(t, "ada@example.com", again.Email)
}

func TestApplyWith_OverrideErrorPropagates(t *testing.T) {
	reset(t)
	require.NoError(t, mapx.Register(newUserMapping(t)))

	var dst userView
	err := mapx.ApplyWith(&user{}, &dst, func(m apis.Mapping) error {
		return m.IgnoreField("Nope")
	})
	require.Error(t, err)
}

func TestApplyIn_IsolatedRegistry(t *testing.T) {
	reset(t)

	reg := registry.New(config.DefaultConfig())
	require.NoError(t, reg.Register(newUserMapping(t)))

	src := user{Name: "ada"}
	var dst userView
	require.NoError(t, mapx.ApplyIn(reg, &src, &dst))
	require.Equal(t, "ada", dst.Name)

	// The global registry stays empty.
	require.Equal(t, 0, mapx.Registry().Count())
}

func TestApplyInWith_IgnorePerRegistry(t *testing.T) {
	reset(t)

	reg := registry.New(config.DefaultConfig())
	require.NoError(t, reg.Register(newUserMapping(t)))

	src := user{Name: "ada", Email: "ada@example.com"}
	dst := userView{Email: "kept"}
	err := mapx.ApplyInWith(reg, &src, &dst, func(m apis.Mapping) error {
		return m.IgnoreField("Email")
	})
	require.NoError(t, err)
	require.Equal(t, "ada", dst.Name)
	require.Equal(t, "kept", dst.Email)
}

func TestSetConfig_MigratesEntries(t *testing.T) {
	reset(t)
	require.NoError(t, mapx.Register(newUserMapping(t)))

	mapx.SetConfig(config.NewConfig(config.WithMaxUnwrap(4)))
	require.Equal(t, 4, mapx.Config().MaxUnwrap)
	require.Equal(t, 1, mapx.Registry().Count())

	src := user{Name: "ada"}
	var dst userView
	require.NoError(t, mapx.Apply(&src, &dst))
	require.Equal(t, "ada", dst.Name)
}

func TestSetRegistry_Pins(t *testing.T) {
	reset(t)

	custom := registry.New(config.DefaultConfig())
	mapx.SetRegistry(custom)
	require.True(t, mapx.IsRegistryPinned())

	// A pinned registry survives reconfiguration.
	mapx.SetConfig(config.NewConfig(config.WithMaxUnwrap(2)))
	require.Same(t, custom, mapx.Registry())

	// Unpinning makes SetConfig rebuild again.
	mapx.UnpinRegistry()
	mapx.SetConfig(config.DefaultConfig())
	require.NotSame(t, custom, mapx.Registry())
}

func TestSetRegistry_NilIsNoop(t *testing.T) {
	reset(t)
	before := mapx.Registry()
	mapx.SetRegistry(nil)
	require.Same(t, before, mapx.Registry())
}

func TestSetAll(t *testing.T) {
	reset(t)

	custom := registry.New(config.DefaultConfig())
	cfg := config.NewConfig(config.WithAllowConvert(false))
	mapx.SetAll(&cfg, custom)
	require.False(t, mapx.Config().AllowConvert)
	require.Same(t, custom, mapx.Registry())
	require.True(t, mapx.IsRegistryPinned())

	mapx.SetAll(nil, nil)
	require.False(t, mapx.Config().AllowConvert) // nil cfg keeps the current one
	require.NotSame(t, custom, mapx.Registry())
	require.False(t, mapx.IsRegistryPinned())
}
