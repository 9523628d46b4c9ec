// Copyright 2026 The wasish Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package imports

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tetratelabs/wazero/api"
)

func TestTableWellFormed(t *testing.T) {
	if Env.Module != "env" {
		t.Errorf("Env.Module = %q, want env", Env.Module)
	}
	for name, imp := range Env.Imports {
		if imp.Name != name {
			t.Errorf("import keyed %q is named %q", name, imp.Name)
		}
		if imp.Fn == nil {
			t.Errorf("%s has no handler", name)
		}
		if imp.Group == "" {
			t.Errorf("%s has no group", name)
		}
		if imp.SupportLevel == SupportUndocumented {
			t.Errorf("%s is undocumented", name)
		}
		if imp.SupportLevel == SupportPartial && imp.Note == "" {
			t.Errorf("%s is partially supported without a note", name)
		}
		if imp.Conv != ConvDirect && len(imp.Results) != 1 {
			t.Errorf("%s uses convention %v but has %d results", name, imp.Conv, len(imp.Results))
		}
	}
}

func TestTableNames(t *testing.T) {
	names := Env.Names()
	if len(names) != len(Env.Imports) {
		t.Fatalf("Names() returned %d names, want %d", len(names), len(Env.Imports))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, want := range []string{"dup", "dup2", "dup3", "fcntl", "uv_os_getenv", "uv_os_setenv", "uv_os_unsetenv", "pty_proc_init", "getaddrinfo", "gettext"} {
		if _, ok := Env.Lookup(want); !ok {
			t.Errorf("Lookup(%q) failed", want)
		}
	}
	if _, ok := Env.Lookup("setjmp"); ok {
		t.Errorf("Lookup(setjmp) succeeded")
	}
}

func TestDuplicateImportPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("newTable with duplicate names did not panic")
		}
	}()
	newTable("m",
		Supported("g", "f", sig(nil), ConvDirect, getpid),
		Supported("g", "f", sig(nil), ConvDirect, getpid),
	)
}

func TestSignature(t *testing.T) {
	for _, tc := range []struct {
		params, results []api.ValueType
		want            string
	}{
		{nil, nil, "()"},
		{n32(2), []api.ValueType{i32}, "(i32, i32) -> i32"},
		{nil, []api.ValueType{i64}, "() -> i64"},
		{n32(1), []api.ValueType{i32, i64}, "(i32) -> (i32, i64)"},
	} {
		if got := signature(tc.params, tc.results); got != tc.want {
			t.Errorf("signature(%v, %v) = %q, want %q", tc.params, tc.results, got, tc.want)
		}
	}
}

func TestStrings(t *testing.T) {
	got := []string{
		ConvDirect.String(), ConvErrno.String(), ConvUV.String(), Convention(9).String(),
		SupportFull.String(), SupportPartial.String(), SupportUnimplemented.String(), SupportUndocumented.String(),
	}
	want := []string{
		"direct", "errno", "uv", "Convention(9)",
		"Full Support", "Partial Support", "Unimplemented", "Undocumented",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}
