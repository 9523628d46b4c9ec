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

package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"wasish.dev/wasish/pkg/imports"
)

func TestCompatibilityInfo(t *testing.T) {
	info := compatibilityInfo(imports.Env, "fd")
	var names []string
	for _, d := range info["env"] {
		names = append(names, d.Name)
	}
	if diff := cmp.Diff([]string{"dup", "dup2", "dup3", "fcntl"}, names); diff != "" {
		t.Errorf("fd group mismatch (-want +got):\n%s", diff)
	}
	want := ImportDoc{
		Name:       "dup",
		Group:      "fd",
		Signature:  "(i32) -> i32",
		Convention: "errno",
		Support:    "Partial Support",
		Note:       imports.Env.Imports["dup"].Note,
	}
	if diff := cmp.Diff(want, info["env"][0]); diff != "" {
		t.Errorf("dup doc mismatch (-want +got):\n%s", diff)
	}
	if got := len(compatibilityInfo(imports.Env, "")["env"]); got != len(imports.Env.Imports) {
		t.Errorf("all groups: %d docs, want %d", got, len(imports.Env.Imports))
	}
}

func TestOutputs(t *testing.T) {
	info := compatibilityInfo(imports.Env, "")

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputJSON(&buf, info); err != nil {
			t.Fatal(err)
		}
		var got CompatibilityInfo
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(info, got); diff != "" {
			t.Errorf("json mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputYAML(&buf, info); err != nil {
			t.Fatal(err)
		}
		var got CompatibilityInfo
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(info, got); diff != "" {
			t.Errorf("yaml mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputCSV(&buf, info); err != nil {
			t.Fatal(err)
		}
		rows, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != len(imports.Env.Imports)+1 {
			t.Fatalf("got %d rows, want %d", len(rows), len(imports.Env.Imports)+1)
		}
		if rows[0][1] != "Name" || rows[1][0] != "env" {
			t.Errorf("unexpected rows: %v, %v", rows[0], rows[1])
		}
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputTable(&buf, info); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"env:", "NAME", "uv_os_getenv", "Full Support", "(i32, i32, i32) -> i32"} {
			if !strings.Contains(out, want) {
				t.Errorf("table output missing %q", want)
			}
		}
	})
}
