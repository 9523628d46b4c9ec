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
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/imports"
	"wasish.dev/wasish/pkg/test/wasmtest"
	"wasish.dev/wasish/wasish/config"
)

func TestGuestEnviron(t *testing.T) {
	t.Setenv("TERM", "vt100")
	conf := &config.Config{Env: []string{"A=1"}}
	got := guestEnviron(conf, []string{"COLUMNS=80", "LINES=24"})
	want := []string{"TERM=vt100", "A=1", "COLUMNS=80", "LINES=24"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("guestEnviron mismatch (-want +got):\n%s", diff)
	}

	conf.HostEnv = true
	got = guestEnviron(conf, nil)
	if got[len(got)-1] != "A=1" {
		t.Errorf("configured entries do not come last: %v", got)
	}
}

func probeGuest(extra ...wasmtest.Import) []byte {
	m := &wasmtest.Module{
		Imports:      append([]wasmtest.Import{{Module: "env", Name: "getpid", Results: []wasmtest.ValueType{wasmtest.I32}}}, extra...),
		MemoryPages:  2,
		MemoryExport: "memory",
	}
	c := func(v int32, name string) wasmtest.Func {
		f := wasmtest.Const(v)
		f.Export = wasi.RegionExportPrefix + name
		return f
	}
	m.Funcs = []wasmtest.Func{
		c(0x100, wasi.RegionExportDataPtr),
		c(0x110, wasi.RegionExportStackStart),
		c(0x10110, wasi.RegionExportStackEnd),
	}
	return m.Encode()
}

func TestProbe(t *testing.T) {
	conf := &config.Config{LogFormat: "text", Pty: imports.DefaultPtyLayout}
	var buf bytes.Buffer
	if err := probe(context.Background(), &buf, conf, probeGuest()); err != nil {
		t.Fatalf("probe: %v", err)
	}
	want := "unresolved imports: none\n" +
		"region: data=0x100 stack=[0x110, 0x10110) size=65536\n" +
		"memory: 131072 bytes\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("probe output mismatch (-want +got):\n%s", diff)
	}
}

func TestProbeUnresolved(t *testing.T) {
	conf := &config.Config{LogFormat: "text", Pty: imports.DefaultPtyLayout}
	var buf bytes.Buffer
	err := probe(context.Background(), &buf, conf, probeGuest(wasmtest.Import{Module: "env", Name: "longjmp", Params: []wasmtest.ValueType{wasmtest.I32, wasmtest.I32}}))
	if err == nil {
		t.Fatalf("probe succeeded with an unresolved import")
	}
	if !strings.Contains(buf.String(), "longjmp(i32, i32): not provided") {
		t.Errorf("probe output does not name longjmp:\n%s", buf.String())
	}
}
