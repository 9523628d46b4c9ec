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
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"wasish.dev/wasish/pkg/abi/wasi/errno"
	"wasish.dev/wasish/pkg/shim/env"
	"wasish.dev/wasish/pkg/test/wasmtest"
)

func guest() *wasmtest.Module {
	I32 := wasmtest.I32
	m := &wasmtest.Module{
		Imports: []wasmtest.Import{
			{Module: "env", Name: "dup", Params: []wasmtest.ValueType{I32}, Results: []wasmtest.ValueType{I32}},
			{Module: "env", Name: "uv_os_getenv", Params: []wasmtest.ValueType{I32, I32, I32}, Results: []wasmtest.ValueType{I32}},
			{Module: "env", Name: "clock", Results: []wasmtest.ValueType{wasmtest.I64}},
			{Module: "env", Name: "pty_proc_init", Params: []wasmtest.ValueType{I32, I32, I32}},
		},
		MemoryPages:  1,
		MemoryExport: "memory",
		Data:         []wasmtest.Segment{{Offset: 0x100, Bytes: []byte("FOO\x00")}},
	}
	m.Funcs = []wasmtest.Func{
		{Params: []wasmtest.ValueType{I32}, Results: []wasmtest.ValueType{I32}, Body: wasmtest.Seq(wasmtest.LocalGet(0), wasmtest.Call(0)), Export: "dup"},
		{Params: []wasmtest.ValueType{I32, I32, I32}, Results: []wasmtest.ValueType{I32}, Body: wasmtest.Seq(wasmtest.LocalGet(0), wasmtest.LocalGet(1), wasmtest.LocalGet(2), wasmtest.Call(1)), Export: "getenv"},
		{Results: []wasmtest.ValueType{wasmtest.I64}, Body: wasmtest.Call(2), Export: "clock"},
		{Params: []wasmtest.ValueType{I32, I32, I32}, Body: wasmtest.Seq(wasmtest.LocalGet(0), wasmtest.LocalGet(1), wasmtest.LocalGet(2), wasmtest.Call(3)), Export: "pty_init"},
	}
	return m
}

func TestInstantiate(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	task := &Task{
		Env:       env.NewMapStore([]string{"FOO=bar"}),
		Pty:       DefaultPtyLayout,
		ErrnoAddr: 0x10,
	}
	if _, err := Instantiate(ctx, r, task); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	mod, err := r.Instantiate(ctx, guest().Encode())
	if err != nil {
		t.Fatalf("instantiating guest: %v", err)
	}
	mem := mod.Memory()

	callsBefore := callCount.Value("dup")
	errorsBefore := errorCount.Value("dup")

	res, err := mod.ExportedFunction("dup").Call(ctx, api.EncodeI32(4))
	if err != nil {
		t.Fatalf("dup: %v", err)
	}
	if got := api.DecodeI32(res[0]); got != 4 {
		t.Errorf("dup(4) = %d, want 4", got)
	}
	res, err = mod.ExportedFunction("dup").Call(ctx, api.EncodeI32(-1))
	if err != nil {
		t.Fatalf("dup: %v", err)
	}
	if got := api.DecodeI32(res[0]); got != -1 {
		t.Errorf("dup(-1) = %d, want -1", got)
	}
	if got, _ := mem.ReadUint32Le(0x10); errno.Errno(got) != errno.EINVAL {
		t.Errorf("errno = %d, want EINVAL", got)
	}
	if got := callCount.Value("dup") - callsBefore; got != 2 {
		t.Errorf("dup calls counted = %d, want 2", got)
	}
	if got := errorCount.Value("dup") - errorsBefore; got != 1 {
		t.Errorf("dup errors counted = %d, want 1", got)
	}

	mem.WriteUint32Le(0x200, 16)
	res, err = mod.ExportedFunction("getenv").Call(ctx, 0x100, 0x300, 0x200)
	if err != nil {
		t.Fatalf("getenv: %v", err)
	}
	if got := api.DecodeI32(res[0]); got != 0 {
		t.Errorf("getenv = %d, want 0", got)
	}
	if b, _ := mem.Read(0x300, 4); string(b) != "bar\x00" {
		t.Errorf("getenv value = %q, want bar\\0", b)
	}

	res, err = mod.ExportedFunction("clock").Call(ctx)
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if res[0] != 0 {
		t.Errorf("clock() = %d, want 0", res[0])
	}

	if _, err := mod.ExportedFunction("pty_init").Call(ctx, 0x400, 7, 8); err != nil {
		t.Fatalf("pty_init: %v", err)
	}
	p, err := DefaultPtyLayout.Decode(task.Mem, 0x400)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Loop != 7 || p.Data != 8 || p.Width != 80 || p.Height != 24 {
		t.Errorf("pty record = %+v", p)
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	r := wazero.NewRuntime(ctx)
	defer r.Close(ctx)

	m := &wasmtest.Module{
		Imports: []wasmtest.Import{
			{Module: "env", Name: "getpid", Results: []wasmtest.ValueType{wasmtest.I32}},
			{Module: "env", Name: "dup", Params: []wasmtest.ValueType{wasmtest.I64}, Results: []wasmtest.ValueType{wasmtest.I32}},
			{Module: "wasi_snapshot_preview1", Name: "proc_exit", Params: []wasmtest.ValueType{wasmtest.I32}},
			{Module: "env", Name: "setjmp", Params: []wasmtest.ValueType{wasmtest.I32}, Results: []wasmtest.ValueType{wasmtest.I32}},
		},
	}
	compiled, err := r.CompileModule(ctx, m.Encode())
	if err != nil {
		t.Fatalf("CompileModule: %v", err)
	}

	got := Env.Resolve(compiled.ImportedFunctions())
	want := []Unresolved{
		{Name: "dup", Got: "(i64) -> i32", Want: "(i32) -> i32"},
		{Name: "setjmp", Got: "(i32) -> i32"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
	if err := Env.Check(compiled); !errors.Is(err, ErrUnresolved) {
		t.Errorf("Check = %v, want ErrUnresolved", err)
	}

	m.Imports = m.Imports[:1]
	compiled, err = r.CompileModule(ctx, m.Encode())
	if err != nil {
		t.Fatalf("CompileModule: %v", err)
	}
	if err := Env.Check(compiled); err != nil {
		t.Errorf("Check = %v, want nil", err)
	}
}
