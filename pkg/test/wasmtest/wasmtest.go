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

// Package wasmtest builds small WebAssembly binaries for tests.
//
// Modules are described with a few plain structs and encoded through wabin.
// Only what a host-module test needs is covered: function imports, functions
// without locals, a single memory, exports and active data segments.
package wasmtest

import (
	"github.com/tetratelabs/wabin/binary"
	"github.com/tetratelabs/wabin/leb128"
	"github.com/tetratelabs/wabin/wasm"
)

// ValueType is a wasm value type.
type ValueType = wasm.ValueType

// Value types.
const (
	I32 = wasm.ValueTypeI32
	I64 = wasm.ValueTypeI64
)

// Import is an imported function.
type Import struct {
	Module  string
	Name    string
	Params  []ValueType
	Results []ValueType
}

// Func is a function defined by the module. Body holds the instructions
// without the trailing end opcode; the function declares no locals.
type Func struct {
	Params  []ValueType
	Results []ValueType
	Body    []byte
	// Export, if non-empty, exports the function under this name.
	Export string
}

// Segment is an active data segment for memory 0.
type Segment struct {
	Offset uint32
	Bytes  []byte
}

// Module describes a module to encode.
type Module struct {
	Imports []Import
	Funcs   []Func
	// MemoryPages is the initial size of memory 0. Zero means no memory.
	MemoryPages uint32
	// MemoryExport, if non-empty, exports memory 0 under this name.
	MemoryExport string
	Data         []Segment
}

// FuncIndex returns the function index of m.Funcs[i], which follows the
// imported functions in the index space.
func (m *Module) FuncIndex(i int) uint32 {
	return uint32(len(m.Imports) + i)
}

// Encode returns the binary encoding of m.
func (m *Module) Encode() []byte {
	return binary.EncodeModule(m.build())
}

// build converts m to a wabin module. Every function gets its own type.
func (m *Module) build() *wasm.Module {
	out := &wasm.Module{}
	for i, imp := range m.Imports {
		out.TypeSection = append(out.TypeSection, &wasm.FunctionType{Params: imp.Params, Results: imp.Results})
		out.ImportSection = append(out.ImportSection, &wasm.Import{
			Type:     wasm.ExternTypeFunc,
			Module:   imp.Module,
			Name:     imp.Name,
			DescFunc: wasm.Index(i),
		})
	}
	for i, f := range m.Funcs {
		out.TypeSection = append(out.TypeSection, &wasm.FunctionType{Params: f.Params, Results: f.Results})
		out.FunctionSection = append(out.FunctionSection, wasm.Index(len(m.Imports)+i))
		out.CodeSection = append(out.CodeSection, &wasm.Code{Body: append(append([]byte(nil), f.Body...), byte(wasm.OpcodeEnd))})
		if f.Export != "" {
			out.ExportSection = append(out.ExportSection, &wasm.Export{
				Type:  wasm.ExternTypeFunc,
				Name:  f.Export,
				Index: wasm.Index(m.FuncIndex(i)),
			})
		}
	}
	if m.MemoryPages > 0 {
		out.MemorySection = &wasm.Memory{Min: m.MemoryPages}
		if m.MemoryExport != "" {
			out.ExportSection = append(out.ExportSection, &wasm.Export{
				Type: wasm.ExternTypeMemory,
				Name: m.MemoryExport,
			})
		}
	}
	for _, d := range m.Data {
		out.DataSection = append(out.DataSection, &wasm.DataSegment{
			OffsetExpression: &wasm.ConstantExpression{
				Opcode: wasm.OpcodeI32Const,
				Data:   leb128.EncodeInt32(int32(d.Offset)),
			},
			Init: d.Bytes,
		})
	}
	return out
}
