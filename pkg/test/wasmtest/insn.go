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

package wasmtest

import (
	"github.com/tetratelabs/wabin/leb128"
	"github.com/tetratelabs/wabin/wasm"
)

// Instruction encoders. Each returns the bytes of a single instruction.

func op(o wasm.Opcode, imm ...[]byte) []byte {
	b := []byte{byte(o)}
	for _, i := range imm {
		b = append(b, i...)
	}
	return b
}

// I32Const pushes v.
func I32Const(v int32) []byte {
	return op(wasm.OpcodeI32Const, leb128.EncodeInt32(v))
}


// LocalGet pushes local i.
func LocalGet(i uint32) []byte {
	return op(wasm.OpcodeLocalGet, leb128.EncodeUint32(i))
}

// Call calls function idx.
func Call(idx uint32) []byte {
	return op(wasm.OpcodeCall, leb128.EncodeUint32(idx))
}

// Drop discards the top of the stack.
func Drop() []byte {
	return op(wasm.OpcodeDrop)
}

// memarg is the alignment hint (2 for a 4-byte access) and the offset.
func memarg(offset uint32) []byte {
	return append([]byte{0x02}, leb128.EncodeUint32(offset)...)
}

// I32Load loads a 32-bit word from the address on the stack plus offset.
func I32Load(offset uint32) []byte {
	return op(wasm.OpcodeI32Load, memarg(offset))
}



// Seq concatenates instructions.
func Seq(insns ...[]byte) []byte {
	var b []byte
	for _, i := range insns {
		b = append(b, i...)
	}
	return b
}

// Const returns a function body that pushes a single i32.
func Const(v int32) Func {
	return Func{Results: []ValueType{I32}, Body: I32Const(v)}
}
