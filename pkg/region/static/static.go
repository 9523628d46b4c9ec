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

// Package static reserves the stack-rewinding region in the module's own
// static data.
//
// The control slot and the auxiliary stack are package-level arrays, so they
// live in the data/bss segment laid out by the linker before the heap starts.
// The heap can never grow into them and nothing ever frees or resizes them.
// They are reachable only through DataPtr, StackStart and StackEnd; on wasip1
// those three are exported from the module (see export_wasip1.go) for the
// runtime that drives the rewinding.
package static

import (
	"unsafe"

	"wasish.dev/wasish/pkg/abi/wasi"
)

var (
	// controlState is the 8-byte aligned control slot. The zero-length
	// uint64 array raises the struct's alignment to 8.
	controlState struct {
		_     [0]uint64
		words [2]uint32
	}

	// stack is padded by one alignment unit so a 16-byte aligned window of
	// exactly StackSize bytes always fits inside it.
	stack [StackSize + wasi.RegionStackAlign]byte
)

// DataPtr returns the address of the control slot.
func DataPtr() uintptr {
	return uintptr(unsafe.Pointer(&controlState.words[0]))
}

// StackStart returns the address of the first byte of the auxiliary stack.
func StackStart() uintptr {
	base := uintptr(unsafe.Pointer(&stack[0]))
	return (base + wasi.RegionStackAlign - 1) &^ (wasi.RegionStackAlign - 1)
}

// StackEnd returns the address one past the last byte of the auxiliary stack.
func StackEnd() uintptr {
	return StackStart() + StackSize
}
