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

// Package region locates and validates the reserved stack-rewinding region of
// a guest module.
//
// A guest reserves the region in its static data (see package static) and
// exports three accessors for it. The host reads the layout through those
// exports, checks it against the guest's linear memory and seeds the control
// slot before the first unwind. For guests built without a static region the
// host can reserve one by growing memory; see ReserveAtEnd.
package region

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/usermem"
)

// Layout is the placement of a region in guest memory.
type Layout struct {
	// DataPtr is the address of the 8-byte control slot.
	DataPtr uint32
	// StackStart and StackEnd bound the auxiliary stack, [StackStart, StackEnd).
	StackStart uint32
	StackEnd   uint32
}

// StackSize returns the size of the auxiliary stack.
func (l Layout) StackSize() uint32 {
	if l.StackEnd < l.StackStart {
		return 0
	}
	return l.StackEnd - l.StackStart
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	return fmt.Sprintf("data=%#x stack=[%#x, %#x) size=%d", l.DataPtr, l.StackStart, l.StackEnd, l.StackSize())
}

// Compute lays out a region with a stack of size bytes in memory starting at
// base: the control slot at the first 8-byte aligned address, the stack at
// the next 16-byte aligned address after it.
func Compute(base, size uint32) (Layout, error) {
	data := alignUp(uint64(base), wasi.RegionDataAlign)
	start := alignUp(data+wasi.RegionDataSize, wasi.RegionStackAlign)
	end := start + uint64(size)
	if end > 1<<32-1 {
		return Layout{}, fmt.Errorf("region of %d bytes at %#x overflows a 32-bit address space", size, base)
	}
	return Layout{DataPtr: uint32(data), StackStart: uint32(start), StackEnd: uint32(end)}, nil
}

func alignUp(v, align uint64) uint64 {
	return (v + align - 1) &^ (align - 1)
}

// Validate checks l against a linear memory of memSize bytes. If wantSize is
// non-zero the stack must be exactly that large.
func (l Layout) Validate(memSize uint64, wantSize uint32) error {
	switch {
	case l.DataPtr == wasi.NULL:
		return fmt.Errorf("region control slot is null")
	case l.DataPtr%wasi.RegionDataAlign != 0:
		return fmt.Errorf("region control slot %#x is not %d-byte aligned", l.DataPtr, wasi.RegionDataAlign)
	case l.StackStart%wasi.RegionStackAlign != 0:
		return fmt.Errorf("region stack start %#x is not %d-byte aligned", l.StackStart, wasi.RegionStackAlign)
	case l.StackEnd <= l.StackStart:
		return fmt.Errorf("region stack [%#x, %#x) is empty", l.StackStart, l.StackEnd)
	case wantSize != 0 && l.StackSize() != wantSize:
		return fmt.Errorf("region stack size %d, want %d", l.StackSize(), wantSize)
	}
	dataEnd := uint64(l.DataPtr) + wasi.RegionDataSize
	if dataEnd > uint64(l.StackStart) && uint64(l.DataPtr) < uint64(l.StackEnd) {
		return fmt.Errorf("region control slot [%#x, %#x) overlaps stack [%#x, %#x)", l.DataPtr, dataEnd, l.StackStart, l.StackEnd)
	}
	if dataEnd > memSize || uint64(l.StackEnd) > memSize {
		return fmt.Errorf("region %v exceeds memory size %d", l, memSize)
	}
	return nil
}

// Reset seeds the control slot with the stack bounds. The stack-rewinding
// runtime expects the slot to hold [current position, limit] before the
// first unwind.
func Reset(m usermem.IO, l Layout) error {
	var buf [wasi.RegionDataSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], l.StackStart)
	binary.LittleEndian.PutUint32(buf[4:8], l.StackEnd)
	return usermem.CopyOut(m, usermem.Addr(l.DataPtr), buf[:])
}

// Exports is the part of an instantiated module Probe needs.
type Exports interface {
	ExportedFunction(name string) api.Function
}

// ErrNotExported is returned by Probe when a module exports none of the
// region accessors.
var ErrNotExported = errors.New("module does not export a reserved region")

// Probe reads the region layout through the accessors mod exports under
// prefix. An empty prefix means wasi.RegionExportPrefix.
//
// A module exporting only some of the accessors is an error; one exporting
// none yields ErrNotExported.
func Probe(ctx context.Context, mod Exports, prefix string) (Layout, error) {
	if prefix == "" {
		prefix = wasi.RegionExportPrefix
	}
	names := [3]string{
		prefix + wasi.RegionExportDataPtr,
		prefix + wasi.RegionExportStackStart,
		prefix + wasi.RegionExportStackEnd,
	}
	var fns [3]api.Function
	found := 0
	for i, n := range names {
		if fns[i] = mod.ExportedFunction(n); fns[i] != nil {
			found++
		}
	}
	switch found {
	case 0:
		return Layout{}, ErrNotExported
	case len(names):
	default:
		return Layout{}, fmt.Errorf("module exports only %d of the %d region accessors %v", found, len(names), names)
	}

	var vals [3]uint32
	for i, fn := range fns {
		def := fn.Definition()
		if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 1 || def.ResultTypes()[0] != api.ValueTypeI32 {
			return Layout{}, fmt.Errorf("region accessor %q has signature %v -> %v, want () -> i32", names[i], def.ParamTypes(), def.ResultTypes())
		}
		res, err := fn.Call(ctx)
		if err != nil {
			return Layout{}, fmt.Errorf("calling %q: %w", names[i], err)
		}
		vals[i] = api.DecodeU32(res[0])
	}
	return Layout{DataPtr: vals[0], StackStart: vals[1], StackEnd: vals[2]}, nil
}

// Memory is a growable linear memory.
type Memory interface {
	usermem.IO
	Grow(deltaPages uint32) (previousPages uint32, ok bool)
}

// ReserveAtEnd grows m and places a region with a stack of size bytes at the
// very end of memory, with the control slot immediately below the stack.
// size must be a multiple of wasi.RegionStackAlign.
func ReserveAtEnd(m Memory, size uint32) (Layout, error) {
	if size == 0 || size%wasi.RegionStackAlign != 0 {
		return Layout{}, fmt.Errorf("region stack size %d is not a positive multiple of %d", size, wasi.RegionStackAlign)
	}
	// Leave room for the control slot and alignment slack.
	pages := (uint64(size) + 64 + wasi.PageSize - 1) / wasi.PageSize
	if pages > 1<<16 {
		return Layout{}, fmt.Errorf("region stack size %d does not fit in a 32-bit memory", size)
	}
	if _, ok := m.Grow(uint32(pages)); !ok {
		return Layout{}, fmt.Errorf("growing memory by %d pages for a %d byte region failed", pages, size)
	}
	end := uint64(m.Size())
	if end < uint64(size)+wasi.RegionDataSize {
		// A full 4 GiB memory reports a wrapped size.
		return Layout{}, fmt.Errorf("memory of %d bytes leaves no addressable end for the region", end)
	}
	data := (end - uint64(size) - wasi.RegionDataSize) &^ (wasi.RegionDataAlign - 1)
	l := Layout{
		DataPtr:    uint32(data),
		StackStart: uint32(data + wasi.RegionDataSize),
		StackEnd:   uint32(end),
	}
	return l, l.Validate(end, size)
}
