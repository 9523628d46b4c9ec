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
	"fmt"

	"wasish.dev/wasish/pkg/shim/stubs"
	"wasish.dev/wasish/pkg/usermem"
)

// PtyLayout is where the fields of the guest's pseudo-terminal process record
// live, as byte offsets from the start of the record. It depends on how the
// guest was compiled, so it is configurable.
type PtyLayout struct {
	// Size is the size of the whole record. pty_proc_init zeroes all of it.
	Size uint32 `toml:"size"`

	Type   uint32 `toml:"type_offset"`
	Loop   uint32 `toml:"loop_offset"`
	Data   uint32 `toml:"data_offset"`
	Width  uint32 `toml:"width_offset"`
	Height uint32 `toml:"height_offset"`
}

// DefaultPtyLayout is the record layout of the editor's wasm32 build: the
// embedded process record starts with its type, loop and data words, and the
// 16-bit width and height follow it.
var DefaultPtyLayout = PtyLayout{
	Size:   112,
	Type:   0,
	Loop:   4,
	Data:   8,
	Width:  88,
	Height: 90,
}

// Validate checks that every field lies within the record.
func (l PtyLayout) Validate() error {
	for _, f := range []struct {
		name        string
		off, length uint32
	}{
		{"type", l.Type, 4},
		{"loop", l.Loop, 4},
		{"data", l.Data, 4},
		{"width", l.Width, 2},
		{"height", l.Height, 2},
	} {
		if uint64(f.off)+uint64(f.length) > uint64(l.Size) {
			return fmt.Errorf("pty record field %s at offset %d does not fit in a %d byte record", f.name, f.off, l.Size)
		}
	}
	return nil
}

// Encode writes p as a fresh record at addr, zeroing the rest of the record.
func (l PtyLayout) Encode(m usermem.IO, addr usermem.Addr, p stubs.PtyProc) error {
	buf := make([]byte, l.Size)
	put32 := func(off, v uint32) {
		buf[off], buf[off+1], buf[off+2], buf[off+3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
	}
	put16 := func(off uint32, v uint16) {
		buf[off], buf[off+1] = byte(v), byte(v>>8)
	}
	put32(l.Type, p.Type)
	put32(l.Loop, p.Loop)
	put32(l.Data, p.Data)
	put16(l.Width, p.Width)
	put16(l.Height, p.Height)
	return usermem.CopyOut(m, addr, buf)
}

// Decode reads the record at addr.
func (l PtyLayout) Decode(m usermem.IO, addr usermem.Addr) (stubs.PtyProc, error) {
	var p stubs.PtyProc
	var err error
	if p.Type, err = usermem.CopyInUint32(m, addr+usermem.Addr(l.Type)); err != nil {
		return p, err
	}
	if p.Loop, err = usermem.CopyInUint32(m, addr+usermem.Addr(l.Loop)); err != nil {
		return p, err
	}
	if p.Data, err = usermem.CopyInUint32(m, addr+usermem.Addr(l.Data)); err != nil {
		return p, err
	}
	if p.Width, err = usermem.CopyInUint16(m, addr+usermem.Addr(l.Width)); err != nil {
		return p, err
	}
	p.Height, err = usermem.CopyInUint16(m, addr+usermem.Addr(l.Height))
	return p, err
}

// Resize applies a resize to the record at addr. Only the width and height
// fields are written.
func (l PtyLayout) Resize(m usermem.IO, addr usermem.Addr, width, height uint16) error {
	p, err := l.Decode(m, addr)
	if err != nil {
		return err
	}
	p.Resize(width, height)
	if err := usermem.CopyOutUint16(m, addr+usermem.Addr(l.Width), p.Width); err != nil {
		return err
	}
	return usermem.CopyOutUint16(m, addr+usermem.Addr(l.Height), p.Height)
}
