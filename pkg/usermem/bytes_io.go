// Copyright 2018 The gVisor Authors.
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

package usermem

import "encoding/binary"

// BytesIO implements IO using a byte slice. Addresses are interpreted as
// offsets into the slice. Reads and writes beyond the end of the slice fail.
type BytesIO struct {
	Bytes []byte
}

// NewBytesIO returns a zeroed BytesIO of the given size.
func NewBytesIO(size uint32) *BytesIO {
	return &BytesIO{Bytes: make([]byte, size)}
}

func (b *BytesIO) rangeCheck(offset, n uint32) bool {
	end := uint64(offset) + uint64(n)
	return end <= uint64(len(b.Bytes))
}

// Size implements IO.Size.
func (b *BytesIO) Size() uint32 {
	return uint32(len(b.Bytes))
}

// Read implements IO.Read.
func (b *BytesIO) Read(offset, byteCount uint32) ([]byte, bool) {
	if !b.rangeCheck(offset, byteCount) {
		return nil, false
	}
	return b.Bytes[offset : offset+byteCount : offset+byteCount], true
}

// Write implements IO.Write.
func (b *BytesIO) Write(offset uint32, v []byte) bool {
	if !b.rangeCheck(offset, uint32(len(v))) {
		return false
	}
	copy(b.Bytes[offset:], v)
	return true
}

// ReadUint32Le implements IO.ReadUint32Le.
func (b *BytesIO) ReadUint32Le(offset uint32) (uint32, bool) {
	if !b.rangeCheck(offset, 4) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b.Bytes[offset:]), true
}

// WriteUint32Le implements IO.WriteUint32Le.
func (b *BytesIO) WriteUint32Le(offset, v uint32) bool {
	if !b.rangeCheck(offset, 4) {
		return false
	}
	binary.LittleEndian.PutUint32(b.Bytes[offset:], v)
	return true
}

// PutString writes s followed by a NUL terminator at addr and returns the
// address one past the terminator. It panics if the string does not fit; it
// is meant for setting up guest memory in tests and tools.
func (b *BytesIO) PutString(addr Addr, s string) Addr {
	if !b.Write(uint32(addr), append([]byte(s), 0)) {
		panic("usermem: string does not fit")
	}
	return addr + Addr(len(s)) + 1
}
