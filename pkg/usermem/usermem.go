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

// Package usermem governs access to guest linear memory.
package usermem

import (
	"bytes"
	"encoding/binary"

	"wasish.dev/wasish/pkg/errors/wasierr"
)

// Addr is a 32-bit guest address. The zero Addr is the null pointer.
type Addr uint32

// IsNull returns true if a is the guest null pointer.
func (a Addr) IsNull() bool {
	return a == 0
}

// IO is the view of guest linear memory that import handlers need. It is the
// subset of wazero's api.Memory used here, so an api.Memory satisfies it
// directly.
type IO interface {
	// Size returns the size of the memory in bytes.
	Size() uint32

	// Read returns a view of byteCount bytes at offset, or false if the range
	// is out of bounds. The view aliases guest memory.
	Read(offset, byteCount uint32) ([]byte, bool)

	// Write copies v into memory at offset, or returns false if the range is
	// out of bounds.
	Write(offset uint32, v []byte) bool

	// ReadUint32Le reads a little-endian uint32 at offset.
	ReadUint32Le(offset uint32) (uint32, bool)

	// WriteUint32Le writes a little-endian uint32 at offset.
	WriteUint32Le(offset, v uint32) bool
}

// CopyIn copies len(dst) bytes from addr into dst.
func CopyIn(m IO, addr Addr, dst []byte) error {
	src, ok := m.Read(uint32(addr), uint32(len(dst)))
	if !ok {
		return wasierr.EFAULT
	}
	copy(dst, src)
	return nil
}

// CopyOut copies src into guest memory at addr.
func CopyOut(m IO, addr Addr, src []byte) error {
	if !m.Write(uint32(addr), src) {
		return wasierr.EFAULT
	}
	return nil
}

// CopyInUint32 reads a little-endian uint32 at addr.
func CopyInUint32(m IO, addr Addr) (uint32, error) {
	v, ok := m.ReadUint32Le(uint32(addr))
	if !ok {
		return 0, wasierr.EFAULT
	}
	return v, nil
}

// CopyInInt32 reads a little-endian int32 at addr.
func CopyInInt32(m IO, addr Addr) (int32, error) {
	v, err := CopyInUint32(m, addr)
	return int32(v), err
}

// CopyOutUint32 writes v little-endian at addr.
func CopyOutUint32(m IO, addr Addr, v uint32) error {
	if !m.WriteUint32Le(uint32(addr), v) {
		return wasierr.EFAULT
	}
	return nil
}

// CopyOutUint16 writes v little-endian at addr.
func CopyOutUint16(m IO, addr Addr, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return CopyOut(m, addr, buf[:])
}

// CopyInUint16 reads a little-endian uint16 at addr.
func CopyInUint16(m IO, addr Addr) (uint16, error) {
	var buf [2]byte
	if err := CopyIn(m, addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// CopyInString copies a NUL-terminated string of at most maxlen bytes
// (excluding the NUL) from addr. A negative maxlen reads up to the end of
// memory. It returns EFAULT if the string runs off the end of memory and
// ENAMETOOLONG if no NUL is found within maxlen bytes.
func CopyInString(m IO, addr Addr, maxlen int) (string, error) {
	size := m.Size()
	if uint32(addr) >= size {
		return "", wasierr.EFAULT
	}
	avail := size - uint32(addr)
	n := avail
	if maxlen >= 0 && uint64(maxlen)+1 < uint64(avail) {
		n = uint32(maxlen) + 1
	}
	b, ok := m.Read(uint32(addr), n)
	if !ok {
		return "", wasierr.EFAULT
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i]), nil
	}
	if n == avail && (maxlen < 0 || uint64(n) <= uint64(maxlen)) {
		// Ran off the end of memory before a terminator.
		return "", wasierr.EFAULT
	}
	return "", wasierr.ENAMETOOLONG
}

// Zero clears n bytes at addr.
func Zero(m IO, addr Addr, n uint32) error {
	return CopyOut(m, addr, make([]byte, n))
}
