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

// Package env implements the libuv environment accessors (uv_os_getenv,
// uv_os_setenv and uv_os_unsetenv) over a Store.
//
// Reads follow libuv's two-phase size negotiation: a caller whose buffer is
// missing or too small learns the required size, including the terminating
// NUL, and retries with a large enough buffer.
package env

import (
	"wasish.dev/wasish/pkg/errors/wasierr"
	"wasish.dev/wasish/pkg/usermem"
)

// Result is the outcome of a read.
type Result struct {
	// Copied is the number of bytes written to the buffer, including the
	// NUL. It is zero unless Err is nil.
	Copied uint32
	// Required is the buffer size the value needs, including the NUL. It is
	// reported back to the caller on success and on ENOBUFS.
	Required uint32
	Err      error
}

// Negotiate decides the outcome of reading value into a buffer of bufSize
// bytes. hasBuf is false when the caller passed no buffer at all.
func Negotiate(value string, found, hasBuf bool, bufSize uint32) Result {
	if !found {
		return Result{Err: wasierr.ENOENT}
	}
	required := uint32(len(value)) + 1
	if !hasBuf || bufSize < required {
		return Result{Required: required, Err: wasierr.ENOBUFS}
	}
	return Result{Copied: required, Required: required}
}

// Get reads name from s into buf. A nil buf means no buffer; len(buf) is the
// caller's buffer size. On success buf holds the value followed by a NUL.
func Get(s Store, name string, buf []byte) Result {
	value, found := s.Lookup(name)
	r := Negotiate(value, found, buf != nil, uint32(len(buf)))
	if r.Err == nil {
		copy(buf, value)
		buf[len(value)] = 0
	}
	return r
}

// Set stores value under name. Any store failure is reported as EIO.
func Set(s Store, name, value string) error {
	if err := s.Set(name, value); err != nil {
		return wasierr.EIO
	}
	return nil
}

// Unset removes name. Any store failure is reported as EIO.
func Unset(s Store, name string) error {
	if err := s.Unset(name); err != nil {
		return wasierr.EIO
	}
	return nil
}

// GetAt serves uv_os_getenv(name, buf, size) for a guest. name and buf are
// guest string and buffer addresses; size is the address of the guest's
// size_t holding the buffer size on entry and the required size on return.
//
// The buffer is written only on success, and *size only on success or
// ENOBUFS. Guest memory that cannot be read or written is EINVAL.
func GetAt(m usermem.IO, s Store, name, buf, size usermem.Addr) error {
	if name.IsNull() || size.IsNull() {
		return wasierr.EINVAL
	}
	n, err := copyInString(m, name)
	if err != nil {
		return err
	}
	bufSize, err := usermem.CopyInUint32(m, size)
	if err != nil {
		return wasierr.EINVAL
	}
	value, found := s.Lookup(n)
	r := Negotiate(value, found, !buf.IsNull(), bufSize)
	switch r.Err {
	case nil:
	case wasierr.ENOBUFS:
		if err := usermem.CopyOutUint32(m, size, r.Required); err != nil {
			return wasierr.EINVAL
		}
		return r.Err
	default:
		return r.Err
	}
	out := make([]byte, r.Copied)
	copy(out, value)
	if err := usermem.CopyOut(m, buf, out); err != nil {
		return wasierr.EINVAL
	}
	if err := usermem.CopyOutUint32(m, size, r.Required); err != nil {
		return wasierr.EINVAL
	}
	return nil
}

// SetAt serves uv_os_setenv(name, value) for a guest.
func SetAt(m usermem.IO, s Store, name, value usermem.Addr) error {
	if name.IsNull() || value.IsNull() {
		return wasierr.EINVAL
	}
	n, err := copyInString(m, name)
	if err != nil {
		return err
	}
	v, err := copyInString(m, value)
	if err != nil {
		return err
	}
	return Set(s, n, v)
}

// UnsetAt serves uv_os_unsetenv(name) for a guest.
func UnsetAt(m usermem.IO, s Store, name usermem.Addr) error {
	if name.IsNull() {
		return wasierr.EINVAL
	}
	n, err := copyInString(m, name)
	if err != nil {
		return err
	}
	return Unset(s, n)
}

// copyInString reads a NUL-terminated guest string of any length. A string
// that runs off the end of memory is EINVAL.
func copyInString(m usermem.IO, addr usermem.Addr) (string, error) {
	str, err := usermem.CopyInString(m, addr, -1)
	if err != nil {
		return "", wasierr.EINVAL
	}
	return str, nil
}
