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

package env

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wasish.dev/wasish/pkg/errors/wasierr"
	"wasish.dev/wasish/pkg/usermem"
)

func TestNegotiate(t *testing.T) {
	for _, tc := range []struct {
		name    string
		value   string
		found   bool
		hasBuf  bool
		bufSize uint32
		want    Result
	}{
		{"not found", "", false, true, 100, Result{Err: wasierr.ENOENT}},
		{"not found no buffer", "", false, false, 0, Result{Err: wasierr.ENOENT}},
		{"size zero", "abc", true, true, 0, Result{Required: 4, Err: wasierr.ENOBUFS}},
		{"no buffer", "abc", true, false, 100, Result{Required: 4, Err: wasierr.ENOBUFS}},
		{"one short", "abc", true, true, 3, Result{Required: 4, Err: wasierr.ENOBUFS}},
		{"exact", "abc", true, true, 4, Result{Copied: 4, Required: 4}},
		{"larger", "abc", true, true, 64, Result{Copied: 4, Required: 4}},
		{"empty value", "", true, true, 1, Result{Copied: 1, Required: 1}},
		{"empty value size zero", "", true, true, 0, Result{Required: 1, Err: wasierr.ENOBUFS}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Negotiate(tc.value, tc.found, tc.hasBuf, tc.bufSize)
			if got != tc.want {
				t.Errorf("Negotiate(%q, %t, %t, %d) = %+v, want %+v", tc.value, tc.found, tc.hasBuf, tc.bufSize, got, tc.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	s := NewMapStore([]string{"FOO=bar", "EMPTY=", "BROKEN", "=skipped", "FOO2=a=b"})

	small := make([]byte, 2)
	if r := Get(s, "FOO", small); r.Err != wasierr.ENOBUFS || r.Required != 4 {
		t.Errorf("Get(FOO, 2 bytes) = %+v, want ENOBUFS with Required 4", r)
	}
	if diff := cmp.Diff([]byte{0, 0}, small); diff != "" {
		t.Errorf("buffer written on ENOBUFS (-want +got):\n%s", diff)
	}

	buf := make([]byte, 4)
	if r := Get(s, "FOO", buf); r.Err != nil || r.Copied != 4 || r.Required != 4 {
		t.Errorf("Get(FOO, 4 bytes) = %+v, want success copying 4", r)
	}
	if diff := cmp.Diff([]byte("bar\x00"), buf); diff != "" {
		t.Errorf("Get(FOO) buffer mismatch (-want +got):\n%s", diff)
	}

	if r := Get(s, "FOO2", make([]byte, 8)); r.Err != nil || r.Required != 4 {
		t.Errorf("Get(FOO2) = %+v, want value a=b", r)
	}
	if r := Get(s, "EMPTY", make([]byte, 1)); r.Err != nil || r.Copied != 1 {
		t.Errorf("Get(EMPTY) = %+v, want success copying 1", r)
	}
	for _, name := range []string{"MISSING", "BROKEN", ""} {
		if r := Get(s, name, make([]byte, 64)); r.Err != wasierr.ENOENT {
			t.Errorf("Get(%q) = %+v, want ENOENT", name, r)
		}
	}
}

func TestSetUnset(t *testing.T) {
	s := NewMapStore(nil)
	if err := Set(s, "A", "1"); err != nil {
		t.Fatalf("Set(A) = %v", err)
	}
	if err := Set(s, "A", "2"); err != nil {
		t.Fatalf("Set(A) again = %v", err)
	}
	if v, ok := s.Lookup("A"); !ok || v != "2" {
		t.Errorf("Lookup(A) = %q, %t; want 2, true", v, ok)
	}
	if err := Set(s, "B=C", "x"); err != wasierr.EIO {
		t.Errorf("Set(B=C) = %v, want EIO", err)
	}
	if err := Unset(s, "A"); err != nil {
		t.Errorf("Unset(A) = %v", err)
	}
	if err := Unset(s, "A"); err != nil {
		t.Errorf("Unset(A) twice = %v", err)
	}
	if _, ok := s.Lookup("A"); ok {
		t.Errorf("A still set after Unset")
	}
	if err := Unset(s, ""); err != wasierr.EIO {
		t.Errorf("Unset(\"\") = %v, want EIO", err)
	}
	if diff := cmp.Diff([]string{}, s.Environ()); diff != "" {
		t.Errorf("Environ mismatch (-want +got):\n%s", diff)
	}
}

func TestEnviron(t *testing.T) {
	s := NewMapStore([]string{"Z=1", "A=2", "A=3"})
	if diff := cmp.Diff([]string{"A=3", "Z=1"}, s.Environ()); diff != "" {
		t.Errorf("Environ mismatch (-want +got):\n%s", diff)
	}
}

func TestHostStore(t *testing.T) {
	t.Setenv("WASISH_ENV_TEST", "host")
	var s HostStore
	if v, ok := s.Lookup("WASISH_ENV_TEST"); !ok || v != "host" {
		t.Errorf("Lookup = %q, %t; want host, true", v, ok)
	}
	if err := s.Set("WASISH_ENV_TEST", "changed"); err != nil {
		t.Errorf("Set = %v", err)
	}
	if r := Get(s, "WASISH_ENV_TEST", make([]byte, 8)); r.Err != nil || r.Copied != 8 {
		t.Errorf("Get = %+v, want 8 bytes copied", r)
	}
	if err := s.Unset("WASISH_ENV_TEST"); err != nil {
		t.Errorf("Unset = %v", err)
	}
	if err := s.Set("", "x"); err != wasierr.EINVAL {
		t.Errorf("Set(\"\") = %v, want EINVAL", err)
	}
}

// Guest memory layout used by the *At tests.
const (
	nameAddr  = 0x10
	valueAddr = 0x40
	bufAddr   = 0x80
	sizeAddr  = 0xf0
)

func guest(t *testing.T, name string, size uint32) *usermem.BytesIO {
	t.Helper()
	m := usermem.NewBytesIO(0x100)
	m.PutString(nameAddr, name)
	if err := usermem.CopyOutUint32(m, sizeAddr, size); err != nil {
		t.Fatalf("writing size: %v", err)
	}
	return m
}

func TestGetAtScenario(t *testing.T) {
	s := NewMapStore([]string{"FOO=bar"})

	// First call with a 2-byte buffer learns the size.
	m := guest(t, "FOO", 2)
	if err := GetAt(m, s, nameAddr, bufAddr, sizeAddr); err != wasierr.ENOBUFS {
		t.Fatalf("GetAt with 2-byte buffer = %v, want ENOBUFS", err)
	}
	if got, _ := usermem.CopyInUint32(m, sizeAddr); got != 4 {
		t.Errorf("*size = %d, want 4", got)
	}
	if diff := cmp.Diff(make([]byte, 4), m.Bytes[bufAddr:bufAddr+4]); diff != "" {
		t.Errorf("buffer written on ENOBUFS (-want +got):\n%s", diff)
	}

	// The retry with the reported size succeeds.
	if err := GetAt(m, s, nameAddr, bufAddr, sizeAddr); err != nil {
		t.Fatalf("GetAt with 4-byte buffer = %v", err)
	}
	if diff := cmp.Diff([]byte("bar\x00"), m.Bytes[bufAddr:bufAddr+4]); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
	if got, _ := usermem.CopyInUint32(m, sizeAddr); got != 4 {
		t.Errorf("*size = %d, want 4", got)
	}
}

func TestGetAtErrors(t *testing.T) {
	s := NewMapStore([]string{"FOO=bar"})
	for _, tc := range []struct {
		name     string
		varName  string
		size     uint32
		nameArg  usermem.Addr
		bufArg   usermem.Addr
		sizeArg  usermem.Addr
		wantErr  error
		wantSize uint32
	}{
		{"null name", "FOO", 16, 0, bufAddr, sizeAddr, wasierr.EINVAL, 16},
		{"null size", "FOO", 16, nameAddr, bufAddr, 0, wasierr.EINVAL, 16},
		{"missing", "NOPE", 16, nameAddr, bufAddr, sizeAddr, wasierr.ENOENT, 16},
		{"missing null buffer", "NOPE", 0, nameAddr, 0, sizeAddr, wasierr.ENOENT, 0},
		{"null buffer", "FOO", 16, nameAddr, 0, sizeAddr, wasierr.ENOBUFS, 4},
		{"size zero", "FOO", 0, nameAddr, bufAddr, sizeAddr, wasierr.ENOBUFS, 4},
		{"buffer out of range", "FOO", 16, nameAddr, 0xfff0, sizeAddr, wasierr.EINVAL, 16},
		{"size out of range", "FOO", 16, nameAddr, bufAddr, 0xfffe, wasierr.EINVAL, 16},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := guest(t, tc.varName, tc.size)
			if err := GetAt(m, s, tc.nameArg, tc.bufArg, tc.sizeArg); err != tc.wantErr {
				t.Fatalf("GetAt = %v, want %v", err, tc.wantErr)
			}
			if got, _ := usermem.CopyInUint32(m, sizeAddr); got != tc.wantSize {
				t.Errorf("*size = %d, want %d", got, tc.wantSize)
			}
			if tc.wantErr != nil {
				if diff := cmp.Diff(make([]byte, 16), m.Bytes[bufAddr:bufAddr+16]); diff != "" {
					t.Errorf("buffer written on error (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestSetAtUnsetAt(t *testing.T) {
	s := NewMapStore(nil)
	m := usermem.NewBytesIO(0x100)
	m.PutString(nameAddr, "EDITOR")
	m.PutString(valueAddr, "nvim")

	if err := SetAt(m, s, nameAddr, valueAddr); err != nil {
		t.Fatalf("SetAt = %v", err)
	}
	if v, ok := s.Lookup("EDITOR"); !ok || v != "nvim" {
		t.Errorf("Lookup(EDITOR) = %q, %t; want nvim, true", v, ok)
	}
	if err := SetAt(m, s, 0, valueAddr); err != wasierr.EINVAL {
		t.Errorf("SetAt(null name) = %v, want EINVAL", err)
	}
	if err := SetAt(m, s, nameAddr, 0); err != wasierr.EINVAL {
		t.Errorf("SetAt(null value) = %v, want EINVAL", err)
	}

	m.PutString(0xc0, "BAD=NAME")
	if err := SetAt(m, s, 0xc0, valueAddr); err != wasierr.EIO {
		t.Errorf("SetAt(BAD=NAME) = %v, want EIO", err)
	}

	if err := UnsetAt(m, s, nameAddr); err != nil {
		t.Fatalf("UnsetAt = %v", err)
	}
	if _, ok := s.Lookup("EDITOR"); ok {
		t.Errorf("EDITOR still set after UnsetAt")
	}
	if err := UnsetAt(m, s, 0); err != wasierr.EINVAL {
		t.Errorf("UnsetAt(null) = %v, want EINVAL", err)
	}
}

func TestLongStrings(t *testing.T) {
	const mem = 1 << 20
	name := strings.Repeat("N", 5000)
	value := strings.Repeat("v", 200<<10)
	nameAt := usermem.Addr(0x100)
	valueAt := usermem.Addr(0x4000)
	sizeAt := usermem.Addr(0x40)

	s := NewMapStore(nil)
	m := usermem.NewBytesIO(mem)
	m.PutString(nameAt, name)
	m.PutString(valueAt, value)

	// A long unset name is simply not found.
	if err := usermem.CopyOutUint32(m, sizeAt, 16); err != nil {
		t.Fatalf("writing size: %v", err)
	}
	if err := GetAt(m, s, nameAt, 0x80, sizeAt); err != wasierr.ENOENT {
		t.Fatalf("GetAt(unset long name) = %v, want ENOENT", err)
	}

	if err := SetAt(m, s, nameAt, valueAt); err != nil {
		t.Fatalf("SetAt(long value) = %v", err)
	}
	if err := GetAt(m, s, nameAt, 0x80, sizeAt); err != wasierr.ENOBUFS {
		t.Fatalf("GetAt with small buffer = %v, want ENOBUFS", err)
	}
	if got, _ := usermem.CopyInUint32(m, sizeAt); got != uint32(len(value))+1 {
		t.Errorf("*size = %d, want %d", got, len(value)+1)
	}
	if err := UnsetAt(m, s, nameAt); err != nil {
		t.Fatalf("UnsetAt(long name) = %v", err)
	}
	if _, ok := s.Lookup(name); ok {
		t.Errorf("long name still set after UnsetAt")
	}
}

func TestUnterminatedName(t *testing.T) {
	m := usermem.NewBytesIO(0x100)
	for i := range m.Bytes {
		m.Bytes[i] = 'x'
	}
	s := NewMapStore(nil)
	if err := SetAt(m, s, 0x10, 0x20); err != wasierr.EINVAL {
		t.Errorf("SetAt(unterminated) = %v, want EINVAL", err)
	}
	if err := UnsetAt(m, s, 0x10); err != wasierr.EINVAL {
		t.Errorf("UnsetAt(unterminated) = %v, want EINVAL", err)
	}
}
