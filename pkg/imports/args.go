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
	"github.com/tetratelabs/wazero/api"

	"wasish.dev/wasish/pkg/usermem"
)

// Arguments are the raw parameters of an import call, as wazero passes them.
// The accessors are named after the C type of the parameter and convert to
// the closest Go type.
type Arguments []uint64

// Int returns parameter i as an int32.
func (a Arguments) Int(i int) int32 {
	return api.DecodeI32(a[i])
}

// Uint returns parameter i as a uint32.
func (a Arguments) Uint(i int) uint32 {
	return api.DecodeU32(a[i])
}

// Int64 returns parameter i as an int64.
func (a Arguments) Int64(i int) int64 {
	return int64(a[i])
}

// Pointer returns parameter i as a guest address.
func (a Arguments) Pointer(i int) usermem.Addr {
	return usermem.Addr(api.DecodeU32(a[i]))
}

// SizeT returns parameter i as a wasm32 size_t.
func (a Arguments) SizeT(i int) uint32 {
	return api.DecodeU32(a[i])
}

// Result encoders.

func i32Result(v int32) uint64 {
	return api.EncodeI32(v)
}

func u32Result(v uint32) uint64 {
	return api.EncodeU32(v)
}

func ptrResult(a usermem.Addr) uint64 {
	return api.EncodeU32(uint32(a))
}

func boolResult(b bool) uint64 {
	if b {
		return api.EncodeI32(1)
	}
	return api.EncodeI32(0)
}
