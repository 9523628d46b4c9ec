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

package wasi

import "wasish.dev/wasish/pkg/abi/wasi/errno"

// UVErr returns the libuv result code for e. libuv defines UV_E* as the
// negated platform errno (UV__ERR), which under wasi-libc is the WASI errno.
func UVErr(e errno.Errno) int32 {
	return -int32(e)
}

// libuv result codes used by the env imports.
var (
	UV_EINVAL  = UVErr(errno.EINVAL)
	UV_ENOENT  = UVErr(errno.ENOENT)
	UV_ENOBUFS = UVErr(errno.ENOBUFS)
	UV_EIO     = UVErr(errno.EIO)
	UV_ENOSYS  = UVErr(errno.ENOSYS)
)
