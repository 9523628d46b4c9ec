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

package stubs

import (
	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/usermem"
)

// Getaddrinfo resolves nothing. It clears *res when res is non-null and
// reports EAI_NONAME, or EAI_FAIL if *res cannot be written.
func Getaddrinfo(m usermem.IO, node, service, hints, res usermem.Addr) int32 {
	if !res.IsNull() {
		if err := usermem.CopyOutUint32(m, res, wasi.NULL); err != nil {
			return wasi.EAI_FAIL
		}
	}
	return wasi.EAI_NONAME
}

// Freeaddrinfo does nothing; Getaddrinfo never allocates.
func Freeaddrinfo(res usermem.Addr) {}

// Getprotobyname returns NULL.
func Getprotobyname(name usermem.Addr) usermem.Addr {
	return 0
}

// Getprotobynumber returns NULL.
func Getprotobynumber(proto int32) usermem.Addr {
	return 0
}
