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

import "wasish.dev/wasish/pkg/usermem"

// The editor's RPC server hooks. There is nothing to listen on, so the
// server starts and stops successfully without owning any address.

// ServerInit reports success.
func ServerInit(listenAddr usermem.Addr) bool {
	return true
}

// ServerTeardown does nothing.
func ServerTeardown() {}

// ServerAddressNew returns NULL.
func ServerAddressNew(name usermem.Addr) usermem.Addr {
	return 0
}

// ServerOwnsPipeAddress reports false.
func ServerOwnsPipeAddress(address usermem.Addr) bool {
	return false
}

// ServerStart reports success.
func ServerStart(addr usermem.Addr) int32 {
	return 0
}

// ServerStop reports success.
func ServerStop(endpoint usermem.Addr) bool {
	return true
}

// ServerAddressList returns an empty list: NULL, with *size set to 0 when
// size is non-null. The list is NULL even when *size cannot be written; the
// fault is returned for the caller to report.
func ServerAddressList(m usermem.IO, size usermem.Addr) (usermem.Addr, error) {
	if size.IsNull() {
		return 0, nil
	}
	return 0, usermem.CopyOutUint32(m, size, 0)
}
