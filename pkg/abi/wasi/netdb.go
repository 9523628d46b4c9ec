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

// getaddrinfo result codes from the guest shim netdb.h.
const (
	EAI_FAIL   = -1
	EAI_MEMORY = -2
	EAI_NONAME = -3
)

// getaddrinfo hint flags from the guest shim netdb.h.
const (
	AI_PASSIVE     = 0x0001
	AI_CANONNAME   = 0x0002
	AI_NUMERICHOST = 0x0004
	AI_ADDRCONFIG  = 0x0020
	AI_NUMERICSERV = 0x0400
)
