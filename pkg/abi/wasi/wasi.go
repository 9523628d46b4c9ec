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

// Package wasi contains the constants and types of the wasm32-wasi C ABI that
// the guest program is compiled against: wasi-libc header values, libuv result
// codes and resolver codes.
package wasi

// PageSize is the size of a wasm linear memory page.
const PageSize = 65536

// NULL is the null guest pointer.
const NULL = 0
