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

// Package stubs implements the POSIX, libuv and editor-runtime operations a
// single-process sandbox cannot provide.
//
// Every stub reports a fixed, documented outcome: a safe default, a success
// that does nothing, or "not supported". Stubs run in constant time, never
// block, and accept null pointers and empty inputs. Only two of them touch
// guest memory: Getaddrinfo and ServerAddressList clear the caller's
// out-parameter, and PtyProc.Resize updates the caller's record.
package stubs
