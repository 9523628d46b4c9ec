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

// Default pseudo-terminal geometry reported before any resize.
const (
	DefaultPtyWidth  = 80
	DefaultPtyHeight = 24
)

// ProcTypePty is the process type tag written into a freshly initialized
// pseudo-terminal process record.
const ProcTypePty = 1

// Winsize mirrors struct winsize from the guest shim sys/ioctl.h.
type Winsize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}
