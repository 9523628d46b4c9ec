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
	"wasish.dev/wasish/pkg/errors/wasierr"
	"wasish.dev/wasish/pkg/usermem"
)

// PtyProc is the part of the editor's pseudo-terminal process record the
// stubs read or write.
type PtyProc struct {
	Type   uint32
	Loop   uint32
	Data   uint32
	Width  uint16
	Height uint16
}

// PtyInit returns a fresh record for a pseudo-terminal process attached to
// loop, sized wasi.DefaultPtyWidth by wasi.DefaultPtyHeight.
func PtyInit(loop, data uint32) PtyProc {
	return PtyProc{
		Type:   wasi.ProcTypePty,
		Loop:   loop,
		Data:   data,
		Width:  wasi.DefaultPtyWidth,
		Height: wasi.DefaultPtyHeight,
	}
}

// PtyInitSized is PtyInit with the geometry taken from ws. A zero dimension
// falls back to the default.
func PtyInitSized(loop, data uint32, ws wasi.Winsize) PtyProc {
	p := PtyInit(loop, data)
	if ws.Col != 0 {
		p.Width = ws.Col
	}
	if ws.Row != 0 {
		p.Height = ws.Row
	}
	return p
}

// Resize records the new geometry in p.
func (p *PtyProc) Resize(width, height uint16) {
	p.Width = width
	p.Height = height
}

// Forkpty fails with ENOSYS; there are no child processes.
func Forkpty(amaster, name, termp, winp usermem.Addr) (int32, error) {
	return -1, wasierr.ENOSYS
}

// PtySpawn reports UV_ENOSYS.
func PtySpawn(proc usermem.Addr) int32 {
	return wasi.UV_ENOSYS
}

// PtyTTYName returns NULL.
func PtyTTYName(proc usermem.Addr) usermem.Addr {
	return 0
}

// PtyClose does nothing.
func PtyClose(proc usermem.Addr) {}

// PtyCloseMaster does nothing.
func PtyCloseMaster(proc usermem.Addr) {}

// PtyTeardown does nothing.
func PtyTeardown(loop usermem.Addr) {}
