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

package boot

import (
	"fmt"

	"golang.org/x/term"

	"wasish.dev/wasish/pkg/abi/wasi"
)

// HostWinsize returns the size of the terminal open on fd.
func HostWinsize(fd int) (wasi.Winsize, bool) {
	if !term.IsTerminal(fd) {
		return wasi.Winsize{}, false
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 || cols > 0xffff || rows > 0xffff {
		return wasi.Winsize{}, false
	}
	return wasi.Winsize{Row: uint16(rows), Col: uint16(cols)}, true
}

// TerminalEnv returns the COLUMNS and LINES entries describing ws.
func TerminalEnv(ws wasi.Winsize) []string {
	if ws.Col == 0 || ws.Row == 0 {
		return nil
	}
	return []string{
		fmt.Sprintf("COLUMNS=%d", ws.Col),
		fmt.Sprintf("LINES=%d", ws.Row),
	}
}
