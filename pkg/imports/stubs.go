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

	"wasish.dev/wasish/pkg/shim/stubs"
)

// Handlers for imports that only report "not supported" or a safe default.
// None of them touch guest memory except where noted.

func flock(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.Flock(args.Int(0), args.Int(1))), nil
}

func getpid(*Task, Arguments) (uint64, error) {
	return i32Result(stubs.Getpid()), nil
}

func system(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.System(args.Pointer(0))), nil
}

func tmpnam(t *Task, args Arguments) (uint64, error) {
	return ptrResult(stubs.Tmpnam(args.Pointer(0))), nil
}

func tmpfile(*Task, Arguments) (uint64, error) {
	return ptrResult(stubs.Tmpfile()), nil
}

func clock(*Task, Arguments) (uint64, error) {
	return api.EncodeI64(stubs.Clock()), nil
}

func umask(t *Task, args Arguments) (uint64, error) {
	old, err := stubs.Umask(args.Uint(0))
	return u32Result(old), err
}

func tcgetattr(t *Task, args Arguments) (uint64, error) {
	ret, err := stubs.Tcgetattr(args.Int(0), args.Pointer(1))
	return i32Result(ret), err
}

func tcsetattr(t *Task, args Arguments) (uint64, error) {
	ret, err := stubs.Tcsetattr(args.Int(0), args.Int(1), args.Pointer(2))
	return i32Result(ret), err
}

func cfgetospeed(t *Task, args Arguments) (uint64, error) {
	return u32Result(stubs.Cfgetospeed(args.Pointer(0))), nil
}

func cfgetispeed(t *Task, args Arguments) (uint64, error) {
	return u32Result(stubs.Cfgetispeed(args.Pointer(0))), nil
}

func cfsetospeed(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.Cfsetospeed(args.Pointer(0), args.Uint(1))), nil
}

func cfsetispeed(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.Cfsetispeed(args.Pointer(0), args.Uint(1))), nil
}

func ioctl(t *Task, args Arguments) (uint64, error) {
	ret, err := stubs.Ioctl(args.Int(0), args.Uint(1), args.Pointer(2))
	return i32Result(ret), err
}

func vimForkpty(t *Task, args Arguments) (uint64, error) {
	ret, err := stubs.Forkpty(args.Pointer(0), args.Pointer(1), args.Pointer(2), args.Pointer(3))
	return i32Result(ret), err
}

// ptyProcInit fills the record the caller passed as its return slot.
func ptyProcInit(t *Task, args Arguments) (uint64, error) {
	sret := args.Pointer(0)
	if sret.IsNull() {
		return 0, nil
	}
	p := stubs.PtyInitSized(args.Uint(1), args.Uint(2), t.Winsize)
	return 0, t.Pty.Encode(t.Mem, sret, p)
}

func ptyProcSpawn(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.PtySpawn(args.Pointer(0))), nil
}

func ptyProcTTYName(t *Task, args Arguments) (uint64, error) {
	return ptrResult(stubs.PtyTTYName(args.Pointer(0))), nil
}

// ptyProcResize is the only PTY import that writes to a record it did not
// create.
func ptyProcResize(t *Task, args Arguments) (uint64, error) {
	proc := args.Pointer(0)
	if proc.IsNull() {
		return 0, nil
	}
	return 0, t.Pty.Resize(t.Mem, proc, uint16(args.Uint(1)), uint16(args.Uint(2)))
}

func ptyProcClose(t *Task, args Arguments) (uint64, error) {
	stubs.PtyClose(args.Pointer(0))
	return 0, nil
}

func ptyProcCloseMaster(t *Task, args Arguments) (uint64, error) {
	stubs.PtyCloseMaster(args.Pointer(0))
	return 0, nil
}

func ptyProcTeardown(t *Task, args Arguments) (uint64, error) {
	stubs.PtyTeardown(args.Pointer(0))
	return 0, nil
}

// noop wraps a stub that takes no arguments and returns nothing.
func noop(f func()) Fn {
	return func(*Task, Arguments) (uint64, error) {
		f()
		return 0, nil
	}
}

func pthreadSigmask(t *Task, args Arguments) (uint64, error) {
	ret, err := stubs.PthreadSigmask(args.Int(0), args.Pointer(1), args.Pointer(2))
	return i32Result(ret), err
}

func pthreadExit(t *Task, args Arguments) (uint64, error) {
	stubs.PthreadExit(args.Pointer(0))
	return 0, nil
}

func getaddrinfo(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.Getaddrinfo(t.Mem, args.Pointer(0), args.Pointer(1), args.Pointer(2), args.Pointer(3))), nil
}

func freeaddrinfo(t *Task, args Arguments) (uint64, error) {
	stubs.Freeaddrinfo(args.Pointer(0))
	return 0, nil
}

func getprotobyname(t *Task, args Arguments) (uint64, error) {
	return ptrResult(stubs.Getprotobyname(args.Pointer(0))), nil
}

func getprotobynumber(t *Task, args Arguments) (uint64, error) {
	return ptrResult(stubs.Getprotobynumber(args.Int(0))), nil
}

func serverInit(t *Task, args Arguments) (uint64, error) {
	return boolResult(stubs.ServerInit(args.Pointer(0))), nil
}

func serverAddressNew(t *Task, args Arguments) (uint64, error) {
	return ptrResult(stubs.ServerAddressNew(args.Pointer(0))), nil
}

func serverOwnsPipeAddress(t *Task, args Arguments) (uint64, error) {
	return boolResult(stubs.ServerOwnsPipeAddress(args.Pointer(0))), nil
}

func serverStart(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.ServerStart(args.Pointer(0))), nil
}

func serverStop(t *Task, args Arguments) (uint64, error) {
	return boolResult(stubs.ServerStop(args.Pointer(0))), nil
}

func serverAddressList(t *Task, args Arguments) (uint64, error) {
	addr, err := stubs.ServerAddressList(t.Mem, args.Pointer(0))
	return ptrResult(addr), err
}

func iconvOpen(t *Task, args Arguments) (uint64, error) {
	return u32Result(stubs.IconvOpen(args.Pointer(0), args.Pointer(1))), nil
}

func iconv(t *Task, args Arguments) (uint64, error) {
	return u32Result(stubs.Iconv(args.Uint(0), args.Pointer(1), args.Pointer(2), args.Pointer(3), args.Pointer(4))), nil
}

func iconvClose(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.IconvClose(args.Uint(0))), nil
}

func uvUTF16LengthAsWTF8(t *Task, args Arguments) (uint64, error) {
	return u32Result(stubs.UTF16LengthAsWTF8(args.Pointer(0), args.Int(1))), nil
}

func uvWTF8LengthAsUTF16(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.WTF8LengthAsUTF16(args.Pointer(0))), nil
}

func uvUTF16ToWTF8(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.UTF16ToWTF8(args.Pointer(0), args.Int(1), args.Pointer(2), args.Pointer(3))), nil
}

func uvWTF8ToUTF16(t *Task, args Arguments) (uint64, error) {
	stubs.WTF8ToUTF16(args.Pointer(0), args.Pointer(1), args.SizeT(2))
	return 0, nil
}

func uvRandom(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.Random(args.Pointer(0), args.Pointer(1), args.Pointer(2), args.SizeT(3), args.Uint(4), args.Pointer(5))), nil
}

func gettext(t *Task, args Arguments) (uint64, error) {
	return ptrResult(stubs.Gettext(args.Pointer(0))), nil
}

func ngettext(t *Task, args Arguments) (uint64, error) {
	return ptrResult(stubs.Ngettext(args.Pointer(0), args.Pointer(1), args.Uint(2))), nil
}

func bindtextdomain(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.Bindtextdomain(args.Pointer(0), args.Pointer(1))), nil
}

func textdomain(t *Task, args Arguments) (uint64, error) {
	return i32Result(stubs.Textdomain(args.Pointer(0))), nil
}
