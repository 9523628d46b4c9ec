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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tetratelabs/wazero/api"

	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/abi/wasi/errno"
	"wasish.dev/wasish/pkg/errors/wasierr"
	"wasish.dev/wasish/pkg/shim/env"
	"wasish.dev/wasish/pkg/shim/stubs"
	"wasish.dev/wasish/pkg/usermem"
)

const errnoAddr = 0x10

func newTask(environ ...string) (*Task, *usermem.BytesIO) {
	m := usermem.NewBytesIO(wasi.PageSize)
	return &Task{
		Mem:       m,
		Env:       env.NewMapStore(environ),
		Pty:       DefaultPtyLayout,
		ErrnoAddr: errnoAddr,
	}, m
}

// call invokes the named import the way the dispatcher does, minus wazero.
func call(t *testing.T, task *Task, name string, args ...uint64) uint64 {
	t.Helper()
	imp, ok := Env.Lookup(name)
	if !ok {
		t.Fatalf("no import %q", name)
	}
	if len(args) != len(imp.Params) {
		t.Fatalf("%s takes %d arguments, got %d", name, len(imp.Params), len(args))
	}
	ret, err := imp.Fn(task, Arguments(args))
	return task.complete(&imp, ret, err)
}

func guestErrno(t *testing.T, m usermem.IO) errno.Errno {
	t.Helper()
	v, err := usermem.CopyInUint32(m, errnoAddr)
	if err != nil {
		t.Fatalf("reading errno: %v", err)
	}
	return errno.Errno(v)
}

func arg32(v int32) uint64 { return api.EncodeI32(v) }

func TestDup(t *testing.T) {
	task, m := newTask()
	for _, tc := range []struct {
		name  string
		args  []uint64
		want  int32
		errno errno.Errno
	}{
		{"dup", []uint64{arg32(0)}, 0, 0},
		{"dup", []uint64{arg32(2)}, 2, 0},
		{"dup", []uint64{arg32(7)}, 7, 0},
		{"dup", []uint64{arg32(-1)}, -1, errno.EINVAL},
		{"dup2", []uint64{arg32(5), arg32(1)}, 1, 0},
		{"dup2", []uint64{arg32(1), arg32(-4)}, -1, errno.EINVAL},
		{"dup3", []uint64{arg32(5), arg32(9), arg32(0x80000)}, 9, 0},
	} {
		_ = usermem.CopyOutUint32(m, errnoAddr, 0)
		if got := api.DecodeI32(call(t, task, tc.name, tc.args...)); got != tc.want {
			t.Errorf("%s%v = %d, want %d", tc.name, tc.args, got, tc.want)
		}
		if got := guestErrno(t, m); got != tc.errno {
			t.Errorf("%s%v: errno = %d, want %d", tc.name, tc.args, got, tc.errno)
		}
	}
}

func TestFcntl(t *testing.T) {
	task, m := newTask()
	const va = 0x100
	if err := usermem.CopyOutUint32(m, va, 10); err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		fd, cmd int32
		va      usermem.Addr
		want    int32
		errno   errno.Errno
	}{
		{1, wasi.F_DUPFD, va, 1, 0},
		{5, wasi.F_DUPFD, va, 10, 0},
		{5, wasi.F_DUPFD_CLOEXEC, va, 10, 0},
		{3, wasi.F_GETFD, 0, 0, 0},
		{3, wasi.F_GETFL, 0, 0, 0},
		{3, wasi.F_SETFL, va, 0, 0},
		{3, wasi.F_SETFD, 0, -1, errno.EINVAL},
		{5, wasi.F_DUPFD, 0, -1, errno.EINVAL},
		{5, wasi.F_DUPFD, usermem.Addr(wasi.PageSize - 2), -1, errno.EINVAL},
		{3, 99, 0, -1, errno.ENOSYS},
	} {
		_ = usermem.CopyOutUint32(m, errnoAddr, 0)
		got := api.DecodeI32(call(t, task, "fcntl", arg32(tc.fd), arg32(tc.cmd), uint64(tc.va)))
		if got != tc.want {
			t.Errorf("fcntl(%d, %d, %#x) = %d, want %d", tc.fd, tc.cmd, tc.va, got, tc.want)
		}
		if got := guestErrno(t, m); got != tc.errno {
			t.Errorf("fcntl(%d, %d, %#x): errno = %d, want %d", tc.fd, tc.cmd, tc.va, got, tc.errno)
		}
	}
}

func TestErrnoWithoutAddress(t *testing.T) {
	task, m := newTask()
	task.ErrnoAddr = 0
	if got := api.DecodeI32(call(t, task, "dup", arg32(-1))); got != -1 {
		t.Errorf("dup(-1) = %d, want -1", got)
	}
	if b, _ := m.Read(0, 4); !cmp.Equal(b, []byte{0, 0, 0, 0}) {
		t.Errorf("errno written to address 0: %v", b)
	}
}

func TestUVEnv(t *testing.T) {
	task, m := newTask("FOO=bar")
	name := usermem.Addr(0x100)
	m.PutString(name, "FOO")
	const size, buf = 0x200, 0x300

	// Too small: only the required size is written.
	_ = usermem.CopyOutUint32(m, size, 2)
	if got := api.DecodeI32(call(t, task, "uv_os_getenv", uint64(name), buf, size)); got != wasi.UV_ENOBUFS {
		t.Errorf("uv_os_getenv with 2 bytes = %d, want UV_ENOBUFS", got)
	}
	if got, _ := usermem.CopyInUint32(m, size); got != 4 {
		t.Errorf("*size = %d, want 4", got)
	}
	if b, _ := m.Read(buf, 4); !cmp.Equal(b, make([]byte, 4)) {
		t.Errorf("buffer written on ENOBUFS: %q", b)
	}

	if got := api.DecodeI32(call(t, task, "uv_os_getenv", uint64(name), buf, size)); got != 0 {
		t.Errorf("uv_os_getenv with 4 bytes = %d, want 0", got)
	}
	if b, _ := m.Read(buf, 4); string(b) != "bar\x00" {
		t.Errorf("value = %q, want bar\\0", b)
	}

	value := usermem.Addr(0x180)
	m.PutString(value, "baz")
	if got := api.DecodeI32(call(t, task, "uv_os_setenv", uint64(name), uint64(value))); got != 0 {
		t.Errorf("uv_os_setenv = %d, want 0", got)
	}
	if v, _ := task.Env.Lookup("FOO"); v != "baz" {
		t.Errorf("FOO = %q after setenv, want baz", v)
	}
	if got := api.DecodeI32(call(t, task, "uv_os_unsetenv", uint64(name))); got != 0 {
		t.Errorf("uv_os_unsetenv = %d, want 0", got)
	}
	_ = usermem.CopyOutUint32(m, size, 64)
	if got := api.DecodeI32(call(t, task, "uv_os_getenv", uint64(name), buf, size)); got != wasi.UV_ENOENT {
		t.Errorf("uv_os_getenv after unset = %d, want UV_ENOENT", got)
	}
	if got := api.DecodeI32(call(t, task, "uv_os_getenv", 0, buf, size)); got != wasi.UV_EINVAL {
		t.Errorf("uv_os_getenv(NULL) = %d, want UV_EINVAL", got)
	}
}

// TestNullArguments calls every import with all-zero arguments.
func TestNullArguments(t *testing.T) {
	want := map[string]int64{
		"dup": 0, "dup2": 0, "dup3": 0, "fcntl": -1,
		"uv_os_getenv": int64(wasi.UV_EINVAL), "uv_os_setenv": int64(wasi.UV_EINVAL), "uv_os_unsetenv": int64(wasi.UV_EINVAL),
		"flock":   0,
		"getpid":  stubs.Pid,
		"system":  -1,
		"tmpnam":  0,
		"tmpfile": 0,
		"clock":   0,
		"umask":   0,
		"tcgetattr": -1, "tcsetattr": -1, "ioctl": -1,
		"cfgetospeed": 0, "cfgetispeed": 0, "cfsetospeed": 0, "cfsetispeed": 0,
		"vim_forkpty":       -1,
		"pty_proc_spawn":    int64(wasi.UV_ENOSYS),
		"pty_proc_tty_name": 0,
		"pthread_sigmask":   -1,
		"getaddrinfo":       wasi.EAI_NONAME,
		"getprotobyname":    0, "getprotobynumber": 0,
		"server_init": 1, "server_address_new": 0, "server_owns_pipe_address": 0,
		"server_start": 0, "server_stop": 1, "server_address_list": 0,
		"iconv_open": -1, "iconv": -1, "iconv_close": -1,
		"uv_utf16_length_as_wtf8": 0, "uv_wtf8_length_as_utf16": 0,
		"uv_utf16_to_wtf8": int64(wasi.UV_ENOSYS), "uv_random": int64(wasi.UV_ENOSYS),
		"gettext": 0, "ngettext": 0, "bindtextdomain": 0, "textdomain": 0,
	}
	task, _ := newTask()
	for _, name := range Env.Names() {
		imp := Env.Imports[name]
		got := call(t, task, name, make([]uint64, len(imp.Params))...)
		if len(imp.Results) == 0 {
			continue
		}
		w, ok := want[name]
		if !ok {
			t.Errorf("no expectation for %s", name)
			continue
		}
		var g int64
		if imp.Results[0] == i64 {
			g = int64(got)
		} else {
			g = int64(api.DecodeI32(got))
		}
		if g != w {
			t.Errorf("%s(0...) = %d, want %d", name, g, w)
		}
	}
}

func TestErrnoStubs(t *testing.T) {
	task, m := newTask()
	for _, name := range []string{"umask", "tcgetattr", "tcsetattr", "ioctl", "vim_forkpty", "pthread_sigmask"} {
		_ = usermem.CopyOutUint32(m, errnoAddr, 0)
		call(t, task, name, make([]uint64, len(Env.Imports[name].Params))...)
		if got := guestErrno(t, m); got != errno.ENOSYS {
			t.Errorf("%s: errno = %d, want ENOSYS", name, got)
		}
	}
}

func TestPointerResults(t *testing.T) {
	task, m := newTask()
	if got := call(t, task, "gettext", 0x1234); got != 0x1234 {
		t.Errorf("gettext(0x1234) = %#x, want 0x1234", got)
	}
	if got := call(t, task, "ngettext", 0x10, 0x20, 2); got != 0x10 {
		t.Errorf("ngettext = %#x, want msgid1", got)
	}

	const res = 0x400
	_ = usermem.CopyOutUint32(m, res, 0xdeadbeef)
	if got := api.DecodeI32(call(t, task, "getaddrinfo", 0x10, 0, 0, res)); got != wasi.EAI_NONAME {
		t.Errorf("getaddrinfo = %d, want EAI_NONAME", got)
	}
	if v, _ := usermem.CopyInUint32(m, res); v != 0 {
		t.Errorf("*res = %#x, want NULL", v)
	}

	const size = 0x500
	_ = usermem.CopyOutUint32(m, size, 7)
	if got := call(t, task, "server_address_list", size); got != 0 {
		t.Errorf("server_address_list = %#x, want NULL", got)
	}
	if v, _ := usermem.CopyInUint32(m, size); v != 0 {
		t.Errorf("*size = %d, want 0", v)
	}

	// An unwritable size still yields NULL, and the fault reaches the
	// dispatcher.
	imp, _ := Env.Lookup("server_address_list")
	ret, err := imp.Fn(task, Arguments{uint64(wasi.PageSize - 2)})
	if ret != 0 || err != wasierr.EFAULT {
		t.Errorf("server_address_list(unwritable) = %#x, %v; want NULL, EFAULT", ret, err)
	}
	if got := task.complete(&imp, ret, err); got != 0 {
		t.Errorf("completed server_address_list = %#x, want NULL", got)
	}
}

func TestPtyProc(t *testing.T) {
	task, m := newTask()
	const rec = 0x800
	// Garbage that pty_proc_init must clear.
	for i := uint32(0); i < DefaultPtyLayout.Size; i++ {
		m.Bytes[rec+i] = 0xff
	}
	call(t, task, "pty_proc_init", rec, 0x40, 0x50)

	got, err := DefaultPtyLayout.Decode(m, rec)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := stubs.PtyProc{Type: wasi.ProcTypePty, Loop: 0x40, Data: 0x50, Width: 80, Height: 24}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if b, _ := m.Read(rec+12, 4); !cmp.Equal(b, make([]byte, 4)) {
		t.Errorf("record not zeroed: %v", b)
	}

	call(t, task, "pty_proc_resize", rec, 120, 40)
	got, _ = DefaultPtyLayout.Decode(m, rec)
	want.Width, want.Height = 120, 40
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record after resize mismatch (-want +got):\n%s", diff)
	}

	// The remaining PTY imports leave the record alone.
	before := append([]byte(nil), m.Bytes[rec:rec+DefaultPtyLayout.Size]...)
	for _, name := range []string{"pty_proc_spawn", "pty_proc_tty_name", "pty_proc_close", "pty_proc_close_master"} {
		call(t, task, name, rec)
	}
	if diff := cmp.Diff(before, m.Bytes[rec:rec+DefaultPtyLayout.Size]); diff != "" {
		t.Errorf("record changed (-before +after):\n%s", diff)
	}
}

func TestPtyProcHostSize(t *testing.T) {
	task, m := newTask()
	task.Winsize = wasi.Winsize{Row: 50, Col: 132}
	call(t, task, "pty_proc_init", 0x800, 0, 0)
	got, _ := DefaultPtyLayout.Decode(m, 0x800)
	if got.Width != 132 || got.Height != 50 {
		t.Errorf("pty_proc_init size = %dx%d, want 132x50", got.Width, got.Height)
	}
}

func TestPtyLayoutValidate(t *testing.T) {
	if err := DefaultPtyLayout.Validate(); err != nil {
		t.Errorf("DefaultPtyLayout.Validate() = %v", err)
	}
	l := DefaultPtyLayout
	l.Height = l.Size - 1
	if err := l.Validate(); err == nil {
		t.Errorf("Validate() with height past the end succeeded")
	}
}
