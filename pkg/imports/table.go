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
	"wasish.dev/wasish/pkg/shim/stubs"
)

// Module is the module name the guest imports the shims from.
const Module = "env"

// Env is the table of every import the host provides in module "env".
var Env = newTable(Module,
	// Descriptors 0, 1 and 2 are never renumbered.
	PartiallySupported("fd", "dup", sig(n32(1), i32), ConvErrno, dup, "Returns the descriptor itself; no new descriptor is allocated."),
	PartiallySupported("fd", "dup2", sig(n32(2), i32), ConvErrno, dup2, "Returns newfd without duplicating oldfd."),
	PartiallySupported("fd", "dup3", sig(n32(3), i32), ConvErrno, dup3, "As dup2; flags are ignored."),
	PartiallySupported("fd", "fcntl", sig(n32(3), i32), ConvErrno, fcntl, "F_DUPFD returns the descriptor for 0, 1 and 2 and minfd otherwise. F_GETFD and F_GETFL return 0; F_SETFD and F_SETFL are ignored."),

	Supported("env", "uv_os_getenv", sig(n32(3), i32), ConvUV, uvOsGetenv),
	Supported("env", "uv_os_setenv", sig(n32(2), i32), ConvUV, uvOsSetenv),
	Supported("env", "uv_os_unsetenv", sig(n32(1), i32), ConvUV, uvOsUnsetenv),

	PartiallySupported("lock", "flock", sig(n32(2), i32), ConvDirect, flock, "There is a single process, so every lock is granted."),

	PartiallySupported("process", "getpid", sig(nil, i32), ConvDirect, getpid, "Always 1."),
	Unimplemented("process", "system", sig(n32(1), i32), ConvDirect, system, "Returns -1; there are no subprocesses."),
	Unimplemented("process", "tmpnam", sig(n32(1), i32), ConvDirect, tmpnam, "Returns NULL."),
	Unimplemented("process", "tmpfile", sig(nil, i32), ConvDirect, tmpfile, "Returns NULL."),
	Unimplemented("process", "clock", sig(nil, i64), ConvDirect, clock, "Returns 0."),
	Unimplemented("process", "umask", sig(n32(1), i32), ConvErrno, umask, "Returns 0 and sets ENOSYS."),

	Unimplemented("terminal", "tcgetattr", sig(n32(2), i32), ConvErrno, tcgetattr, "Returns ENOSYS."),
	Unimplemented("terminal", "tcsetattr", sig(n32(3), i32), ConvErrno, tcsetattr, "Returns ENOSYS."),
	Unimplemented("terminal", "cfgetospeed", sig(n32(1), i32), ConvDirect, cfgetospeed, "Returns B0."),
	Unimplemented("terminal", "cfgetispeed", sig(n32(1), i32), ConvDirect, cfgetispeed, "Returns B0."),
	Unimplemented("terminal", "cfsetospeed", sig(n32(2), i32), ConvDirect, cfsetospeed, "Reports success without effect."),
	Unimplemented("terminal", "cfsetispeed", sig(n32(2), i32), ConvDirect, cfsetispeed, "Reports success without effect."),
	Unimplemented("terminal", "ioctl", sig(n32(3), i32), ConvErrno, ioctl, "Returns ENOSYS."),

	Unimplemented("pty", "vim_forkpty", sig(n32(4), i32), ConvErrno, vimForkpty, "Returns ENOSYS."),
	PartiallySupported("pty", "pty_proc_init", sig(n32(3)), ConvDirect, ptyProcInit, "Fills a record for a process that is never started."),
	Unimplemented("pty", "pty_proc_spawn", sig(n32(1), i32), ConvDirect, ptyProcSpawn, "Returns UV_ENOSYS."),
	Unimplemented("pty", "pty_proc_tty_name", sig(n32(1), i32), ConvDirect, ptyProcTTYName, "Returns NULL."),
	PartiallySupported("pty", "pty_proc_resize", sig(n32(3)), ConvDirect, ptyProcResize, "Records the geometry in the caller's record."),
	Unimplemented("pty", "pty_proc_close", sig(n32(1)), ConvDirect, ptyProcClose, ""),
	Unimplemented("pty", "pty_proc_close_master", sig(n32(1)), ConvDirect, ptyProcCloseMaster, ""),
	Unimplemented("pty", "pty_proc_teardown", sig(n32(1)), ConvDirect, ptyProcTeardown, ""),

	Unimplemented("signal", "signal_init", sig(nil), ConvDirect, noop(stubs.SignalInit), "Signals are never delivered."),
	Unimplemented("signal", "signal_teardown", sig(nil), ConvDirect, noop(stubs.SignalTeardown), ""),
	Unimplemented("signal", "signal_start", sig(nil), ConvDirect, noop(stubs.SignalStart), ""),
	Unimplemented("signal", "signal_stop", sig(nil), ConvDirect, noop(stubs.SignalStop), ""),
	Unimplemented("signal", "signal_reject_deadly", sig(nil), ConvDirect, noop(stubs.SignalRejectDeadly), ""),
	Unimplemented("signal", "signal_accept_deadly", sig(nil), ConvDirect, noop(stubs.SignalAcceptDeadly), ""),
	Unimplemented("signal", "pthread_sigmask", sig(n32(3), i32), ConvErrno, pthreadSigmask, "Returns ENOSYS."),
	Unimplemented("signal", "pthread_exit", sig(n32(1)), ConvDirect, pthreadExit, "Returns to the caller."),

	Unimplemented("net", "getaddrinfo", sig(n32(4), i32), ConvDirect, getaddrinfo, "Returns EAI_NONAME and sets *res to NULL."),
	Unimplemented("net", "freeaddrinfo", sig(n32(1)), ConvDirect, freeaddrinfo, ""),
	Unimplemented("net", "getprotobyname", sig(n32(1), i32), ConvDirect, getprotobyname, "Returns NULL."),
	Unimplemented("net", "getprotobynumber", sig(n32(1), i32), ConvDirect, getprotobynumber, "Returns NULL."),

	PartiallySupported("server", "server_init", sig(n32(1), i32), ConvDirect, serverInit, "Reports success without listening."),
	Unimplemented("server", "server_teardown", sig(nil), ConvDirect, noop(stubs.ServerTeardown), ""),
	Unimplemented("server", "server_address_new", sig(n32(1), i32), ConvDirect, serverAddressNew, "Returns NULL."),
	Unimplemented("server", "server_owns_pipe_address", sig(n32(1), i32), ConvDirect, serverOwnsPipeAddress, "Returns false."),
	Unimplemented("server", "server_start", sig(n32(1), i32), ConvDirect, serverStart, "Reports success without listening."),
	PartiallySupported("server", "server_stop", sig(n32(1), i32), ConvDirect, serverStop, "Reports success."),
	Unimplemented("server", "server_address_list", sig(n32(1), i32), ConvDirect, serverAddressList, "Returns NULL and sets *size to 0."),

	Unimplemented("transcode", "iconv_open", sig(n32(2), i32), ConvDirect, iconvOpen, "Returns (iconv_t)-1."),
	Unimplemented("transcode", "iconv", sig(n32(5), i32), ConvDirect, iconv, "Returns (size_t)-1."),
	Unimplemented("transcode", "iconv_close", sig(n32(1), i32), ConvDirect, iconvClose, "Returns -1."),
	Unimplemented("transcode", "uv_utf16_length_as_wtf8", sig(n32(2), i32), ConvDirect, uvUTF16LengthAsWTF8, "Returns 0."),
	Unimplemented("transcode", "uv_wtf8_length_as_utf16", sig(n32(1), i32), ConvDirect, uvWTF8LengthAsUTF16, "Returns 0."),
	Unimplemented("transcode", "uv_utf16_to_wtf8", sig(n32(4), i32), ConvDirect, uvUTF16ToWTF8, "Returns UV_ENOSYS."),
	Unimplemented("transcode", "uv_wtf8_to_utf16", sig(n32(3)), ConvDirect, uvWTF8ToUTF16, "Writes nothing."),
	Unimplemented("transcode", "uv_random", sig(n32(6), i32), ConvDirect, uvRandom, "Returns UV_ENOSYS."),

	PartiallySupported("i18n", "gettext", sig(n32(1), i32), ConvDirect, gettext, "Returns the untranslated message."),
	PartiallySupported("i18n", "ngettext", sig(n32(3), i32), ConvDirect, ngettext, "Returns the singular message."),
	PartiallySupported("i18n", "bindtextdomain", sig(n32(2), i32), ConvDirect, bindtextdomain, "Returns NULL."),
	PartiallySupported("i18n", "textdomain", sig(n32(1), i32), ConvDirect, textdomain, "Returns NULL."),
)
