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
	"time"

	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/abi/wasi/errno"
	"wasish.dev/wasish/pkg/errors/wasierr"
	"wasish.dev/wasish/pkg/log"
	"wasish.dev/wasish/pkg/shim/env"
	"wasish.dev/wasish/pkg/usermem"
)

// Task is the host-side state of one guest instance that import handlers
// operate on.
//
// A guest is single-threaded and every import runs on the goroutine that
// called into the guest, so a Task is never used concurrently.
type Task struct {
	// Mem is the guest's linear memory. The dispatcher replaces it with the
	// calling module's memory on every call.
	Mem usermem.IO

	// Env is the environment served by the uv_os_*env imports.
	Env env.Store

	// Pty is the layout of the guest's pseudo-terminal process record.
	Pty PtyLayout

	// Winsize is the geometry reported for new pseudo-terminal processes.
	// Zero dimensions mean the defaults.
	Winsize wasi.Winsize

	// ErrnoAddr is the address of the guest's errno. Zero if the guest does
	// not export it, in which case errno values are dropped.
	ErrnoAddr usermem.Addr

	// Strace enables a debug log line for every import call.
	Strace bool

	// warn logs unsupported calls no more than once per warnEvery.
	warn log.Logger
}

// warnEvery is the minimum interval between warnings about unsupported
// imports.
const warnEvery = 10 * time.Second

func (t *Task) warner() log.Logger {
	if t.warn == nil {
		t.warn = log.BasicRateLimitedLogger(warnEvery)
	}
	return t.warn
}

// SetErrno stores e into the guest's errno. It is a no-op if the errno
// address is unknown.
func (t *Task) SetErrno(e errno.Errno) error {
	if t.ErrnoAddr.IsNull() {
		return nil
	}
	return usermem.CopyOutUint32(t.Mem, t.ErrnoAddr, uint32(e))
}

// complete applies imp's convention to the handler's result.
func (t *Task) complete(imp *Import, ret uint64, err error) uint64 {
	if err == nil {
		return ret
	}
	switch imp.Conv {
	case ConvErrno:
		if serr := t.SetErrno(wasierr.ToErrno(err)); serr != nil {
			t.warner().Warningf("%s: storing errno at %#x: %v", imp.Name, t.ErrnoAddr, serr)
		}
		return ret
	case ConvUV:
		return i32Result(wasi.UVErr(wasierr.ToErrno(err)))
	default:
		t.warner().Warningf("%s: %v", imp.Name, err)
		return ret
	}
}
