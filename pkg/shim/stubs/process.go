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
	"wasish.dev/wasish/pkg/errors/wasierr"
	"wasish.dev/wasish/pkg/usermem"
)

// Pid is the process ID of the only process in the sandbox.
const Pid = 1

// Getpid returns Pid.
func Getpid() int32 {
	return Pid
}

// System reports failure; there is no shell.
func System(command usermem.Addr) int32 {
	return -1
}

// Tmpnam returns NULL; there is no temporary directory.
func Tmpnam(s usermem.Addr) usermem.Addr {
	return 0
}

// Tmpfile returns NULL.
func Tmpfile() usermem.Addr {
	return 0
}

// Clock reports no processor time used.
func Clock() int64 {
	return 0
}

// Umask returns a previous mask of 0 and ENOSYS; there are no permission
// bits to mask.
func Umask(mask uint32) (uint32, error) {
	return 0, wasierr.ENOSYS
}
