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

// Package fd implements descriptor duplication for a runtime whose
// descriptor table is owned by the host and cannot be extended by the guest.
//
// Nothing here allocates or tracks descriptors. A duplicate is always an
// alias resolved per call, and the standard streams 0, 1 and 2 always alias
// themselves so that redirecting them can never detach the guest from its
// terminal.
package fd

import (
	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/errors/wasierr"
)

// IsIdentity reports whether fd is a standard stream.
func IsIdentity(fd int32) bool {
	return fd >= wasi.STDIN_FILENO && fd <= wasi.STDERR_FILENO
}

// Alias returns the descriptor a duplicate of fd requested at target
// resolves to.
func Alias(fd, target int32) int32 {
	if IsIdentity(fd) {
		return fd
	}
	return target
}

// Dup returns fd itself.
func Dup(fd int32) (int32, error) {
	if fd < 0 {
		return -1, wasierr.EINVAL
	}
	return fd, nil
}

// Dup2 returns newfd without touching oldfd.
func Dup2(oldfd, newfd int32) (int32, error) {
	if newfd < 0 {
		return -1, wasierr.EINVAL
	}
	return newfd, nil
}

// Dup3 is Dup2; flags are accepted and ignored.
func Dup3(oldfd, newfd, flags int32) (int32, error) {
	return Dup2(oldfd, newfd)
}

// TakesArg reports whether cmd consumes a variadic int argument.
func TakesArg(cmd int32) bool {
	switch cmd {
	case wasi.F_DUPFD, wasi.F_DUPFD_CLOEXEC, wasi.F_SETFD, wasi.F_SETFL:
		return true
	default:
		return false
	}
}

// Fcntl performs cmd on fd. args holds the variadic arguments; commands that
// take one fail with EINVAL when it is missing.
//
// F_DUPFD and F_DUPFD_CLOEXEC return the standard streams unchanged and any
// other descriptor as the requested minimum, verbatim. Flag queries report 0
// and flag updates are accepted and discarded. Other commands are ENOSYS.
func Fcntl(fd, cmd int32, args ...int32) (int32, error) {
	if TakesArg(cmd) && len(args) == 0 {
		return -1, wasierr.EINVAL
	}
	switch cmd {
	case wasi.F_DUPFD, wasi.F_DUPFD_CLOEXEC:
		return Alias(fd, args[0]), nil
	case wasi.F_GETFD, wasi.F_GETFL:
		return 0, nil
	case wasi.F_SETFD, wasi.F_SETFL:
		return 0, nil
	default:
		return -1, wasierr.ENOSYS
	}
}
