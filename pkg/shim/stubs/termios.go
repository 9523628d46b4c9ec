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

// Tcgetattr fails with ENOSYS; terminal attributes are owned by the host.
func Tcgetattr(fd int32, termios usermem.Addr) (int32, error) {
	return -1, wasierr.ENOSYS
}

// Tcsetattr fails with ENOSYS.
func Tcsetattr(fd, optionalActions int32, termios usermem.Addr) (int32, error) {
	return -1, wasierr.ENOSYS
}

// Cfgetospeed reports speed 0.
func Cfgetospeed(termios usermem.Addr) uint32 {
	return 0
}

// Cfgetispeed reports speed 0.
func Cfgetispeed(termios usermem.Addr) uint32 {
	return 0
}

// Cfsetospeed accepts and discards speed.
func Cfsetospeed(termios usermem.Addr, speed uint32) int32 {
	return 0
}

// Cfsetispeed accepts and discards speed.
func Cfsetispeed(termios usermem.Addr, speed uint32) int32 {
	return 0
}

// Ioctl fails with ENOSYS for every request.
func Ioctl(fd int32, request uint32, va usermem.Addr) (int32, error) {
	return -1, wasierr.ENOSYS
}
