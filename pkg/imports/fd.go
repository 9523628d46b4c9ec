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
	"wasish.dev/wasish/pkg/errors/wasierr"
	"wasish.dev/wasish/pkg/shim/fd"
	"wasish.dev/wasish/pkg/usermem"
)

// errnoFailure is what a ConvErrno handler returns with its error.
var errnoFailure = i32Result(-1)

func dup(t *Task, args Arguments) (uint64, error) {
	nfd, err := fd.Dup(args.Int(0))
	if err != nil {
		return errnoFailure, err
	}
	return i32Result(nfd), nil
}

func dup2(t *Task, args Arguments) (uint64, error) {
	nfd, err := fd.Dup2(args.Int(0), args.Int(1))
	if err != nil {
		return errnoFailure, err
	}
	return i32Result(nfd), nil
}

func dup3(t *Task, args Arguments) (uint64, error) {
	nfd, err := fd.Dup3(args.Int(0), args.Int(1), args.Int(2))
	if err != nil {
		return errnoFailure, err
	}
	return i32Result(nfd), nil
}

// fcntl implements fcntl(fd, cmd, ...). The third argument points to the
// variadic arguments; the first int lives at its start.
func fcntl(t *Task, args Arguments) (uint64, error) {
	fdno, cmd, va := args.Int(0), args.Int(1), args.Pointer(2)
	var extra []int32
	if fd.TakesArg(cmd) {
		if va.IsNull() {
			return errnoFailure, wasierr.EINVAL
		}
		arg, err := usermem.CopyInInt32(t.Mem, va)
		if err != nil {
			return errnoFailure, wasierr.EINVAL
		}
		extra = append(extra, arg)
	}
	ret, err := fd.Fcntl(fdno, cmd, extra...)
	if err != nil {
		return errnoFailure, err
	}
	return i32Result(ret), nil
}
