// Copyright 2021 The gVisor Authors.
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

// Package wasierr contains WASI errno codes exported as error interface
// pointers. This allows for fast comparison and return operations comparable
// to unix.Errno constants, while carrying the guest's errno numbering.
package wasierr

import (
	goerrors "errors"

	"golang.org/x/sys/unix"
	"wasish.dev/wasish/pkg/abi/wasi/errno"
	"wasish.dev/wasish/pkg/errors"
)

// The following errors are the guest-visible errno values. Unlike
// unix.Errno, their Errno method returns the WASI number.
var (
	noError         *errors.Error = nil
	E2BIG                         = errors.New(errno.E2BIG, "argument list too long")
	EACCES                        = errors.New(errno.EACCES, "permission denied")
	EADDRINUSE                    = errors.New(errno.EADDRINUSE, "address already in use")
	EADDRNOTAVAIL                 = errors.New(errno.EADDRNOTAVAIL, "cannot assign requested address")
	EAFNOSUPPORT                  = errors.New(errno.EAFNOSUPPORT, "address family not supported by protocol")
	EAGAIN                        = errors.New(errno.EAGAIN, "try again")
	EALREADY                      = errors.New(errno.EALREADY, "operation already in progress")
	EBADF                         = errors.New(errno.EBADF, "bad file number")
	EBADMSG                       = errors.New(errno.EBADMSG, "not a data message")
	EBUSY                         = errors.New(errno.EBUSY, "device or resource busy")
	ECANCELED                     = errors.New(errno.ECANCELED, "operation canceled")
	ECHILD                        = errors.New(errno.ECHILD, "no child processes")
	ECONNABORTED                  = errors.New(errno.ECONNABORTED, "software caused connection abort")
	ECONNREFUSED                  = errors.New(errno.ECONNREFUSED, "connection refused")
	ECONNRESET                    = errors.New(errno.ECONNRESET, "connection reset by peer")
	EDEADLK                       = errors.New(errno.EDEADLK, "resource deadlock would occur")
	EDESTADDRREQ                  = errors.New(errno.EDESTADDRREQ, "destination address required")
	EDOM                          = errors.New(errno.EDOM, "math argument out of domain of func")
	EDQUOT                        = errors.New(errno.EDQUOT, "quota exceeded")
	EEXIST                        = errors.New(errno.EEXIST, "file exists")
	EFAULT                        = errors.New(errno.EFAULT, "bad address")
	EFBIG                         = errors.New(errno.EFBIG, "file too large")
	EHOSTUNREACH                  = errors.New(errno.EHOSTUNREACH, "no route to host")
	EIDRM                         = errors.New(errno.EIDRM, "identifier removed")
	EILSEQ                        = errors.New(errno.EILSEQ, "illegal byte sequence")
	EINPROGRESS                   = errors.New(errno.EINPROGRESS, "operation now in progress")
	EINTR                         = errors.New(errno.EINTR, "interrupted system call")
	EINVAL                        = errors.New(errno.EINVAL, "invalid argument")
	EIO                           = errors.New(errno.EIO, "I/O error")
	EISCONN                       = errors.New(errno.EISCONN, "transport endpoint is already connected")
	EISDIR                        = errors.New(errno.EISDIR, "is a directory")
	ELOOP                         = errors.New(errno.ELOOP, "too many symbolic links encountered")
	EMFILE                        = errors.New(errno.EMFILE, "too many open files")
	EMLINK                        = errors.New(errno.EMLINK, "too many links")
	EMSGSIZE                      = errors.New(errno.EMSGSIZE, "message too long")
	EMULTIHOP                     = errors.New(errno.EMULTIHOP, "multihop attempted")
	ENAMETOOLONG                  = errors.New(errno.ENAMETOOLONG, "file name too long")
	ENETDOWN                      = errors.New(errno.ENETDOWN, "network is down")
	ENETRESET                     = errors.New(errno.ENETRESET, "network dropped connection because of reset")
	ENETUNREACH                   = errors.New(errno.ENETUNREACH, "network is unreachable")
	ENFILE                        = errors.New(errno.ENFILE, "file table overflow")
	ENOBUFS                       = errors.New(errno.ENOBUFS, "no buffer space available")
	ENODEV                        = errors.New(errno.ENODEV, "no such device")
	ENOENT                        = errors.New(errno.ENOENT, "no such file or directory")
	ENOEXEC                       = errors.New(errno.ENOEXEC, "exec format error")
	ENOLCK                        = errors.New(errno.ENOLCK, "no record locks available")
	ENOLINK                       = errors.New(errno.ENOLINK, "link has been severed")
	ENOMEM                        = errors.New(errno.ENOMEM, "out of memory")
	ENOMSG                        = errors.New(errno.ENOMSG, "no message of desired type")
	ENOPROTOOPT                   = errors.New(errno.ENOPROTOOPT, "protocol not available")
	ENOSPC                        = errors.New(errno.ENOSPC, "no space left on device")
	ENOSYS                        = errors.New(errno.ENOSYS, "function not implemented")
	ENOTCONN                      = errors.New(errno.ENOTCONN, "transport endpoint is not connected")
	ENOTDIR                       = errors.New(errno.ENOTDIR, "not a directory")
	ENOTEMPTY                     = errors.New(errno.ENOTEMPTY, "directory not empty")
	ENOTRECOVERABLE               = errors.New(errno.ENOTRECOVERABLE, "state not recoverable")
	ENOTSOCK                      = errors.New(errno.ENOTSOCK, "socket operation on non-socket")
	ENOTSUP                       = errors.New(errno.ENOTSUP, "operation not supported")
	ENOTTY                        = errors.New(errno.ENOTTY, "not a typewriter")
	ENXIO                         = errors.New(errno.ENXIO, "no such device or address")
	EOVERFLOW                     = errors.New(errno.EOVERFLOW, "value too large for defined data type")
	EOWNERDEAD                    = errors.New(errno.EOWNERDEAD, "owner died")
	EPERM                         = errors.New(errno.EPERM, "operation not permitted")
	EPIPE                         = errors.New(errno.EPIPE, "broken pipe")
	EPROTO                        = errors.New(errno.EPROTO, "protocol error")
	EPROTONOSUPPORT               = errors.New(errno.EPROTONOSUPPORT, "protocol not supported")
	EPROTOTYPE                    = errors.New(errno.EPROTOTYPE, "protocol wrong type for socket")
	ERANGE                        = errors.New(errno.ERANGE, "math result not representable")
	EROFS                         = errors.New(errno.EROFS, "read-only file system")
	ESPIPE                        = errors.New(errno.ESPIPE, "illegal seek")
	ESRCH                         = errors.New(errno.ESRCH, "no such process")
	ESTALE                        = errors.New(errno.ESTALE, "stale file handle")
	ETIMEDOUT                     = errors.New(errno.ETIMEDOUT, "connection timed out")
	ETXTBSY                       = errors.New(errno.ETXTBSY, "text file busy")
	EXDEV                         = errors.New(errno.EXDEV, "cross-device link")
	ENOTCAPABLE                   = errors.New(errno.ENOTCAPABLE, "capabilities insufficient")

	// Errors equivalent to other errors.
	EWOULDBLOCK = EAGAIN
	EOPNOTSUPP  = ENOTSUP
)

// errorSlice holds errors by errno for fast translation from a WASI errno
// number to its *errors.Error. The numbering is dense, so every index up to
// ENOTCAPABLE is populated.
var errorSlice = []*errors.Error{
	errno.NOERRNO:         noError,
	errno.E2BIG:           E2BIG,
	errno.EACCES:          EACCES,
	errno.EADDRINUSE:      EADDRINUSE,
	errno.EADDRNOTAVAIL:   EADDRNOTAVAIL,
	errno.EAFNOSUPPORT:    EAFNOSUPPORT,
	errno.EAGAIN:          EAGAIN,
	errno.EALREADY:        EALREADY,
	errno.EBADF:           EBADF,
	errno.EBADMSG:         EBADMSG,
	errno.EBUSY:           EBUSY,
	errno.ECANCELED:       ECANCELED,
	errno.ECHILD:          ECHILD,
	errno.ECONNABORTED:    ECONNABORTED,
	errno.ECONNREFUSED:    ECONNREFUSED,
	errno.ECONNRESET:      ECONNRESET,
	errno.EDEADLK:         EDEADLK,
	errno.EDESTADDRREQ:    EDESTADDRREQ,
	errno.EDOM:            EDOM,
	errno.EDQUOT:          EDQUOT,
	errno.EEXIST:          EEXIST,
	errno.EFAULT:          EFAULT,
	errno.EFBIG:           EFBIG,
	errno.EHOSTUNREACH:    EHOSTUNREACH,
	errno.EIDRM:           EIDRM,
	errno.EILSEQ:          EILSEQ,
	errno.EINPROGRESS:     EINPROGRESS,
	errno.EINTR:           EINTR,
	errno.EINVAL:          EINVAL,
	errno.EIO:             EIO,
	errno.EISCONN:         EISCONN,
	errno.EISDIR:          EISDIR,
	errno.ELOOP:           ELOOP,
	errno.EMFILE:          EMFILE,
	errno.EMLINK:          EMLINK,
	errno.EMSGSIZE:        EMSGSIZE,
	errno.EMULTIHOP:       EMULTIHOP,
	errno.ENAMETOOLONG:    ENAMETOOLONG,
	errno.ENETDOWN:        ENETDOWN,
	errno.ENETRESET:       ENETRESET,
	errno.ENETUNREACH:     ENETUNREACH,
	errno.ENFILE:          ENFILE,
	errno.ENOBUFS:         ENOBUFS,
	errno.ENODEV:          ENODEV,
	errno.ENOENT:          ENOENT,
	errno.ENOEXEC:         ENOEXEC,
	errno.ENOLCK:          ENOLCK,
	errno.ENOLINK:         ENOLINK,
	errno.ENOMEM:          ENOMEM,
	errno.ENOMSG:          ENOMSG,
	errno.ENOPROTOOPT:     ENOPROTOOPT,
	errno.ENOSPC:          ENOSPC,
	errno.ENOSYS:          ENOSYS,
	errno.ENOTCONN:        ENOTCONN,
	errno.ENOTDIR:         ENOTDIR,
	errno.ENOTEMPTY:       ENOTEMPTY,
	errno.ENOTRECOVERABLE: ENOTRECOVERABLE,
	errno.ENOTSOCK:        ENOTSOCK,
	errno.ENOTSUP:         ENOTSUP,
	errno.ENOTTY:          ENOTTY,
	errno.ENXIO:           ENXIO,
	errno.EOVERFLOW:       EOVERFLOW,
	errno.EOWNERDEAD:      EOWNERDEAD,
	errno.EPERM:           EPERM,
	errno.EPIPE:           EPIPE,
	errno.EPROTO:          EPROTO,
	errno.EPROTONOSUPPORT: EPROTONOSUPPORT,
	errno.EPROTOTYPE:      EPROTOTYPE,
	errno.ERANGE:          ERANGE,
	errno.EROFS:           EROFS,
	errno.ESPIPE:          ESPIPE,
	errno.ESRCH:           ESRCH,
	errno.ESTALE:          ESTALE,
	errno.ETIMEDOUT:       ETIMEDOUT,
	errno.ETXTBSY:         ETXTBSY,
	errno.EXDEV:           EXDEV,
	errno.ENOTCAPABLE:     ENOTCAPABLE,
}

// hostErrors translates host errno values, whose numbering depends on the
// host OS, into their WASI equivalents.
var hostErrors = map[unix.Errno]*errors.Error{
	unix.E2BIG:           E2BIG,
	unix.EACCES:          EACCES,
	unix.EADDRINUSE:      EADDRINUSE,
	unix.EADDRNOTAVAIL:   EADDRNOTAVAIL,
	unix.EAFNOSUPPORT:    EAFNOSUPPORT,
	unix.EAGAIN:          EAGAIN,
	unix.EALREADY:        EALREADY,
	unix.EBADF:           EBADF,
	unix.EBADMSG:         EBADMSG,
	unix.EBUSY:           EBUSY,
	unix.ECANCELED:       ECANCELED,
	unix.ECHILD:          ECHILD,
	unix.ECONNABORTED:    ECONNABORTED,
	unix.ECONNREFUSED:    ECONNREFUSED,
	unix.ECONNRESET:      ECONNRESET,
	unix.EDEADLK:         EDEADLK,
	unix.EDESTADDRREQ:    EDESTADDRREQ,
	unix.EDOM:            EDOM,
	unix.EDQUOT:          EDQUOT,
	unix.EEXIST:          EEXIST,
	unix.EFAULT:          EFAULT,
	unix.EFBIG:           EFBIG,
	unix.EHOSTUNREACH:    EHOSTUNREACH,
	unix.EIDRM:           EIDRM,
	unix.EILSEQ:          EILSEQ,
	unix.EINPROGRESS:     EINPROGRESS,
	unix.EINTR:           EINTR,
	unix.EINVAL:          EINVAL,
	unix.EIO:             EIO,
	unix.EISCONN:         EISCONN,
	unix.EISDIR:          EISDIR,
	unix.ELOOP:           ELOOP,
	unix.EMFILE:          EMFILE,
	unix.EMLINK:          EMLINK,
	unix.EMSGSIZE:        EMSGSIZE,
	unix.EMULTIHOP:       EMULTIHOP,
	unix.ENAMETOOLONG:    ENAMETOOLONG,
	unix.ENETDOWN:        ENETDOWN,
	unix.ENETRESET:       ENETRESET,
	unix.ENETUNREACH:     ENETUNREACH,
	unix.ENFILE:          ENFILE,
	unix.ENOBUFS:         ENOBUFS,
	unix.ENODEV:          ENODEV,
	unix.ENOENT:          ENOENT,
	unix.ENOEXEC:         ENOEXEC,
	unix.ENOLCK:          ENOLCK,
	unix.ENOLINK:         ENOLINK,
	unix.ENOMEM:          ENOMEM,
	unix.ENOMSG:          ENOMSG,
	unix.ENOPROTOOPT:     ENOPROTOOPT,
	unix.ENOSPC:          ENOSPC,
	unix.ENOSYS:          ENOSYS,
	unix.ENOTCONN:        ENOTCONN,
	unix.ENOTDIR:         ENOTDIR,
	unix.ENOTEMPTY:       ENOTEMPTY,
	unix.ENOTRECOVERABLE: ENOTRECOVERABLE,
	unix.ENOTSOCK:        ENOTSOCK,
	unix.ENOTSUP:         ENOTSUP,
	unix.ENOTTY:          ENOTTY,
	unix.ENXIO:           ENXIO,
	unix.EOVERFLOW:       EOVERFLOW,
	unix.EOWNERDEAD:      EOWNERDEAD,
	unix.EPERM:           EPERM,
	unix.EPIPE:           EPIPE,
	unix.EPROTO:          EPROTO,
	unix.EPROTONOSUPPORT: EPROTONOSUPPORT,
	unix.EPROTOTYPE:      EPROTOTYPE,
	unix.ERANGE:          ERANGE,
	unix.EROFS:           EROFS,
	unix.ESPIPE:          ESPIPE,
	unix.ESRCH:           ESRCH,
	unix.ESTALE:          ESTALE,
	unix.ETIMEDOUT:       ETIMEDOUT,
	unix.ETXTBSY:         ETXTBSY,
	unix.EXDEV:           EXDEV,
}

// FromErrno returns the error for a WASI errno number, or nil for NOERRNO.
// Numbers outside the WASI range map to EIO.
func FromErrno(e errno.Errno) error {
	if int(e) >= len(errorSlice) {
		return EIO
	}
	return ToError(errorSlice[e])
}

// FromHost translates an error returned by the host OS into a guest error.
// Errors that do not wrap a unix.Errno, or whose errno has no WASI
// equivalent, become EIO.
func FromHost(err error) error {
	if err == nil {
		return nil
	}
	var hostErr unix.Errno
	if !goerrors.As(err, &hostErr) {
		return EIO
	}
	if hostErr == 0 {
		return nil
	}
	if e, ok := hostErrors[hostErr]; ok {
		return e
	}
	return EIO
}

// ToErrno extracts the guest errno from err. Errors that are not
// *errors.Error values become EIO.
func ToErrno(err error) errno.Errno {
	if err == nil {
		return errno.NOERRNO
	}
	var e *errors.Error
	if goerrors.As(err, &e) && e != nil {
		return e.Errno()
	}
	return errno.EIO
}

// ToError converts a wasierr to an error type.
func ToError(err *errors.Error) error {
	if err == noError {
		return nil
	}
	return err
}

// Equals compares a wasierr to a given error.
func Equals(e *errors.Error, err error) bool {
	if err == nil {
		return e == noError
	}
	return ToErrno(err) == e.Errno()
}
