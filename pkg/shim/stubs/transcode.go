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
	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/usermem"
)

// IconvInvalid is (iconv_t)-1 and (size_t)-1 on wasm32.
const IconvInvalid = ^uint32(0)

// IconvOpen returns IconvInvalid; no conversions are available.
func IconvOpen(tocode, fromcode usermem.Addr) uint32 {
	return IconvInvalid
}

// Iconv returns IconvInvalid without consuming input.
func Iconv(cd uint32, inbuf, inbytesleft, outbuf, outbytesleft usermem.Addr) uint32 {
	return IconvInvalid
}

// IconvClose returns -1.
func IconvClose(cd uint32) int32 {
	return -1
}

// UTF16LengthAsWTF8 reports a length of 0.
func UTF16LengthAsWTF8(utf16 usermem.Addr, utf16Len int32) uint32 {
	return 0
}

// WTF8LengthAsUTF16 reports a length of 0.
func WTF8LengthAsUTF16(wtf8 usermem.Addr) int32 {
	return 0
}

// UTF16ToWTF8 reports UV_ENOSYS.
func UTF16ToWTF8(utf16 usermem.Addr, utf16Len int32, wtf8Ptr, wtf8LenPtr usermem.Addr) int32 {
	return wasi.UV_ENOSYS
}

// WTF8ToUTF16 writes nothing.
func WTF8ToUTF16(wtf8, utf16 usermem.Addr, utf16Len uint32) {}

// Random reports UV_ENOSYS. Guests get randomness from WASI random_get.
func Random(loop, req, buf usermem.Addr, buflen, flags uint32, cb usermem.Addr) int32 {
	return wasi.UV_ENOSYS
}
