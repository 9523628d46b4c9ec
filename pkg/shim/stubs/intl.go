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

import "wasish.dev/wasish/pkg/usermem"

// No message catalogs are installed: every message translates to itself.

// Gettext returns msg.
func Gettext(msg usermem.Addr) usermem.Addr {
	return msg
}

// Ngettext returns msgid1 whatever n is.
func Ngettext(msgid1, msgid2 usermem.Addr, n uint32) usermem.Addr {
	return msgid1
}

// Bindtextdomain returns 0.
func Bindtextdomain(domainname, dirname usermem.Addr) int32 {
	return 0
}

// Textdomain returns 0.
func Textdomain(domainname usermem.Addr) int32 {
	return 0
}
