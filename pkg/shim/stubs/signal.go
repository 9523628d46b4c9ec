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

// The editor's signal subsystem hooks. No signals are delivered to the
// guest, so there is nothing to install or remove.

func SignalInit()         {}
func SignalTeardown()     {}
func SignalStart()        {}
func SignalStop()         {}
func SignalRejectDeadly() {}
func SignalAcceptDeadly() {}

// PthreadSigmask fails with ENOSYS.
func PthreadSigmask(how int32, set, oldset usermem.Addr) (int32, error) {
	return -1, wasierr.ENOSYS
}

// PthreadExit returns to the caller; there is no other thread to switch to.
func PthreadExit(retval usermem.Addr) {}
