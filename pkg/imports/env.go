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
	"wasish.dev/wasish/pkg/shim/env"
)

func uvOsGetenv(t *Task, args Arguments) (uint64, error) {
	return 0, env.GetAt(t.Mem, t.Env, args.Pointer(0), args.Pointer(1), args.Pointer(2))
}

func uvOsSetenv(t *Task, args Arguments) (uint64, error) {
	return 0, env.SetAt(t.Mem, t.Env, args.Pointer(0), args.Pointer(1))
}

func uvOsUnsetenv(t *Task, args Arguments) (uint64, error) {
	return 0, env.UnsetAt(t.Mem, t.Env, args.Pointer(0))
}
