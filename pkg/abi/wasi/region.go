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

package wasi

// Reserved region geometry. The control slot holds the two 32-bit words the
// stack-rewinding runtime keeps its bookkeeping in (current stack position and
// stack limit); the auxiliary stack receives the saved call frames.
const (
	RegionDataSize         = 8
	RegionDataAlign        = 8
	RegionStackAlign       = 16
	RegionDefaultStackSize = 64 << 20
)

// Names of the three region accessors a guest exports.
const (
	RegionExportPrefix     = "nvim_asyncify_"
	RegionExportDataPtr    = "get_data_ptr"
	RegionExportStackStart = "get_stack_start"
	RegionExportStackEnd   = "get_stack_end"
)
