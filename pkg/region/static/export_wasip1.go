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

//go:build wasip1

package static

// The export names must stay in sync with wasi.RegionExportPrefix and the
// wasi.RegionExport* suffixes; go:wasmexport only accepts literals.

//go:wasmexport nvim_asyncify_get_data_ptr
func exportDataPtr() uint32 {
	return uint32(DataPtr())
}

//go:wasmexport nvim_asyncify_get_stack_start
func exportStackStart() uint32 {
	return uint32(StackStart())
}

//go:wasmexport nvim_asyncify_get_stack_end
func exportStackEnd() uint32 {
	return uint32(StackEnd())
}
