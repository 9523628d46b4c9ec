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

// Package imports binds the functions a guest imports from module "env" to
// their implementations.
//
// The guest is a POSIX program linked against wasi-libc. Whatever wasi-libc
// and the program's own shims leave undefined is imported from "env". Each
// import is described by an Import: its wasm signature, how failures are
// reported to the guest, how completely it is supported, and the handler
// that serves it. Env is the table of every import the host provides.
package imports

import (
	"fmt"
	"sort"

	"github.com/tetratelabs/wazero/api"
)

// Convention is how an import reports failure to the guest.
type Convention int

const (
	// ConvDirect returns the handler's value unchanged. Any error is
	// reported on the host only.
	ConvDirect Convention = iota

	// ConvErrno returns the handler's value and, on failure, stores the
	// error's errno into the guest's errno.
	ConvErrno

	// ConvUV returns 0 on success and the negated errno on failure, as
	// libuv functions do.
	ConvUV
)

// String implements fmt.Stringer.
func (c Convention) String() string {
	switch c {
	case ConvDirect:
		return "direct"
	case ConvErrno:
		return "errno"
	case ConvUV:
		return "uv"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// SupportLevel is how completely an import is implemented.
type SupportLevel int

const (
	// SupportUndocumented means nothing is known about the import.
	SupportUndocumented SupportLevel = iota

	// SupportUnimplemented means the import always reports "not
	// supported" or a null result.
	SupportUnimplemented

	// SupportPartial means the import succeeds but with limited effect.
	SupportPartial

	// SupportFull means the import behaves as on a POSIX host.
	SupportFull
)

// String implements fmt.Stringer.
func (l SupportLevel) String() string {
	switch l {
	case SupportUnimplemented:
		return "Unimplemented"
	case SupportPartial:
		return "Partial Support"
	case SupportFull:
		return "Full Support"
	default:
		return "Undocumented"
	}
}

// Fn serves one call of an import. It returns the raw result value, which is
// ignored for imports without results, and an error carrying the errno.
type Fn func(t *Task, args Arguments) (uint64, error)

// Import describes one function of the "env" module.
type Import struct {
	// Name is the import name.
	Name string

	// Group is a short name for the subsystem the import belongs to.
	Group string

	// Params and Results are the wasm signature.
	Params  []api.ValueType
	Results []api.ValueType

	Conv         Convention
	SupportLevel SupportLevel

	// Note describes the behavior of an import that is not fully supported.
	Note string

	Fn Fn
}

// Signature returns the signature in wasm text form, e.g. "(i32, i32) -> i32".
func (i *Import) Signature() string {
	return signature(i.Params, i.Results)
}

func signature(params, results []api.ValueType) string {
	s := "("
	for n, p := range params {
		if n > 0 {
			s += ", "
		}
		s += api.ValueTypeName(p)
	}
	s += ")"
	switch len(results) {
	case 0:
	case 1:
		s += " -> " + api.ValueTypeName(results[0])
	default:
		s += " -> ("
		for n, r := range results {
			if n > 0 {
				s += ", "
			}
			s += api.ValueTypeName(r)
		}
		s += ")"
	}
	return s
}

// Table is a set of imports served as one host module.
type Table struct {
	// Module is the module name the guest imports from.
	Module string

	// Imports maps import name to its description.
	Imports map[string]Import
}

// newTable builds a Table, panicking on duplicate names.
func newTable(module string, imports ...Import) *Table {
	t := &Table{Module: module, Imports: make(map[string]Import, len(imports))}
	for _, imp := range imports {
		if _, ok := t.Imports[imp.Name]; ok {
			panic(fmt.Sprintf("duplicate import %q in module %q", imp.Name, module))
		}
		t.Imports[imp.Name] = imp
	}
	return t
}

// Lookup returns the import called name.
func (t *Table) Lookup(name string) (Import, bool) {
	imp, ok := t.Imports[name]
	return imp, ok
}

// Names returns all import names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Imports))
	for name := range t.Imports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Constructors used by the tables, in the spirit of syscall tables.

// Supported returns a fully supported import.
func Supported(group, name string, sig Sig, conv Convention, fn Fn) Import {
	return Import{Name: name, Group: group, Params: sig.Params, Results: sig.Results, Conv: conv, SupportLevel: SupportFull, Fn: fn}
}

// PartiallySupported returns an import that succeeds with limited effect.
func PartiallySupported(group, name string, sig Sig, conv Convention, fn Fn, note string) Import {
	return Import{Name: name, Group: group, Params: sig.Params, Results: sig.Results, Conv: conv, SupportLevel: SupportPartial, Note: note, Fn: fn}
}

// Unimplemented returns an import that always reports "not supported".
func Unimplemented(group, name string, sig Sig, conv Convention, fn Fn, note string) Import {
	return Import{Name: name, Group: group, Params: sig.Params, Results: sig.Results, Conv: conv, SupportLevel: SupportUnimplemented, Note: note, Fn: fn}
}

// Sig is a wasm function signature.
type Sig struct {
	Params  []api.ValueType
	Results []api.ValueType
}

const (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// sig returns a Sig with the given parameters and results.
func sig(params []api.ValueType, results ...api.ValueType) Sig {
	return Sig{Params: params, Results: results}
}

// n32 returns n i32 parameters.
func n32(n int) []api.ValueType {
	p := make([]api.ValueType, n)
	for i := range p {
		p[i] = i32
	}
	return p
}
