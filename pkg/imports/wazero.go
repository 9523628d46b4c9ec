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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"wasish.dev/wasish/pkg/log"
)

// ErrUnresolved is returned when a guest imports something from the shim
// module that the table cannot serve.
var ErrUnresolved = errors.New("unresolved imports")

// Unresolved describes a guest import the table cannot serve.
type Unresolved struct {
	// Name is the import name.
	Name string

	// Got is the signature the guest declares.
	Got string

	// Want is the signature the table provides. Empty if the table has no
	// such import.
	Want string
}

func (u Unresolved) String() string {
	if u.Want == "" {
		return fmt.Sprintf("%s%s: not provided", u.Name, u.Got)
	}
	return fmt.Sprintf("%s%s: provided as %s", u.Name, u.Got, u.Want)
}

// Resolve returns the function imports among defs that belong to tb's module
// but are missing from tb or have a different signature.
func (tb *Table) Resolve(defs []api.FunctionDefinition) []Unresolved {
	var out []Unresolved
	for _, def := range defs {
		module, name, ok := def.Import()
		if !ok || module != tb.Module {
			continue
		}
		got := signature(def.ParamTypes(), def.ResultTypes())
		imp, ok := tb.Lookup(name)
		if !ok {
			out = append(out, Unresolved{Name: name, Got: got})
			continue
		}
		if want := imp.Signature(); want != got {
			out = append(out, Unresolved{Name: name, Got: got, Want: want})
		}
	}
	return out
}

// Check returns an error wrapping ErrUnresolved if the compiled guest imports
// anything from tb's module that tb cannot serve.
func (tb *Table) Check(compiled wazero.CompiledModule) error {
	unresolved := tb.Resolve(compiled.ImportedFunctions())
	if len(unresolved) == 0 {
		return nil
	}
	lines := make([]string, 0, len(unresolved))
	for _, u := range unresolved {
		lines = append(lines, u.String())
	}
	return fmt.Errorf("%w from module %q: %s", ErrUnresolved, tb.Module, strings.Join(lines, "; "))
}

// Instantiate builds the host module for tb in r, with every handler bound to
// t.
func (tb *Table) Instantiate(ctx context.Context, r wazero.Runtime, t *Task) (api.Module, error) {
	b := r.NewHostModuleBuilder(tb.Module)
	for _, name := range tb.Names() {
		imp := tb.Imports[name]
		b = b.NewFunctionBuilder().
			WithGoModuleFunction(dispatcher(&imp, t), imp.Params, imp.Results).
			WithName(imp.Name).
			Export(imp.Name)
	}
	// Created here rather than lazily so that it follows the log target
	// installed at startup.
	t.warn = log.BasicRateLimitedLogger(warnEvery)
	mod, err := b.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("instantiating host module %q: %w", tb.Module, err)
	}
	return mod, nil
}

// Instantiate builds the "env" host module.
func Instantiate(ctx context.Context, r wazero.Runtime, t *Task) (api.Module, error) {
	return Env.Instantiate(ctx, r, t)
}

// dispatcher returns the wazero function for imp.
func dispatcher(imp *Import, t *Task) api.GoModuleFunc {
	nparams := len(imp.Params)
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		if mem := mod.Memory(); mem != nil {
			t.Mem = mem
		}
		args := Arguments(stack[:nparams])
		op := callLatency.Start(imp.Name)
		ret, err := imp.Fn(t, args)
		op.Finish()

		callCount.Increment(imp.Name)
		if err != nil {
			errorCount.Increment(imp.Name)
		}
		if imp.SupportLevel == SupportUnimplemented {
			unsupportedCount.Increment()
			t.warner().Warningf("Unsupported import %s called", imp.Name)
		}

		ret = t.complete(imp, ret, err)
		if t.Strace {
			log.Debugf("%s%s = %#x (err: %v)", imp.Name, formatArgs(args), ret, err)
		}
		if len(imp.Results) > 0 {
			stack[0] = ret
		}
	}
}

func formatArgs(args Arguments) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%#x", a)
	}
	b.WriteByte(')')
	return b.String()
}
