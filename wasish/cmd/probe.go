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

package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"wasish.dev/wasish/wasish/boot"
	"wasish.dev/wasish/wasish/config"
)

// Probe implements subcommands.Command for the "probe" command.
type Probe struct{}

// Name implements subcommands.Command.Name.
func (*Probe) Name() string {
	return "probe"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Probe) Synopsis() string {
	return "print a guest module's reserved region and unresolved imports"
}

// Usage implements subcommands.Command.Usage.
func (*Probe) Usage() string {
	return `probe <module.wasm> - print a guest module's reserved region and
unresolved imports without running it.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Probe) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Probe) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	binary, err := os.ReadFile(f.Arg(0))
	if err != nil {
		return Errorf("reading guest module: %v", err)
	}
	if err := probe(ctx, os.Stdout, conf, binary); err != nil {
		return Errorf("%v", err)
	}
	return subcommands.ExitSuccess
}

// probe writes the report for binary to w. It fails if the guest has
// unresolved imports.
func probe(ctx context.Context, w io.Writer, conf *config.Config, binary []byte) error {
	l, err := boot.New(ctx, boot.Args{Conf: conf, Binary: binary, Name: "probe"})
	if err != nil {
		return err
	}
	defer l.Close(ctx)

	if u := l.Unresolved(); len(u) > 0 {
		fmt.Fprintf(w, "unresolved imports:\n")
		for _, imp := range u {
			fmt.Fprintf(w, "  %s\n", imp)
		}
		return fmt.Errorf("%d unresolved imports", len(u))
	}
	fmt.Fprintf(w, "unresolved imports: none\n")

	if err := l.Instantiate(ctx); err != nil {
		return err
	}
	if layout, ok := l.Region(); ok {
		fmt.Fprintf(w, "region: %s\n", layout)
	} else {
		fmt.Fprintf(w, "region: none\n")
	}
	fmt.Fprintf(w, "memory: %d bytes\n", l.MemorySize())
	return nil
}
