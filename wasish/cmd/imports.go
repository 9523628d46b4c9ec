// Copyright 2019 The gVisor Authors.
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
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"

	"wasish.dev/wasish/pkg/imports"
)

// Imports implements subcommands.Command for the "imports" command.
type Imports struct {
	output string
	group  string
}

// ImportDoc documents a single host import.
type ImportDoc struct {
	Name       string `json:"name" yaml:"name"`
	Group      string `json:"group" yaml:"group"`
	Signature  string `json:"signature" yaml:"signature"`
	Convention string `json:"convention" yaml:"convention"`
	Support    string `json:"support" yaml:"support"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
}

// CompatibilityInfo maps a module name to the docs of its imports, sorted by
// name.
type CompatibilityInfo map[string][]ImportDoc

type outputFunc func(io.Writer, CompatibilityInfo) error

// A map of output type names to output functions.
var outputMap = map[string]outputFunc{
	"table": outputTable,
	"json":  outputJSON,
	"yaml":  outputYAML,
	"csv":   outputCSV,
}

// Name implements subcommands.Command.Name.
func (*Imports) Name() string {
	return "imports"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Imports) Synopsis() string {
	return "Print compatibility information for host imports."
}

// Usage implements subcommands.Command.Usage.
func (*Imports) Usage() string {
	return `imports [options] - Print compatibility information for host imports.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (i *Imports) SetFlags(f *flag.FlagSet) {
	f.StringVar(&i.output, "o", "table", "Output format (table, csv, json, yaml).")
	f.StringVar(&i.group, "group", "", "Only print imports of this group (e.g. fd, env, pty).")
}

// Execute implements subcommands.Command.Execute.
func (i *Imports) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	out, ok := outputMap[i.output]
	if !ok {
		Fatalf("Unsupported output format %q", i.output)
	}
	info := compatibilityInfo(imports.Env, i.group)
	if len(info[imports.Env.Module]) == 0 {
		Fatalf("No imports in group %q", i.group)
	}
	if err := out(os.Stdout, info); err != nil {
		Fatalf("Error writing output: %v", err)
	}
	return subcommands.ExitSuccess
}

// compatibilityInfo returns the docs for tb, restricted to group unless
// group is empty.
func compatibilityInfo(tb *imports.Table, group string) CompatibilityInfo {
	var docs []ImportDoc
	for _, name := range tb.Names() {
		imp := tb.Imports[name]
		if group != "" && imp.Group != group {
			continue
		}
		docs = append(docs, ImportDoc{
			Name:       imp.Name,
			Group:      imp.Group,
			Signature:  imp.Signature(),
			Convention: imp.Conv.String(),
			Support:    imp.SupportLevel.String(),
			Note:       imp.Note,
		})
	}
	return CompatibilityInfo{tb.Module: docs}
}

// outputTable outputs the import info in tabular format.
func outputTable(w io.Writer, info CompatibilityInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, module := range sortedModules(info) {
		fmt.Fprintf(w, "%s:\n\n", module)
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", "NAME", "GROUP", "SIGNATURE", "CONV", "SUPPORT", "NOTE"); err != nil {
			return err
		}
		for _, d := range info[module] {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", d.Name, d.Group, d.Signature, d.Convention, d.Support, d.Note); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// outputJSON outputs the import info in JSON format.
func outputJSON(w io.Writer, info CompatibilityInfo) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(info)
}

// outputYAML outputs the import info in YAML format.
func outputYAML(w io.Writer, info CompatibilityInfo) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(info); err != nil {
		return err
	}
	return e.Close()
}

// outputCSV outputs the import info in CSV format.
func outputCSV(w io.Writer, info CompatibilityInfo) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write([]string{"Module", "Name", "Group", "Signature", "Convention", "Support", "Note"}); err != nil {
		return err
	}
	for _, module := range sortedModules(info) {
		for _, d := range info[module] {
			if err := csvWriter.Write([]string{module, d.Name, d.Group, d.Signature, d.Convention, d.Support, d.Note}); err != nil {
				return err
			}
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func sortedModules(info CompatibilityInfo) []string {
	modules := make([]string, 0, len(info))
	for m := range info {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	return modules
}
