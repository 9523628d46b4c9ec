// Copyright 2018 The gVisor Authors.
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
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"wasish.dev/wasish/pkg/log"
	"wasish.dev/wasish/pkg/metric"
	"wasish.dev/wasish/pkg/prometheus"
	"wasish.dev/wasish/wasish/boot"
	"wasish.dev/wasish/wasish/config"
)

// Run implements subcommands.Command for the "run" command.
type Run struct {
	// name is the guest module's name. Defaults to the file's base name.
	name string
}

// Name implements subcommands.Command.Name.
func (*Run) Name() string {
	return "run"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Run) Synopsis() string {
	return "run a guest module"
}

// Usage implements subcommands.Command.Usage.
func (*Run) Usage() string {
	return `run [flags] <module.wasm> [args...] - run a guest module.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Run) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.name, "name", "", "name of the guest module, default is the file's base name.")
}

// Execute implements subcommands.Command.Execute.
func (r *Run) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)
	exitCode := args[1].(*int)

	path := f.Arg(0)
	binary, err := os.ReadFile(path)
	if err != nil {
		return Errorf("reading guest module: %v", err)
	}
	name := r.name
	if name == "" {
		name = filepath.Base(path)
	}

	ws, isTerminal := boot.HostWinsize(int(os.Stdout.Fd()))
	if isTerminal {
		log.Infof("Host terminal is %dx%d", ws.Col, ws.Row)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	l, err := boot.New(ctx, boot.Args{
		Conf:    conf,
		Binary:  binary,
		Name:    name,
		Argv:    append([]string{name}, f.Args()[1:]...),
		Environ: guestEnviron(conf, boot.TerminalEnv(ws)),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Winsize: ws,
	})
	if err != nil {
		return Errorf("loading guest: %v", err)
	}
	defer l.Close(context.Background())
	if u := l.Unresolved(); len(u) > 0 {
		return Errorf("guest %q has %d unresolved imports; see 'wasish probe'", name, len(u))
	}

	metric.MustRegisterCustomUint64Metric("/guest/memory_bytes", false,
		"Size of the guest's linear memory.", func(...string) uint64 { return l.MemorySize() })
	metric.MustCreateNewRuntimeUint64Metric("/runtime/heap_objects_bytes", "/memory/classes/heap/objects:bytes")
	initMetrics := metric.Initialize
	if conf.MetricsFile == "" {
		initMetrics = metric.Disable
	}
	if err := initMetrics(); err != nil {
		return Errorf("initializing metrics: %v", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigs)

	var (
		code     uint32
		received unix.Signal
	)
	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		if err := l.Instantiate(gctx); err != nil {
			return err
		}
		var err error
		code, err = l.Run(gctx)
		return err
	})
	g.Go(func() error {
		select {
		case s := <-sigs:
			received = s.(unix.Signal)
			log.Infof("Received %v, stopping guest", received)
			cancel()
		case <-done:
		}
		return nil
	})
	err = g.Wait()

	if conf.MetricsFile != "" {
		if werr := writeMetrics(conf.MetricsFile); werr != nil {
			log.Warningf("Writing metrics: %v", werr)
		}
	}

	switch {
	case received != 0:
		// Emulate what the shell does.
		*exitCode = 128 + int(received)
		return subcommands.ExitSuccess
	case err != nil && !errors.Is(err, context.Canceled):
		return Errorf("running guest: %v", err)
	}
	*exitCode = int(code)
	return subcommands.ExitSuccess
}

// guestEnviron returns the guest's initial environment: the host's when the
// host environment is shared, then the configured entries, then term.
func guestEnviron(conf *config.Config, term []string) []string {
	var environ []string
	if conf.HostEnv {
		environ = append(environ, os.Environ()...)
	} else if t, ok := os.LookupEnv("TERM"); ok {
		environ = append(environ, "TERM="+t)
	}
	environ = append(environ, conf.Env...)
	return append(environ, term...)
}

func writeMetrics(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	opts := prometheus.ExportOptions{
		CommentHeader: fmt.Sprintf("wasish metrics, PID %d", os.Getpid()),
		Prefix:        "wasish_",
	}
	if err := metric.Write(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
