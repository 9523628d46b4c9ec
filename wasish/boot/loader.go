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

// Package boot loads a guest module and runs it against the host shims.
package boot

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"wasish.dev/wasish/pkg/abi/wasi"
	"wasish.dev/wasish/pkg/imports"
	"wasish.dev/wasish/pkg/log"
	"wasish.dev/wasish/pkg/region"
	"wasish.dev/wasish/pkg/shim/env"
	"wasish.dev/wasish/pkg/usermem"
	"wasish.dev/wasish/wasish/config"
)

const (
	// startFunction is the guest's entry point.
	startFunction = "_start"

	// errnoLocation returns the address of the guest's errno.
	errnoLocation = "__errno_location"
)

// Args are the arguments for New.
type Args struct {
	// Conf is the configuration.
	Conf *config.Config

	// Binary is the guest module.
	Binary []byte

	// Name is the guest module's name.
	Name string

	// Argv are the guest's arguments, starting with its name.
	Argv []string

	// Environ is the guest's environment as NAME=VALUE entries.
	Environ []string

	// Stdio of the guest. Nil means no input or discarded output.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Winsize is the geometry of the host terminal, if any.
	Winsize wasi.Winsize
}

// Loader holds a compiled guest and the runtime it runs in.
type Loader struct {
	args     Args
	runtime  wazero.Runtime
	compiled wazero.CompiledModule

	// unresolved are the guest's env imports the host cannot serve.
	unresolved []imports.Unresolved

	// The fields below are set by Instantiate.

	task      *imports.Task
	mod       api.Module
	layout    region.Layout
	hasRegion bool
}

// New compiles the guest. The runtime closes the guest when ctx is done.
func New(ctx context.Context, args Args) (*Loader, error) {
	if args.Conf == nil {
		return nil, errors.New("no configuration")
	}
	rc := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	r := wazero.NewRuntimeWithConfig(ctx, rc)

	compiled, err := r.CompileModule(ctx, args.Binary)
	if err != nil {
		_ = r.Close(ctx)
		return nil, fmt.Errorf("compiling guest: %w", err)
	}
	l := &Loader{
		args:       args,
		runtime:    r,
		compiled:   compiled,
		unresolved: imports.Env.Resolve(compiled.ImportedFunctions()),
	}
	for _, u := range l.unresolved {
		log.Warningf("Unresolved import %s.%s", imports.Module, u)
	}
	return l, nil
}

// Unresolved returns the guest's imports from the shim module that the host
// cannot serve.
func (l *Loader) Unresolved() []imports.Unresolved {
	return l.unresolved
}

// Instantiate instantiates the host modules and the guest, sets up the
// reserved region and finds the guest's errno. It does not start the guest.
func (l *Loader) Instantiate(ctx context.Context) error {
	if err := imports.Env.Check(l.compiled); err != nil {
		return err
	}
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, l.runtime); err != nil {
		return fmt.Errorf("instantiating WASI: %w", err)
	}

	conf := l.args.Conf
	l.task = &imports.Task{
		Env:     l.newStore(),
		Pty:     conf.Pty,
		Winsize: l.args.Winsize,
		Strace:  conf.Strace,
	}
	if _, err := imports.Env.Instantiate(ctx, l.runtime, l.task); err != nil {
		return err
	}

	mc, err := l.moduleConfig()
	if err != nil {
		return err
	}
	mod, err := l.runtime.InstantiateModule(ctx, l.compiled, mc)
	if err != nil {
		return fmt.Errorf("instantiating guest: %w", err)
	}
	l.mod = mod
	if mem := mod.Memory(); mem != nil {
		l.task.Mem = mem
	}

	if err := l.setupRegion(ctx); err != nil {
		return err
	}
	return l.findErrno(ctx)
}

func (l *Loader) newStore() env.Store {
	if l.args.Conf.HostEnv {
		log.Infof("Serving the host environment to the guest")
		return env.HostStore{}
	}
	return env.NewMapStore(l.args.Environ)
}

func (l *Loader) moduleConfig() (wazero.ModuleConfig, error) {
	mc := wazero.NewModuleConfig().
		WithName(l.args.Name).
		WithArgs(l.args.Argv...).
		WithSysWalltime().
		WithSysNanotime().
		WithSysNanosleep().
		WithRandSource(rand.Reader).
		// _start is called by Run, after the region is set up.
		WithStartFunctions()
	if l.args.Stdin != nil {
		mc = mc.WithStdin(l.args.Stdin)
	}
	if l.args.Stdout != nil {
		mc = mc.WithStdout(l.args.Stdout)
	}
	if l.args.Stderr != nil {
		mc = mc.WithStderr(l.args.Stderr)
	}
	for _, e := range l.args.Environ {
		name, value, ok := strings.Cut(e, "=")
		if !ok || name == "" {
			continue
		}
		mc = mc.WithEnv(name, value)
	}

	mounts, err := l.args.Conf.ParseMounts()
	if err != nil {
		return nil, err
	}
	if len(mounts) > 0 {
		fsc := wazero.NewFSConfig()
		for _, m := range mounts {
			log.Infof("Mounting %q at %q", m.Host, m.Guest)
			fsc = fsc.WithDirMount(m.Host, m.Guest)
		}
		mc = mc.WithFSConfig(fsc)
	}
	return mc, nil
}

// setupRegion finds the guest's reserved region and resets its control slot.
// A guest without region accessors runs without one unless the legacy
// fallback is enabled.
func (l *Loader) setupRegion(ctx context.Context) error {
	conf := l.args.Conf
	mem := l.mod.Memory()
	if mem == nil {
		return errors.New("guest exports no memory")
	}

	layout, err := region.Probe(ctx, l.mod, conf.RegionPrefix)
	switch {
	case errors.Is(err, region.ErrNotExported) && conf.LegacyRegion:
		size := uint32(conf.RegionSize)
		if size == 0 {
			size = wasi.RegionDefaultStackSize
		}
		if layout, err = region.ReserveAtEnd(mem, size); err != nil {
			return fmt.Errorf("reserving region at the end of memory: %w", err)
		}
		log.Infof("Reserved region at the end of memory: %s", layout)
	case errors.Is(err, region.ErrNotExported):
		log.Infof("Guest has no reserved region")
		return nil
	case err != nil:
		return err
	default:
		if err := layout.Validate(uint64(mem.Size()), uint32(conf.RegionSize)); err != nil {
			return fmt.Errorf("guest region %s: %w", layout, err)
		}
		log.Infof("Guest region: %s", layout)
	}

	if err := region.Reset(mem, layout); err != nil {
		return fmt.Errorf("resetting region control slot: %w", err)
	}
	l.layout = layout
	l.hasRegion = true
	return nil
}

// findErrno records the address of the guest's errno if the guest exports
// __errno_location.
func (l *Loader) findErrno(ctx context.Context) error {
	fn := l.mod.ExportedFunction(errnoLocation)
	if fn == nil {
		log.Infof("Guest does not export %s; errno values from host imports are dropped", errnoLocation)
		return nil
	}
	def := fn.Definition()
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 1 || def.ResultTypes()[0] != api.ValueTypeI32 {
		return fmt.Errorf("export %s has signature %v -> %v, want () -> i32", errnoLocation, def.ParamTypes(), def.ResultTypes())
	}
	res, err := fn.Call(ctx)
	if err != nil {
		return fmt.Errorf("calling %s: %w", errnoLocation, err)
	}
	l.task.ErrnoAddr = usermem.Addr(api.DecodeU32(res[0]))
	log.Debugf("Guest errno at %#x", l.task.ErrnoAddr)
	return nil
}

// Region returns the guest's reserved region, if it has one.
func (l *Loader) Region() (region.Layout, bool) {
	return l.layout, l.hasRegion
}

// Run calls the guest's entry point and returns its exit code. Instantiate
// must have been called.
func (l *Loader) Run(ctx context.Context) (uint32, error) {
	if l.mod == nil {
		return 0, errors.New("guest not instantiated")
	}
	start := l.mod.ExportedFunction(startFunction)
	if start == nil {
		return 0, fmt.Errorf("guest does not export %s", startFunction)
	}
	log.Infof("Starting guest %q", l.args.Name)
	_, err := start.Call(ctx)
	var exitErr *sys.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		log.Infof("Guest exited with code %d", exitErr.ExitCode())
		if exitErr.ExitCode() == sys.ExitCodeContextCanceled || exitErr.ExitCode() == sys.ExitCodeDeadlineExceeded {
			return exitErr.ExitCode(), ctx.Err()
		}
		return exitErr.ExitCode(), nil
	default:
		return 0, fmt.Errorf("running guest: %w", err)
	}
}

// Close releases the runtime and everything in it.
func (l *Loader) Close(ctx context.Context) error {
	return l.runtime.Close(ctx)
}

// MemorySize returns the size of the guest's memory in bytes, or zero if the
// guest is not instantiated.
func (l *Loader) MemorySize() uint64 {
	if l.mod == nil || l.mod.Memory() == nil {
		return 0
	}
	return uint64(l.mod.Memory().Size())
}
