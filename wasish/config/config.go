// Copyright 2020 The gVisor Authors.
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

// Package config provides basic infrastructure to set configuration settings
// for wasish. Each setting that can be changed from the command line must
// have a tag of the form `flag:"name"`. Settings are also read from an
// optional TOML file; flags set on the command line take precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/mohae/deepcopy"

	"wasish.dev/wasish/pkg/imports"
	"wasish.dev/wasish/pkg/log"
)

// Config holds configuration that is not part of the guest's arguments.
type Config struct {
	// ConfigFile is the TOML file the rest of the settings are layered on.
	ConfigFile string `flag:"config" toml:"-"`

	// LogFilename is the filename to log to, if not empty.
	LogFilename string `flag:"log" toml:"log"`

	// LogFormat is the log format: "text" or "json".
	LogFormat string `flag:"log-format" toml:"log_format"`

	// AlsoLogToStderr sends log messages to stderr as well as the log file.
	AlsoLogToStderr bool `flag:"alsologtostderr" toml:"alsologtostderr"`

	// Debug indicates that debug logging should be enabled.
	Debug bool `flag:"debug" toml:"debug"`

	// Strace indicates that every host import call should be logged.
	Strace bool `flag:"strace" toml:"strace"`

	// HostEnv serves the environment imports from the host process
	// environment instead of a private copy.
	HostEnv bool `flag:"host-env" toml:"host_env"`

	// Env lists extra NAME=VALUE entries for the guest environment.
	Env []string `flag:"env" toml:"env"`

	// Mounts lists host directories made visible to the guest, as
	// "host:guest" pairs.
	Mounts []string `flag:"mount" toml:"mounts"`

	// RegionPrefix is the name prefix of the guest's region accessor
	// exports. Empty means the default prefix.
	RegionPrefix string `flag:"region-prefix" toml:"region_prefix"`

	// RegionSize is the stack size the guest's region must have. Zero
	// accepts any size.
	RegionSize uint `flag:"region-size" toml:"region_size"`

	// LegacyRegion reserves the region at the end of memory when the guest
	// does not export the region accessors.
	LegacyRegion bool `flag:"legacy-region" toml:"legacy_region"`

	// MetricsFile is where import metrics are written on exit, in the
	// Prometheus text format.
	MetricsFile string `flag:"metrics-file" toml:"metrics_file"`

	// Pty is the layout of the guest's pseudo-terminal process record.
	Pty imports.PtyLayout `toml:"pty"`
}

// Copy returns a deep copy of c.
func (c *Config) Copy() *Config {
	return deepcopy.Copy(c).(*Config)
}

// Log logs important aspects of the configuration.
func (c *Config) Log() {
	log.Infof("Config: config=%q log=%q log-format=%s alsologtostderr=%t debug=%t strace=%t", c.ConfigFile, c.LogFilename, c.LogFormat, c.AlsoLogToStderr, c.Debug, c.Strace)
	log.Infof("Config: host-env=%t env=%v mounts=%v", c.HostEnv, c.Env, c.Mounts)
	log.Infof("Config: region-prefix=%q region-size=%d legacy-region=%t", c.RegionPrefix, c.RegionSize, c.LegacyRegion)
	log.Infof("Config: pty=%+v metrics-file=%q", c.Pty, c.MetricsFile)
}

// Mount is a host directory visible to the guest.
type Mount struct {
	Host  string
	Guest string
}

// ParseMounts parses c.Mounts.
func (c *Config) ParseMounts() ([]Mount, error) {
	var out []Mount
	for _, m := range c.Mounts {
		host, guest, ok := strings.Cut(m, ":")
		if !ok {
			guest = host
		}
		if host == "" || guest == "" {
			return nil, fmt.Errorf("invalid mount %q, must be host[:guest]", m)
		}
		out = append(out, Mount{Host: host, Guest: guest})
	}
	return out, nil
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q, must be 'text' or 'json'", c.LogFormat)
	}
	if c.RegionSize%16 != 0 {
		return fmt.Errorf("region size %d is not a multiple of 16", c.RegionSize)
	}
	if c.RegionSize > 1<<31 {
		return fmt.Errorf("region size %d does not fit in guest memory", c.RegionSize)
	}
	for _, e := range c.Env {
		if name, _, ok := strings.Cut(e, "="); !ok || name == "" {
			return fmt.Errorf("invalid environment entry %q, must be NAME=VALUE", e)
		}
	}
	if _, err := c.ParseMounts(); err != nil {
		return err
	}
	return c.Pty.Validate()
}
