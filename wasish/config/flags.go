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

package config

import (
	"flag"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"wasish.dev/wasish/pkg/imports"
)

// RegisterFlags registers flags used to populate Config.
func RegisterFlags(flagSet *flag.FlagSet) {
	flagSet.String("config", "", "TOML file with settings; flags given on the command line override it.")

	// Debugging flags.
	flagSet.String("log", "", "file path where internal debug information is written, default is stderr. If it ends with '/', a file is created inside the directory. The following variables are available: %TIMESTAMP%, %COMMAND%.")
	flagSet.String("log-format", "text", "log format: text (default) or json.")
	flagSet.Bool("alsologtostderr", false, "send log messages to stderr as well as the --log file.")
	flagSet.Bool("debug", false, "enable debug logging.")
	flagSet.Bool("strace", false, "log every host import call. Requires --debug.")
	flagSet.String("metrics-file", "", "file path where import metrics are written on exit, in the Prometheus text format.")

	// Flags that control the guest environment.
	flagSet.Bool("host-env", false, "let the guest read and change the host process environment instead of a private copy.")
	flagSet.Var(&stringList{}, "env", "NAME=VALUE added to the guest environment. May be repeated.")
	flagSet.Var(&stringList{}, "mount", "host directory made visible to the guest, as host[:guest]. May be repeated.")

	// Flags that control the reserved region.
	flagSet.String("region-prefix", "", "name prefix of the guest's region accessor exports. Empty means the default.")
	flagSet.Uint("region-size", 0, "required size in bytes of the guest's region stack. 0 accepts any size.")
	flagSet.Bool("legacy-region", false, "reserve the region at the end of grown memory if the guest does not export the region accessors.")
}

// stringList is a flag that may be repeated.
type stringList []string

// String implements flag.Value.String.
func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

// Set implements flag.Value.Set.
func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// Get implements flag.Getter.Get.
func (l *stringList) Get() any {
	return []string(*l)
}

// NewFromFlags creates a new Config with values coming from command line
// flags, layered on the file named by --config if any.
func NewFromFlags(flagSet *flag.FlagSet) (*Config, error) {
	conf := &Config{Pty: imports.DefaultPtyLayout}
	forEachFlagField(conf, func(name string, field reflect.Value) {
		setField(field, flagSet.Lookup(name))
	})

	if conf.ConfigFile != "" {
		if err := conf.loadFile(conf.ConfigFile); err != nil {
			return nil, err
		}
		// Flags given explicitly win over the file.
		flagSet.Visit(func(fl *flag.Flag) {
			forEachFlagField(conf, func(name string, field reflect.Value) {
				if name == fl.Name {
					setField(field, fl)
				}
			})
		})
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// loadFile decodes the TOML file at path into c. Unknown keys are an error.
func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("decoding config file %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config file %q: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ToFlags returns a slice of flags that correspond to the given Config.
// Flags that have their default value are omitted.
func (c *Config) ToFlags() []string {
	var rv []string

	// Construct a temporary set for default plumbing.
	flagSet := flag.NewFlagSet("tmp", flag.ContinueOnError)
	RegisterFlags(flagSet)

	forEachFlagField(c, func(name string, field reflect.Value) {
		fl := flagSet.Lookup(name)
		if fl == nil {
			panic(fmt.Sprintf("Flag %q not found", name))
		}
		if field.Kind() == reflect.Slice {
			for i := 0; i < field.Len(); i++ {
				rv = append(rv, fmt.Sprintf("--%s=%s", name, field.Index(i).String()))
			}
			return
		}
		if val := getVal(field); val != fl.DefValue {
			rv = append(rv, fmt.Sprintf("--%s=%s", name, val))
		}
	})
	return rv
}

func forEachFlagField(c *Config, fn func(name string, field reflect.Value)) {
	obj := reflect.ValueOf(c).Elem()
	st := obj.Type()
	for i := 0; i < st.NumField(); i++ {
		name, ok := st.Field(i).Tag.Lookup("flag")
		if !ok {
			// No flag set for this field.
			continue
		}
		fn(name, obj.Field(i))
	}
}

func setField(field reflect.Value, fl *flag.Flag) {
	if fl == nil {
		panic(fmt.Sprintf("Flag for field %v not found", field.Type()))
	}
	getter, ok := fl.Value.(flag.Getter)
	if !ok {
		panic(fmt.Sprintf("Flag %q is not a flag.Getter", fl.Name))
	}
	x := reflect.ValueOf(getter.Get())
	if x.Type() != field.Type() {
		x = x.Convert(field.Type())
	}
	if x.Kind() == reflect.Slice {
		// Never alias the flag's own storage.
		if x.Len() == 0 {
			x = reflect.Zero(x.Type())
		} else {
			x = reflect.AppendSlice(reflect.MakeSlice(x.Type(), 0, x.Len()), x)
		}
	}
	field.Set(x)
}

func getVal(field reflect.Value) string {
	switch field.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(field.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(field.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(field.Uint(), 10)
	case reflect.String:
		return field.String()
	default:
		panic("unknown type " + field.Kind().String())
	}
}
