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

package env

import (
	"os"
	"sort"
	"strings"
	"sync"

	"wasish.dev/wasish/pkg/errors/wasierr"
)

// Store is an environment the guest reads and writes through the libuv
// accessors.
type Store interface {
	// Lookup returns the value of name and whether it is set.
	Lookup(name string) (string, bool)
	// Set sets name to value, replacing any existing value.
	Set(name, value string) error
	// Unset removes name. Removing an unset name succeeds.
	Unset(name string) error
}

// MapStore is an in-memory environment private to one guest.
type MapStore struct {
	mu   sync.Mutex
	vars map[string]string
}

// NewMapStore returns a MapStore seeded from environ, a list of "NAME=value"
// strings. Entries without '=' are ignored; later duplicates win.
func NewMapStore(environ []string) *MapStore {
	s := &MapStore{vars: make(map[string]string, len(environ))}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		s.vars[name] = value
	}
	return s
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "=\x00")
}

// Lookup implements Store.Lookup.
func (s *MapStore) Lookup(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vars[name]
	return v, ok
}

// Set implements Store.Set.
func (s *MapStore) Set(name, value string) error {
	if !validName(name) || strings.IndexByte(value, 0) >= 0 {
		return wasierr.EINVAL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vars[name] = value
	return nil
}

// Unset implements Store.Unset.
func (s *MapStore) Unset(name string) error {
	if !validName(name) {
		return wasierr.EINVAL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vars, name)
	return nil
}

// Environ returns the environment as sorted "NAME=value" strings.
func (s *MapStore) Environ() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.vars))
	for k, v := range s.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// HostStore is the environment of the host process. Changes made by the
// guest are visible to the whole host process.
type HostStore struct{}

// Lookup implements Store.Lookup.
func (HostStore) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set implements Store.Set.
func (HostStore) Set(name, value string) error {
	if err := os.Setenv(name, value); err != nil {
		return wasierr.FromHost(err)
	}
	return nil
}

// Unset implements Store.Unset.
func (HostStore) Unset(name string) error {
	if err := os.Unsetenv(name); err != nil {
		return wasierr.FromHost(err)
	}
	return nil
}
