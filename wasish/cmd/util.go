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

// Package cmd holds implementations of the wasish commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"

	"wasish.dev/wasish/pkg/log"
)

// ErrorLogger is where error messages should be written to. These messages
// are consumed by the caller of wasish and are in addition to the log.
var ErrorLogger io.Writer

// Errorf logs error to the error log and returns subcommands.ExitFailure.
func Errorf(format string, args ...any) subcommands.ExitStatus {
	writeError(format, args...)
	return subcommands.ExitFailure
}

// Fatalf logs the same message as Errorf and calls os.Exit(128).
func Fatalf(format string, args ...any) {
	writeError(format, args...)
	os.Exit(128)
}

func writeError(format string, args ...any) {
	// If we have an error log target, log the error there too.
	log.Warningf(format, args...)
	msg := fmt.Sprintf(format, args...)
	if ErrorLogger != nil {
		b, _ := json.Marshal(struct {
			Msg   string    `json:"msg"`
			Level string    `json:"level"`
			Time  time.Time `json:"time"`
		}{Msg: msg, Level: "error", Time: time.Now()})
		_, _ = ErrorLogger.Write(append(b, '\n'))
	}
	fmt.Fprintf(os.Stderr, "wasish: %s\n", msg)
}
