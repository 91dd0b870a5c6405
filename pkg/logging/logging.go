// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides the printf-style logging surface used across the
// CLI. Informational output goes to stdout, warnings and errors to stderr.
package logging

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	stderrIsTerm = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	warnPrefix  = "Warning:"
	errorPrefix = "Error:"
)

func init() {
	if stderrIsTerm {
		warnPrefix = color.YellowString(warnPrefix)
		errorPrefix = color.RedString(errorPrefix)
	}
	logrus.SetOutput(os.Stderr)
}

// SetDebugLogging enables debug output from library packages that log
// through logrus directly (e.g. the image builder).
func SetDebugLogging() {
	logrus.SetLevel(logrus.DebugLevel)
}

// Info prints an informational message to stdout.
func Info(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

// Warn prints a warning to stderr.
func Warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warnPrefix, fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr.
func Error(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorPrefix, fmt.Sprintf(format, args...))
}

// Fatal prints an error message to stderr and exits with status 1.
func Fatal(format string, args ...any) {
	Error(format, args...)
	os.Exit(1)
}

// FatalCode prints an error message to stderr and exits with the given
// status code. Used to propagate an external command's exit status
// unchanged.
func FatalCode(code int, format string, args ...any) {
	Error(format, args...)
	os.Exit(code)
}
