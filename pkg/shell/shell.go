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

// Package shell runs external commands and reports their output and exit
// status. It exists so the rest of the CLI never touches os/exec directly.
package shell

import (
	"bytes"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Result holds the captured output and exit status of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Command is an external command prepared for execution.
type Command struct {
	name  string
	args  []string
	input string
}

// NewCommand prepares a command for execution.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args}
}

// SetInput sets the command's standard input.
func (c *Command) SetInput(input string) {
	c.input = input
}

// String returns the command line for logging purposes.
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Execute runs the command, capturing stdout and stderr.
func (c *Command) Execute() Result {
	cmd := exec.Command(c.name, c.args...)
	if c.input != "" {
		cmd.Stdin = strings.NewReader(c.input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
	}
}

// ExecuteStreaming runs the command with its stdout and stderr connected to
// the calling process, blocking until the command finishes. It is used for
// long-running invocations whose output the user watches live, such as
// streamed training logs. The returned exit code is the child's.
func (c *Command) ExecuteStreaming() int {
	cmd := exec.Command(c.name, c.args...)
	if c.input != "" {
		cmd.Stdin = strings.NewReader(c.input)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return exitCode(cmd.Run())
}

// ExecuteCommand runs a command and captures its output.
func ExecuteCommand(name string, args ...string) Result {
	return NewCommand(name, args...).Execute()
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	// Command failed before it could run (e.g. binary not found).
	return 127
}

// RandomString generates a random lowercase string of the given length.
func RandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz"
	var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}
