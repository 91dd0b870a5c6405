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

package shell

import (
	"strings"
	"testing"
)

func TestExecuteCommandCapturesStdout(t *testing.T) {
	res := ExecuteCommand("echo", "hello")
	if res.ExitCode != 0 {
		t.Fatalf("Expected exit code 0, got %d (stderr: %s)", res.ExitCode, res.Stderr)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Errorf("Expected stdout %q, got %q", "hello", res.Stdout)
	}
}

func TestExecuteCommandNonZeroExit(t *testing.T) {
	res := ExecuteCommand("sh", "-c", "echo oops >&2; exit 3")
	if res.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "oops") {
		t.Errorf("Expected stderr to contain %q, got %q", "oops", res.Stderr)
	}
}

func TestExecuteCommandMissingBinary(t *testing.T) {
	res := ExecuteCommand("definitely-not-a-real-binary-xyz")
	if res.ExitCode == 0 {
		t.Errorf("Expected non-zero exit code for missing binary, got 0")
	}
}

func TestCommandSetInput(t *testing.T) {
	cmd := NewCommand("cat")
	cmd.SetInput("piped input\n")
	res := cmd.Execute()
	if res.ExitCode != 0 {
		t.Fatalf("Expected exit code 0, got %d", res.ExitCode)
	}
	if res.Stdout != "piped input\n" {
		t.Errorf("Expected stdout %q, got %q", "piped input\n", res.Stdout)
	}
}

func TestCommandString(t *testing.T) {
	cmd := NewCommand("gcloud", "ai-platform", "jobs", "list")
	want := "gcloud ai-platform jobs list"
	if got := cmd.String(); got != want {
		t.Errorf("Expected command string %q, got %q", want, got)
	}
}

func TestRandomString(t *testing.T) {
	s := RandomString(8)
	if len(s) != 8 {
		t.Fatalf("Expected length 8, got %d", len(s))
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			t.Errorf("Expected lowercase letters only, got %q", s)
			break
		}
	}
}
