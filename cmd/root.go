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

package cmd

import (
	"fmt"
	"strings"

	"caip-trainer/pkg/logging"
	"caip-trainer/pkg/shell"

	"github.com/spf13/cobra"
)

var (
	projectID string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "caip-trainer",
	Short: "Submits and manages Cloud AI Platform training jobs for the taxi-fare estimator.",
	Long: `caip-trainer submits the taxi-fare estimator trainer package as a managed
Cloud AI Platform training job, streams its logs until completion, and
provides commands to inspect, reattach to, and cancel submitted jobs.

Submission parameters are read from the environment (BUCKET_NAME, TIER,
RUNTIME_VERSION, PYTHON_VERSION, REGION, GCS_TAXI_TRAIN_BIG,
GCS_TAXI_EVAL_BIG) and from the companion config.yaml passed through to
gcloud.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logging.SetDebugLogging()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectID, "project", "p", "", "Google Cloud Project ID. If not provided, it will be inferred from your gcloud configuration.")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging.")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveProjectID returns the --project value or, when absent, the
// project configured in the local gcloud CLI.
func resolveProjectID() (string, error) {
	if projectID != "" {
		return projectID, nil
	}
	res := shell.ExecuteCommand("gcloud", "config", "get-value", "project")
	if res.ExitCode != 0 {
		return "", fmt.Errorf("failed to get GCP project ID from gcloud config: %s", res.Stderr)
	}
	id := strings.TrimSpace(res.Stdout)
	if id == "" {
		return "", fmt.Errorf("GCP project ID is empty. Please provide it via --project flag or configure gcloud CLI.")
	}
	return id, nil
}
