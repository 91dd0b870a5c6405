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
	"context"

	"caip-trainer/pkg/jobs"
	"caip-trainer/pkg/logging"
	"caip-trainer/pkg/trainer/caip"

	"github.com/spf13/cobra"
)

var (
	listFilter string
	listLimit  int64
)

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(describeCmd)
	jobsCmd.AddCommand(listCmd)
	jobsCmd.AddCommand(cancelCmd)
	jobsCmd.AddCommand(streamLogsCmd)

	listCmd.Flags().StringVar(&listFilter, "filter", "", "API filter expression, e.g. 'state=RUNNING'.")
	listCmd.Flags().Int64Var(&listLimit, "limit", 20, "Maximum number of jobs to list.")
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspects, follows, and cancels submitted training jobs.",
}

var describeCmd = &cobra.Command{
	Use:          "describe JOB_ID",
	Short:        "Shows the current state of one training job.",
	Args:         cobra.ExactArgs(1),
	Run:          runDescribeCmd,
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:          "list",
	Short:        "Lists training jobs in the project, newest first.",
	Args:         cobra.NoArgs,
	Run:          runListCmd,
	SilenceUsage: true,
}

var cancelCmd = &cobra.Command{
	Use:          "cancel JOB_ID",
	Short:        "Requests cancellation of a running training job.",
	Args:         cobra.ExactArgs(1),
	Run:          runCancelCmd,
	SilenceUsage: true,
}

var streamLogsCmd = &cobra.Command{
	Use:   "stream-logs JOB_ID",
	Short: "Reattaches to a running job's log stream until the job ends.",
	Long: `Streams the given job's logs to stdout via 'gcloud ai-platform jobs
stream-logs', blocking until the remote job finishes. The process exit
status equals the gcloud exit status.`,
	Args:         cobra.ExactArgs(1),
	Run:          runStreamLogsCmd,
	SilenceUsage: true,
}

func newJobsClient(ctx context.Context) *jobs.Client {
	project, err := resolveProjectID()
	if err != nil {
		logging.Fatal("%v", err)
	}

	client, err := jobs.NewClient(ctx, project)
	if err != nil {
		logging.Fatal("Failed to create AI Platform jobs client: %v", err)
	}
	return client
}

func runDescribeCmd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	client := newJobsClient(ctx)

	job, err := client.Describe(ctx, args[0])
	if err != nil {
		logging.Fatal("caip-trainer jobs describe failed: %v", err)
	}
	logging.Info("%s", jobs.FormatJobDetail(job))
}

func runListCmd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	client := newJobsClient(ctx)

	jobList, err := client.List(ctx, listFilter, listLimit)
	if err != nil {
		logging.Fatal("caip-trainer jobs list failed: %v", err)
	}
	if len(jobList) == 0 {
		logging.Info("No jobs found.")
		return
	}
	for _, job := range jobList {
		logging.Info("%s", jobs.FormatJob(job))
	}
}

func runCancelCmd(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	client := newJobsClient(ctx)

	if err := client.Cancel(ctx, args[0]); err != nil {
		logging.Fatal("caip-trainer jobs cancel failed: %v", err)
	}
	logging.Info("Cancellation requested for job %s.", args[0])
}

func runStreamLogsCmd(cmd *cobra.Command, args []string) {
	if exitCode := caip.StreamLogs(args[0]); exitCode != 0 {
		logging.FatalCode(exitCode, "gcloud ai-platform jobs stream-logs failed with exit code %d", exitCode)
	}
}
