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
	"caip-trainer/pkg/config"
	"caip-trainer/pkg/logging"
	"caip-trainer/pkg/trainer"
	"caip-trainer/pkg/trainer/caip"

	"github.com/spf13/cobra"
)

var localTrainSteps int

func init() {
	rootCmd.AddCommand(localCmd)

	localCmd.Flags().IntVar(&localTrainSteps, "train-steps", trainer.DefaultTrainSteps, "Number of training steps passed to the trainer.")
}

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Runs the trainer on the local machine via 'gcloud ai-platform local train'.",
	Long: `The 'local' command runs the trainer package locally with the same
program arguments as a cloud submission. Useful for validating trainer
changes before submitting a managed job.`,
	Run:          runLocalCmd,
	SilenceUsage: true,
}

func runLocalCmd(cmd *cobra.Command, args []string) {
	env := config.FromEnvironment()

	job := trainer.JobDefinition{
		ModuleName:  trainer.DefaultModuleName,
		PackagePath: trainer.DefaultPackagePath,
		TrainFiles:  env.TrainFiles,
		EvalFiles:   env.EvalFiles,
		TrainSteps:  localTrainSteps,
	}

	if exitCode := caip.RunLocal(job); exitCode != 0 {
		logging.FatalCode(exitCode, "local training run failed with exit code %d", exitCode)
	}
}
