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
	"strings"

	"caip-trainer/pkg/config"
	"caip-trainer/pkg/logging"
	"caip-trainer/pkg/trainer"
	"caip-trainer/pkg/trainer/caip"

	"github.com/spf13/cobra"
)

var (
	modelName    string
	trainSteps   int
	configPath   string
	noStreamLogs bool
	preflight    bool

	// Custom-container options
	masterImageURI string
	baseImage      string
	buildContext   string
	platform       string
)

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVarP(&modelName, "model-name", "m", trainer.DefaultModelName, "Model name used in the job identifier and job directory.")
	submitCmd.Flags().IntVar(&trainSteps, "train-steps", trainer.DefaultTrainSteps, "Number of training steps passed to the trainer.")
	submitCmd.Flags().StringVarP(&configPath, "config", "c", trainer.DefaultConfigPath, "Path to the job configuration file passed through to gcloud.")
	submitCmd.Flags().BoolVar(&noStreamLogs, "no-stream-logs", false, "Submit without blocking on the remote job's log stream.")
	submitCmd.Flags().BoolVar(&preflight, "preflight", false, "Check that the job-directory bucket is accessible before submitting.")

	submitCmd.Flags().StringVar(&masterImageURI, "master-image-uri", "", "Pre-built trainer container image to run (e.g., gcr.io/my-project/my-trainer:tag).")
	submitCmd.Flags().StringVar(&baseImage, "base-image", "", "Base Docker image to build the trainer image upon (e.g., tensorflow/tensorflow:1.15.5-py3).")
	submitCmd.Flags().StringVar(&buildContext, "build-context", "", "Path to the build context directory for the trainer image. Defaults to the trainer package path.")
	submitCmd.Flags().StringVarP(&platform, "platform", "f", "linux/amd64", "Target platform for the trainer image build (e.g., 'linux/amd64', 'linux/arm64'). Used with --base-image.")
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submits a managed training job to Cloud AI Platform.",
	Long: `The 'submit' command composes a timestamped job identifier and job
directory from the environment, then invokes 'gcloud ai-platform jobs submit
training', streaming the remote job's logs until completion or failure.

The process exit status equals the gcloud exit status. Unset environment
variables are substituted as empty strings and left for the platform to
reject.`,
	Run:          runSubmitCmd,
	SilenceUsage: true,
}

func runSubmitCmd(cmd *cobra.Command, args []string) {
	if masterImageURI != "" && baseImage != "" {
		logging.Fatal("Cannot provide both --master-image-uri and --base-image.")
	}
	if baseImage == "" && buildContext != "" {
		logging.Fatal("A --base-image must be provided when --build-context is used.")
	}

	env := config.FromEnvironment()
	if unset := env.Unset(); len(unset) > 0 {
		logging.Warn("unset environment variables substituted as empty strings: %s", strings.Join(unset, ", "))
	}

	job := trainer.JobDefinition{
		ModelName:      modelName,
		BucketName:     env.BucketName,
		Tier:           env.Tier,
		RuntimeVersion: env.RuntimeVersion,
		PythonVersion:  env.PythonVersion,
		Region:         env.Region,
		ProjectID:      projectID,
		ModuleName:     trainer.DefaultModuleName,
		PackagePath:    trainer.DefaultPackagePath,
		ConfigPath:     configPath,
		TrainFiles:     env.TrainFiles,
		EvalFiles:      env.EvalFiles,
		TrainSteps:     trainSteps,
		MasterImageURI: masterImageURI,
		BaseImage:      baseImage,
		BuildContext:   buildContext,
		Platform:       platform,
		StreamLogs:     !noStreamLogs,
		Preflight:      preflight,
	}

	submitter := caip.NewSubmitter()
	exitCode, err := submitter.SubmitJob(job)
	if err != nil {
		logging.FatalCode(exitCode, "caip-trainer submit failed: %v", err)
	}
}
