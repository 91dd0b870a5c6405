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

// Package caip submits training jobs to Cloud AI Platform through the
// gcloud CLI.
package caip

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"caip-trainer/pkg/config"
	"caip-trainer/pkg/gcs"
	"caip-trainer/pkg/imagebuilder"
	"caip-trainer/pkg/logging"
	"caip-trainer/pkg/shell"
	"caip-trainer/pkg/trainer"

	"github.com/spf13/afero"
)

// jobTimestampLayout formats submission instants to the second. Two
// submissions for the same model and tier within one second produce the
// same job identifier; the platform rejects the duplicate.
const jobTimestampLayout = "20060102_150405"

// Submitter implements trainer.Submitter against Cloud AI Platform.
type Submitter struct {
	fs  afero.Fs
	now func() time.Time
}

// NewSubmitter creates and returns a new Submitter instance.
func NewSubmitter() *Submitter {
	return &Submitter{
		fs:  afero.NewOsFs(),
		now: time.Now,
	}
}

// JobName composes the job identifier for one submission:
// train_<model>_<tier>_<YYYYMMDD_HHMMSS> (UTC).
func JobName(model, tier string, at time.Time) string {
	return fmt.Sprintf("train_%s_%s_%s", model, tier, at.UTC().Format(jobTimestampLayout))
}

// JobDir composes the storage location the platform uses for checkpoints
// and exported artifacts.
func JobDir(bucket, model string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, model)
}

// SubmitArgs assembles the gcloud argument list for one training job
// submission. Environment-sourced values are substituted verbatim, empty
// strings included; gcloud reports any resulting problem.
func SubmitArgs(job trainer.JobDefinition, jobName, jobDir string) []string {
	args := []string{
		"ai-platform", "jobs", "submit", "training", jobName,
		"--job-dir=" + jobDir,
	}

	if job.MasterImageURI != "" {
		args = append(args,
			"--region="+job.Region,
			"--master-image-uri="+job.MasterImageURI,
		)
	} else {
		args = append(args,
			"--runtime-version="+job.RuntimeVersion,
			"--python-version="+job.PythonVersion,
			"--region="+job.Region,
			"--module-name="+job.ModuleName,
			"--package-path="+job.PackagePath,
		)
	}

	args = append(args, "--config="+job.ConfigPath)
	if job.StreamLogs {
		args = append(args, "--stream-logs")
	}

	args = append(args,
		"--",
		"--train-files="+job.TrainFiles,
		"--eval-files="+job.EvalFiles,
		"--train-steps="+strconv.Itoa(job.TrainSteps),
	)
	return args
}

// SubmitJob submits the training job and, when log streaming is requested,
// blocks until the remote job finishes. The returned int is the gcloud
// exit code, propagated unchanged to the caller.
func (s *Submitter) SubmitJob(job trainer.JobDefinition) (int, error) {
	if job.BaseImage != "" {
		projectID, err := s.getProjectID(job.ProjectID)
		if err != nil {
			return 1, err
		}
		job.ProjectID = projectID

		imageURI, err := s.buildTrainerImage(job)
		if err != nil {
			return 1, err
		}
		job.MasterImageURI = imageURI
	}

	if job.Preflight {
		logging.Info("Checking bucket gs://%s...", job.BucketName)
		if err := gcs.CheckBucket(context.Background(), job.BucketName); err != nil {
			return 1, err
		}
	}

	jobName := JobName(job.ModelName, job.Tier, s.now())
	jobDir := JobDir(job.BucketName, job.ModelName)

	logging.Info("Submitting training job %s", jobName)
	logging.Info("Job directory: %s", jobDir)
	s.logScaleTier(job.ConfigPath)

	args := SubmitArgs(job, jobName, jobDir)
	cmd := shell.NewCommand("gcloud", args...)
	logging.Info("Executing: %s", cmd.String())

	if job.StreamLogs {
		// Stream the remote job's logs to the caller until completion or
		// failure. Interrupting the local process does not cancel the
		// remote job.
		exitCode := cmd.ExecuteStreaming()
		if exitCode != 0 {
			return exitCode, fmt.Errorf("gcloud ai-platform jobs submit training failed with exit code %d", exitCode)
		}
		logging.Info("Training job %s finished.", jobName)
		return 0, nil
	}

	res := cmd.Execute()
	if res.ExitCode != 0 {
		return res.ExitCode, fmt.Errorf("gcloud ai-platform jobs submit training failed with exit code %d: %s\n%s", res.ExitCode, res.Stderr, res.Stdout)
	}
	if out := strings.TrimSpace(res.Stdout); out != "" {
		logging.Info("%s", out)
	}
	logging.Info("Training job %s submitted. Use 'caip-trainer jobs stream-logs %s' to follow it.", jobName, jobName)
	return 0, nil
}

func (s *Submitter) getProjectID(initialProjectID string) (string, error) {
	if initialProjectID == "" {
		res := shell.ExecuteCommand("gcloud", "config", "get-value", "project")
		if res.ExitCode != 0 {
			return "", fmt.Errorf("failed to get GCP project ID from gcloud config: %s", res.Stderr)
		}
		projectID := strings.TrimSpace(res.Stdout)
		if projectID == "" {
			return "", fmt.Errorf("GCP project ID is empty. Please provide it via --project flag or configure gcloud CLI.")
		}
		logging.Info("Using GCP Project ID inferred from gcloud config: %s", projectID)
		return projectID, nil
	}
	logging.Info("Using provided GCP Project ID: %s", initialProjectID)
	return initialProjectID, nil
}

func (s *Submitter) buildTrainerImage(job trainer.JobDefinition) (string, error) {
	buildContext := job.BuildContext
	if buildContext == "" {
		buildContext = job.PackagePath
	}

	logging.Info("Building trainer image on top of %s...", job.BaseImage)
	matcher, err := imagebuilder.ReadDockerignorePatterns(buildContext, imagebuilder.DefaultIgnorePatterns)
	if err != nil {
		return "", fmt.Errorf("failed to read .dockerignore patterns: %w", err)
	}

	imageURI, err := imagebuilder.BuildTrainerImage(
		job.ProjectID,
		job.BaseImage,
		buildContext,
		job.Platform,
		matcher,
	)
	if err != nil {
		return "", fmt.Errorf("crane-based trainer image build failed: %w", err)
	}
	logging.Info("Built trainer image: %s", imageURI)
	return imageURI, nil
}

// logScaleTier surfaces the configured scale tier from the companion
// config file. The file is gcloud's collaborator; a parse failure here is
// only worth a warning.
func (s *Submitter) logScaleTier(configPath string) {
	cfg, err := config.LoadTrainingConfig(s.fs, configPath)
	if err != nil {
		logging.Warn("could not read training config %s: %v", configPath, err)
		return
	}
	if cfg.TrainingInput.ScaleTier != "" {
		logging.Info("Scale tier from %s: %s", configPath, cfg.TrainingInput.ScaleTier)
	}
}

// LocalTrainArgs assembles the gcloud argument list for a local training
// run with the same trainer program arguments as a cloud submission.
func LocalTrainArgs(job trainer.JobDefinition) []string {
	return []string{
		"ai-platform", "local", "train",
		"--module-name=" + job.ModuleName,
		"--package-path=" + job.PackagePath,
		"--",
		"--train-files=" + job.TrainFiles,
		"--eval-files=" + job.EvalFiles,
		"--train-steps=" + strconv.Itoa(job.TrainSteps),
	}
}

// RunLocal executes the trainer on the local machine via gcloud, returning
// the external exit code.
func RunLocal(job trainer.JobDefinition) int {
	cmd := shell.NewCommand("gcloud", LocalTrainArgs(job)...)
	logging.Info("Executing: %s", cmd.String())
	return cmd.ExecuteStreaming()
}

// StreamLogsArgs assembles the gcloud argument list for reattaching to a
// running job's log stream.
func StreamLogsArgs(jobName string) []string {
	return []string{"ai-platform", "jobs", "stream-logs", jobName}
}

// StreamLogs blocks streaming the given job's logs until the job ends,
// returning the external exit code.
func StreamLogs(jobName string) int {
	cmd := shell.NewCommand("gcloud", StreamLogsArgs(jobName)...)
	logging.Info("Executing: %s", cmd.String())
	return cmd.ExecuteStreaming()
}
