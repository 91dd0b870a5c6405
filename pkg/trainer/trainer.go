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

package trainer

// Defaults for the taxi-fare estimator training package. The model name,
// trainer module, and package layout are fixed properties of the trainer
// distribution, not user configuration.
const (
	DefaultModelName   = "tensorflow_taxi"
	DefaultModuleName  = "trainer.task"
	DefaultPackagePath = "./trainer"
	DefaultConfigPath  = "./config.yaml"
	DefaultTrainSteps  = 100000
)

// JobDefinition holds all the necessary parameters to define a training
// job. This struct is intended to be general enough to support different
// submission backends, with specific implementations extracting the fields
// relevant to them.
type JobDefinition struct {
	ModelName      string
	BucketName     string
	Tier           string
	RuntimeVersion string
	PythonVersion  string
	Region         string
	ProjectID      string

	ModuleName  string
	PackagePath string
	ConfigPath  string

	TrainFiles string
	EvalFiles  string
	TrainSteps int

	// Custom-container submission. When MasterImageURI is set (or built
	// from BaseImage and BuildContext), runtime/python/module/package
	// flags are replaced by --master-image-uri.
	MasterImageURI string
	BaseImage      string
	BuildContext   string
	Platform       string

	StreamLogs bool
	Preflight  bool
}

// Submitter defines the interface for submitting training jobs to a
// managed platform.
type Submitter interface {
	// SubmitJob submits the job and, when log streaming is requested,
	// blocks until the remote job finishes. It returns the external
	// command's exit code alongside any local composition error.
	SubmitJob(job JobDefinition) (int, error)
}
