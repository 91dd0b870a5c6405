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

// Package config gathers submission parameters from the environment and
// from the companion training configuration file.
package config

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v2"
)

// Environment variable names consumed by the submit command.
const (
	EnvBucketName     = "BUCKET_NAME"
	EnvTier           = "TIER"
	EnvRuntimeVersion = "RUNTIME_VERSION"
	EnvPythonVersion  = "PYTHON_VERSION"
	EnvRegion         = "REGION"
	EnvTrainFiles     = "GCS_TAXI_TRAIN_BIG"
	EnvEvalFiles      = "GCS_TAXI_EVAL_BIG"
)

// Env holds the environment-sourced submission parameters. Unset variables
// are carried as empty strings and substituted verbatim into the gcloud
// argument list; no validation is performed here.
type Env struct {
	BucketName     string
	Tier           string
	RuntimeVersion string
	PythonVersion  string
	Region         string
	TrainFiles     string
	EvalFiles      string
}

// FromEnvironment reads the submission parameters from the process
// environment through viper.
func FromEnvironment() Env {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range []string{
		EnvBucketName, EnvTier, EnvRuntimeVersion, EnvPythonVersion,
		EnvRegion, EnvTrainFiles, EnvEvalFiles,
	} {
		v.SetDefault(key, "")
	}

	return Env{
		BucketName:     v.GetString(EnvBucketName),
		Tier:           v.GetString(EnvTier),
		RuntimeVersion: v.GetString(EnvRuntimeVersion),
		PythonVersion:  v.GetString(EnvPythonVersion),
		Region:         v.GetString(EnvRegion),
		TrainFiles:     v.GetString(EnvTrainFiles),
		EvalFiles:      v.GetString(EnvEvalFiles),
	}
}

// Unset returns the names of submission variables that resolved to empty
// strings. The caller may warn about them; submission proceeds regardless.
func (e Env) Unset() []string {
	var missing []string
	for _, kv := range []struct {
		name  string
		value string
	}{
		{EnvBucketName, e.BucketName},
		{EnvTier, e.Tier},
		{EnvRuntimeVersion, e.RuntimeVersion},
		{EnvPythonVersion, e.PythonVersion},
		{EnvRegion, e.Region},
		{EnvTrainFiles, e.TrainFiles},
		{EnvEvalFiles, e.EvalFiles},
	} {
		if kv.value == "" {
			missing = append(missing, kv.name)
		}
	}
	return missing
}

// TrainingInput mirrors the trainingInput block of the job configuration
// file that is passed through to gcloud via --config.
type TrainingInput struct {
	ScaleTier      string            `yaml:"scaleTier"`
	MasterType     string            `yaml:"masterType"`
	WorkerType     string            `yaml:"workerType"`
	WorkerCount    int               `yaml:"workerCount"`
	ParameterCount int               `yaml:"parameterServerCount"`
	Hyperparams    map[string]string `yaml:"hyperparameters"`
}

// TrainingConfig is the parsed companion configuration file.
type TrainingConfig struct {
	TrainingInput TrainingInput `yaml:"trainingInput"`
}

// LoadTrainingConfig parses the job configuration file. The file itself is
// an external collaborator consumed by gcloud; parsing here is only used
// to surface the configured scale tier in submission logs.
func LoadTrainingConfig(fs afero.Fs, path string) (TrainingConfig, error) {
	var cfg TrainingConfig

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read training config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse training config %q: %w", path, err)
	}
	return cfg, nil
}
