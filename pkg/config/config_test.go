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

package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvironment(t *testing.T) {
	t.Setenv(EnvBucketName, "my-ml-bucket")
	t.Setenv(EnvTier, "STANDARD_1")
	t.Setenv(EnvRuntimeVersion, "1.15")
	t.Setenv(EnvPythonVersion, "3.7")
	t.Setenv(EnvRegion, "us-central1")
	t.Setenv(EnvTrainFiles, "gs://my-ml-bucket/data/taxi-train-big.csv")
	t.Setenv(EnvEvalFiles, "gs://my-ml-bucket/data/taxi-eval-big.csv")

	env := FromEnvironment()
	assert.Equal(t, "my-ml-bucket", env.BucketName)
	assert.Equal(t, "STANDARD_1", env.Tier)
	assert.Equal(t, "1.15", env.RuntimeVersion)
	assert.Equal(t, "3.7", env.PythonVersion)
	assert.Equal(t, "us-central1", env.Region)
	assert.Equal(t, "gs://my-ml-bucket/data/taxi-train-big.csv", env.TrainFiles)
	assert.Equal(t, "gs://my-ml-bucket/data/taxi-eval-big.csv", env.EvalFiles)
	assert.Empty(t, env.Unset())
}

func TestFromEnvironmentUnsetVariablesAreEmpty(t *testing.T) {
	// Unset variables substitute empty strings verbatim; the submission
	// path must not fail locally because of them.
	for _, key := range []string{
		EnvBucketName, EnvTier, EnvRuntimeVersion, EnvPythonVersion,
		EnvRegion, EnvTrainFiles, EnvEvalFiles,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(EnvRegion, "europe-west1")

	env := FromEnvironment()
	assert.Equal(t, "", env.BucketName)
	assert.Equal(t, "", env.Tier)
	assert.Equal(t, "europe-west1", env.Region)

	unset := env.Unset()
	assert.Contains(t, unset, EnvBucketName)
	assert.Contains(t, unset, EnvTier)
	assert.NotContains(t, unset, EnvRegion)
}

func TestLoadTrainingConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `trainingInput:
  scaleTier: CUSTOM
  masterType: n1-standard-8
  workerType: n1-standard-4
  workerCount: 4
  parameterServerCount: 1
  hyperparameters:
    hidden-units: "128,64,32"
    dropout-prob: "0.1"
`
	require.NoError(t, afero.WriteFile(fs, "config.yaml", []byte(content), 0644))

	cfg, err := LoadTrainingConfig(fs, "config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "CUSTOM", cfg.TrainingInput.ScaleTier)
	assert.Equal(t, "n1-standard-8", cfg.TrainingInput.MasterType)
	assert.Equal(t, "n1-standard-4", cfg.TrainingInput.WorkerType)
	assert.Equal(t, 4, cfg.TrainingInput.WorkerCount)
	assert.Equal(t, 1, cfg.TrainingInput.ParameterCount)
	assert.Equal(t, "128,64,32", cfg.TrainingInput.Hyperparams["hidden-units"])
}

func TestLoadTrainingConfigMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadTrainingConfig(fs, "does-not-exist.yaml")
	require.Error(t, err)
}

func TestLoadTrainingConfigMalformedYaml(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.yaml", []byte("trainingInput: ["), 0644))

	_, err := LoadTrainingConfig(fs, "config.yaml")
	require.Error(t, err)
}
