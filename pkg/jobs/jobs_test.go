// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jobs

import (
	"context"
	"strings"
	"testing"

	ml "google.golang.org/api/ml/v1"
)

func TestNewClientRequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	if err == nil {
		t.Fatal("Expected error for empty project ID, got nil")
	}
}

func TestFormatJob(t *testing.T) {
	job := &ml.GoogleCloudMlV1__Job{
		JobId:      "train_tensorflow_taxi_STANDARD_1_20200314_150926",
		State:      "SUCCEEDED",
		CreateTime: "2020-03-14T15:09:30Z",
		EndTime:    "2020-03-14T16:02:11Z",
	}

	got := FormatJob(job)
	for _, want := range []string{
		"train_tensorflow_taxi_STANDARD_1_20200314_150926",
		"SUCCEEDED",
		"created 2020-03-14T15:09:30Z",
		"ended 2020-03-14T16:02:11Z",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJob() = %q, missing %q", got, want)
		}
	}
}

func TestFormatJobIncludesError(t *testing.T) {
	job := &ml.GoogleCloudMlV1__Job{
		JobId:        "train_tensorflow_taxi_BASIC_20200314_150926",
		State:        "FAILED",
		CreateTime:   "2020-03-14T15:09:30Z",
		ErrorMessage: "The replica master 0 exited with a non-zero status of 1.",
	}

	got := FormatJob(job)
	if !strings.Contains(got, "error: The replica master 0 exited") {
		t.Errorf("FormatJob() = %q, missing error message", got)
	}
}

func TestFormatJobDetail(t *testing.T) {
	job := &ml.GoogleCloudMlV1__Job{
		JobId:      "train_tensorflow_taxi_STANDARD_1_20200314_150926",
		State:      "RUNNING",
		CreateTime: "2020-03-14T15:09:30Z",
		StartTime:  "2020-03-14T15:11:02Z",
		TrainingInput: &ml.GoogleCloudMlV1__TrainingInput{
			Region:         "us-central1",
			JobDir:         "gs://my-ml-bucket/tensorflow_taxi",
			ScaleTier:      "STANDARD_1",
			RuntimeVersion: "1.15",
			PythonVersion:  "3.7",
		},
	}

	got := FormatJobDetail(job)
	for _, want := range []string{
		"State:   RUNNING",
		"Started: 2020-03-14T15:11:02Z",
		"Region:  us-central1",
		"Job dir: gs://my-ml-bucket/tensorflow_taxi",
		"Tier:    STANDARD_1",
		"Runtime: 1.15 (python 3.7)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatJobDetail() = %q, missing %q", got, want)
		}
	}
}

func TestFormatJobDetailWithoutTrainingInput(t *testing.T) {
	job := &ml.GoogleCloudMlV1__Job{
		JobId:      "train_tensorflow_taxi_BASIC_20210102_030405",
		State:      "QUEUED",
		CreateTime: "2021-01-02T03:04:05Z",
	}

	got := FormatJobDetail(job)
	if strings.Contains(got, "Region:") {
		t.Errorf("FormatJobDetail() = %q, unexpected training input section", got)
	}
}
