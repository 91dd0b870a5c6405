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

// Package jobs inspects and cancels AI Platform training jobs through the
// ml.googleapis.com REST API.
package jobs

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	ml "google.golang.org/api/ml/v1"
)

// Client wraps the AI Platform jobs API for a single project.
type Client struct {
	svc     *ml.Service
	project string
}

// NewClient creates a jobs client using application default credentials.
func NewClient(ctx context.Context, project string) (*Client, error) {
	if project == "" {
		return nil, errors.New("project ID is required")
	}

	svc, err := ml.NewService(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AI Platform service client")
	}
	return &Client{svc: svc, project: project}, nil
}

func (c *Client) jobResource(jobID string) string {
	return fmt.Sprintf("projects/%s/jobs/%s", c.project, jobID)
}

// Describe fetches the current state of one training job.
func (c *Client) Describe(ctx context.Context, jobID string) (*ml.GoogleCloudMlV1__Job, error) {
	job, err := c.svc.Projects.Jobs.Get(c.jobResource(jobID)).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to describe job %q", jobID)
	}
	return job, nil
}

// List returns up to limit jobs in the project, newest first, optionally
// narrowed by an API filter expression such as "state=RUNNING".
func (c *Client) List(ctx context.Context, filter string, limit int64) ([]*ml.GoogleCloudMlV1__Job, error) {
	call := c.svc.Projects.Jobs.List(fmt.Sprintf("projects/%s", c.project)).Context(ctx)
	if filter != "" {
		call = call.Filter(filter)
	}
	if limit > 0 {
		call = call.PageSize(limit)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	return resp.Jobs, nil
}

// Cancel requests cancellation of a running training job. Cancellation is
// asynchronous on the platform side.
func (c *Client) Cancel(ctx context.Context, jobID string) error {
	_, err := c.svc.Projects.Jobs.Cancel(c.jobResource(jobID), &ml.GoogleCloudMlV1__CancelJobRequest{}).Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, "failed to cancel job %q", jobID)
	}
	return nil
}

// FormatJob renders a one-line job summary for terminal output.
func FormatJob(job *ml.GoogleCloudMlV1__Job) string {
	out := fmt.Sprintf("%s\t%s\tcreated %s", job.JobId, job.State, job.CreateTime)
	if job.EndTime != "" {
		out += fmt.Sprintf("\tended %s", job.EndTime)
	}
	if job.ErrorMessage != "" {
		out += fmt.Sprintf("\n  error: %s", job.ErrorMessage)
	}
	return out
}

// FormatJobDetail renders a multi-line job description for terminal
// output, including the training input the job was submitted with.
func FormatJobDetail(job *ml.GoogleCloudMlV1__Job) string {
	out := fmt.Sprintf("Job:     %s\nState:   %s\nCreated: %s", job.JobId, job.State, job.CreateTime)
	if job.StartTime != "" {
		out += fmt.Sprintf("\nStarted: %s", job.StartTime)
	}
	if job.EndTime != "" {
		out += fmt.Sprintf("\nEnded:   %s", job.EndTime)
	}
	if ti := job.TrainingInput; ti != nil {
		out += fmt.Sprintf("\nRegion:  %s\nJob dir: %s", ti.Region, ti.JobDir)
		if ti.ScaleTier != "" {
			out += fmt.Sprintf("\nTier:    %s", ti.ScaleTier)
		}
		if ti.RuntimeVersion != "" {
			out += fmt.Sprintf("\nRuntime: %s (python %s)", ti.RuntimeVersion, ti.PythonVersion)
		}
	}
	if job.ErrorMessage != "" {
		out += fmt.Sprintf("\nError:   %s", job.ErrorMessage)
	}
	return out
}
