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

// Package gcs checks Cloud Storage preconditions before a job submission.
package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
)

// CheckBucket verifies that the job-directory bucket exists and is
// readable with the caller's credentials. It is an opt-in preflight; the
// default submission path performs no validation and lets the platform
// report the failure.
func CheckBucket(ctx context.Context, bucket string) error {
	if bucket == "" {
		return errors.New("bucket name is empty")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create Cloud Storage client")
	}
	defer client.Close()

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		return errors.Wrapf(err, "bucket gs://%s is not accessible", bucket)
	}
	return nil
}
