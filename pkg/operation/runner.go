// Copyright 2025 walteh LLC
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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/superreplace/pkg/log"
	"github.com/walteh/superreplace/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations one after another
type OperationRunner struct {
	logger  *zerolog.Logger
	tracker status.Reporter
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger, tracker status.Reporter) *OperationRunner {
	return &OperationRunner{
		logger:  logger,
		tracker: tracker,
	}
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	return op.Execute(ctx)
}

// 🔁 RunAll executes every operation in order. A failing operation is
// reported and the next one still runs; the failures are returned together.
func (r *OperationRunner) RunAll(ctx context.Context, ops []Operation) error {
	console := log.FromContext(ctx)

	r.tracker.StartOperation(ctx, len(ops))
	defer r.tracker.FinishOperation(ctx)

	var errs []error
	for i, op := range ops {
		if err := r.Run(ctx, op); err != nil {
			r.logger.Error().Err(err).Int("operation", i).Msg("operation failed")
			console.Error(err.Error())
			errs = append(errs, err)
		}
		r.tracker.UpdateProgress(ctx, i+1)
		if i < len(ops)-1 {
			console.LogNewline()
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
