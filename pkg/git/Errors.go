/*
 * Copyright (c) 2024. HomeAssistantVersionControl.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package git

import (
	"fmt"
	"time"
)

// ExternalToolError reports a nonzero exit from the git binary. It is
// propagated to the caller unmodified and never retried.
type ExternalToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("git exited with code %d: %s", e.ExitCode, e.Stderr)
}

// TimeoutError reports a command killed on its deadline.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("git command timed out after %s", e.Timeout)
}

// OutputTooLargeError reports command output exceeding the configured cap.
type OutputTooLargeError struct {
	Limit int
}

func (e *OutputTooLargeError) Error() string {
	return fmt.Sprintf("git command output exceeded %d bytes", e.Limit)
}

// RestoreRolledBackError means the restore did not happen but the rollback
// succeeded: the target file is unchanged from the caller's point of view.
type RestoreRolledBackError struct {
	Path  string
	Cause error
}

func (e *RestoreRolledBackError) Error() string {
	return fmt.Sprintf("restore of %s failed and was rolled back: %v", e.Path, e.Cause)
}

func (e *RestoreRolledBackError) Unwrap() error { return e.Cause }

// RestoreFailedError means both the restore and the rollback failed; the
// target file may be partially written or missing. Critical, not recoverable.
type RestoreFailedError struct {
	Path        string
	Cause       error
	RollbackErr error
}

func (e *RestoreFailedError) Error() string {
	return fmt.Sprintf("restore of %s failed and rollback also failed, file state is indeterminate: %v (rollback: %v)",
		e.Path, e.Cause, e.RollbackErr)
}

func (e *RestoreFailedError) Unwrap() error { return e.Cause }
