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
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals/middleware"
	"go.uber.org/zap"
)

// CommandRunner executes the git binary inside the managed configuration
// directory with a bounded timeout and output-size cap. One process per call,
// no shared state between calls, no retries.
type CommandRunner interface {
	// Run returns trimmed stdout.
	Run(gitCtx GitContext, arg ...string) (output string, errMsg string, err error)
	// RunRaw returns stdout byte for byte, for blob reads where surrounding
	// whitespace is file content.
	RunRaw(gitCtx GitContext, arg ...string) (output string, errMsg string, err error)
}

type CommandRunnerImpl struct {
	logger *zap.SugaredLogger
	conf   *internals.Configuration
}

func NewCommandRunnerImpl(logger *zap.SugaredLogger, conf *internals.Configuration) *CommandRunnerImpl {
	return &CommandRunnerImpl{logger: logger, conf: conf}
}

var errOutputLimitReached = errors.New("output limit reached")

// cappedBuffer rejects writes once the byte limit is crossed; the write error
// aborts the producing command instead of buffering unbounded output.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > b.limit {
		b.truncated = true
		return 0, errOutputLimitReached
	}
	return b.buf.Write(p)
}

func (impl *CommandRunnerImpl) Run(gitCtx GitContext, arg ...string) (output string, errMsg string, err error) {
	output, errMsg, err = impl.RunRaw(gitCtx, arg...)
	return strings.TrimSpace(output), errMsg, err
}

func (impl *CommandRunnerImpl) RunRaw(gitCtx GitContext, arg ...string) (output string, errMsg string, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		middleware.GitOperationDuration.WithLabelValues(arg[0], status).Observe(time.Since(start).Seconds())
	}()
	cmd, cmdCtx, cancel := impl.createCmdWithContext(gitCtx, "git", arg...)
	defer cancel()
	output, errMsg, err = impl.runCommand(cmd)
	if err != nil && cmdCtx.Err() == context.DeadlineExceeded {
		timeout := time.Duration(impl.conf.CliCmdTimeoutSec) * time.Second
		impl.logger.Errorw("git command timed out", "args", arg, "timeout", timeout)
		return "", "", &TimeoutError{Timeout: timeout}
	}
	return output, errMsg, err
}

func (impl *CommandRunnerImpl) createCmdWithContext(ctx GitContext, name string, arg ...string) (*exec.Cmd, GitContext, context.CancelFunc) {
	newCtx := ctx
	cancel := func() {}
	if impl.conf.CliCmdTimeoutSec > 0 {
		newCtx, cancel = ctx.WithTimeout(impl.conf.CliCmdTimeoutSec)
	}
	cmd := exec.CommandContext(newCtx, name, arg...)
	cmd.Dir = impl.conf.RepoDirectory
	return cmd, newCtx, cancel
}

func (impl *CommandRunnerImpl) runCommand(cmd *exec.Cmd) (output string, errMsg string, err error) {
	stdout := &cappedBuffer{limit: impl.conf.CliCmdMaxOutputBytes}
	stderr := &cappedBuffer{limit: impl.conf.CliCmdMaxOutputBytes}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Env = append(os.Environ(), "HOME=/dev/null")
	err = cmd.Run()
	if stdout.truncated || stderr.truncated {
		impl.logger.Errorw("git output exceeded configured cap", "args", cmd.Args, "limitBytes", impl.conf.CliCmdMaxOutputBytes)
		return "", "", &OutputTooLargeError{Limit: impl.conf.CliCmdMaxOutputBytes}
	}
	output = stdout.buf.String()
	if err != nil {
		errOutput := strings.TrimSpace(stderr.buf.String())
		impl.logger.Errorw("error in git cli operation", "msg", errOutput, "err", err)
		exErr, ok := err.(*exec.ExitError)
		if !ok {
			return output, errOutput, err
		}
		return output, errOutput, &ExternalToolError{ExitCode: exErr.ExitCode(), Stderr: errOutput}
	}
	return output, "", nil
}
