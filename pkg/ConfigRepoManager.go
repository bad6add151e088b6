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

package pkg

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals/middleware"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg/git"
	"go.uber.org/zap"
)

type ConfigRepoManager interface {
	GetHistory(ctx context.Context, maxCount int, file string) (*git.HistoryResult, error)
	GetGraphHistory(ctx context.Context) (*git.GraphHistoryResult, error)
	RestoreFile(ctx context.Context, revision string, path string) error
	GetFileDiff(ctx context.Context, revision string, path string) (string, error)
	GetStatus(ctx context.Context) (string, error)
	GetDiff(ctx context.Context, staged bool) (string, error)
	ListBranches(ctx context.Context) ([]string, error)
	StageFiles(ctx context.Context, paths []string) error
	Commit(ctx context.Context, message string) (string, error)
	InitRepo(ctx context.Context) error
	ResolveRevision(ctx context.Context, revision string) (string, error)
}

type ConfigRepoManagerImpl struct {
	logger  *zap.SugaredLogger
	conf    *internals.Configuration
	locker  *internals.PathLocker
	history git.HistoryManager
	restore git.RestoreManager
	runner  git.CommandRunner
}

func NewConfigRepoManagerImpl(
	logger *zap.SugaredLogger,
	conf *internals.Configuration,
	locker *internals.PathLocker,
	history git.HistoryManager,
	restore git.RestoreManager,
	runner git.CommandRunner,
) *ConfigRepoManagerImpl {
	return &ConfigRepoManagerImpl{
		logger:  logger,
		conf:    conf,
		locker:  locker,
		history: history,
		restore: restore,
		runner:  runner,
	}
}

func (impl *ConfigRepoManagerImpl) GetHistory(ctx context.Context, maxCount int, file string) (*git.HistoryResult, error) {
	return impl.history.GetHistory(git.BuildGitContext(ctx), maxCount, file)
}

func (impl *ConfigRepoManagerImpl) GetGraphHistory(ctx context.Context) (*git.GraphHistoryResult, error) {
	return impl.history.GetGraphHistory(git.BuildGitContext(ctx))
}

// RestoreFile serializes restores per target path; the engine itself assumes
// a single writer per path.
func (impl *ConfigRepoManagerImpl) RestoreFile(ctx context.Context, revision string, path string) error {
	lock := impl.locker.LeaseLocker(path)
	defer impl.locker.ReturnLocker(path)
	lock.Mutex.Lock()
	defer lock.Mutex.Unlock()
	err := impl.restore.RestoreFile(git.BuildGitContext(ctx), revision, path)
	middleware.RestoreCounter.WithLabelValues(restoreOutcomeLabel(err)).Inc()
	return err
}

func restoreOutcomeLabel(err error) string {
	switch err.(type) {
	case nil:
		return "committed"
	case *git.RestoreRolledBackError:
		return "rolled_back"
	case *git.RestoreFailedError:
		return "corrupted"
	}
	return "aborted"
}

// GetFileDiff renders a unified diff of the working copy of path against its
// content at revision. A missing working copy diffs as an empty file.
func (impl *ConfigRepoManagerImpl) GetFileDiff(ctx context.Context, revision string, path string) (string, error) {
	blob, err := impl.history.GetFileAtRevision(git.BuildGitContext(ctx), revision, path)
	if err != nil {
		return "", err
	}
	current, err := os.ReadFile(filepath.Join(impl.conf.RepoDirectory, path))
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(blob),
		B:        difflib.SplitLines(string(current)),
		FromFile: path + "@" + revision,
		ToFile:   path,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func (impl *ConfigRepoManagerImpl) GetStatus(ctx context.Context) (string, error) {
	output, errMsg, err := impl.runner.Run(git.BuildGitContext(ctx), "status", "--porcelain")
	if err != nil {
		impl.logger.Errorw("error in status", "errMsg", errMsg, "err", err)
		return "", err
	}
	return output, nil
}

func (impl *ConfigRepoManagerImpl) GetDiff(ctx context.Context, staged bool) (string, error) {
	cmdArgs := []string{"diff"}
	if staged {
		cmdArgs = append(cmdArgs, "--cached")
	}
	output, errMsg, err := impl.runner.Run(git.BuildGitContext(ctx), cmdArgs...)
	if err != nil {
		impl.logger.Errorw("error in diff", "errMsg", errMsg, "err", err)
		return "", err
	}
	return output, nil
}

func (impl *ConfigRepoManagerImpl) ListBranches(ctx context.Context) ([]string, error) {
	output, errMsg, err := impl.runner.Run(git.BuildGitContext(ctx), "branch", "--format=%(refname:short)")
	if err != nil {
		impl.logger.Errorw("error in listing branches", "errMsg", errMsg, "err", err)
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

func (impl *ConfigRepoManagerImpl) StageFiles(ctx context.Context, paths []string) error {
	cmdArgs := []string{"add"}
	if len(paths) == 0 {
		cmdArgs = append(cmdArgs, "-A")
	} else {
		cmdArgs = append(cmdArgs, "--")
		cmdArgs = append(cmdArgs, paths...)
	}
	_, errMsg, err := impl.runner.Run(git.BuildGitContext(ctx), cmdArgs...)
	if err != nil {
		impl.logger.Errorw("error in staging files", "paths", paths, "errMsg", errMsg, "err", err)
	}
	return err
}

func (impl *ConfigRepoManagerImpl) Commit(ctx context.Context, message string) (string, error) {
	gitCtx := git.BuildGitContext(ctx)
	_, errMsg, err := impl.runner.Run(gitCtx, "commit", "-m", message)
	if err != nil {
		impl.logger.Errorw("error in commit", "errMsg", errMsg, "err", err)
		return "", err
	}
	hash, errMsg, err := impl.runner.Run(gitCtx, "rev-parse", "HEAD")
	if err != nil {
		impl.logger.Errorw("error in resolving new head", "errMsg", errMsg, "err", err)
		return "", err
	}
	return hash, nil
}

func (impl *ConfigRepoManagerImpl) InitRepo(ctx context.Context) error {
	_, errMsg, err := impl.runner.Run(git.BuildGitContext(ctx), "init")
	if err != nil {
		impl.logger.Errorw("error in init", "errMsg", errMsg, "err", err)
	}
	return err
}

func (impl *ConfigRepoManagerImpl) ResolveRevision(ctx context.Context, revision string) (string, error) {
	output, errMsg, err := impl.runner.Run(git.BuildGitContext(ctx), "rev-parse", "--verify", revision)
	if err != nil {
		impl.logger.Errorw("error in resolving revision", "revision", revision, "errMsg", errMsg, "err", err)
		return "", err
	}
	return output, nil
}
