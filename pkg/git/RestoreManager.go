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
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"go.uber.org/zap"
)

// restoreState tracks the backup-write-rollback transaction. Transitions:
// Attempting -> Committed on a clean write, Attempting -> RolledBack when the
// failed restore was undone from backup, Attempting -> Corrupted when the
// rollback write failed too and the target state is indeterminate.
type restoreState int

const (
	restoreAttempting restoreState = iota
	restoreCommitted
	restoreRolledBack
	restoreCorrupted
)

func (s restoreState) String() string {
	switch s {
	case restoreCommitted:
		return "Committed"
	case restoreRolledBack:
		return "RolledBack"
	case restoreCorrupted:
		return "Corrupted"
	}
	return "Attempting"
}

type RestoreManager interface {
	// RestoreFile rewrites path, relative to the managed root, to its content
	// at revision. Concurrent restores on one path must be serialized by the
	// caller.
	RestoreFile(gitCtx GitContext, revision string, path string) error
}

type RestoreManagerImpl struct {
	logger  *zap.SugaredLogger
	history HistoryManager
	fs      billy.Filesystem
}

func NewRestoreManagerImpl(logger *zap.SugaredLogger, history *HistoryManagerImpl, fs billy.Filesystem) *RestoreManagerImpl {
	return &RestoreManagerImpl{
		logger:  logger,
		history: history,
		fs:      fs,
	}
}

// NewWorkingTreeFs returns the filesystem the restore engine writes into,
// rooted at the managed configuration directory.
func NewWorkingTreeFs(conf *internals.Configuration) billy.Filesystem {
	return osfs.New(conf.RepoDirectory)
}

// RestoreFile overwrites the target with a plain truncating write, not an
// atomic rename: CIFS and similar network mounts used for /config reject
// rename-over-existing, so atomicity is traded for an explicit backup and
// rollback discipline.
func (impl *RestoreManagerImpl) RestoreFile(gitCtx GitContext, revision string, path string) error {
	state := restoreAttempting

	backup, hasBackup, err := impl.readBackup(path)
	if err != nil {
		return err
	}

	var restoreErr error
	content, err := impl.history.GetFileAtRevision(gitCtx, revision, path)
	if err != nil {
		impl.logger.Errorw("error in fetching file at revision", "revision", revision, "path", path, "err", err)
		restoreErr = err
	} else if err = impl.writeFile(path, []byte(content)); err == nil {
		state = restoreCommitted
		impl.logger.Infow("file restored", "revision", revision, "path", path, "state", state)
		return nil
	} else {
		impl.logger.Errorw("error in writing restored content", "path", path, "err", err)
		restoreErr = err
	}

	if !hasBackup {
		// target did not exist before, nothing to roll back to
		return restoreErr
	}

	if rollbackErr := impl.writeFile(path, backup); rollbackErr != nil {
		state = restoreCorrupted
		impl.logger.Errorw("rollback write failed, file state is indeterminate",
			"revision", revision, "path", path, "state", state, "restoreErr", restoreErr, "rollbackErr", rollbackErr)
		return &RestoreFailedError{Path: path, Cause: restoreErr, RollbackErr: rollbackErr}
	}
	state = restoreRolledBack
	impl.logger.Warnw("restore rolled back, file unchanged", "revision", revision, "path", path, "state", state, "err", restoreErr)
	return &RestoreRolledBackError{Path: path, Cause: restoreErr}
}

// readBackup captures the pre-restore bytes. A missing target is a normal
// case (recovering a deleted file), reported as no backup rather than error.
func (impl *RestoreManagerImpl) readBackup(path string) ([]byte, bool, error) {
	data, err := util.ReadFile(impl.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (impl *RestoreManagerImpl) writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := impl.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return util.WriteFile(impl.fs, path, data, 0644)
}
