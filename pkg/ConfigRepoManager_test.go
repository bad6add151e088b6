package pkg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg/git"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeHistory struct {
	blob    string
	blobErr error
}

func (f *fakeHistory) GetHistory(gitCtx git.GitContext, maxCount int, file string) (*git.HistoryResult, error) {
	return git.NewHistoryResult(nil), nil
}

func (f *fakeHistory) GetGraphHistory(gitCtx git.GitContext) (*git.GraphHistoryResult, error) {
	return git.NewGraphHistoryResult(nil), nil
}

func (f *fakeHistory) GetFileAtRevision(gitCtx git.GitContext, revision string, path string) (string, error) {
	return f.blob, f.blobErr
}

type fakeRestore struct {
	err   error
	calls int
}

func (f *fakeRestore) RestoreFile(gitCtx git.GitContext, revision string, path string) error {
	f.calls++
	return f.err
}

type recordingRunner struct {
	output string
	err    error
	calls  [][]string
}

func (r *recordingRunner) Run(gitCtx git.GitContext, arg ...string) (string, string, error) {
	r.calls = append(r.calls, arg)
	return r.output, "", r.err
}

func (r *recordingRunner) RunRaw(gitCtx git.GitContext, arg ...string) (string, string, error) {
	return r.Run(gitCtx, arg...)
}

func newManager(conf *internals.Configuration, history git.HistoryManager, restore git.RestoreManager, runner git.CommandRunner) *ConfigRepoManagerImpl {
	logger := zap.NewNop().Sugar()
	if conf == nil {
		conf = &internals.Configuration{}
	}
	return NewConfigRepoManagerImpl(logger, conf, internals.NewPathLocker(logger), history, restore, runner)
}

func TestGetFileDiffAgainstWorkingCopy(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "configuration.yaml"), []byte("version: 2\n"), 0644))
	manager := newManager(&internals.Configuration{RepoDirectory: dir}, &fakeHistory{blob: "version: 1\n"}, &fakeRestore{}, &recordingRunner{})

	diff, err := manager.GetFileDiff(context.Background(), "abc123", "configuration.yaml")

	assert.NoError(t, err)
	assert.Contains(t, diff, "--- configuration.yaml@abc123")
	assert.Contains(t, diff, "+++ configuration.yaml")
	assert.Contains(t, diff, "-version: 1")
	assert.Contains(t, diff, "+version: 2")
}

func TestGetFileDiffMissingWorkingCopy(t *testing.T) {
	manager := newManager(&internals.Configuration{RepoDirectory: t.TempDir()}, &fakeHistory{blob: "version: 1\n"}, &fakeRestore{}, &recordingRunner{})

	diff, err := manager.GetFileDiff(context.Background(), "abc123", "configuration.yaml")

	assert.NoError(t, err)
	// working copy absent, whole blob shows as removed
	assert.Contains(t, diff, "-version: 1")
}

func TestGetFileDiffBlobError(t *testing.T) {
	blobErr := &git.ExternalToolError{ExitCode: 128, Stderr: "bad revision"}
	manager := newManager(nil, &fakeHistory{blobErr: blobErr}, &fakeRestore{}, &recordingRunner{})

	_, err := manager.GetFileDiff(context.Background(), "nope", "configuration.yaml")

	assert.Equal(t, blobErr, err)
}

func TestRestoreFileDelegates(t *testing.T) {
	restore := &fakeRestore{}
	manager := newManager(nil, &fakeHistory{}, restore, &recordingRunner{})

	err := manager.RestoreFile(context.Background(), "abc123", "configuration.yaml")

	assert.NoError(t, err)
	assert.Equal(t, 1, restore.calls)
	assert.Equal(t, 0, len(manager.locker.Bank))
}

func TestRestoreFilePropagatesEngineError(t *testing.T) {
	restoreErr := &git.RestoreRolledBackError{Path: "configuration.yaml", Cause: errors.New("bad revision")}
	manager := newManager(nil, &fakeHistory{}, &fakeRestore{err: restoreErr}, &recordingRunner{})

	err := manager.RestoreFile(context.Background(), "abc123", "configuration.yaml")

	assert.Equal(t, restoreErr, err)
}

func TestRestoreOutcomeLabel(t *testing.T) {
	assert.Equal(t, "committed", restoreOutcomeLabel(nil))
	assert.Equal(t, "rolled_back", restoreOutcomeLabel(&git.RestoreRolledBackError{}))
	assert.Equal(t, "corrupted", restoreOutcomeLabel(&git.RestoreFailedError{}))
	assert.Equal(t, "aborted", restoreOutcomeLabel(errors.New("timeout")))
}

func TestStageFilesArgs(t *testing.T) {
	runner := &recordingRunner{}
	manager := newManager(nil, &fakeHistory{}, &fakeRestore{}, runner)

	assert.NoError(t, manager.StageFiles(context.Background(), nil))
	assert.Equal(t, []string{"add", "-A"}, runner.calls[0])

	assert.NoError(t, manager.StageFiles(context.Background(), []string{"configuration.yaml", "automations.yaml"}))
	assert.Equal(t, []string{"add", "--", "configuration.yaml", "automations.yaml"}, runner.calls[1])
}

func TestGetDiffArgs(t *testing.T) {
	runner := &recordingRunner{output: "diff text"}
	manager := newManager(nil, &fakeHistory{}, &fakeRestore{}, runner)

	out, err := manager.GetDiff(context.Background(), false)
	assert.NoError(t, err)
	assert.Equal(t, "diff text", out)
	assert.Equal(t, []string{"diff"}, runner.calls[0])

	_, err = manager.GetDiff(context.Background(), true)
	assert.NoError(t, err)
	assert.Equal(t, []string{"diff", "--cached"}, runner.calls[1])
}

func TestListBranchesEmptyOutput(t *testing.T) {
	manager := newManager(nil, &fakeHistory{}, &fakeRestore{}, &recordingRunner{output: ""})

	branches, err := manager.ListBranches(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{}, branches)
}

func TestCommitReturnsNewHead(t *testing.T) {
	runner := &recordingRunner{output: "deadbeef"}
	manager := newManager(nil, &fakeHistory{}, &fakeRestore{}, runner)

	hash, err := manager.Commit(context.Background(), "manual snapshot")

	assert.NoError(t, err)
	assert.Equal(t, "deadbeef", hash)
	assert.Equal(t, []string{"commit", "-m", "manual snapshot"}, runner.calls[0])
	assert.Equal(t, []string{"rev-parse", "HEAD"}, runner.calls[1])
}
