package git

import (
	"strconv"

	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"go.uber.org/zap"
)

// HistoryManager reads commit history and file blobs out of the managed
// repository. Two implementations exist behind this interface: the git CLI
// (default) and the go-git SDK, selected by USE_GIT_CLI.
type HistoryManager interface {
	// GetHistory lists up to maxCount commits, newest first. When file is
	// non-empty the listing is restricted to that path and each record
	// carries a per-file status.
	GetHistory(gitCtx GitContext, maxCount int, file string) (*HistoryResult, error)
	// GetGraphHistory lists all commits with parent hashes in date order.
	GetGraphHistory(gitCtx GitContext) (*GraphHistoryResult, error)
	// GetFileAtRevision returns the blob content of one file as of one
	// revision. A single object read, not a checkout.
	GetFileAtRevision(gitCtx GitContext, revision string, path string) (string, error)
}

type HistoryManagerImpl struct {
	HistoryManager
}

func NewHistoryManagerImpl(logger *zap.SugaredLogger, conf *internals.Configuration, runner CommandRunner) *HistoryManagerImpl {
	if conf.UseGitCli {
		return &HistoryManagerImpl{
			HistoryManager: NewCliHistoryManagerImpl(logger, conf, runner),
		}
	}
	return &HistoryManagerImpl{
		HistoryManager: NewGoGitHistoryManagerImpl(logger, conf),
	}
}

type CliHistoryManagerImpl struct {
	logger *zap.SugaredLogger
	conf   *internals.Configuration
	runner CommandRunner
}

func NewCliHistoryManagerImpl(logger *zap.SugaredLogger, conf *internals.Configuration, runner CommandRunner) *CliHistoryManagerImpl {
	return &CliHistoryManagerImpl{
		logger: logger,
		conf:   conf,
		runner: runner,
	}
}

func (impl *CliHistoryManagerImpl) GetHistory(gitCtx GitContext, maxCount int, file string) (*HistoryResult, error) {
	if maxCount <= 0 {
		maxCount = impl.conf.GitHistoryCount
	}
	cmdArgs := []string{"log", "-n", strconv.Itoa(maxCount), GITLOGFORMAT}
	if file != "" {
		cmdArgs = append(cmdArgs, "--name-status", "--", file)
	}
	impl.logger.Debugw("git", "args", cmdArgs)
	output, errMsg, err := impl.runner.Run(gitCtx, cmdArgs...)
	impl.logger.Debugw("log output", "errMsg", errMsg, "error", err)
	if err != nil {
		return nil, err
	}
	return NewHistoryResult(parseLogOutput(output, file != "")), nil
}

func (impl *CliHistoryManagerImpl) GetGraphHistory(gitCtx GitContext) (*GraphHistoryResult, error) {
	cmdArgs := []string{"log", "--date-order", GITGRAPHFORMAT}
	impl.logger.Debugw("git", "args", cmdArgs)
	output, errMsg, err := impl.runner.Run(gitCtx, cmdArgs...)
	impl.logger.Debugw("graph log output", "errMsg", errMsg, "error", err)
	if err != nil {
		return nil, err
	}
	return NewGraphHistoryResult(parseGraphOutput(output)), nil
}

func (impl *CliHistoryManagerImpl) GetFileAtRevision(gitCtx GitContext, revision string, path string) (string, error) {
	output, errMsg, err := impl.runner.RunRaw(gitCtx, "show", revision+":"+path)
	if err != nil {
		impl.logger.Errorw("error in reading blob", "revision", revision, "path", path, "errMsg", errMsg, "err", err)
		return "", err
	}
	return output, nil
}
