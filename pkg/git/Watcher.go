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
	"context"
	"fmt"

	"github.com/gammazero/workerpool"
	"github.com/robfig/cron/v3"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"go.uber.org/zap"
)

// HeadWatcher periodically polls the managed repository head and logs new
// commits. Observability only: nothing is persisted between polls.
type HeadWatcher interface {
	StopWatching()
}

type HeadWatcherImpl struct {
	logger       *zap.SugaredLogger
	conf         *internals.Configuration
	runner       CommandRunner
	history      HistoryManager
	cron         *cron.Cron
	pollerPool   *workerpool.WorkerPool
	lastSeenHead string
}

func NewHeadWatcherImpl(logger *zap.SugaredLogger, conf *internals.Configuration, runner CommandRunner, history *HistoryManagerImpl) (*HeadWatcherImpl, error) {
	cronInst := cron.New(cron.WithChain())
	cronInst.Start()
	impl := &HeadWatcherImpl{
		logger:     logger,
		conf:       conf,
		runner:     runner,
		history:    history,
		cron:       cronInst,
		pollerPool: workerpool.New(1),
	}
	if !conf.EnableHeadWatcher {
		return impl, nil
	}
	_, err := cronInst.AddFunc(fmt.Sprintf("@every %dm", conf.WatchIntervalMin), impl.Watch)
	if err != nil {
		logger.Errorw("error in starting head watcher", "err", err)
		return nil, err
	}
	return impl, nil
}

func (impl *HeadWatcherImpl) StopWatching() {
	impl.cron.Stop()
	impl.pollerPool.StopWait()
}

func (impl *HeadWatcherImpl) Watch() {
	impl.pollerPool.Submit(impl.pollHead)
}

func (impl *HeadWatcherImpl) pollHead() {
	gitCtx := BuildGitContext(context.Background())
	head, errMsg, err := impl.runner.Run(gitCtx, "rev-parse", "HEAD")
	if err != nil {
		// empty or missing repo, nothing to report yet
		impl.logger.Debugw("head poll skipped", "errMsg", errMsg, "err", err)
		return
	}
	if head == impl.lastSeenHead {
		return
	}
	result, err := impl.history.GetHistory(gitCtx, 1, "")
	if err == nil && result.Latest != nil {
		impl.logger.Infow("configuration head moved", "head", head,
			"subject", result.Latest.Subject, "author", result.Latest.AuthorName)
	}
	impl.lastSeenHead = head
}
