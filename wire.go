//go:build wireinject
// +build wireinject

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

package main

import (
	"github.com/google/wire"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/api"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals/logger"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg/git"
)

func InitializeApp() (*App, error) {

	wire.Build(
		NewApp,
		api.NewMuxRouter,
		logger.NewSugaredLogger,
		api.NewRestHandlerImpl,
		wire.Bind(new(api.RestHandler), new(*api.RestHandlerImpl)),
		internals.ParseConfiguration,
		internals.NewPathLocker,
		pkg.NewConfigRepoManagerImpl,
		wire.Bind(new(pkg.ConfigRepoManager), new(*pkg.ConfigRepoManagerImpl)),
		git.NewCommandRunnerImpl,
		wire.Bind(new(git.CommandRunner), new(*git.CommandRunnerImpl)),
		git.NewHistoryManagerImpl,
		wire.Bind(new(git.HistoryManager), new(*git.HistoryManagerImpl)),
		git.NewWorkingTreeFs,
		git.NewRestoreManagerImpl,
		wire.Bind(new(git.RestoreManager), new(*git.RestoreManagerImpl)),
		git.NewHeadWatcherImpl,
	)
	return &App{}, nil
}
