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
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/api"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals/middleware"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg/git"
	"go.uber.org/zap"
)

type App struct {
	MuxRouter *api.MuxRouter
	Logger    *zap.SugaredLogger
	watcher   *git.HeadWatcherImpl
	server    *http.Server
	conf      *internals.Configuration
}

func NewApp(MuxRouter *api.MuxRouter, Logger *zap.SugaredLogger, watcher *git.HeadWatcherImpl, conf *internals.Configuration) *App {
	return &App{
		MuxRouter: MuxRouter,
		Logger:    Logger,
		watcher:   watcher,
		conf:      conf,
	}
}

type PanicLogger struct {
	Logger *zap.SugaredLogger
}

func (impl *PanicLogger) Println(param ...interface{}) {
	impl.Logger.Errorw("PANIC", "err", param)
	middleware.PanicCounter.WithLabelValues().Inc()
}

func (app *App) Start() {
	port := app.conf.ServerPort
	app.Logger.Infow("starting server on ", "port", port)
	app.MuxRouter.Init()

	h := handlers.RecoveryHandler(handlers.RecoveryLogger(&PanicLogger{Logger: app.Logger}))(app.MuxRouter.Router)

	server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: h}
	app.MuxRouter.Router.Use(middleware.PrometheusMiddleware)
	app.server = server
	err := server.ListenAndServe()

	if err != nil && err != http.ErrServerClosed {
		app.Logger.Errorw("error in startup", "err", err)
		os.Exit(2)
	}
}

func (app *App) Stop() {
	app.Logger.Infow("stopping version control service")
	app.watcher.StopWatching()
	if app.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.server.Shutdown(ctx); err != nil {
			app.Logger.Errorw("error in stopping server", "err", err)
		}
	}
	_ = app.Logger.Sync()
}
