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

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/util"
	"go.uber.org/zap"
)

type MuxRouter struct {
	logger      *zap.SugaredLogger
	Router      *mux.Router
	restHandler RestHandler
}

func NewMuxRouter(logger *zap.SugaredLogger, restHandler RestHandler) *MuxRouter {
	return &MuxRouter{logger: logger, Router: mux.NewRouter(), restHandler: restHandler}
}

func (r MuxRouter) Init() {
	r.Router.StrictSlash(true)
	r.Router.Handle("/metrics", promhttp.Handler())
	r.Router.Path("/health").HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		response := Response{}
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(200)
		response.Code = 200
		response.Result = struct {
			Status    string `json:"status"`
			GitCommit string `json:"gitCommit"`
			BuildTime string `json:"buildTime"`
		}{"OK", util.GitCommit, util.BuildTime}
		b, err := json.Marshal(response)
		if err != nil {
			b = []byte("OK")
			r.logger.Errorw("Unexpected error in apiError", "err", err)
		}
		_, _ = writer.Write(b)
	})

	r.Router.Path("/history").HandlerFunc(r.restHandler.GetHistory).Methods("GET")
	r.Router.Path("/history/graph").HandlerFunc(r.restHandler.GetGraphHistory).Methods("GET")
	r.Router.Path("/status").HandlerFunc(r.restHandler.GetStatus).Methods("GET")
	r.Router.Path("/diff").HandlerFunc(r.restHandler.GetDiff).Methods("GET")
	r.Router.Path("/file/diff").HandlerFunc(r.restHandler.GetFileDiff).Methods("GET")
	r.Router.Path("/restore").HandlerFunc(r.restHandler.RestoreFile).Methods("POST")
	r.Router.Path("/branches").HandlerFunc(r.restHandler.ListBranches).Methods("GET")
	r.Router.Path("/stage").HandlerFunc(r.restHandler.StageFiles).Methods("POST")
	r.Router.Path("/commit").HandlerFunc(r.restHandler.Commit).Methods("POST")
	r.Router.Path("/init").HandlerFunc(r.restHandler.InitRepo).Methods("POST")
	r.Router.Path("/revision/{revision}").HandlerFunc(r.restHandler.ResolveRevision).Methods("GET")
}
