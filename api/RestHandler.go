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
	"strconv"

	"github.com/gorilla/mux"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg/git"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/util"
	"go.uber.org/zap"
)

type RestHandler interface {
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetGraphHistory(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetDiff(w http.ResponseWriter, r *http.Request)
	GetFileDiff(w http.ResponseWriter, r *http.Request)
	RestoreFile(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)
	StageFiles(w http.ResponseWriter, r *http.Request)
	Commit(w http.ResponseWriter, r *http.Request)
	InitRepo(w http.ResponseWriter, r *http.Request)
	ResolveRevision(w http.ResponseWriter, r *http.Request)
}

func NewRestHandlerImpl(configRepoManager pkg.ConfigRepoManager, logger *zap.SugaredLogger) *RestHandlerImpl {
	return &RestHandlerImpl{configRepoManager: configRepoManager, logger: logger}
}

type RestHandlerImpl struct {
	configRepoManager pkg.ConfigRepoManager
	logger            *zap.SugaredLogger
}

type Response struct {
	Code   int         `json:"code,omitempty"`
	Status string      `json:"status,omitempty"`
	Result interface{} `json:"result,omitempty"`
	Errors []*ApiError `json:"errors,omitempty"`
}
type ApiError struct {
	HttpStatusCode    int         `json:"-"`
	Code              string      `json:"code,omitempty"`
	InternalMessage   string      `json:"internalMessage,omitempty"`
	UserMessage       interface{} `json:"userMessage,omitempty"`
	UserDetailMessage string      `json:"userDetailMessage,omitempty"`
}

func (handler RestHandlerImpl) writeJsonResp(w http.ResponseWriter, err error, respBody interface{}, status int) {
	response := Response{}
	response.Code = status
	response.Status = http.StatusText(status)
	if err == nil {
		response.Result = respBody
	} else {
		apiErr := &ApiError{}
		apiErr.Code = "000" // 000=unknown
		apiErr.InternalMessage = err.Error()
		apiErr.UserMessage = util.BuildDisplayErrorMessage("", err)
		response.Errors = []*ApiError{apiErr}
	}
	b, err := json.Marshal(response)
	if err != nil {
		handler.logger.Error("error in marshaling err object", err)
		status = 500
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func (handler RestHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	maxCount := 0
	if raw := r.URL.Query().Get("maxCount"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handler.writeJsonResp(w, err, nil, http.StatusBadRequest)
			return
		}
		maxCount = parsed
	}
	file := r.URL.Query().Get("file")
	res, err := handler.configRepoManager.GetHistory(r.Context(), maxCount, file)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, res, http.StatusOK)
	}
}

func (handler RestHandlerImpl) GetGraphHistory(w http.ResponseWriter, r *http.Request) {
	res, err := handler.configRepoManager.GetGraphHistory(r.Context())
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, res, http.StatusOK)
	}
}

func (handler RestHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	res, err := handler.configRepoManager.GetStatus(r.Context())
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, &git.StatusResponse{Status: res}, http.StatusOK)
	}
}

func (handler RestHandlerImpl) GetDiff(w http.ResponseWriter, r *http.Request) {
	staged := r.URL.Query().Get("staged") == "true"
	res, err := handler.configRepoManager.GetDiff(r.Context(), staged)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, &git.DiffResponse{Diff: res}, http.StatusOK)
	}
}

func (handler RestHandlerImpl) GetFileDiff(w http.ResponseWriter, r *http.Request) {
	revision := r.URL.Query().Get("revision")
	file := r.URL.Query().Get("file")
	if revision == "" || file == "" {
		handler.writeJsonResp(w, nil, "revision and file are required", http.StatusBadRequest)
		return
	}
	res, err := handler.configRepoManager.GetFileDiff(r.Context(), revision, file)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, &git.DiffResponse{Diff: res}, http.StatusOK)
	}
}

func (handler RestHandlerImpl) RestoreFile(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	request := &git.RestoreRequest{}
	err := decoder.Decode(request)
	if err != nil {
		handler.logger.Error(err)
		handler.writeJsonResp(w, err, nil, http.StatusBadRequest)
		return
	}
	handler.logger.Infow("restore request ", "revision", request.Revision, "path", request.Path)
	err = handler.configRepoManager.RestoreFile(r.Context(), request.Revision, request.Path)
	if err != nil {
		status := http.StatusConflict
		if _, critical := err.(*git.RestoreFailedError); critical {
			status = http.StatusInternalServerError
		}
		handler.writeJsonResp(w, err, nil, status)
		return
	}
	handler.writeJsonResp(w, nil, &git.RestoreResponse{
		Revision: request.Revision,
		Path:     request.Path,
		Message:  "restored",
	}, http.StatusOK)
}

func (handler RestHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	res, err := handler.configRepoManager.ListBranches(r.Context())
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, &git.BranchesResponse{Branches: res}, http.StatusOK)
	}
}

func (handler RestHandlerImpl) StageFiles(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	request := &git.StageRequest{}
	err := decoder.Decode(request)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusBadRequest)
		return
	}
	err = handler.configRepoManager.StageFiles(r.Context(), request.Paths)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, "staged", http.StatusOK)
	}
}

func (handler RestHandlerImpl) Commit(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	request := &git.CommitRequest{}
	err := decoder.Decode(request)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusBadRequest)
		return
	}
	handler.logger.Infow("commit request ", "message", request.Message)
	hash, err := handler.configRepoManager.Commit(r.Context(), request.Message)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, &git.CommitResponse{Hash: hash}, http.StatusOK)
	}
}

func (handler RestHandlerImpl) InitRepo(w http.ResponseWriter, r *http.Request) {
	err := handler.configRepoManager.InitRepo(r.Context())
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusInternalServerError)
	} else {
		handler.writeJsonResp(w, err, "initialized", http.StatusOK)
	}
}

func (handler RestHandlerImpl) ResolveRevision(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	revision := vars["revision"]
	hash, err := handler.configRepoManager.ResolveRevision(r.Context(), revision)
	if err != nil {
		handler.writeJsonResp(w, err, nil, http.StatusBadRequest)
	} else {
		handler.writeJsonResp(w, err, &git.RevisionResponse{Revision: revision, Hash: hash}, http.StatusOK)
	}
}
