package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saihgupr/HomeAssistantVersionControlBeta/pkg/git"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubManager struct {
	history      *git.HistoryResult
	historyErr   error
	restoreErr   error
	status       string
	diff         string
	branches     []string
	commitHash   string
	revisionHash string
	err          error

	restoreRevision string
	restorePath     string
	maxCount        int
	file            string
}

func (s *stubManager) GetHistory(ctx context.Context, maxCount int, file string) (*git.HistoryResult, error) {
	s.maxCount = maxCount
	s.file = file
	return s.history, s.historyErr
}

func (s *stubManager) GetGraphHistory(ctx context.Context) (*git.GraphHistoryResult, error) {
	return git.NewGraphHistoryResult(nil), s.err
}

func (s *stubManager) RestoreFile(ctx context.Context, revision string, path string) error {
	s.restoreRevision = revision
	s.restorePath = path
	return s.restoreErr
}

func (s *stubManager) GetFileDiff(ctx context.Context, revision string, path string) (string, error) {
	return s.diff, s.err
}

func (s *stubManager) GetStatus(ctx context.Context) (string, error) {
	return s.status, s.err
}

func (s *stubManager) GetDiff(ctx context.Context, staged bool) (string, error) {
	return s.diff, s.err
}

func (s *stubManager) ListBranches(ctx context.Context) ([]string, error) {
	return s.branches, s.err
}

func (s *stubManager) StageFiles(ctx context.Context, paths []string) error {
	return s.err
}

func (s *stubManager) Commit(ctx context.Context, message string) (string, error) {
	return s.commitHash, s.err
}

func (s *stubManager) InitRepo(ctx context.Context) error {
	return s.err
}

func (s *stubManager) ResolveRevision(ctx context.Context, revision string) (string, error) {
	return s.revisionHash, s.err
}

func newHandler(manager *stubManager) *RestHandlerImpl {
	return NewRestHandlerImpl(manager, zap.NewNop().Sugar())
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGetHistoryOk(t *testing.T) {
	manager := &stubManager{history: git.NewHistoryResult([]*git.CommitRecord{{Hash: "abc", Subject: "initial"}})}
	handler := newHandler(manager)

	req := httptest.NewRequest(http.MethodGet, "/history?maxCount=10&file=configuration.yaml", nil)
	rec := httptest.NewRecorder()
	handler.GetHistory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, manager.maxCount)
	assert.Equal(t, "configuration.yaml", manager.file)
	resp := decodeResponse(t, rec)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, resp.Errors)
	assert.NotNil(t, resp.Result)
}

func TestGetHistoryBadMaxCount(t *testing.T) {
	handler := newHandler(&stubManager{})

	req := httptest.NewRequest(http.MethodGet, "/history?maxCount=ten", nil)
	rec := httptest.NewRecorder()
	handler.GetHistory(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHistoryManagerError(t *testing.T) {
	manager := &stubManager{historyErr: &git.ExternalToolError{ExitCode: 128, Stderr: "fatal: not a git repository"}}
	handler := newHandler(manager)

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	rec := httptest.NewRecorder()
	handler.GetHistory(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, 1, len(resp.Errors))
}

func TestRestoreFileOk(t *testing.T) {
	manager := &stubManager{}
	handler := newHandler(manager)

	body, _ := json.Marshal(&git.RestoreRequest{Revision: "abc123", Path: "configuration.yaml"})
	req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.RestoreFile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", manager.restoreRevision)
	assert.Equal(t, "configuration.yaml", manager.restorePath)
}

func TestRestoreFileRolledBackConflict(t *testing.T) {
	manager := &stubManager{restoreErr: &git.RestoreRolledBackError{Path: "configuration.yaml", Cause: errors.New("bad revision")}}
	handler := newHandler(manager)

	body, _ := json.Marshal(&git.RestoreRequest{Revision: "nope", Path: "configuration.yaml"})
	req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.RestoreFile(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRestoreFileCorruptedIsServerError(t *testing.T) {
	manager := &stubManager{restoreErr: &git.RestoreFailedError{
		Path:        "configuration.yaml",
		Cause:       errors.New("write failed"),
		RollbackErr: errors.New("rollback failed"),
	}}
	handler := newHandler(manager)

	body, _ := json.Marshal(&git.RestoreRequest{Revision: "abc123", Path: "configuration.yaml"})
	req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.RestoreFile(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRestoreFileBadBody(t *testing.T) {
	handler := newHandler(&stubManager{})

	req := httptest.NewRequest(http.MethodPost, "/restore", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	handler.RestoreFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStatusOk(t *testing.T) {
	manager := &stubManager{status: " M configuration.yaml"}
	handler := newHandler(manager)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.GetStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, " M configuration.yaml", result["status"])
}

func TestListBranchesOk(t *testing.T) {
	manager := &stubManager{branches: []string{"master", "experiments"}}
	handler := newHandler(manager)

	req := httptest.NewRequest(http.MethodGet, "/branches", nil)
	rec := httptest.NewRecorder()
	handler.ListBranches(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, []interface{}{"master", "experiments"}, result["branches"])
}

func TestGetFileDiffRequiresParams(t *testing.T) {
	handler := newHandler(&stubManager{})

	req := httptest.NewRequest(http.MethodGet, "/file/diff?file=configuration.yaml", nil)
	rec := httptest.NewRecorder()
	handler.GetFileDiff(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommitOk(t *testing.T) {
	manager := &stubManager{commitHash: "deadbeef"}
	handler := newHandler(manager)

	body, _ := json.Marshal(&git.CommitRequest{Message: "manual snapshot"})
	req := httptest.NewRequest(http.MethodPost, "/commit", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Commit(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, "deadbeef", result["hash"])
}
