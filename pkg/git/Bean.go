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
	"time"
)

type FileStatus string

const (
	FileStatusAdded    FileStatus = "Added"
	FileStatusModified FileStatus = "Modified"
	FileStatusDeleted  FileStatus = "Deleted"
	FileStatusUnknown  FileStatus = "Unknown"
)

// statusByLetter maps a --name-status letter to a FileStatus.
var statusByLetter = map[byte]FileStatus{
	'A': FileStatusAdded,
	'M': FileStatusModified,
	'D': FileStatusDeleted,
}

// CommitRecord is one entry of the full history listing. Status is Unknown
// unless a single file was requested and a trailing status line was
// unambiguously recognized.
type CommitRecord struct {
	Hash        string     `json:"hash"`
	ShortHash   string     `json:"shortHash"`
	AuthorName  string     `json:"authorName"`
	AuthorEmail string     `json:"authorEmail"`
	Date        time.Time  `json:"date"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body,omitempty"`
	Status      FileStatus `json:"status"`
}

// GraphCommitRecord is one node of the lightweight graph listing. Parents are
// in the order git reports them, first parent first; that order matters for
// ancestry walks downstream. Date is the committer timestamp exactly as
// reported by git (ISO-8601), never reparsed.
type GraphCommitRecord struct {
	Hash    string   `json:"hash"`
	Parents []string `json:"parents"`
	Date    string   `json:"date"`
	Subject string   `json:"subject"`
}

type HistoryResult struct {
	Commits []*CommitRecord `json:"commits"`
	Latest  *CommitRecord   `json:"latest,omitempty"`
	Count   int             `json:"count"`
}

func NewHistoryResult(commits []*CommitRecord) *HistoryResult {
	if commits == nil {
		commits = make([]*CommitRecord, 0)
	}
	result := &HistoryResult{Commits: commits, Count: len(commits)}
	if len(commits) > 0 {
		result.Latest = commits[0]
	}
	return result
}

type GraphHistoryResult struct {
	Commits []*GraphCommitRecord `json:"commits"`
	Latest  *GraphCommitRecord   `json:"latest,omitempty"`
	Count   int                  `json:"count"`
}

func NewGraphHistoryResult(commits []*GraphCommitRecord) *GraphHistoryResult {
	if commits == nil {
		commits = make([]*GraphCommitRecord, 0)
	}
	result := &GraphHistoryResult{Commits: commits, Count: len(commits)}
	if len(commits) > 0 {
		result.Latest = commits[0]
	}
	return result
}

type RestoreRequest struct {
	Revision string `json:"revision"`
	Path     string `json:"path"`
}

type RestoreResponse struct {
	Revision string `json:"revision"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type StageRequest struct {
	Paths []string `json:"paths"`
}

type CommitRequest struct {
	Message string `json:"message"`
}

type CommitResponse struct {
	Hash string `json:"hash"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type DiffResponse struct {
	Diff string `json:"diff"`
}

type BranchesResponse struct {
	Branches []string `json:"branches"`
}

type RevisionResponse struct {
	Revision string `json:"revision"`
	Hash     string `json:"hash"`
}
