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
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/saihgupr/HomeAssistantVersionControlBeta/internals"
	"go.uber.org/zap"
)

type GoGitHistoryManagerImpl struct {
	logger *zap.SugaredLogger
	conf   *internals.Configuration
}

func NewGoGitHistoryManagerImpl(logger *zap.SugaredLogger, conf *internals.Configuration) *GoGitHistoryManagerImpl {
	return &GoGitHistoryManagerImpl{
		logger: logger,
		conf:   conf,
	}
}

func (impl *GoGitHistoryManagerImpl) openRepoPlain() (*gogit.Repository, error) {
	r, err := gogit.PlainOpen(impl.conf.RepoDirectory)
	if err != nil {
		impl.logger.Errorf("error in OpenRepoPlain go-git %s for path %s", err, impl.conf.RepoDirectory)
		return nil, err
	}
	return r, nil
}

func (impl *GoGitHistoryManagerImpl) GetHistory(gitCtx GitContext, maxCount int, file string) (*HistoryResult, error) {
	if maxCount <= 0 {
		maxCount = impl.conf.GitHistoryCount
	}
	r, err := impl.openRepoPlain()
	if err != nil {
		return nil, err
	}
	head, err := r.Head()
	if err == plumbing.ErrReferenceNotFound {
		// repository has no commits yet
		return NewHistoryResult(nil), nil
	} else if err != nil {
		return nil, err
	}
	opts := &gogit.LogOptions{From: head.Hash(), Order: gogit.LogOrderCommitterTime}
	if file != "" {
		opts.FileName = &file
	}
	itr, err := r.Log(opts)
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	commits := make([]*CommitRecord, 0, maxCount)
	err = itr.ForEach(func(c *object.Commit) error {
		if len(commits) >= maxCount {
			return storer.ErrStop
		}
		record := &CommitRecord{
			Hash:        c.Hash.String(),
			ShortHash:   c.Hash.String()[:7],
			AuthorName:  c.Author.Name,
			AuthorEmail: c.Author.Email,
			Date:        c.Author.When,
			Subject:     messageSubject(c.Message),
			Body:        messageBody(c.Message),
			Status:      FileStatusUnknown,
		}
		if file != "" {
			record.Status = impl.fileStatusIn(c, file)
		}
		commits = append(commits, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewHistoryResult(commits), nil
}

func (impl *GoGitHistoryManagerImpl) GetGraphHistory(gitCtx GitContext) (*GraphHistoryResult, error) {
	r, err := impl.openRepoPlain()
	if err != nil {
		return nil, err
	}
	head, err := r.Head()
	if err == plumbing.ErrReferenceNotFound {
		return NewGraphHistoryResult(nil), nil
	} else if err != nil {
		return nil, err
	}
	itr, err := r.Log(&gogit.LogOptions{From: head.Hash(), Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer itr.Close()

	commits := make([]*GraphCommitRecord, 0)
	err = itr.ForEach(func(c *object.Commit) error {
		parents := make([]string, 0, len(c.ParentHashes))
		for _, p := range c.ParentHashes {
			parents = append(parents, p.String())
		}
		commits = append(commits, &GraphCommitRecord{
			Hash:    c.Hash.String(),
			Parents: parents,
			Date:    c.Committer.When.Format(time.RFC3339),
			Subject: messageSubject(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewGraphHistoryResult(commits), nil
}

func (impl *GoGitHistoryManagerImpl) GetFileAtRevision(gitCtx GitContext, revision string, path string) (string, error) {
	r, err := impl.openRepoPlain()
	if err != nil {
		return "", err
	}
	hash, err := r.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		impl.logger.Errorw("error in resolving revision", "revision", revision, "err", err)
		return "", err
	}
	commit, err := r.CommitObject(*hash)
	if err != nil {
		return "", err
	}
	f, err := commit.File(path)
	if err != nil {
		impl.logger.Errorw("error in reading blob", "revision", revision, "path", path, "err", err)
		return "", err
	}
	return f.Contents()
}

// fileStatusIn derives the name-status letter for path by comparing the
// commit tree against its first parent.
func (impl *GoGitHistoryManagerImpl) fileStatusIn(c *object.Commit, path string) FileStatus {
	inCommit := commitHasFile(c, path)
	parent, err := c.Parent(0)
	if err != nil {
		if inCommit {
			return FileStatusAdded
		}
		return FileStatusUnknown
	}
	inParent := commitHasFile(parent, path)
	switch {
	case inCommit && !inParent:
		return FileStatusAdded
	case !inCommit && inParent:
		return FileStatusDeleted
	case inCommit && inParent:
		return FileStatusModified
	}
	return FileStatusUnknown
}

func commitHasFile(c *object.Commit, path string) bool {
	_, err := c.File(path)
	return err == nil
}

func messageSubject(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject)
}

func messageBody(message string) string {
	_, body, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(body)
}
