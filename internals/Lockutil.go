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

package internals

import (
	"sync"

	"go.uber.org/zap"
)

// PathLocker hands out one lock per repo-relative file path so that restores
// targeting the same file are serialized. Locks are reference counted and
// dropped from the bank once the last lease is returned.
type PathLocker struct {
	logger *zap.SugaredLogger
	Mutex  sync.Mutex
	Bank   map[string]*PathLock
}

func NewPathLocker(logger *zap.SugaredLogger) *PathLocker {
	return &PathLocker{
		logger: logger,
		Bank:   map[string]*PathLock{},
	}
}

func (locker *PathLocker) LeaseLocker(path string) *PathLock {
	locker.logger.Debugw("lease req get for ", "path", path)
	locker.Mutex.Lock()
	defer locker.Mutex.Unlock()
	pathLock := locker.Bank[path]
	if pathLock == nil {
		pathLock = &PathLock{}
		locker.Bank[path] = pathLock
	}
	pathLock.counter = pathLock.counter + 1
	return pathLock
}

func (locker *PathLocker) ReturnLocker(path string) {
	locker.logger.Debugw("lease req release for ", "path", path)
	locker.Mutex.Lock()
	defer locker.Mutex.Unlock()
	pathLock := locker.Bank[path]
	pathLock.counter = pathLock.counter - 1
	if pathLock.counter == 0 {
		delete(locker.Bank, path)
	}
}

type PathLock struct {
	Mutex   sync.Mutex
	counter int
}
