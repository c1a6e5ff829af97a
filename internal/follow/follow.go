/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package follow reads files which are still being written to.
package follow

import (
	"context"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Reader reads a growing file. At end of file it waits for the file to be written to
// instead of returning io.EOF. It returns io.EOF when its context is done or the file is
// removed or renamed.
type Reader struct {
	ctx     context.Context
	file    *os.File
	watcher *fsnotify.Watcher
}

// Open opens the named file for following. The file is positioned at offset.
func Open(ctx context.Context, name string, offset int64) (*Reader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// The watch is added before the first read so that no write goes unnoticed.
	if err := watcher.Add(name); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	file, err := os.Open(name)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		_ = watcher.Close()
		_ = file.Close()
		return nil, err
	}
	return &Reader{ctx: ctx, file: file, watcher: watcher}, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	for {
		n, err := r.file.Read(p)
		if n > 0 || (err != nil && err != io.EOF) {
			if err == io.EOF {
				err = nil
			}
			return n, err
		}
		if err := r.wait(); err != nil {
			return 0, err
		}
	}
}

// wait blocks until the file has been written to.
func (r *Reader) wait() error {
	for {
		select {
		case <-r.ctx.Done():
			return io.EOF
		case event, ok := <-r.watcher.Events:
			if !ok {
				return io.EOF
			}
			switch {
			case event.Op&fsnotify.Write == fsnotify.Write:
				return nil
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				log.Debugf("stopped following %v: %v", event.Name, event.Op)
				return io.EOF
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return io.EOF
			}
			return err
		}
	}
}

// Close stops watching and closes the file.
func (r *Reader) Close() error {
	err := r.watcher.Close()
	if e := r.file.Close(); e != nil {
		err = e
	}
	return err
}
