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

// Package countingreader keeps track of the position in a stream.
package countingreader

import (
	"io"
)

// Reader counts the bytes read through it.
type Reader struct {
	ioReader io.Reader
	offset   int64
}

// New makes a new Reader that counts the bytes read through it, starting at offset.
func New(r io.Reader, offset int64) *Reader {
	return &Reader{
		ioReader: r,
		offset:   offset,
	}
}

func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.ioReader.Read(p)
	r.offset += int64(n)
	return
}

// N gets the offset in the stream of the next byte to be read.
func (r *Reader) N() int64 {
	return r.offset
}
