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

package warcparser

import (
	"errors"
	"fmt"
	"io"

	"github.com/nlnwa/warcparser/internal/countingreader"
	log "github.com/sirupsen/logrus"
)

// Reader reads consecutive WARC records from an io.Reader.
//
// It keeps a buffer of unparsed input and appends to it from the source whenever the
// Parser reports incomplete input.
type Reader struct {
	opts   *readerOptions
	parser *Parser
	src    *countingreader.Reader
	buf    []byte
	eof    bool
	err    error
}

// NewReader creates a new Reader reading from r with the supplied options.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	o := defaultReaderOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &Reader{
		opts:   &o,
		parser: NewParser(o.parserOptions...),
		src:    countingreader.New(r, o.startOffset),
	}
}

// Offset returns the offset in the source of the next unparsed byte.
func (r *Reader) Offset() int64 {
	return r.src.N() - int64(len(r.buf))
}

// Next reads the next record and returns it along with its offset in the source.
//
// When the source is exhausted at a record boundary, only io.EOF is returned.
// If the source ends inside a record, the returned error matches both io.ErrUnexpectedEOF
// and ErrIncomplete. Syntax errors are permanent: every later call returns the same error.
func (r *Reader) Next() (*Record, int64, error) {
	if r.err != nil {
		return nil, r.Offset(), r.err
	}

	for {
		offset := r.Offset()
		need := 1
		if len(r.buf) > 0 {
			record, n, err := r.parser.terminatedRecord(r.buf, 0, r.eof)
			if err == nil {
				r.buf = r.buf[n:]
				return record, offset, nil
			}

			var incomplete *IncompleteError
			if !errors.As(err, &incomplete) {
				r.err = err
				return nil, offset, err
			}
			if r.eof {
				r.err = fmt.Errorf("warcparser: input ended inside record at offset %d: %w: %w", offset, io.ErrUnexpectedEOF, err)
				return nil, offset, r.err
			}
			need = incomplete.Needed
		} else if r.eof {
			return nil, offset, io.EOF
		}

		if err := r.fill(need); err != nil {
			r.err = err
			return nil, offset, err
		}
	}
}

// fill reads at least need bytes from the source unless it reaches end of input first.
func (r *Reader) fill(need int) error {
	// Content-Length is not trusted for allocation, the buffer at most doubles per fill.
	if limit := len(r.buf) + r.opts.chunkSize; need > limit {
		need = limit
	}
	want := need
	if want < r.opts.chunkSize {
		want = r.opts.chunkSize
	}
	if cap(r.buf)-len(r.buf) < want {
		b := make([]byte, len(r.buf), len(r.buf)+want)
		copy(b, r.buf)
		r.buf = b
	}

	n, err := io.ReadAtLeast(r.src, r.buf[len(r.buf):cap(r.buf)], need)
	r.buf = r.buf[:len(r.buf)+n]
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		log.Debugf("end of input at offset %d", r.src.N())
		r.eof = true
	default:
		return err
	}
	return nil
}
