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
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Next(t *testing.T) {
	records := []*testRecord{
		newTestRecord("warcinfo", "format: WARC File Format 1.1\r\n"),
		newTestRecord("response", strings.Repeat("0123456789", 50)),
		newTestRecord("resource", ""),
		newTestRecord("metadata", "WARC/1.1\r\nContent-Length: 3\r\n\r\n"),
	}
	data := join(records...)

	tests := []struct {
		name   string
		source func() io.Reader
		opts   []ReaderOption
	}{
		{"default", func() io.Reader { return bytes.NewReader(data) }, nil},
		{"one byte at a time", func() io.Reader { return iotest.OneByteReader(bytes.NewReader(data)) }, []ReaderOption{WithReadChunkSize(1)}},
		{"half reads", func() io.Reader { return iotest.HalfReader(bytes.NewReader(data)) }, []ReaderOption{WithReadChunkSize(7)}},
		{"eof with data", func() io.Reader { return iotest.DataErrReader(bytes.NewReader(data)) }, []ReaderOption{WithReadChunkSize(16)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.source(), tt.opts...)
			var offset int64
			for _, want := range records {
				record, gotOffset, err := r.Next()
				require.NoError(t, err)
				assert.Equal(t, offset, gotOffset)
				assert.Equal(t, want.wantHeaders(), record.Headers)
				assert.Equal(t, want.content, record.Content)
				offset += int64(len(want.bytes()))
			}

			record, gotOffset, err := r.Next()
			assert.Equal(t, io.EOF, err)
			assert.Nil(t, record)
			assert.Equal(t, offset, gotOffset)

			_, _, err = r.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestReader_startOffset(t *testing.T) {
	r1 := newTestRecord("resource", "one")
	r2 := newTestRecord("resource", "two")
	r := NewReader(bytes.NewReader(join(r1, r2)), WithStartOffset(1000))

	_, offset, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1000), offset)

	_, offset, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(1000+len(r1.bytes())), offset)
	assert.Equal(t, int64(1000+len(r1.bytes())+len(r2.bytes())), r.Offset())
}

func TestReader_truncated(t *testing.T) {
	body := strings.Repeat("x", 100)
	truncated := "WARC/1.1\r\nWARC-Truncated: length\r\nContent-Length: 100\r\n\r\n" + body + "\r\n\r\n"
	last := "WARC/1.1\r\nWARC-Truncated: length\r\nContent-Length: 1000\r\n\r\n" + body
	data := append([]byte(truncated), last...)

	// Small reads must not clamp the record before the source is exhausted
	r := NewReader(iotest.OneByteReader(bytes.NewReader(data)), WithReadChunkSize(8))

	record, _, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, body, string(record.Content))

	record, offset, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(len(truncated)), offset)
	assert.Equal(t, body, string(record.Content))
	assert.Equal(t, int64(1000), record.ContentLength())

	_, _, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_truncatedAtEnd(t *testing.T) {
	data := "WARC/1.0\r\nWARC-Truncated: x\r\nContent-Length: 5\r\n\r\nhello"
	r := NewReader(iotest.OneByteReader(strings.NewReader(data)), WithReadChunkSize(4))

	record, offset, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset)
	assert.Equal(t, "hello", string(record.Content))

	_, _, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_unexpectedEOF(t *testing.T) {
	complete := newTestRecord("resource", "complete").bytes()
	data := append(append([]byte{}, complete...), "WARC/1.1\r\nContent-Length: 10\r\n\r\nabc"...)
	r := NewReader(bytes.NewReader(data))

	_, _, err := r.Next()
	require.NoError(t, err)

	record, offset, err := r.Next()
	assert.Nil(t, record)
	assert.Equal(t, int64(len(complete)), offset)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrIncomplete)

	_, _, err2 := r.Next()
	assert.Equal(t, err, err2)
}

func TestReader_syntaxError(t *testing.T) {
	complete := newTestRecord("resource", "complete").bytes()
	data := append(append([]byte{}, complete...), "WARC/1.1\r\nBad Header\r\n\r\n"...)
	r := NewReader(bytes.NewReader(data))

	_, _, err := r.Next()
	require.NoError(t, err)

	_, _, err = r.Next()
	require.Error(t, err)
	assert.Equal(t, MalformedHeaderLine, KindOf(err))

	_, _, err2 := r.Next()
	assert.Equal(t, err, err2)
}

func TestReader_sourceError(t *testing.T) {
	boom := errors.New("boom")
	r := NewReader(io.MultiReader(strings.NewReader("WARC/1.1\r\n"), iotest.ErrReader(boom)))

	_, _, err := r.Next()
	assert.ErrorIs(t, err, boom)
}

func TestReader_parserOptions(t *testing.T) {
	data := "WARC/1.1\r\nWARC-Type: resource\r\n\r\n"

	_, _, err := NewReader(strings.NewReader(data)).Next()
	assert.Equal(t, MissingContentLength, KindOf(err))

	r := NewReader(strings.NewReader(data), WithParserOptions(WithMissingContentLengthPolicy(MissingLengthIncomplete)))
	_, _, err = r.Next()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
