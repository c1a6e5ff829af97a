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

// MissingLengthPolicy decides how a record without a Content-Length header is reported.
type MissingLengthPolicy int8

const (
	// MissingLengthFail reports a missing Content-Length as a HeaderFieldError.
	MissingLengthFail MissingLengthPolicy = iota
	// MissingLengthIncomplete reports a missing Content-Length as incomplete input.
	MissingLengthIncomplete
)

func (p MissingLengthPolicy) String() string {
	switch p {
	case MissingLengthFail:
		return "fail"
	case MissingLengthIncomplete:
		return "incomplete"
	}
	return "unknown"
}

type options struct {
	missingContentLength MissingLengthPolicy
	strictLineEndings    bool
}

// Option configures a Parser.
type Option interface {
	apply(*options)
}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(po *options) {
	fo.f(po)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func defaultOptions() options {
	return options{
		missingContentLength: MissingLengthFail,
		strictLineEndings:    false,
	}
}

func newOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return &o
}

// WithMissingContentLengthPolicy sets how a record without a Content-Length header is reported.
// No amount of extra input can fix such a record, so the default is to fail.
// defaults to MissingLengthFail
func WithMissingContentLengthPolicy(policy MissingLengthPolicy) Option {
	return newFuncOption(func(o *options) {
		o.missingContentLength = policy
	})
}

// WithStrictLineEndings sets if every line feed must be preceded by a carriage return.
// defaults to false
func WithStrictLineEndings(strict bool) Option {
	return newFuncOption(func(o *options) {
		o.strictLineEndings = strict
	})
}

type readerOptions struct {
	chunkSize     int
	startOffset   int64
	parserOptions []Option
}

// ReaderOption configures a Reader.
type ReaderOption interface {
	apply(*readerOptions)
}

type funcReaderOption struct {
	f func(*readerOptions)
}

func (fo *funcReaderOption) apply(po *readerOptions) {
	fo.f(po)
}

func newFuncReaderOption(f func(*readerOptions)) *funcReaderOption {
	return &funcReaderOption{
		f: f,
	}
}

func defaultReaderOptions() readerOptions {
	return readerOptions{
		chunkSize: 64 * 1024,
	}
}

// WithReadChunkSize sets the minimum number of bytes requested from the source each time
// the Reader needs more input.
// defaults to 64 KiB
func WithReadChunkSize(size int) ReaderOption {
	return newFuncReaderOption(func(o *readerOptions) {
		if size > 0 {
			o.chunkSize = size
		}
	})
}

// WithStartOffset sets the offset of the first byte read from the source.
// It is used when the source is positioned somewhere inside a file.
// defaults to 0
func WithStartOffset(offset int64) ReaderOption {
	return newFuncReaderOption(func(o *readerOptions) {
		o.startOffset = offset
	})
}

// WithParserOptions sets the options used for the Reader's Parser.
func WithParserOptions(opts ...Option) ReaderOption {
	return newFuncReaderOption(func(o *readerOptions) {
		o.parserOptions = opts
	})
}
