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
)

// ErrorKind classifies the errors returned by the parser.
type ErrorKind int8

const (
	UnknownError ErrorKind = iota
	MalformedVersionLine
	MalformedHeaderLine
	MissingContentLength
	NonNumericContentLength
	IncompleteInput
	TrailingGarbageAfterRecord
)

var kindNames = map[ErrorKind]string{
	UnknownError:               "unknown error",
	MalformedVersionLine:       "malformed version line",
	MalformedHeaderLine:        "malformed header line",
	MissingContentLength:       "missing content length",
	NonNumericContentLength:    "non numeric content length",
	IncompleteInput:            "incomplete input",
	TrailingGarbageAfterRecord: "trailing garbage after record",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int8(k))
}

// ErrIncomplete is matched by every IncompleteError. Use errors.Is to test for it.
var ErrIncomplete = errors.New("warcparser: incomplete input")

// IncompleteError is returned when the buffer ended before a record could be completed.
// The caller should append more bytes and retry from the start of the unconsumed region.
type IncompleteError struct {
	// Needed is the minimum number of additional bytes required. It is a lower bound.
	Needed int
}

func newIncompleteError(needed int) *IncompleteError {
	if needed < 1 {
		needed = 1
	}
	return &IncompleteError{Needed: needed}
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("warcparser: incomplete input, need at least %d more bytes", e.Needed)
}

func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// SyntaxError is used for syntactical errors like a bad version line or wrong line endings
type SyntaxError struct {
	Kind   ErrorKind
	Offset int // byte offset into the parsed buffer
	msg    string
}

func newSyntaxError(kind ErrorKind, msg string, offset int) *SyntaxError {
	return &SyntaxError{Kind: kind, msg: msg, Offset: offset}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("warcparser: %s: %s at offset %d", e.Kind, e.msg, e.Offset)
}

// HeaderFieldError is used for missing or invalid values of headers the parser depends on
type HeaderFieldError struct {
	Kind      ErrorKind
	FieldName string
	RawValue  string
	msg       string
}

func newHeaderFieldError(kind ErrorKind, fieldName string, rawValue string, msg string) *HeaderFieldError {
	return &HeaderFieldError{Kind: kind, FieldName: fieldName, RawValue: rawValue, msg: msg}
}

func (e *HeaderFieldError) Error() string {
	if e.RawValue != "" {
		return fmt.Sprintf("warcparser: %s at header %s: %q", e.msg, e.FieldName, e.RawValue)
	}
	return fmt.Sprintf("warcparser: %s at header %s", e.msg, e.FieldName)
}

// KindOf returns the ErrorKind of an error returned by the parser.
// UnknownError is returned for nil and for errors not produced by this package.
func KindOf(err error) ErrorKind {
	var se *SyntaxError
	var he *HeaderFieldError
	switch {
	case err == nil:
		return UnknownError
	case errors.Is(err, ErrIncomplete):
		return IncompleteInput
	case errors.As(err, &se):
		return se.Kind
	case errors.As(err, &he):
		return he.Kind
	default:
		return UnknownError
	}
}
