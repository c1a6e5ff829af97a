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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Header names the parser depends on.
const (
	// WarcVersion is the synthetic header holding the version from the record's version line.
	WarcVersion   = "WARCVERSION"
	ContentLength = "Content-Length"
	WarcTruncated = "WARC-Truncated"
)

// Record is a parsed WARC record.
//
// Headers holds every header field as scanned, with names compared case-sensitively.
// When a name occurs more than once, the last value wins.
// Content is a copy of the record block and does not refer to the parsed buffer.
type Record struct {
	Headers map[string]string
	Content []byte
}

// Version returns the WARC version from the record's version line, e.g. "1.1".
func (r *Record) Version() string {
	return r.Headers[WarcVersion]
}

// Get returns the value of the named header and whether it was present.
func (r *Record) Get(name string) (string, bool) {
	v, ok := r.Headers[name]
	return v, ok
}

// ContentLength returns the declared Content-Length.
// It may be larger than len(Content) for truncated records.
func (r *Record) ContentLength() int64 {
	n, _ := strconv.ParseInt(r.Headers[ContentLength], 10, 64)
	return n
}

// IsTruncated reports whether the record carries a WARC-Truncated header.
func (r *Record) IsTruncated() bool {
	_, ok := r.Headers[WarcTruncated]
	return ok
}

func (r *Record) String() string {
	names := make([]string, 0, len(r.Headers))
	for name := range r.Headers {
		names = append(names, name)
	}
	sort.Strings(names)

	sb := &strings.Builder{}
	sb.WriteString("\nHeaders:\n")
	for _, name := range names {
		fmt.Fprintf(sb, "%s: %s\n", name, r.Headers[name])
	}
	fmt.Fprintf(sb, "Content Length:%d\n", len(r.Content))
	content := "Could not convert"
	if utf8.Valid(r.Content) {
		content = string(r.Content)
	}
	fmt.Fprintf(sb, "Content :%q\n\n", content)
	return sb.String()
}
