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

package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nlnwa/warcparser"
)

// Header fields shown by the commands. The parser treats them as opaque.
const (
	WarcType      = "WARC-Type"
	WarcTargetURI = "WARC-Target-URI"
	WarcRecordID  = "WARC-Record-ID"
)

// DefaultFormat is the default line format of the ls command.
const DefaultFormat = "%9{offset}d WARC/%-4{version}s %-9.9{type}s %9{length}d %{target}s\n"

// Sprintt is like fmt.Sprintf, but accepts named parameters from a map.
//
// Example:
//   params := map[string]any{
//     "hello": "world",
//     "num":   42,
//   }
//
//   result := internal.Sprintt("Hello %{hello}s. The answer is %{num}d", params)
//
// Result will then be: 'Hello world. The answer is 42'
//
// Flags, width and precision go before the name, e.g. '%-9.9{type}s'.
func Sprintt(format string, params map[string]any) string {
	pos := 1
	var args []any
	for key, val := range params {
		replaced := strings.Replace(format, "{"+key+"}", "["+strconv.Itoa(pos)+"]", -1)
		if replaced != format {
			pos++
			args = append(args, val)
			format = replaced
		}
	}
	return fmt.Sprintf(format, args...)
}

// FormatRecord formats a record with Sprintt. Available parameters are offset, version, type, id, length
// (the number of content bytes), declared (the Content-Length value), truncated and target.
func FormatRecord(format string, offset int64, record *warcparser.Record) string {
	params := map[string]any{
		"offset":    offset,
		"version":   record.Version(),
		"type":      record.Headers[WarcType],
		"id":        record.Headers[WarcRecordID],
		"length":    len(record.Content),
		"declared":  record.ContentLength(),
		"truncated": record.IsTruncated(),
		"target":    CropString(record.Headers[WarcTargetURI], 100),
	}
	return Sprintt(format, params)
}

// CropString shortens s to at most maxLength bytes, marking the cut with '...'.
func CropString(s string, maxLength int) string {
	if len(s) <= maxLength || maxLength < 4 {
		return s
	}
	return s[:maxLength-3] + "..."
}
