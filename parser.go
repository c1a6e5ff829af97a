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
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Parser parses WARC records from in-memory buffers.
//
// Every parse function returns either a result and the unconsumed remainder of the buffer,
// an *IncompleteError when the buffer ends before the result is complete, or a
// *SyntaxError or *HeaderFieldError when the input is malformed. On error the
// returned remainder is the input buffer; nothing is consumed.
//
// A Parser is safe for concurrent use.
type Parser struct {
	opts *options
}

// NewParser creates a new Parser with the supplied options.
func NewParser(opts ...Option) *Parser {
	return &Parser{opts: newOptions(opts...)}
}

var defaultParser = NewParser()

// ParseRecord parses a single record with the default Parser. See Parser.ParseRecord.
func ParseRecord(buf []byte) (*Record, []byte, error) {
	return defaultParser.ParseRecord(buf)
}

// ParseRecords parses all records in buf with the default Parser. See Parser.ParseRecords.
func ParseRecords(buf []byte) ([]*Record, []byte, error) {
	return defaultParser.ParseRecords(buf)
}

// ParseRecord parses one record from the start of buf. The returned remainder starts
// right after the record's content, at the empty line ending the record.
func (p *Parser) ParseRecord(buf []byte) (*Record, []byte, error) {
	r, pos, _, err := p.record(buf, 0, true)
	if err != nil {
		return nil, buf, err
	}
	return r, buf[pos:], nil
}

// ParseTerminatedRecord parses one record and the empty line following it.
//
// A record with a WARC-Truncated header whose content was clamped to the end of buf
// is returned without requiring the empty line, since nothing is left to hold it.
func (p *Parser) ParseTerminatedRecord(buf []byte) (*Record, []byte, error) {
	r, pos, err := p.terminatedRecord(buf, 0, true)
	if err != nil {
		return nil, buf, err
	}
	return r, buf[pos:], nil
}

// ParseRecords parses every record in buf. At least one record is required and the
// whole buffer must be consumed; if the last record is cut short, an *IncompleteError
// is returned instead of the records parsed so far.
func (p *Parser) ParseRecords(buf []byte) ([]*Record, []byte, error) {
	var records []*Record
	pos := 0
	for {
		r, next, err := p.terminatedRecord(buf, pos, true)
		if err != nil {
			return nil, buf, err
		}
		records = append(records, r)
		pos = next
		if pos >= len(buf) {
			log.Debugf("parsed %d records from %d bytes", len(records), len(buf))
			return records, buf[pos:], nil
		}
	}
}

func (p *Parser) terminatedRecord(buf []byte, pos int, final bool) (*Record, int, error) {
	r, pos, clamped, err := p.record(buf, pos, final)
	if err != nil {
		return nil, pos, err
	}
	if clamped {
		return r, pos, nil
	}
	if pos, err = p.endOfRecord(buf, pos); err != nil {
		return nil, pos, err
	}
	return r, pos, nil
}

// record parses version line, headers and content starting at pos.
//
// Truncated records are only clamped to the end of buf when final is set. A caller
// which may still append to buf passes false so that a record cut by the end of the
// buffer is reported as incomplete rather than returned short.
func (p *Parser) record(buf []byte, pos int, final bool) (*Record, int, bool, error) {
	start := pos

	version, pos, err := p.versionLine(buf, pos)
	if err != nil {
		return nil, start, false, err
	}
	fields, pos, err := p.headerBlock(buf, pos)
	if err != nil {
		return nil, start, false, err
	}

	headers := make(map[string]string, len(fields)+1)
	headers[WarcVersion] = version.str(buf)
	for _, f := range fields {
		headers[f.name.str(buf)] = f.value.str(buf)
	}

	length, err := p.contentLength(headers)
	if err != nil {
		return nil, start, false, err
	}

	clamped := false
	remaining := len(buf) - pos
	// A truncated record reaching the end of final input has no room left for a terminator.
	if _, truncated := headers[WarcTruncated]; truncated && final && length >= remaining {
		if length > remaining {
			log.Debugf("truncated record at offset %d: declared content length %d, clamped to %d", start, length, remaining)
		}
		length = remaining
		clamped = true
	}
	if length > remaining {
		return nil, start, false, newIncompleteError(length - remaining)
	}

	content := make([]byte, length)
	copy(content, buf[pos:pos+length])
	return &Record{Headers: headers, Content: content}, pos + length, clamped, nil
}

func (p *Parser) contentLength(headers map[string]string) (int, error) {
	raw, ok := headers[ContentLength]
	if !ok {
		if p.opts.missingContentLength == MissingLengthIncomplete {
			return 0, newIncompleteError(1)
		}
		return 0, newHeaderFieldError(MissingContentLength, ContentLength, "", "missing required header")
	}
	length, ok := parseDecimal(raw)
	if !ok {
		return 0, newHeaderFieldError(NonNumericContentLength, ContentLength, raw, "value is not a non-negative integer")
	}
	return length, nil
}

// parseDecimal parses a string of ASCII digits. Signs and spaces are rejected.
func parseDecimal(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
