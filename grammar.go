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

import "bytes"

const (
	sp = ' '
	ht = '\t'
	cr = '\r'
	lf = '\n'
)

var (
	warcTag  = []byte("WARC")
	slashTag = []byte("/")
	colonTag = []byte(":")
)

// span is a half-open index range into the buffer being parsed.
type span struct {
	start, end int
}

func (s span) empty() bool { return s.start == s.end }

func (s span) str(buf []byte) string { return string(buf[s.start:s.end]) }

type field struct {
	name, value span
}

// matchTag matches the literal tag at pos. If the buffer ends inside a matching
// prefix of tag, incomplete input is reported.
func matchTag(buf []byte, pos int, tag []byte, kind ErrorKind) (int, error) {
	rest := buf[pos:]
	if len(rest) < len(tag) {
		if !bytes.HasPrefix(tag, rest) {
			return pos, newSyntaxError(kind, "expected '"+string(tag)+"'", pos)
		}
		return pos, newIncompleteError(len(tag) - len(rest))
	}
	if !bytes.HasPrefix(rest, tag) {
		return pos, newSyntaxError(kind, "expected '"+string(tag)+"'", pos)
	}
	return pos + len(tag), nil
}

// lineEnd matches an optional carriage return followed by a line feed.
func (p *Parser) lineEnd(buf []byte, pos int, kind ErrorKind) (int, error) {
	if pos >= len(buf) {
		return pos, newIncompleteError(1)
	}
	if buf[pos] == cr {
		pos++
	} else if p.opts.strictLineEndings {
		return pos, newSyntaxError(kind, "missing carriage return", pos)
	}
	if pos >= len(buf) {
		return pos, newIncompleteError(1)
	}
	if buf[pos] != lf {
		return pos, newSyntaxError(kind, "expected end of line", pos)
	}
	return pos + 1, nil
}

// versionLine parses 'WARC/<version>' and returns the span of the version number.
// A single leading line ending, left over from the previous record, is skipped.
func (p *Parser) versionLine(buf []byte, pos int) (span, int, error) {
	if pos < len(buf) && buf[pos] == cr {
		pos++
	}
	if pos < len(buf) && buf[pos] == lf {
		pos++
	}

	var err error
	if pos, err = matchTag(buf, pos, warcTag, MalformedVersionLine); err != nil {
		return span{}, pos, err
	}
	if pos, err = matchTag(buf, pos, slashTag, MalformedVersionLine); err != nil {
		return span{}, pos, err
	}
	if pos, err = skipSpace(buf, pos); err != nil {
		return span{}, pos, err
	}

	version := span{start: pos}
	if version.end, err = scanVersion(buf, pos); err != nil {
		return span{}, pos, err
	}
	if version.empty() {
		return span{}, pos, newSyntaxError(MalformedVersionLine, "missing version number", pos)
	}

	pos, err = p.lineEnd(buf, version.end, MalformedVersionLine)
	return version, pos, err
}

// headerLine parses 'name *WSP : *WSP value'.
func (p *Parser) headerLine(buf []byte, pos int) (field, int, error) {
	var f field
	var err error

	f.name.start = pos
	if f.name.end, err = scanToken(buf, pos); err != nil {
		return f, pos, err
	}
	if f.name.empty() {
		return f, pos, newSyntaxError(MalformedHeaderLine, "invalid header name", pos)
	}
	if pos, err = skipSpace(buf, f.name.end); err != nil {
		return f, pos, err
	}
	if pos, err = matchTag(buf, pos, colonTag, MalformedHeaderLine); err != nil {
		return f, pos, err
	}
	if pos, err = skipSpace(buf, pos); err != nil {
		return f, pos, err
	}

	f.value.start = pos
	if f.value.end, err = scanValue(buf, pos); err != nil {
		return f, pos, err
	}

	pos, err = p.lineEnd(buf, f.value.end, MalformedHeaderLine)
	return f, pos, err
}

// atBlankLine reports whether pos is at an empty line.
func atBlankLine(buf []byte, pos int) (bool, error) {
	if pos >= len(buf) {
		return false, newIncompleteError(1)
	}
	switch buf[pos] {
	case lf:
		return true, nil
	case cr:
		if pos+1 >= len(buf) {
			return false, newIncompleteError(1)
		}
		return buf[pos+1] == lf, nil
	}
	return false, nil
}

// headerBlock parses one or more header lines terminated by an empty line.
func (p *Parser) headerBlock(buf []byte, pos int) ([]field, int, error) {
	fields := make([]field, 0, 16)
	for {
		if len(fields) > 0 {
			blank, err := atBlankLine(buf, pos)
			if err != nil {
				return nil, pos, err
			}
			if blank {
				pos, err = p.lineEnd(buf, pos, MalformedHeaderLine)
				if err != nil {
					return nil, pos, err
				}
				return fields, pos, nil
			}
		}

		f, next, err := p.headerLine(buf, pos)
		if err != nil {
			return nil, next, err
		}
		fields = append(fields, f)
		pos = next
	}
}

// endOfRecord parses the empty line separating two records.
func (p *Parser) endOfRecord(buf []byte, pos int) (int, error) {
	var err error
	for i := 0; i < 2; i++ {
		if pos, err = p.lineEnd(buf, pos, TrailingGarbageAfterRecord); err != nil {
			return pos, err
		}
	}
	return pos, nil
}
