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

// byteClass reports whether a byte belongs to a character class.
type byteClass func(c byte) bool

func isVersionChar(c byte) bool {
	return c == '.' || (c >= '0' && c <= '9')
}

// isTokenChar is the token character set of RFC 2616 (CHAR minus CTLs and separators).
func isTokenChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

// isValueChar accepts printable ASCII only.
// TODO: accept UTF-8 encoded header values (WARC 1.1 allows them).
func isValueChar(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

func isSpace(c byte) bool {
	return c == sp || c == ht
}

// scan returns the end of the longest run of bytes in class starting at pos.
// The end of a run can only be known when a byte outside the class is seen, so
// reaching the end of buf is reported as incomplete input.
func scan(buf []byte, pos int, class byteClass) (int, error) {
	for i := pos; i < len(buf); i++ {
		if !class(buf[i]) {
			return i, nil
		}
	}
	return pos, newIncompleteError(1)
}

func scanVersion(buf []byte, pos int) (int, error) {
	return scan(buf, pos, isVersionChar)
}

func scanToken(buf []byte, pos int) (int, error) {
	return scan(buf, pos, isTokenChar)
}

func scanValue(buf []byte, pos int) (int, error) {
	return scan(buf, pos, isValueChar)
}

// skipSpace skips zero or more spaces and horizontal tabs.
func skipSpace(buf []byte, pos int) (int, error) {
	return scan(buf, pos, isSpace)
}
