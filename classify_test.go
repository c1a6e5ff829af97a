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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_scan(t *testing.T) {
	tests := []struct {
		name    string
		scan    func([]byte, int) (int, error)
		data    string
		pos     int
		want    string
		wantErr bool
	}{
		{"version", scanVersion, "1.1\r\n", 0, "1.1", false},
		{"version stops at letter", scanVersion, "1.1a", 0, "1.1", false},
		{"version empty match", scanVersion, "x1.0", 0, "", false},
		{"version at offset", scanVersion, "WARC/1.0\r\n", 5, "1.0", false},
		{"version needs more input", scanVersion, "1.1", 0, "", true},
		{"token", scanToken, "WARC-Type: response", 0, "WARC-Type", false},
		{"token symbols", scanToken, "!#$%&'*+-^_`|~09azAZ:", 0, "!#$%&'*+-^_`|~09azAZ", false},
		{"token stops at separator", scanToken, "a(b", 0, "a", false},
		{"token stops at space", scanToken, "Content-Length : 1", 0, "Content-Length", false},
		{"token stops at dot", scanToken, "a.b:", 0, "a", false},
		{"token needs more input", scanToken, "Content-Length", 0, "", true},
		{"value", scanValue, "hello world\r\n", 0, "hello world", false},
		{"value keeps colon", scanValue, "http://example.com/\r\n", 0, "http://example.com/", false},
		{"value stops at tab", scanValue, "a\tb\r\n", 0, "a", false},
		{"value stops at non ascii", scanValue, "bl\xc3\xa5\r\n", 0, "bl", false},
		{"value stops at delete", scanValue, "a\x7fb\r\n", 0, "a", false},
		{"value needs more input", scanValue, "abc", 0, "", true},
		{"space", skipSpace, " \t x", 0, " \t ", false},
		{"no space", skipSpace, "x", 0, "", false},
		{"space needs more input", skipSpace, "  ", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, err := tt.scan([]byte(tt.data), tt.pos)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncomplete)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.data[tt.pos:end])
		})
	}
}

func Test_isTokenChar(t *testing.T) {
	for c := 0; c < 256; c++ {
		b := byte(c)
		want := (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
		switch b {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '^', '_', '`', '|', '~':
			want = true
		}
		assert.Equal(t, want, isTokenChar(b), "byte %#x", c)
	}
}
