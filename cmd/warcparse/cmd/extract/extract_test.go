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

package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = "WARC/1.1\r\nWARC-Type: warcinfo\r\nContent-Length: 0\r\n\r\n\r\n\r\n" +
	"WARC/1.1\r\nWARC-Type: response\r\nWARC-Target-URI: http://example.com/\r\nContent-Length: 5\r\n\r\nhello\r\n\r\n" +
	"WARC/1.0\r\nWARC-Type: resource\r\nWARC-Truncated: length\r\nContent-Length: 100\r\n\r\nabc"

func TestExtract(t *testing.T) {
	tmp := t.TempDir()
	fileName := filepath.Join(tmp, "test.warc")
	require.NoError(t, os.WriteFile(fileName, []byte(testData), 0644))
	dir := filepath.Join(tmp, "out")

	out := &bytes.Buffer{}
	err := runE(&conf{fileName: fileName, dir: dir}, out)
	require.NoError(t, err)

	want := map[string]string{
		"0.bin":   "",
		"56.bin":  "hello",
		"155.bin": "abc",
	}
	assert.Equal(t, filepath.Join(dir, "0.bin")+"\n"+filepath.Join(dir, "56.bin")+"\n"+filepath.Join(dir, "155.bin")+"\n", out.String())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, len(want))
	for name, content := range want {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, content, string(b))
	}
}

func TestExtract_filter(t *testing.T) {
	tmp := t.TempDir()
	fileName := filepath.Join(tmp, "test.warc")
	require.NoError(t, os.WriteFile(fileName, []byte(testData), 0644))
	dir := filepath.Join(tmp, "out")

	err := runE(&conf{fileName: fileName, dir: dir, filter: `.["WARC-Type"] == "response"`}, &bytes.Buffer{})
	require.NoError(t, err)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "56.bin", files[0].Name())
}
