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

package tail

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	first  = "WARC/1.1\r\nWARC-Type: warcinfo\r\nContent-Length: 0\r\n\r\n\r\n\r\n"
	second = "WARC/1.1\r\nWARC-Type: response\r\nContent-Length: 5\r\n\r\nhello\r\n\r\n"
)

func TestTail(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "test.warc")
	require.NoError(t, os.WriteFile(fileName, []byte(first+second[:20]), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() {
		time.Sleep(200 * time.Millisecond)
		f, err := os.OpenFile(fileName, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		_, _ = f.WriteString(second[20:])
		_ = f.Close()
	}()

	out := &bytes.Buffer{}
	err := runE(ctx, &conf{fileName: fileName, format: "%{offset}d %{type}s\n"}, out)
	require.NoError(t, err)
	assert.Equal(t, "0 warcinfo\n56 response\n", out.String())
}

func TestTail_stoppedInsideRecord(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "test.warc")
	require.NoError(t, os.WriteFile(fileName, []byte(first+second[:20]), 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out := &bytes.Buffer{}
	err := runE(ctx, &conf{fileName: fileName, format: "%{offset}d\n"}, out)
	assert.NoError(t, err)
	assert.Equal(t, "0\n", out.String())
}
