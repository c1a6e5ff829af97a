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
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/nlnwa/warcparser"
	"github.com/spf13/viper"
)

// ParserOptions returns the parser options given by the configuration.
func ParserOptions() ([]warcparser.Option, error) {
	opts := []warcparser.Option{
		warcparser.WithStrictLineEndings(viper.GetBool("strict")),
	}
	switch policy := viper.GetString("missing-length"); policy {
	case "", warcparser.MissingLengthFail.String():
	case warcparser.MissingLengthIncomplete.String():
		opts = append(opts, warcparser.WithMissingContentLengthPolicy(warcparser.MissingLengthIncomplete))
	default:
		return nil, fmt.Errorf("unknown missing-length policy: %v", policy)
	}
	return opts, nil
}

// Walker iterates over the records of a WARC stream.
type Walker struct {
	Offset      int64   // Offset of the first byte read from the stream
	RecordCount int     // Maximum number of records to visit. Zero means no limit
	Filter      *Filter // Records not matching Filter are skipped
}

// Walk calls fn for every selected record read from r. It returns the number of records visited.
func (w *Walker) Walk(r io.Reader, fn func(offset int64, record *warcparser.Record) error) (int, error) {
	opts, err := ParserOptions()
	if err != nil {
		return 0, err
	}
	reader := warcparser.NewReader(r, warcparser.WithStartOffset(w.Offset), warcparser.WithParserOptions(opts...))

	count := 0
	for {
		record, offset, err := reader.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("record num: %d, offset %d: %w", count+1, offset, err)
		}

		match, err := w.Filter.Match(record)
		if err != nil {
			return count, err
		}
		if !match {
			continue
		}

		count++
		if err := fn(offset, record); err != nil {
			return count, err
		}
		if w.RecordCount > 0 && count >= w.RecordCount {
			return count, nil
		}
	}
}

// OpenFile opens the named file for reading, positioned at offset.
func OpenFile(name string, offset int64) (*os.File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s is a directory", name)
	}
	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

var (
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
)

// PrintError writes err to stderr.
func PrintError(err error) {
	_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
}

// Highlight returns s colored as a warning.
func Highlight(s string) string {
	return warnColor.Sprint(s)
}

// PrintCount writes the number of processed records to stderr.
func PrintCount(count int) {
	_, _ = fmt.Fprintln(os.Stderr, "Count: ", count)
}
