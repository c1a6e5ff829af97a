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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nlnwa/warcparser"
	"github.com/nlnwa/warcparser/cmd/warcparse/internal"
	"github.com/prometheus/tsdb/fileutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const openFileSuffix = ".open"

type conf struct {
	offset      int64
	recordCount int
	filter      string
	fileName    string
	dir         string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "extract FILE DIR",
		Short: "Write the content of records to files",
		Long: `Write the content of every selected record to DIR/<offset>.bin.

Files are written with a '.open' suffix which is removed when the file is complete.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("missing file name or target directory")
			}
			c.fileName = args[0]
			c.dir = args[1]
			if c.offset < 0 {
				c.offset = 0
			}
			return runE(c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int64VarP(&c.offset, "offset", "o", -1, "record offset")
	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to extract")
	cmd.Flags().StringVar(&c.filter, "filter", "", "jq expression selecting records by header")

	return cmd
}

func runE(c *conf, out io.Writer) error {
	filter, err := internal.NewFilter(c.filter)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	f, err := internal.OpenFile(c.fileName, c.offset)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := &internal.Walker{Offset: c.offset, RecordCount: c.recordCount, Filter: filter}
	count, err := w.Walk(f, func(offset int64, record *warcparser.Record) error {
		path, err := writeContent(c.dir, offset, record)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, path)
		return err
	})
	internal.PrintCount(count)
	return err
}

// writeContent writes the record content to a file named by offset. The file is only
// visible under its final name once it is completely written.
func writeContent(dir string, offset int64, record *warcparser.Record) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%d.bin", offset))
	file, err := os.OpenFile(path+openFileSuffix, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	if _, err := file.Write(record.Content); err != nil {
		_ = file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %s: %w", file.Name(), err)
	}
	if err := fileutil.Rename(file.Name(), path); err != nil {
		return "", fmt.Errorf("failed to rename file: %s: %w", file.Name(), err)
	}
	log.Debugf("wrote %d bytes from record at offset %d to %s", len(record.Content), offset, path)
	return path, nil
}
