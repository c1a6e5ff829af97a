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

package ls

import (
	"errors"
	"fmt"
	"io"

	"github.com/nlnwa/warcparser"
	"github.com/nlnwa/warcparser/cmd/warcparse/internal"
	"github.com/spf13/cobra"
)

type conf struct {
	offset      int64
	recordCount int
	format      string
	filter      string
	fileName    string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "ls FILE",
		Short: "List records from warc files",
		Long: `List one line per record.

The line format is set with --format using named parameters, e.g. '%{offset}d %{type}s\n'.
Available parameters: offset, version, type, id, length, declared, truncated and target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			if c.offset < 0 {
				c.offset = 0
			}
			return runE(c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int64VarP(&c.offset, "offset", "o", -1, "record offset")
	cmd.Flags().IntVarP(&c.recordCount, "record-count", "c", 0, "The maximum number of records to show")
	cmd.Flags().StringVarP(&c.format, "format", "f", internal.DefaultFormat, "line format")
	cmd.Flags().StringVar(&c.filter, "filter", "", "jq expression selecting records by header, e.g. '.[\"WARC-Type\"] == \"response\"'")

	return cmd
}

func runE(c *conf, out io.Writer) error {
	filter, err := internal.NewFilter(c.filter)
	if err != nil {
		return err
	}
	f, err := internal.OpenFile(c.fileName, c.offset)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := &internal.Walker{Offset: c.offset, RecordCount: c.recordCount, Filter: filter}
	count, err := w.Walk(f, func(offset int64, record *warcparser.Record) error {
		line := internal.FormatRecord(c.format, offset, record)
		if record.IsTruncated() {
			line = internal.Highlight(line)
		}
		_, err := fmt.Fprint(out, line)
		return err
	})
	internal.PrintCount(count)
	return err
}
