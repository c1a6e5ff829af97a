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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nlnwa/warcparser"
	"github.com/nlnwa/warcparser/cmd/warcparse/internal"
	"github.com/nlnwa/warcparser/internal/follow"
	"github.com/spf13/cobra"
)

type conf struct {
	offset   int64
	format   string
	filter   string
	fileName string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "tail FILE",
		Short: "List records as they are appended to a warc file",
		Long: `List records from a warc file which is still being written to.

Records are listed as soon as they are complete. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			if c.offset < 0 {
				c.offset = 0
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runE(ctx, c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Int64VarP(&c.offset, "offset", "o", -1, "record offset")
	cmd.Flags().StringVarP(&c.format, "format", "f", internal.DefaultFormat, "line format, see ls")
	cmd.Flags().StringVar(&c.filter, "filter", "", "jq expression selecting records by header")

	return cmd
}

func runE(ctx context.Context, c *conf, out io.Writer) error {
	filter, err := internal.NewFilter(c.filter)
	if err != nil {
		return err
	}
	r, err := follow.Open(ctx, c.fileName, c.offset)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	w := &internal.Walker{Offset: c.offset, Filter: filter}
	count, err := w.Walk(r, func(offset int64, record *warcparser.Record) error {
		_, err := fmt.Fprint(out, internal.FormatRecord(c.format, offset, record))
		return err
	})
	internal.PrintCount(count)
	if ctx.Err() != nil && errors.Is(err, io.ErrUnexpectedEOF) {
		// Stopped while a record was being written.
		return nil
	}
	return err
}
