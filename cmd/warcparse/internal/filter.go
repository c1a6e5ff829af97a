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

	"github.com/itchyny/gojq"
	"github.com/nlnwa/warcparser"
)

// Filter selects records with a jq expression evaluated against the record's header map.
// The record is selected if the first result of the expression is true.
//
// Example: '.["WARC-Type"] == "response"'
type Filter struct {
	code *gojq.Code
}

// NewFilter compiles expr. An empty expression gives a nil Filter which selects every record.
func NewFilter(expr string) (*Filter, error) {
	if expr == "" {
		return nil, nil
	}
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	return &Filter{code: code}, nil
}

// Match reports whether record is selected by the filter.
func (f *Filter) Match(record *warcparser.Record) (bool, error) {
	if f == nil {
		return true, nil
	}
	input := make(map[string]any, len(record.Headers))
	for k, v := range record.Headers {
		input[k] = v
	}
	iter := f.code.Run(input)
	v, ok := iter.Next()
	if !ok {
		return false, nil
	}
	if err, ok := v.(error); ok {
		return false, err
	}
	match, ok := v.(bool)
	return ok && match, nil
}
