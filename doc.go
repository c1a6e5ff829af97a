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

/*
Package warcparser parses WARC records from byte buffers.

# WARC

The WARC format offers a standard way to structure, manage and store billions of resources collected from the web and elsewhere.
A WARC file is a sequence of records, each consisting of a version line, a block of header fields, an empty line,
a content block whose length is given by the Content-Length header, and two line endings.

To learn more about the WARC standard, read the specification at https://iipc.github.io/warc-specifications/specifications/warc-format/warc-1.1/

# Parse WARC records

[ParseRecord] parses a single record and [ParseRecords] parses a buffer holding one or more complete records.
Use [NewParser] to create a [Parser] with non-default options.

Parsing never blocks and never reads beyond the supplied buffer. When the buffer ends before a record is complete,
an [*IncompleteError] is returned; the caller can append more bytes and try again. Malformed input is reported as a
[*SyntaxError] or a [*HeaderFieldError]. Use [KindOf] to classify any returned error.

Only two headers are interpreted. Content-Length gives the size of the content block, and if WARC-Truncated is present
the content block is allowed to be shorter than declared, ending where the buffer ends.

# Read WARC records from a stream

The [Reader] wraps an io.Reader, buffers its input and returns one record at a time together with its offset.
It is initialized with [NewReader].
*/
package warcparser
