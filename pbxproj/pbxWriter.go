/**
Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
'License'); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at
http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
'AS IS' BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
*/

package pbxproj

import (
	"fmt"
	"strings"

	"github.com/soapywu/pbxedit/object"
)

const (
	INDENT = "\t"

	// records sit two levels deep: project { objects { ... } }
	RECORD_INDENT_LEVEL = 2
	// entries of a record's list attribute sit two levels deeper
	LIST_ENTRY_INDENT_LEVEL = 4
)

type PbxWriterOption func(w *PbxWriter)

func WithOmitEmpty() PbxWriterOption {
	return func(w *PbxWriter) {
		w.omitEmptyValues = true
	}
}

// PbxWriter renders the single-line records and list entries spliced into a
// manifest.
type PbxWriter struct {
	omitEmptyValues bool
	indentLevel     int
}

func NewPbxWriter(indentLevel int, options ...PbxWriterOption) *PbxWriter {
	w := &PbxWriter{
		indentLevel: indentLevel,
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func indent(x int) string {
	if x <= 0 {
		return ""
	}
	return INDENT + indent(x-1)
}

func (w PbxWriter) writeInlineObjectHelp(buffer *[]string, name string, desc string, ref object.Object) {
	output := *buffer
	if desc != "" {
		output = append(output, fmt.Sprintf("%s /* %s */ = {", name, desc))
	} else {
		output = append(output, fmt.Sprintf("%s = {", name))
	}

	ref.ForeachWithFilter(func(key string, val any) object.IterateActionType {
		value, ok := val.(string)
		if !ok || (value == "" && w.omitEmptyValues) {
			return object.IterateActionContinue
		}
		if cmt := ref.GetString(toCommentKey(key)); cmt != "" {
			output = append(output, fmt.Sprintf("%s = %s /* %s */; ", key, value, cmt))
		} else {
			output = append(output, fmt.Sprintf("%s = %s; ", key, value))
		}
		return object.IterateActionContinue
	}, nonCommentsFilter)

	output = append(output, "};")
	*buffer = output
}

// InlineRecord renders a whole record on one line, newline terminated:
//
//	NAME /* desc */ = {isa = PBXBuildFile; fileRef = REF /* Foo.swift */; };
func (w PbxWriter) InlineRecord(name string, desc string, ref object.Object) string {
	output := []string{}
	w.writeInlineObjectHelp(&output, name, desc, ref)
	return indent(w.indentLevel) + strings.TrimSpace(strings.Join(output, "")) + "\n"
}

// ListEntry renders one element of a list attribute such as children or
// files. The entry starts with a newline so it can be spliced in right after
// the list's opening parenthesis.
func (w PbxWriter) ListEntry(value string, comment string) string {
	if comment == "" {
		return fmt.Sprintf("\n%s%s,", indent(w.indentLevel), value)
	}
	return fmt.Sprintf("\n%s%s /* %s */,", indent(w.indentLevel), value, comment)
}
