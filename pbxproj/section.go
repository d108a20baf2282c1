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
	"regexp"
)

// Span is the half-open byte range [Start, End) of the manifest text.
type Span struct {
	Start int
	End   int
}

// SectionLocator finds named sections in a manifest. It is the only place
// that knows how section boundaries are recognized, so a structural parser
// can stand in for the regular expressions below.
type SectionLocator interface {
	// Locate returns the range strictly between the Begin and End markers
	// of the named section, or a *SectionNotFoundError.
	Locate(contents, name string) (Span, error)
}

// GroupLocator finds PBXGroup records by label.
type GroupLocator interface {
	LocateGroup(contents, name string) (GroupMatch, error)
	GroupNames(contents string) []string
}

// GroupMatch is a located PBXGroup record.
type GroupMatch struct {
	Uuid     string
	Children int // just past "children = ("
}

// RegexpLocator matches marker comments and record headers with regular
// expressions. Only the first occurrence of a marker is considered.
type RegexpLocator struct{}

var _ SectionLocator = RegexpLocator{}
var _ GroupLocator = RegexpLocator{}

func sectionMarker(name string, begin bool) *regexp.Regexp {
	edge := "End"
	if begin {
		edge = "Begin"
	}
	return regexp.MustCompile(fmt.Sprintf(`/\* %s %s section \*/`, edge, regexp.QuoteMeta(name)))
}

func (RegexpLocator) Locate(contents, name string) (Span, error) {
	begin := sectionMarker(name, true).FindStringIndex(contents)
	end := sectionMarker(name, false).FindStringIndex(contents)
	if begin == nil || end == nil || end[0] < begin[1] {
		return Span{}, &SectionNotFoundError{Section: name}
	}
	return Span{Start: begin[1], End: end[0]}, nil
}

func (RegexpLocator) LocateGroup(contents, name string) (GroupMatch, error) {
	if name == "" || name == "." || name == "/" {
		return GroupMatch{}, &GroupNotFoundError{}
	}
	// the record header must be followed by its children list before any
	// closing brace, which rules out the comment on a child entry
	re := regexp.MustCompile(`([0-9A-Fa-f]{24}) /\* ` + regexp.QuoteMeta(name) + ` \*/ = \{[^}]*children = \(`)
	m := re.FindStringSubmatchIndex(contents)
	if m == nil {
		return GroupMatch{}, &GroupNotFoundError{Group: name}
	}
	return GroupMatch{
		Uuid:     contents[m[2]:m[3]],
		Children: m[1],
	}, nil
}

var groupHeaderRegex = regexp.MustCompile(`[0-9A-Fa-f]{24} /\* (.+?) \*/ = \{`)

// GroupNames lists the labels of every record in the PBXGroup section.
func (l RegexpLocator) GroupNames(contents string) []string {
	span, err := l.Locate(contents, PBX_GROUP_SECTION)
	if err != nil {
		return nil
	}
	var names []string
	for _, m := range groupHeaderRegex.FindAllStringSubmatch(contents[span.Start:span.End], -1) {
		names = append(names, m[1])
	}
	return names
}

var filesListRegex = regexp.MustCompile(`files = \(`)

// locateBuildPhaseFiles returns the offset just past the first "files = ("
// of the named build phase section.
func locateBuildPhaseFiles(sections SectionLocator, contents, phase string) (int, error) {
	span, err := sections.Locate(contents, phase)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildPhaseNotFound, err)
	}
	loc := filesListRegex.FindStringIndex(contents[span.Start:span.End])
	if loc == nil {
		return 0, fmt.Errorf("%w: %s has no file list", ErrBuildPhaseNotFound, phase)
	}
	return span.Start + loc[1], nil
}
