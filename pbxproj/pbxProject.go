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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

const maxGroupSuggestions = 3

type Option func(p *PbxProject)

// WithSectionLocator replaces the regular expression section matcher.
func WithSectionLocator(l SectionLocator) Option {
	return func(p *PbxProject) {
		p.sections = l
	}
}

// WithGroupLocator replaces the regular expression group matcher.
func WithGroupLocator(l GroupLocator) Option {
	return func(p *PbxProject) {
		p.groups = l
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *PbxProject) {
		p.logger = logger
	}
}

// WithSourceExtensions sets which paths AddSourceFiles accepts.
func WithSourceExtensions(extensions ...string) Option {
	return func(p *PbxProject) {
		p.extensions = extensions
	}
}

func WithSourceTree(sourceTree string) Option {
	return func(p *PbxProject) {
		p.fileOptions.SourceTree = sourceTree
	}
}

// WithBuildPhase names the build phase new files are compiled in, e.g.
// "Sources" for PBXSourcesBuildPhase.
func WithBuildPhase(phase string) Option {
	return func(p *PbxProject) {
		p.fileOptions.Group = phase
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *PbxProject) {
		p.now = now
	}
}

// PbxProject edits a project.pbxproj file as text. Records are spliced into
// the buffer next to the existing ones; nothing outside the touched sections
// is parsed or rewritten.
type PbxProject struct {
	filePath    string
	raw         []byte
	perm        os.FileMode
	contents    string
	dirty       bool
	sections    SectionLocator
	groups      GroupLocator
	uuids       *uuidGenerator
	extensions  []string
	fileOptions PbxFileOptions
	now         func() time.Time
	logger      *slog.Logger
	records     *PbxWriter
	entries     *PbxWriter
}

func NewPbxProject(filePath string, options ...Option) *PbxProject {
	p := &PbxProject{
		filePath:   filePath,
		sections:   RegexpLocator{},
		groups:     RegexpLocator{},
		extensions: []string{".swift"},
		fileOptions: PbxFileOptions{
			SourceTree: DEFAULT_SOURCETREE,
			Group:      DEFAULT_BUILD_PHASE,
		},
		now:     time.Now,
		logger:  slog.New(slog.DiscardHandler),
		records: NewPbxWriter(RECORD_INDENT_LEVEL, WithOmitEmpty()),
		entries: NewPbxWriter(LIST_ENTRY_INDENT_LEVEL),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Parse loads the manifest. A missing or unreadable file is a
// *FatalInputError.
func (p *PbxProject) Parse() error {
	info, err := os.Stat(p.filePath)
	if err != nil {
		return &FatalInputError{Path: p.filePath, Err: err}
	}
	if info.IsDir() {
		return &FatalInputError{Path: p.filePath, Err: errors.New("is a directory")}
	}
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return &FatalInputError{Path: p.filePath, Err: err}
	}

	p.raw = data
	p.perm = info.Mode().Perm()
	p.contents = string(data)
	p.dirty = false
	p.uuids = newUuidGenerator(p.contents, p.now)
	p.logger.Debug("project loaded", "path", p.filePath, "bytes", len(data), "uuids", len(p.uuids.uuids))
	return nil
}

func (p *PbxProject) FilePath() string {
	return p.filePath
}

func (p *PbxProject) Contents() string {
	return p.contents
}

// Dirty reports whether any record has been inserted since Parse.
func (p *PbxProject) Dirty() bool {
	return p.dirty
}

// Save writes the whole buffer back over the project file.
func (p *PbxProject) Save() error {
	if p.raw == nil {
		return errors.New("project not parsed")
	}
	if err := writeFileSync(p.filePath, []byte(p.contents), p.perm); err != nil {
		return fmt.Errorf("writing %s: %w", p.filePath, err)
	}
	p.logger.Debug("project written", "path", p.filePath, "bytes", len(p.contents))
	return nil
}

// AddSourceFiles runs AddSourceFile for every path in order. Paths without
// a source extension are skipped. A failure on one path never stops the
// others.
func (p *PbxProject) AddSourceFiles(filePaths []string) *Report {
	report := &Report{ProjectPath: p.filePath}
	for _, filePath := range filePaths {
		if !hasSourceExtension(filePath, p.extensions) {
			report.Add(FileResult{
				Path:   filePath,
				Label:  newPbxFile(filePath, p.fileOptions).Basename,
				Status: StatusSkipped,
				Err:    fmt.Errorf("%w (%s)", ErrNotSourceFile, strings.Join(p.extensions, ", ")),
			})
			continue
		}
		report.Add(p.AddSourceFile(filePath))
	}
	return report
}

// AddSourceFile registers filePath with the project: a file reference, a
// build file pointing at it, a child entry in the group named after the
// parent directory and an entry in the sources build phase. The first two
// are required; the last two are best effort and only produce warnings.
func (p *PbxProject) AddSourceFile(filePath string) FileResult {
	pbxfile := newPbxFile(filePath, p.fileOptions)
	result := FileResult{Path: filePath, Label: pbxfile.Basename}
	logger := p.logger.With("file", pbxfile.Basename)

	if p.hasFile(pbxfile.Basename) {
		logger.Debug("already in project")
		result.Status = StatusSkipped
		result.Err = ErrDuplicateEntry
		return result
	}

	pbxfile.FileRef = p.uuids.generateUuid("fileref-" + filePath)
	pbxfile.Uuid = p.uuids.generateUuid("buildfile-" + filePath)

	if err := p.addToPbxFileReferenceSection(pbxfile); err != nil {
		logger.Debug("file reference not added", "err", err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.FileRef = pbxfile.FileRef

	if err := p.addToPbxBuildFileSection(pbxfile); err != nil {
		logger.Debug("build file not added", "err", err)
		result.Status = StatusFailed
		result.Err = err
		return result
	}
	result.BuildFile = pbxfile.Uuid

	if err := p.addToPbxGroup(pbxfile); err != nil {
		logger.Debug("file not grouped", "err", err)
		result.Warnings = append(result.Warnings, err)
	}
	if err := p.addToPbxSourcesBuildPhase(pbxfile); err != nil {
		logger.Debug("file not in build phase", "err", err)
		result.Warnings = append(result.Warnings, err)
	}

	result.Status = StatusAdded
	logger.Debug("added", "ref", pbxfile.FileRef, "build", pbxfile.Uuid)
	return result
}

// hasFile reports whether label is already mentioned, both anywhere in the
// text and as a record comment. This is a substring test, so an unrelated
// record sharing the label also counts.
func (p *PbxProject) hasFile(label string) bool {
	return strings.Contains(p.contents, label) &&
		strings.Contains(p.contents, "/* "+label+" */")
}

func (p *PbxProject) insert(at int, text string) {
	p.contents = p.contents[:at] + text + p.contents[at:]
	p.dirty = true
}

// helper addition functions; each one locates its target against the
// current buffer since every insertion shifts the offsets after it

func (p *PbxProject) addToPbxFileReferenceSection(pbxfile *PbxFile) error {
	span, err := p.sections.Locate(p.contents, PBX_FILE_REFERENCE_SECTION)
	if err != nil {
		return err
	}
	p.insert(span.End, p.records.InlineRecord(pbxfile.FileRef, pbxFileReferenceComment(pbxfile), newPbxFileReferenceObj(pbxfile)))
	return nil
}

func (p *PbxProject) addToPbxBuildFileSection(pbxfile *PbxFile) error {
	span, err := p.sections.Locate(p.contents, PBX_BUILD_FILE_SECTION)
	if err != nil {
		return err
	}
	p.insert(span.End, p.records.InlineRecord(pbxfile.Uuid, longComment(pbxfile), pbxBuildFileObj(pbxfile)))
	return nil
}

func (p *PbxProject) addToPbxGroup(pbxfile *PbxFile) error {
	group, err := p.groups.LocateGroup(p.contents, pbxfile.Dirname)
	if err != nil {
		var groupErr *GroupNotFoundError
		if errors.As(err, &groupErr) {
			groupErr.Suggestions = p.suggestGroups(pbxfile.Dirname)
		}
		return err
	}
	p.insert(group.Children, p.entries.ListEntry(pbxfile.FileRef, pbxFileReferenceComment(pbxfile)))
	p.logger.Debug("grouped", "file", pbxfile.Basename, "group", pbxfile.Dirname, "uuid", group.Uuid)
	return nil
}

func (p *PbxProject) addToPbxSourcesBuildPhase(pbxfile *PbxFile) error {
	at, err := locateBuildPhaseFiles(p.sections, p.contents, buildPhaseSection(pbxfile.Group))
	if err != nil {
		return err
	}
	p.insert(at, p.entries.ListEntry(pbxfile.Uuid, longComment(pbxfile)))
	return nil
}

// suggestGroups returns the group labels closest to name.
func (p *PbxProject) suggestGroups(name string) []string {
	if name == "" {
		return nil
	}
	var suggestions []string
	for _, match := range fuzzy.Find(name, p.groups.GroupNames(p.contents)) {
		if len(suggestions) == maxGroupSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}
