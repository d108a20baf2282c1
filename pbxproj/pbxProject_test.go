package pbxproj

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "project.pbxproj"))
	require.NoError(t, err)
	return string(data)
}

// loadProject writes contents to a temporary project.pbxproj and parses it.
func loadProject(t *testing.T, contents string, options ...Option) *PbxProject {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.pbxproj")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	project := NewPbxProject(path, options...)
	require.NoError(t, project.Parse())
	return project
}

// cutSection removes a whole section, markers included.
func cutSection(t *testing.T, contents, name string) string {
	t.Helper()
	begin := fmt.Sprintf("/* Begin %s section */", name)
	end := fmt.Sprintf("/* End %s section */\n", name)
	i := strings.Index(contents, begin)
	j := strings.Index(contents, end)
	require.True(t, i >= 0 && j > i, "section %s not in fixture", name)
	return contents[:i] + contents[j+len(end):]
}

var (
	fileRefLineRegex   = regexp.MustCompile(`(?m)^\t\t([0-9A-F]{24}) /\* (.+?) \*/ = \{isa = PBXFileReference;`)
	buildFileLineRegex = regexp.MustCompile(`(?m)^\t\t([0-9A-F]{24}) /\* .+? in Sources \*/ = \{isa = PBXBuildFile; fileRef = ([0-9A-F]{24}) /\*`)
)

func TestAddSourceFile_InsertsAllRecords(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t))
	result := project.AddSourceFile("Demo/Views/Foo.swift")

	require.Equal(t, StatusAdded, result.Status)
	require.NoError(t, result.Err)
	require.Empty(t, result.Warnings)
	require.Equal(t, "Foo.swift", result.Label)
	require.Regexp(t, `^[0-9A-F]{24}$`, result.FileRef)
	require.Regexp(t, `^[0-9A-F]{24}$`, result.BuildFile)
	require.NotEqual(t, result.FileRef, result.BuildFile)
	require.True(t, project.Dirty())

	contents := project.Contents()
	ref, build := result.FileRef, result.BuildFile

	require.Contains(t, contents,
		"\t\t"+ref+` /* Foo.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = Foo.swift; sourceTree = "<group>"; };`+
			"\n/* End PBXFileReference section */")
	require.Contains(t, contents,
		"\t\t"+build+" /* Foo.swift in Sources */ = {isa = PBXBuildFile; fileRef = "+ref+" /* Foo.swift */; };"+
			"\n/* End PBXBuildFile section */")
	require.Contains(t, contents,
		"/* Views */ = {\n\t\t\tisa = PBXGroup;\n\t\t\tchildren = (\n\t\t\t\t"+ref+" /* Foo.swift */,\n\t\t\t);")
	require.Contains(t, contents,
		"files = (\n\t\t\t\t"+build+" /* Foo.swift in Sources */,\n\t\t\t\t1A2B3C4D5E6F708192A3B4C5 /* AppDelegate.swift in Sources */,")

	// nothing else moved
	require.Equal(t, readFixture(t), strings.NewReplacer(
		"\t\t"+ref+` /* Foo.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = Foo.swift; sourceTree = "<group>"; };`+"\n", "",
		"\t\t"+build+" /* Foo.swift in Sources */ = {isa = PBXBuildFile; fileRef = "+ref+" /* Foo.swift */; };\n", "",
		"\n\t\t\t\t"+ref+" /* Foo.swift */,", "",
		"\n\t\t\t\t"+build+" /* Foo.swift in Sources */,", "",
	).Replace(contents))
}

func TestAddSourceFile_DuplicateIsSkipped(t *testing.T) {
	t.Parallel()

	fixture := readFixture(t)
	project := loadProject(t, fixture)

	result := project.AddSourceFile("Demo/Models/Bar.swift")

	require.Equal(t, StatusSkipped, result.Status)
	require.ErrorIs(t, result.Err, ErrDuplicateEntry)
	require.Empty(t, result.FileRef)
	require.Equal(t, fixture, project.Contents())
	require.False(t, project.Dirty())
}

func TestAddSourceFiles_IdempotentMembership(t *testing.T) {
	t.Parallel()

	files := []string{"Demo/Views/Foo.swift", "Demo/Models/Baz.swift", "Demo/Qux.swift"}
	project := loadProject(t, readFixture(t))

	first := project.AddSourceFiles(files)
	require.Equal(t, len(files), first.Count(StatusAdded))
	require.NoError(t, project.Save())

	second := NewPbxProject(project.FilePath())
	require.NoError(t, second.Parse())
	before := second.Contents()

	report := second.AddSourceFiles(files)
	require.Equal(t, len(files), report.Count(StatusSkipped))
	for _, f := range report.Files {
		require.ErrorIs(t, f.Err, ErrDuplicateEntry)
	}
	require.Equal(t, before, second.Contents())
	require.Equal(t, labels(before), labels(second.Contents()))
}

func labels(contents string) []string {
	var out []string
	for _, m := range fileRefLineRegex.FindAllStringSubmatch(contents, -1) {
		out = append(out, m[2])
	}
	return out
}

func TestAddSourceFiles_UniqueIdentifiers(t *testing.T) {
	t.Parallel()

	fixture := readFixture(t)
	existing := map[string]bool{}
	for _, id := range uuidRegex.FindAllString(fixture, -1) {
		existing[id] = true
	}

	var files []string
	for i := range 25 {
		files = append(files, fmt.Sprintf("Demo/Views/View%02d.swift", i))
	}

	project := loadProject(t, fixture)
	report := project.AddSourceFiles(files)
	require.Equal(t, len(files), report.Count(StatusAdded))

	seen := map[string]bool{}
	for _, f := range report.Files {
		for _, id := range []string{f.FileRef, f.BuildFile} {
			require.False(t, seen[id], "duplicate id %s", id)
			require.False(t, existing[id], "id %s collides with the fixture", id)
			seen[id] = true
		}
	}
	require.Len(t, seen, 2*len(files))
}

func TestAddSourceFiles_BuildFilesReferenceExistingFiles(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t))
	report := project.AddSourceFiles([]string{"Demo/Views/A.swift", "Elsewhere/B.swift", "C.swift"})
	require.Equal(t, 3, report.Count(StatusAdded))

	contents := project.Contents()
	refs := map[string]bool{}
	for _, m := range fileRefLineRegex.FindAllStringSubmatch(contents, -1) {
		refs[m[1]] = true
	}
	builds := buildFileLineRegex.FindAllStringSubmatch(contents, -1)
	require.Len(t, builds, 5)
	for _, m := range builds {
		require.True(t, refs[m[2]], "build file %s points at missing reference %s", m[1], m[2])
	}
}

func TestAddSourceFile_MissingBuildFileSection(t *testing.T) {
	t.Parallel()

	contents := "// !$*UTF8*$!\n{\n\tobjects = {\n\n" +
		"/* Begin PBXFileReference section */\n" +
		"/* End PBXFileReference section */\n" +
		"\t};\n}\n"
	project := loadProject(t, contents)

	result := project.AddSourceFile("Foo.swift")

	require.Equal(t, StatusFailed, result.Status)
	var sectionErr *SectionNotFoundError
	require.ErrorAs(t, result.Err, &sectionErr)
	require.Equal(t, PBX_BUILD_FILE_SECTION, sectionErr.Section)

	got := project.Contents()
	require.Len(t, fileRefLineRegex.FindAllString(got, -1), 1)
	require.Contains(t, got, "/* Foo.swift */ = {isa = PBXFileReference;")
	require.NotContains(t, got, "isa = PBXBuildFile")
	require.Equal(t, result.FileRef, fileRefLineRegex.FindStringSubmatch(got)[1])
	require.Empty(t, result.BuildFile)
}

func TestAddSourceFile_MissingFileReferenceSection(t *testing.T) {
	t.Parallel()

	fixture := cutSection(t, readFixture(t), PBX_FILE_REFERENCE_SECTION)
	project := loadProject(t, fixture)

	result := project.AddSourceFile("Demo/Views/Foo.swift")

	require.Equal(t, StatusFailed, result.Status)
	var sectionErr *SectionNotFoundError
	require.ErrorAs(t, result.Err, &sectionErr)
	require.Equal(t, PBX_FILE_REFERENCE_SECTION, sectionErr.Section)
	require.Empty(t, result.FileRef)
	require.Equal(t, fixture, project.Contents())
}

// failingLocator fails the nth lookup of one section.
type failingLocator struct {
	RegexpLocator
	section string
	failOn  int
	calls   int
}

func (l *failingLocator) Locate(contents, name string) (Span, error) {
	if name == l.section {
		l.calls++
		if l.calls == l.failOn {
			return Span{}, &SectionNotFoundError{Section: name}
		}
	}
	return l.RegexpLocator.Locate(contents, name)
}

func TestAddSourceFiles_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	locator := &failingLocator{section: PBX_FILE_REFERENCE_SECTION, failOn: 2}
	project := loadProject(t, readFixture(t), WithSectionLocator(locator))

	report := project.AddSourceFiles([]string{"Demo/Views/A.swift", "Demo/Views/B.swift", "Demo/Views/C.swift"})

	require.Len(t, report.Files, 3)
	require.Equal(t, StatusAdded, report.Files[0].Status)
	require.Equal(t, StatusFailed, report.Files[1].Status)
	require.Equal(t, StatusAdded, report.Files[2].Status)
	require.True(t, report.Failed())

	contents := project.Contents()
	require.Contains(t, contents, "/* A.swift */ = {isa = PBXFileReference;")
	require.Contains(t, contents, "/* C.swift */ = {isa = PBXFileReference;")
	require.Contains(t, contents, "/* A.swift in Sources */ = {isa = PBXBuildFile;")
	require.Contains(t, contents, "/* C.swift in Sources */ = {isa = PBXBuildFile;")
	require.NotContains(t, contents, "B.swift")
}

func TestAddSourceFile_GroupNotFoundWarns(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t))

	result := project.AddSourceFile("Demo/View/Foo.swift")

	require.Equal(t, StatusAdded, result.Status)
	require.Len(t, result.Warnings, 1)
	require.ErrorIs(t, result.Warnings[0], ErrGroupNotFound)
	var groupErr *GroupNotFoundError
	require.ErrorAs(t, result.Warnings[0], &groupErr)
	require.Equal(t, "View", groupErr.Group)
	require.Contains(t, groupErr.Suggestions, "Views")
	require.Contains(t, result.Warnings[0].Error(), "did you mean")

	// still compiled
	require.Contains(t, project.Contents(), "files = (\n\t\t\t\t"+result.BuildFile+" /* Foo.swift in Sources */,")
}

func TestAddSourceFile_RootFileIsUngrouped(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t))
	result := project.AddSourceFile("Foo.swift")

	require.Equal(t, StatusAdded, result.Status)
	require.Len(t, result.Warnings, 1)
	require.ErrorIs(t, result.Warnings[0], ErrGroupNotFound)
	require.EqualError(t, result.Warnings[0], "group not found: file has no parent directory, left ungrouped")
}

func TestAddSourceFile_LogsGroupUuid(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	project := loadProject(t, readFixture(t), WithLogger(logger))

	result := project.AddSourceFile("Demo/Views/Foo.swift")

	require.Equal(t, StatusAdded, result.Status)
	require.Contains(t, logs.String(), "msg=grouped file=Foo.swift group=Views uuid=3D2B3C4D5E6F708192A3B4C5")
}

func TestAddSourceFile_BuildPhaseNotFoundWarns(t *testing.T) {
	t.Parallel()

	project := loadProject(t, cutSection(t, readFixture(t), "PBXSourcesBuildPhase"))
	result := project.AddSourceFile("Demo/Views/Foo.swift")

	require.Equal(t, StatusAdded, result.Status)
	require.Len(t, result.Warnings, 1)
	require.ErrorIs(t, result.Warnings[0], ErrBuildPhaseNotFound)
	require.Contains(t, project.Contents(), "/* Views */ = {\n\t\t\tisa = PBXGroup;\n\t\t\tchildren = (\n\t\t\t\t"+result.FileRef+" /* Foo.swift */,")
}

func TestAddSourceFiles_SkipsNonSourceFiles(t *testing.T) {
	t.Parallel()

	fixture := readFixture(t)
	project := loadProject(t, fixture)

	report := project.AddSourceFiles([]string{"Demo/README.md", "Demo/Info.plist"})

	require.Equal(t, 2, report.Count(StatusSkipped))
	for _, f := range report.Files {
		require.ErrorIs(t, f.Err, ErrNotSourceFile)
	}
	require.Equal(t, fixture, project.Contents())
}

func TestAddSourceFile_Options(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t),
		WithSourceExtensions(".m", ".swift"),
		WithSourceTree("SOURCE_ROOT"),
	)
	report := project.AddSourceFiles([]string{"Demo/Views/Legacy.m", "Demo/Views/My View.swift"})
	require.Equal(t, 2, report.Count(StatusAdded))

	contents := project.Contents()
	require.Contains(t, contents, "/* Legacy.m */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.c.objc; path = Legacy.m; sourceTree = SOURCE_ROOT; };")
	require.Contains(t, contents, `/* My View.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = "My View.swift"; sourceTree = SOURCE_ROOT; };`)
}

func TestAddSourceFile_OtherBuildPhase(t *testing.T) {
	t.Parallel()

	fixture := strings.ReplaceAll(readFixture(t), "PBXSourcesBuildPhase", "PBXResourcesBuildPhase")
	project := loadProject(t, fixture, WithBuildPhase("Resources"))

	result := project.AddSourceFile("Demo/Views/Foo.swift")

	require.Equal(t, StatusAdded, result.Status)
	require.Empty(t, result.Warnings)
	require.Contains(t, project.Contents(), "files = (\n\t\t\t\t"+result.BuildFile+" /* Foo.swift in Resources */,")
}

func TestParse_FatalInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, path := range []string{filepath.Join(dir, "missing.pbxproj"), dir} {
		err := NewPbxProject(path).Parse()
		var fatal *FatalInputError
		require.ErrorAs(t, err, &fatal)
		require.Equal(t, path, fatal.Path)
	}
	require.ErrorIs(t, NewPbxProject(filepath.Join(dir, "missing.pbxproj")).Parse(), os.ErrNotExist)
}

func TestSave_WritesBufferBack(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t), WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	result := project.AddSourceFile("Demo/Views/Foo.swift")
	require.Equal(t, StatusAdded, result.Status)
	require.NoError(t, project.Save())

	data, err := os.ReadFile(project.FilePath())
	require.NoError(t, err)
	require.Equal(t, project.Contents(), string(data))

	require.Error(t, NewPbxProject(project.FilePath()).Save())
}
