package pbxproj

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteBackup_ByteIdentical(t *testing.T) {
	t.Parallel()

	fixture := readFixture(t)
	project := loadProject(t, fixture)

	backupPath, err := project.WriteBackup("")
	require.NoError(t, err)
	require.Equal(t, project.FilePath()+DEFAULT_BACKUP_SUFFIX, backupPath)

	require.Equal(t, StatusAdded, project.AddSourceFile("Demo/Views/Foo.swift").Status)
	require.NoError(t, project.Save())

	backup, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	require.Equal(t, fixture, string(backup))

	edited, err := os.ReadFile(project.FilePath())
	require.NoError(t, err)
	require.NotEqual(t, fixture, string(edited))
}

func TestWriteBackup_Suffix(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t))
	backupPath, err := project.WriteBackup(".orig")
	require.NoError(t, err)
	require.Equal(t, project.FilePath()+".orig", backupPath)
	require.FileExists(t, backupPath)
}

func TestWriteBackup_RefusedAfterEdit(t *testing.T) {
	t.Parallel()

	project := loadProject(t, readFixture(t))
	require.Equal(t, StatusAdded, project.AddSourceFile("Demo/Views/Foo.swift").Status)

	_, err := project.WriteBackup("")
	require.Error(t, err)
	require.NoFileExists(t, project.FilePath()+DEFAULT_BACKUP_SUFFIX)

	_, err = NewPbxProject(project.FilePath()).WriteBackup("")
	require.Error(t, err)
}

func TestRestore(t *testing.T) {
	t.Parallel()

	fixture := readFixture(t)
	project := loadProject(t, fixture)
	_, err := project.WriteBackup("")
	require.NoError(t, err)
	project.AddSourceFile("Demo/Views/Foo.swift")
	require.NoError(t, project.Save())

	backupPath, err := Restore(project.FilePath(), "")
	require.NoError(t, err)
	require.Equal(t, project.FilePath()+DEFAULT_BACKUP_SUFFIX, backupPath)

	restored, err := os.ReadFile(project.FilePath())
	require.NoError(t, err)
	require.Equal(t, fixture, string(restored))
}

func TestRestore_MissingBackup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "project.pbxproj")
	_, err := Restore(path, "")

	var fatal *FatalInputError
	require.ErrorAs(t, err, &fatal)
	require.Equal(t, path+DEFAULT_BACKUP_SUFFIX, fatal.Path)
	require.NoFileExists(t, path)
}
