package pbxproj

import (
	"errors"
	"fmt"
	"os"
)

const DEFAULT_BACKUP_SUFFIX = ".bak"

// WriteBackup writes the manifest exactly as Parse read it to
// <project><suffix>, replacing any earlier backup. The file is synced and
// closed before WriteBackup returns, and it refuses to run once the buffer
// has been edited.
func (p *PbxProject) WriteBackup(suffix string) (string, error) {
	if p.raw == nil {
		return "", errors.New("project not parsed")
	}
	if p.dirty {
		return "", errors.New("backup requested after the project was modified")
	}
	if suffix == "" {
		suffix = DEFAULT_BACKUP_SUFFIX
	}
	backupPath := p.filePath + suffix
	if err := writeFileSync(backupPath, p.raw, p.perm); err != nil {
		return "", fmt.Errorf("writing backup %s: %w", backupPath, err)
	}
	p.logger.Debug("backup written", "path", backupPath, "bytes", len(p.raw))
	return backupPath, nil
}

// Restore copies <projectPath><suffix> back over projectPath and returns the
// backup path.
func Restore(projectPath, suffix string) (string, error) {
	if suffix == "" {
		suffix = DEFAULT_BACKUP_SUFFIX
	}
	backupPath := projectPath + suffix
	info, err := os.Stat(backupPath)
	if err != nil {
		return "", &FatalInputError{Path: backupPath, Err: err}
	}
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return "", &FatalInputError{Path: backupPath, Err: err}
	}
	if err := writeFileSync(projectPath, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("restoring %s: %w", projectPath, err)
	}
	return backupPath, nil
}

func writeFileSync(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
