package pbxproj

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Status is the outcome of one file's insertion pipeline.
type Status int

const (
	StatusAdded Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "ADDED"
	case StatusSkipped:
		return "SKIP"
	case StatusFailed:
		return "ERROR"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FileResult records what happened to one input path. A file that was added
// may still carry warnings about group or build phase linkage. A failed file
// may carry a FileRef when its reference went in but its build file did not.
type FileResult struct {
	Path      string
	Label     string
	Status    Status
	FileRef   string
	BuildFile string
	Err       error
	Warnings  []error
}

// Report aggregates every FileResult of a run.
type Report struct {
	ProjectPath string
	BackupPath  string
	DryRun      bool
	Files       []FileResult
}

func (r *Report) Add(result FileResult) {
	r.Files = append(r.Files, result)
}

func (r *Report) Count(status Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

func (r *Report) WarningCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Warnings)
	}
	return n
}

// Failed reports whether any file ended in ERROR.
func (r *Report) Failed() bool {
	return r.Count(StatusFailed) > 0
}

const (
	FORMAT_JSON = "json"
	FORMAT_YAML = "yaml"
)

type fileResultView struct {
	Path      string   `json:"path" yaml:"path"`
	Label     string   `json:"label" yaml:"label"`
	Status    Status   `json:"status" yaml:"status"`
	FileRef   string   `json:"fileRef,omitempty" yaml:"fileRef,omitempty"`
	BuildFile string   `json:"buildFile,omitempty" yaml:"buildFile,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings  []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type reportView struct {
	Project string           `json:"project" yaml:"project"`
	Backup  string           `json:"backup,omitempty" yaml:"backup,omitempty"`
	DryRun  bool             `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Added   int              `json:"added" yaml:"added"`
	Skipped int              `json:"skipped" yaml:"skipped"`
	Failed  int              `json:"failed" yaml:"failed"`
	Files   []fileResultView `json:"files" yaml:"files"`
}

func (r *Report) view() reportView {
	v := reportView{
		Project: r.ProjectPath,
		Backup:  r.BackupPath,
		DryRun:  r.DryRun,
		Added:   r.Count(StatusAdded),
		Skipped: r.Count(StatusSkipped),
		Failed:  r.Count(StatusFailed),
		Files:   make([]fileResultView, 0, len(r.Files)),
	}
	for _, f := range r.Files {
		fv := fileResultView{
			Path:      f.Path,
			Label:     f.Label,
			Status:    f.Status,
			FileRef:   f.FileRef,
			BuildFile: f.BuildFile,
		}
		if f.Err != nil {
			fv.Error = f.Err.Error()
		}
		for _, w := range f.Warnings {
			fv.Warnings = append(fv.Warnings, w.Error())
		}
		v.Files = append(v.Files, fv)
	}
	return v
}

// Dump writes the report in a machine readable format.
func (r *Report) Dump(writer io.Writer, format string) error {
	buffer := bytes.NewBuffer([]byte{})
	switch format {
	case FORMAT_JSON:
		jsonEncoder := json.NewEncoder(buffer)
		jsonEncoder.SetEscapeHTML(false)
		jsonEncoder.SetIndent("", "  ")
		if err := jsonEncoder.Encode(r.view()); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	case FORMAT_YAML:
		yamlEncoder := yaml.NewEncoder(buffer)
		yamlEncoder.SetIndent(2)
		if err := yamlEncoder.Encode(r.view()); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		if err := yamlEncoder.Close(); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	_, err := writer.Write(buffer.Bytes())
	return err
}
