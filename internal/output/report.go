package output

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/soapywu/pbxedit/pbxproj"
)

const shortIdLength = 8

var numbers = message.NewPrinter(language.English)

func shortId(id string) string {
	if len(id) <= shortIdLength {
		return id
	}
	return id[:shortIdLength] + "..."
}

func plural(n int, word string) string {
	if n == 1 {
		return numbers.Sprintf("%d %s", n, word)
	}
	return numbers.Sprintf("%d %ss", n, word)
}

// FileResult prints one file's status line followed by its warnings.
func (p *Printer) FileResult(f pbxproj.FileResult) {
	switch f.Status {
	case pbxproj.StatusAdded:
		p.Printf("  %s %s %s\n", addedStyle.Render("ADDED:"), f.Label,
			mutedStyle.Render("(ref="+shortId(f.FileRef)+", build="+shortId(f.BuildFile)+")"))
	case pbxproj.StatusSkipped:
		p.Printf("  %s %s: %v\n", skipStyle.Render("SKIP:"), f.Label, f.Err)
	case pbxproj.StatusFailed:
		p.Printf("  %s %s: %v\n", errorStyle.Render("ERROR:"), f.Label, f.Err)
	}
	for _, w := range f.Warnings {
		p.Printf("  %s %s: %v\n", warnStyle.Render("WARN:"), f.Label, w)
	}
}

// Report prints every file result and the closing summary. restoreCmd is
// the command line that undoes the edit; it is only shown when a backup was
// written.
func (p *Printer) Report(r *pbxproj.Report, restoreCmd string) {
	for _, f := range r.Files {
		p.FileResult(f)
	}

	p.Println()
	if r.DryRun {
		p.Printf("Dry run. Not modified: %s\n", pathStyle.Render(r.ProjectPath))
	} else {
		p.Printf("Done. Modified: %s\n", pathStyle.Render(r.ProjectPath))
	}
	p.Printf("%s added, %s skipped, %s failed, %s\n",
		plural(r.Count(pbxproj.StatusAdded), "file"),
		numbers.Sprintf("%d", r.Count(pbxproj.StatusSkipped)),
		numbers.Sprintf("%d", r.Count(pbxproj.StatusFailed)),
		plural(r.WarningCount(), "warning"))
	if r.BackupPath != "" {
		p.Printf("Backup: %s\n", pathStyle.Render(r.BackupPath))
		if restoreCmd != "" {
			p.Printf("Restore backup if needed: %s\n", restoreCmd)
		}
	}
}
