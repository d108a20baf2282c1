package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/soapywu/pbxedit/pbxproj"
)

func main() {
	projectPath := "project.pbxproj"
	project := pbxproj.NewPbxProject(projectPath,
		pbxproj.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		pbxproj.WithSourceExtensions(".swift", ".m"),
	)
	err := project.Parse()
	if err != nil {
		log.Fatal(err)
	}

	backupPath, err := project.WriteBackup(pbxproj.DEFAULT_BACKUP_SUFFIX)
	if err != nil {
		log.Fatal(err)
	}

	report := project.AddSourceFiles([]string{"Sources/Views/Foo.swift", "Sources/Legacy/foo.m"})
	report.BackupPath = backupPath
	for _, f := range report.Files {
		if f.Err != nil {
			log.Println(f.Label, f.Status, f.Err)
		}
		for _, w := range f.Warnings {
			log.Println(f.Label, w)
		}
	}

	err = project.Save()
	if err != nil {
		log.Fatal(err)
	}
	err = report.Dump(os.Stdout, pbxproj.FORMAT_JSON)
	if err != nil {
		log.Fatal(err)
	}
}
