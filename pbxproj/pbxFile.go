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
	"path/filepath"
	"strings"
)

const (
	DEFAULT_SOURCETREE  = "<group>"
	DEFAULT_FILETYPE    = "unknown"
	DEFAULT_BUILD_PHASE = "Sources"

	PBX_FILE_REFERENCE_SECTION = "PBXFileReference"
	PBX_BUILD_FILE_SECTION     = "PBXBuildFile"
	PBX_GROUP_SECTION          = "PBXGroup"
)

var FILETYPE_BY_EXTENSION = map[string]string{
	"a":           "archive.ar",
	"c":           "sourcecode.c.c",
	"cc":          "sourcecode.cpp.cpp",
	"cpp":         "sourcecode.cpp.cpp",
	"dylib":       "compiled.mach-o.dylib",
	"framework":   "wrapper.framework",
	"h":           "sourcecode.c.h",
	"hpp":         "sourcecode.cpp.h",
	"m":           "sourcecode.c.objc",
	"metal":       "sourcecode.metal",
	"mm":          "sourcecode.cpp.objcpp",
	"pch":         "sourcecode.c.h",
	"plist":       "text.plist.xml",
	"sh":          "text.script.sh",
	"strings":     "text.plist.strings",
	"swift":       "sourcecode.swift",
	"xcassets":    "folder.assetcatalog",
	"xcconfig":    "text.xcconfig",
	"xcdatamodel": "wrapper.xcdatamodel",
	"xib":         "file.xib",
}

// buildPhaseSection maps a build phase name like "Sources" to the isa of
// its section.
func buildPhaseSection(phase string) string {
	return fmt.Sprintf("PBX%sBuildPhase", phase)
}

type PbxFileOptions struct {
	LastKnownFileType string
	SourceTree        string
	Group             string
}

// PbxFile describes a source file on its way into the manifest.
type PbxFile struct {
	Basename          string
	Dirname           string
	Path              string
	LastKnownFileType string
	Group             string
	SourceTree        string
	FileRef           string
	Uuid              string
}

func newPbxFile(filePath string, options PbxFileOptions) *PbxFile {
	pbxfile := PbxFile{}
	pbxfile.Basename = filepath.Base(filePath)
	// only the immediate parent directory is used to find a group
	if dir := filepath.Dir(filePath); dir != "." {
		pbxfile.Dirname = filepath.Base(dir)
	}
	// "<group>" source tree: the path is relative to the containing group
	pbxfile.Path = pbxfile.Basename

	if options.LastKnownFileType != "" {
		pbxfile.LastKnownFileType = options.LastKnownFileType
	} else {
		pbxfile.LastKnownFileType = detectType(filePath)
	}

	if options.Group != "" {
		pbxfile.Group = options.Group
	} else {
		pbxfile.Group = DEFAULT_BUILD_PHASE
	}

	if options.SourceTree != "" {
		pbxfile.SourceTree = options.SourceTree
	} else {
		pbxfile.SourceTree = DEFAULT_SOURCETREE
	}
	return &pbxfile
}

func detectType(filePath string) string {
	extension := strings.TrimPrefix(filepath.Ext(filePath), ".")
	filetype, found := FILETYPE_BY_EXTENSION[strings.ToLower(extension)]
	if !found {
		return DEFAULT_FILETYPE
	}
	return filetype
}

// hasSourceExtension reports whether filePath ends in one of extensions.
// Extensions carry their leading dot and compare case-sensitively, matching
// how Xcode treats file names.
func hasSourceExtension(filePath string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(filePath, ext) {
			return true
		}
	}
	return false
}

func pbxFileReferenceComment(pbxfile *PbxFile) string {
	return pbxfile.Basename
}

func longComment(pbxfile *PbxFile) string {
	return fmt.Sprintf("%s in %s", pbxfile.Basename, pbxfile.Group)
}
