package pbxproj

import (
	"regexp"
	"strings"

	"github.com/soapywu/pbxedit/object"
)

const COMMENT_KEY_SUFFIX = "_comment"

func toCommentKey(key string) string {
	return key + COMMENT_KEY_SUFFIX
}

func isCommentKey(key string) bool {
	return strings.HasSuffix(key, COMMENT_KEY_SUFFIX)
}

func nonCommentsFilter(key string, _ any) bool {
	return !isCommentKey(key)
}

var unquotedRegex = regexp.MustCompile(`(^")|("$)`)

func unquoted(text string) string {
	if text == "" {
		return text
	}
	return unquotedRegex.ReplaceAllString(text, "")
}

// characters Xcode leaves bare in a value
var plainValueRegex = regexp.MustCompile(`^[A-Za-z0-9_$./:-]+$`)

// quoted returns text as a manifest value, adding quotes (and escaping) only
// when the value contains characters outside the bare set.
func quoted(text string) string {
	text = unquoted(text)
	if plainValueRegex.MatchString(text) {
		return text
	}
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + replacer.Replace(text) + `"`
}

func newPbxFileReferenceObj(pbxfile *PbxFile) object.Object {
	return object.NewObjectWithData([]object.Item{
		object.NewItem("isa", PBX_FILE_REFERENCE_SECTION),
		object.NewItem("lastKnownFileType", pbxfile.LastKnownFileType),
		object.NewItem("path", quoted(pbxfile.Path)),
		object.NewItem("sourceTree", quoted(pbxfile.SourceTree)),
	})
}

func pbxBuildFileObj(pbxfile *PbxFile) object.Object {
	obj := object.NewObject()
	obj.Set("isa", PBX_BUILD_FILE_SECTION)
	obj.Set("fileRef", pbxfile.FileRef)
	obj.Set(toCommentKey("fileRef"), pbxFileReferenceComment(pbxfile))
	return obj
}
