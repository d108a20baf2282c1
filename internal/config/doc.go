// Package config loads pbxedit settings from a TOML file.
//
// The file is looked up in this order: the --config flag, $PBXEDIT_CONFIG,
// then ~/.config/pbxedit/config.toml. A missing file is not an error and
// yields Default(). PBXEDIT_STRICT and PBXEDIT_FORMAT override the file.
//
// Example:
//
//	source_extensions = [".swift", ".m"]
//	backup_suffix = ".bak"
//	source_tree = "<group>"
//	build_phase = "Sources"
//	strict = false
//	color = "auto"
//	format = "text"
package config
