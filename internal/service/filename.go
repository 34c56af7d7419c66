package service

import "strings"

// unsafeFilenameChars are replaced with '_' in delivered filenames. The same
// rule applies to document and archive names.
const unsafeFilenameChars = `*'",&#^@:;+`

// SanitizeFilename replaces every unsafe character with an underscore.
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeFilenameChars, r) {
			return '_'
		}
		return r
	}, name)
}
