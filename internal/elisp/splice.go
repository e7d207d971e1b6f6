// Package elisp locates and rewrites the gitmojis-list defvar inside an
// Emacs Lisp source file. The file is otherwise treated as opaque text.
package elisp

import (
	"regexp"
)

// anchorRe captures the defvar prefix, the list contents up to the first
// ")" that is followed by "))", and that trailing "))". The stray quote
// after the prefix is optional and consumed when present. The whitespace
// class is widened to the ECMAScript one (\v, NBSP, BOM, Unicode spaces,
// line and paragraph separators) which RE2's \s does not cover.
var anchorRe = regexp.MustCompile(`(?s)(defvar gitmojis-list[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]*')'?\((.*?\))(\)\))`)

// Match describes the byte offsets of the first anchor match in a document.
type Match struct {
	Start, End int // whole match
	Prefix     string
	List       string
	Suffix     string
}

// Locate finds the first anchor match in doc.
func Locate(doc string) (Match, bool) {
	loc := anchorRe.FindStringSubmatchIndex(doc)
	if loc == nil {
		return Match{}, false
	}
	return Match{
		Start:  loc[0],
		End:    loc[1],
		Prefix: doc[loc[2]:loc[3]],
		List:   doc[loc[4]:loc[5]],
		Suffix: doc[loc[6]:loc[7]],
	}, true
}

// Extract returns the current list contents, without the opening parenthesis.
func Extract(doc string) (string, bool) {
	m, ok := Locate(doc)
	if !ok {
		return "", false
	}
	return m.List, true
}

// Splice replaces the list contents of the first match with list, reusing the
// matched prefix and suffix. When nothing matches doc is returned unchanged
// and ok is false.
func Splice(doc, list string) (out string, ok bool) {
	m, ok := Locate(doc)
	if !ok {
		return doc, false
	}
	return doc[:m.Start] + m.Prefix + "(" + list + m.Suffix + doc[m.End:], true
}
