// Package gitmoji decodes the upstream registry and renders it as Emacs Lisp list lines.
package gitmoji

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/starford/gitmojis-list/internal/apperr"
	"github.com/starford/gitmojis-list/internal/models"
)

// Separator joins consecutive list lines so each one lines up under the
// opening parenthesis of the defvar list.
const Separator = "\n                        "

var errEmptyEmoji = errors.New("empty emoji")

// Decode parses the registry body. Malformed JSON, a missing or empty
// gitmojis array, and entries without an emoji are all parse failures.
func Decode(body []byte) ([]models.Entry, error) {
	var reg models.Registry
	if err := json.Unmarshal(body, &reg); err != nil {
		return nil, apperr.Wrap(apperr.KindParse, fmt.Errorf("decode registry: %w", err))
	}
	if err := reg.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindParse, fmt.Errorf("validate registry: %w", err))
	}
	return reg.Gitmojis, nil
}

// CodePoint returns the uppercase hex of the first Unicode scalar value of emoji.
func CodePoint(emoji string) (string, error) {
	if emoji == "" {
		return "", errEmptyEmoji
	}
	r, _ := utf8.DecodeRuneInString(emoji)
	return fmt.Sprintf("%X", r), nil
}

// FormatLine renders one entry as ("<description>" "<code>" #x<HEX>).
// Description and code are interpolated verbatim.
func FormatLine(e models.Entry) (string, error) {
	hex, err := CodePoint(e.Emoji)
	if err != nil {
		return "", apperr.Wrap(apperr.KindParse, fmt.Errorf("entry %q: %w", e.Code, err))
	}
	return `("` + e.Description + `" "` + e.Code + `" #x` + hex + `)`, nil
}

// Render formats every entry in order and joins them with Separator.
func Render(entries []models.Entry) (string, error) {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line, err := FormatLine(e)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, Separator), nil
}
