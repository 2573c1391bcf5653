// Package casing converts identifiers between case families. The xml
// writer uses it to rewrite element tags on output.
package casing

import (
	"strings"
	"unicode"
)

type CaseType int8

const (
	DefaultCase CaseType = iota
	SnakeCase
	KebabCase
	LowerCase
)

func To(to CaseType, str string) string {
	switch to {
	case SnakeCase:
		str = ToSnake(str)
	case KebabCase:
		str = ToKebab(str)
	case LowerCase:
		str = strings.ToLower(str)
	default:
	}
	return str
}

func ToSnake(str string) string {
	return split(str, underscore)
}

func ToKebab(str string) string {
	return split(str, hyphen)
}

const (
	hyphen     = '-'
	space      = ' '
	underscore = '_'
)

func isSep(r rune) bool {
	return r == hyphen || r == underscore || r == space
}

// split lowercases the input and joins its words with sep. A word break
// is a separator run or a lower-to-upper transition.
func split(str string, sep rune) string {
	var (
		chars []rune
		last  rune
	)
	for _, r := range str {
		switch {
		case isSep(r):
			if last != 0 && !isSep(last) {
				chars = append(chars, sep)
			}
		case unicode.IsUpper(r) && last != 0 && !isSep(last) && !unicode.IsUpper(last):
			chars = append(chars, sep, unicode.ToLower(r))
		default:
			chars = append(chars, unicode.ToLower(r))
		}
		last = r
	}
	if z := len(chars); z > 0 && chars[z-1] == sep {
		chars = chars[:z-1]
	}
	return string(chars)
}
