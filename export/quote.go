package export

import (
	"strconv"
	"strings"
)

// ambiguousScalars are plain strings the YAML 1.1 family resolves to
// booleans or null. GitHub's workflow parser is one such reader, so
// the trigger key "on" must come out as 'on'.
var ambiguousScalars = map[string]struct{}{
	"y": {}, "Y": {},
	"n": {}, "N": {},
	"yes": {}, "Yes": {}, "YES": {},
	"no": {}, "No": {}, "NO": {},
	"true": {}, "True": {}, "TRUE": {},
	"false": {}, "False": {}, "FALSE": {},
	"on": {}, "On": {}, "ON": {},
	"off": {}, "Off": {}, "OFF": {},
	"null": {}, "Null": {}, "NULL": {}, "~": {},
}

// needsQuote reports whether a single-line string must be quoted to
// survive as a string through any YAML reader.
func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	if _, ok := ambiguousScalars[s]; ok {
		return true
	}
	if looksNumeric(s) {
		return true
	}
	// Leading or trailing whitespace is lost in plain style.
	return strings.TrimSpace(s) != s
}

// looksNumeric reports whether s would resolve as a number. Base-0
// integer parsing also covers the 0x / 0o forms.
func looksNumeric(s string) bool {
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}
