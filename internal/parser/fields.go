// Package parser decodes the delimited sensor files written by AWS weather
// stations and EWS gauge stations into typed observation records. Decoding is
// deliberately forgiving: unparseable lines are skipped individually, numeric
// coercion failures degrade to nil or a cached substitute, and only a missing
// AWS header row causes a whole file to be rejected.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// fieldSplitRe splits on commas or tabs. Logger firmware mixes both, at times
// within one line, so both are always accepted.
var fieldSplitRe = regexp.MustCompile(`[,\t]`)

// floatPrefixRe matches the longest leading numeric prefix of a token, the
// way the loggers' own tooling reads values back ("12.5V" -> 12.5).
var floatPrefixRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// intPrefixRe matches a leading integer prefix. "0.45" has the prefix 0,
// which matters to the triplet scanner: value tokens themselves can look
// like indexes.
var intPrefixRe = regexp.MustCompile(`^[+-]?\d+`)

// SplitFields tokenizes one raw line, trimming surrounding whitespace from
// every token.
func SplitFields(line string) []string {
	parts := fieldSplitRe.Split(line, -1)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ResolveColumn returns the index of the first header containing candidate as
// a case-insensitive substring, or -1. First match wins, so a header with two
// columns both containing the candidate resolves to the leftmost one.
func ResolveColumn(headers []string, candidate string) int {
	lc := strings.ToLower(candidate)
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), lc) {
			return i
		}
	}
	return -1
}

// ParseFloatToken coerces a token to a float, returning nil for anything that
// carries no leading numeric prefix. Never returns NaN.
func ParseFloatToken(tok string) *float64 {
	m := floatPrefixRe.FindString(strings.TrimSpace(tok))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseIntPrefix coerces a token's leading integer prefix.
func parseIntPrefix(tok string) (int, bool) {
	m := intPrefixRe.FindString(strings.TrimSpace(tok))
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

// tokenAt returns the token at position i, or "" when the row is too short.
func tokenAt(parts []string, i int) string {
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// floatAt coerces the token at an absolute column position.
func floatAt(parts []string, i int) *float64 {
	return ParseFloatToken(tokenAt(parts, i))
}

// coalesceValues mirrors the ingestion scripts' falsy-coalescing across
// candidate columns: the first non-nil, non-zero value wins, otherwise the
// last candidate's value (which may legitimately be zero or nil) is kept.
func coalesceValues(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil && *v != 0 {
			return v
		}
	}
	if len(vals) == 0 {
		return nil
	}
	return vals[len(vals)-1]
}

// splitLines splits file content into lines, tolerating CRLF endings.
func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}
