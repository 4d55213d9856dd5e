package parser

import (
	"fmt"
	"regexp"
	"time"
)

// awsTimestampRe matches the AWS logger timestamp, a firmware-specific
// "DD/MM/YY/MM/YYYY/ HH:MM:SS" encoding that carries the month twice. The
// capture groups used are day (2), month (3), year (5) and the time fields;
// group 1 is a record code and group 4 the repeated month, both ignored.
var awsTimestampRe = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{2})/(\d{2})/(\d{4})/\s*(\d{2}):(\d{2}):(\d{2})`)

// parseLoggerTimestamp decodes the AWS timestamp token. Returns false when
// the pattern does not match or the fields do not form a valid calendar date,
// in which case callers fall back to ingestion wall-clock time.
func parseLoggerTimestamp(raw string) (time.Time, bool) {
	m := awsTimestampRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	// time.Date would silently normalize month 13 or day 32; a strict parse
	// rejects them so the fallback applies.
	stamp := fmt.Sprintf("%s-%s-%sT%s:%s:%s", m[5], m[3], m[2], m[6], m[7], m[8])
	t, err := time.ParseInLocation("2006-01-02T15:04:05", stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
