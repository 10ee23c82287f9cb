package util

import (
	"strings"
	"time"
)

var (
	outputLayout = "2006-01-02"
)

// EpochDate formats Unix seconds as a UTC calendar date.
func EpochDate(epoch int64) string {
	return time.Unix(epoch, 0).UTC().Format(outputLayout)
}

// EpochRFC3339 formats Unix seconds as an RFC 3339 UTC timestamp. Zero means
// the provider gave no time and yields an empty string.
func EpochRFC3339(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).UTC().Format(time.RFC3339)
}

func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
