// Package notice turns raw relay error text into messages fit for display.
package notice

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultRetrySeconds is used when a quota error names no retry delay
const DefaultRetrySeconds = 60

// RateLimitMessage is shown for generic rate-limit errors
const RateLimitMessage = "Rate limit reached. Please wait a moment."

var retryPattern = regexp.MustCompile(`(?i)retry in ([\d.]+)\s*s`)

// Humanize rewrites provider quota and rate-limit errors. Other messages
// are returned unchanged.
func Humanize(msg string) string {
	switch {
	case strings.Contains(msg, "Quota exceeded") || strings.Contains(msg, "429"):
		return fmt.Sprintf("Rate limit reached. Please wait %d seconds before trying again.", RetrySeconds(msg))
	case strings.Contains(msg, "rate-limit"):
		return RateLimitMessage
	default:
		return msg
	}
}

// RetrySeconds extracts the retry hint from msg, rounded up
func RetrySeconds(msg string) int {
	m := retryPattern.FindStringSubmatch(msg)
	if m == nil {
		return DefaultRetrySeconds
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return DefaultRetrySeconds
	}
	return int(math.Ceil(f))
}
