package health

import "strings"

// EmptyResponseMessage is the fixed error text recorded when a backend call
// succeeds but returns blank output. A blank success is treated as a failed
// probe, not a crash.
const EmptyResponseMessage = "Empty response from provider"

// rateLimitMarkers are the substrings that identify a rate-limit failure.
// Matching is case-insensitive. Rate-limit detection takes precedence over
// generic unavailability: it carries different retry-after implications for
// callers even though this system schedules no retries itself.
var rateLimitMarkers = []string{
	"rate limit",
	"too many requests",
}

// Classify maps a raw backend failure message to a health status.
// The rules are deterministic: rate-limit markers win, everything else is
// unavailable. An empty message still classifies as unavailable; this is the
// defensive default when no rule matches.
func Classify(failureMessage string) Status {
	msg := strings.ToLower(failureMessage)
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return StatusRateLimited
		}
	}
	return StatusUnavailable
}

// ClassifyResponse maps a successful backend response body to a health
// status: non-blank text means available, blank means unavailable.
func ClassifyResponse(text string) Status {
	if strings.TrimSpace(text) == "" {
		return StatusUnavailable
	}
	return StatusAvailable
}
