package app

import (
	"regexp"
	"strings"
)

// Upsert batches and the coefficient-vector columns can push statements well
// past what a span attribute should carry, so traced queries are capped.
const tracedQueryLimit = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

// traceQueryFormatter collapses a statement onto one line and truncates it
// before it is attached to a DB span.
func traceQueryFormatter(query string) string {
	q := sqlWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(q) > tracedQueryLimit {
		q = q[:tracedQueryLimit] + " [truncated]"
	}
	return q
}
