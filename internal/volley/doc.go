// Package volley is a read-only client for the Volleyball World schedule API.
//
// The client discovers competitions for a year, lists the match days of a
// tournament, and fetches match schedules for a date range. All requests go
// through a shared retry wrapper: transient failures (transport errors and
// 5xx responses) are retried with exponential backoff and jitter, while 4xx
// responses surface immediately.
package volley
