// Package model owns loaded model handles. A Handle loads its model once,
// on first use, behind a one-time barrier; a failed load is remembered for
// the lifetime of the process. Breaker wraps inference calls in a circuit
// breaker that fails fast once a backend keeps erroring.
package model
