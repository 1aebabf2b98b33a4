package main

// exitCodeError carries the process exit code contract through cobra:
// 0 success, 1 degraded, 2 failed. The full report has already been
// rendered by the time one of these is returned; msg is the one-line
// summary for stderr.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }
