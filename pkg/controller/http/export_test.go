package http

// SetErrorReporter swaps the error tracker hook during tests and returns a
// restore function.
func SetErrorReporter(report func(error)) func() {
	orig := reportServerError
	reportServerError = report
	return func() { reportServerError = orig }
}
