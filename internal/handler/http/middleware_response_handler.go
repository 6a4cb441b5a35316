// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter is a thin decorator around [http.ResponseWriter] that
// intercepts WriteHeader and Write calls to capture response metadata.
//
// withLogging wraps every request in a responseWriter so the access log can
// report the status code and body size once the downstream handler returns.
// The body itself is never buffered: login and refresh responses carry bearer
// tokens, and those must not reach the log.
//
// responseWriter forwards WriteHeader to the underlying writer at most once;
// later calls are ignored, mirroring the contract of [http.ResponseWriter].
type responseWriter struct {
	http.ResponseWriter

	// status is the HTTP status code recorded on the first WriteHeader call.
	// It stays zero when the handler wrote nothing at all, which withLogging
	// reports as 200.
	status int

	// wroteHeader reports whether WriteHeader has already been forwarded.
	// It guards against a second WriteHeader reaching the underlying writer,
	// for example when the timeout middleware races a slow handler.
	wroteHeader bool

	// size is the running total of bytes successfully written to the
	// response body across all Write calls.
	size int
}

// WriteHeader records the status code and forwards it to the underlying
// [http.ResponseWriter] exactly once.
//
// If WriteHeader has already been called for this response, the call is a
// no-op and statusCode is ignored.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write writes b to the underlying [http.ResponseWriter] and adds the number
// of bytes written to size.
//
// If no status was written yet, Write implicitly sends [http.StatusOK] first,
// matching the standard library's response writer. It returns the byte count
// and any error from the underlying writer.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Unwrap returns the decorated writer so that [http.ResponseController] can
// reach optional interfaces such as [http.Flusher] through the wrapper.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
