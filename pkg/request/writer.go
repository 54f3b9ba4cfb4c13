package request

import "net/http"

// ClientWriter wraps a http.ResponseWriter and records the status code written
// to it, for use by metrics middleware.
type ClientWriter struct {
	http.ResponseWriter

	// statusCode is the status code written to the client.
	statusCode int
}

// NewClientWriter creates a new ClientWriter.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
	}
}

// WriteHeader records the status code and forwards it to the wrapped writer.
func (w *ClientWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write defaults the status code to 200 if WriteHeader has not been called.
func (w *ClientWriter) Write(b []byte) (int, error) {
	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// StatusCode returns the status code written to the client.
func (w *ClientWriter) StatusCode() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}
