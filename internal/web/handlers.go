package web

import (
	"net/http"
)

// handleIndex serves a short page describing the API.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>pglex</title>
</head>
<body>
    <h1>pglex</h1>
    <p>POST a statement to <code>/api/tokenize</code>:</p>
    <pre>{"sql": "select first_col, second_col from schema.table;"}</pre>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`))
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
