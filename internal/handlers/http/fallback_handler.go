// internal/handlers/http/fallback_handler.go
package http

import "net/http"

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeErrorMessage(w, http.StatusNotFound, "Not found")
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
