// internal/handlers/http/render.go
package http

import (
	"log"
	"net/http"

	"weather-xml/internal/middleware"
	"weather-xml/internal/util"
	"weather-xml/internal/xmlcodec"
)

const xmlContentType = "application/xml; charset=utf-8"

func writeXML(w http.ResponseWriter, status int, doc []byte) {
	w.Header().Set("Content-Type", xmlContentType)
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	doc, err := xmlcodec.EncodeError(msg)
	if err != nil {
		log.Printf("[ERROR] encode error document: %v", err)
		http.Error(w, msg, status)
		return
	}
	writeXML(w, status, doc)
}

// writeError classifies err and renders it. 500s are logged with their
// cause and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := util.StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s rid=%s: %v", r.Method, r.URL.Path, middleware.RequestIDFrom(r.Context()), err)
	}
	writeErrorMessage(w, status, util.PublicMessage(err))
}

// writeDoc renders a document produced by one of the xmlcodec encoders.
func writeDoc(w http.ResponseWriter, r *http.Request, status int, doc []byte, err error) {
	if err != nil {
		writeError(w, r, util.Internal("encode response", err))
		return
	}
	writeXML(w, status, doc)
}
