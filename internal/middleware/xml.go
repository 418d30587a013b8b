// internal/middleware/xml.go
package middleware

import (
	"log"
	"net/http"

	"weather-xml/internal/xmlcodec"
)

func writeXMLError(w http.ResponseWriter, status int, msg string) {
	doc, err := xmlcodec.EncodeError(msg)
	if err != nil {
		log.Printf("[ERROR] encode error document: %v", err)
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}
