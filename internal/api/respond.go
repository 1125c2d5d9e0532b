package api

import (
	"encoding/json"
	"net/http"
)

func jsonOK(w http.ResponseWriter, v any) {
	jsonWith(w, http.StatusOK, v)
}

func jsonWith(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
