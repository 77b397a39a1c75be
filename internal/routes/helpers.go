package routes

import (
	"net/http"
	"strconv"

	pkghttpx "cartelera-server/pkg/httpx"
)

// Thin aliases so handlers in this package read uniformly.
func writeJSON(w http.ResponseWriter, status int, v any) {
	pkghttpx.WriteJSON(w, status, v)
}

func writeError(w http.ResponseWriter, r *http.Request, he *pkghttpx.HTTPError) {
	pkghttpx.WriteError(w, r, he)
}

// parseLimit reads a bounded "limit" query param with a default of 20.
func parseLimit(r *http.Request, max int64) (int32, *pkghttpx.HTTPError) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "20"
	}
	lim, err := strconv.ParseInt(limitStr, 10, 32)
	if err != nil || lim <= 0 || lim > max {
		return 0, pkghttpx.BadRequest("invalid limit", err)
	}
	return int32(lim), nil
}
