package controllers

import (
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/models"
)

// currentUser returns the authenticated user on the request, or nil.
func currentUser(r *http.Request) *models.User {
	user, _ := middleware.UserFrom(r.Context())
	return user
}

// notice returns the flash notice carried in the query string, if any.
func notice(r *http.Request) string {
	return r.URL.Query().Get("notice")
}

// parsePage reads the page query parameter. Missing, non-integer and
// sub-1 values all mean page 1; out-of-range values are clamped by the
// service.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
