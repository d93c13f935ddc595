package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iho/goinvest/internal/adapter/http/dto"
	"github.com/iho/goinvest/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status of its kind.
// Internal errors are not echoed to the client.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	kind := domain.KindOf(err)
	details := err.Error()
	if kind == domain.KindInternal {
		details = ""
	}
	writeJSON(w, mapDomainError(err), dto.ErrorResponse{
		Error:   message,
		Kind:    string(kind),
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	if errors.Is(err, domain.ErrUnauthorized) {
		return http.StatusUnauthorized
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// pagination reads limit and offset, clamped to sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = parseIntQuery(r, "limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = parseIntQuery(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ownerOrSelf defaults an empty owner to the authenticated caller.
func ownerOrSelf(r *http.Request, ownerID string) string {
	if ownerID != "" {
		return ownerID
	}
	if user, ok := domain.UserFromContext(r.Context()); ok {
		return user.ID
	}
	return ownerID
}

// authorizeRead allows admins and viewers to read anyone and investors themselves.
// Requests without a user only reach handlers when authentication is disabled.
func authorizeRead(r *http.Request, ownerID string) error {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		return nil
	}
	if user.Role == domain.RoleAdmin || user.Role == domain.RoleViewer || user.ID == ownerID {
		return nil
	}
	return fmt.Errorf("%w: %s may not read %s", domain.ErrInsufficientRole, user.ID, ownerID)
}

// authorizeWrite allows admins to act for anyone and investors for themselves.
func authorizeWrite(r *http.Request, ownerID string) error {
	user, ok := domain.UserFromContext(r.Context())
	if !ok || user.CanActFor(ownerID) {
		return nil
	}
	return fmt.Errorf("%w: %s may not act for %s", domain.ErrInsufficientRole, user.ID, ownerID)
}
