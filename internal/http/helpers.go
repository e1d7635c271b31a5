package http

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-sitedraft/internal/commit"
	"github.com/goliatone/go-sitedraft/internal/domain"
	"github.com/goliatone/go-sitedraft/internal/drafts"
	"github.com/goliatone/go-sitedraft/internal/preview"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var issues validation.Errors
	if errors.As(err, &issues) {
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: "request validation failed",
			Details: issues,
		}
	}

	var assetNotFound *drafts.AssetNotFoundError
	if errors.As(err, &assetNotFound) || errors.Is(err, drafts.ErrLogoAssetMissing) {
		return http.StatusNotFound, errorResponse{
			Error:   "asset_not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, drafts.ErrDraftExpired) {
		return http.StatusGone, errorResponse{
			Error:   "draft_expired",
			Message: err.Error(),
		}
	}

	if errors.Is(err, drafts.ErrDraftNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "draft_not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, commit.ErrCommitInProgress) {
		return http.StatusConflict, errorResponse{
			Error:   "commit_in_progress",
			Message: err.Error(),
		}
	}

	if errors.Is(err, preview.ErrUnsafeContent) {
		return http.StatusInternalServerError, errorResponse{
			Error:   "preview_unsafe",
			Message: err.Error(),
		}
	}

	if errors.Is(err, domain.ErrBrandNameEmpty) ||
		errors.Is(err, drafts.ErrDraftIDRequired) ||
		errors.Is(err, drafts.ErrTTLInvalid) ||
		errors.Is(err, commit.ErrOwnerRequired) ||
		errors.Is(err, preview.ErrUnsupportedFormat) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

// hashValue anonymizes request attributes before they touch storage.
func hashValue(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(trimmed))
	encoded := hex.EncodeToString(sum[:])
	return &encoded
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
