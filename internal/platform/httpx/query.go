package httpx

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
)

// QueryInt reads an optional integer query parameter.
func QueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidArgument, name+" must be an integer", map[string]string{"Param": name})
	}
	return value, nil
}

// QueryFloat reads a required float query parameter.
func QueryFloat(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidArgument, name+" is required", map[string]string{"Param": name})
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidArgument, name+" must be a number", map[string]string{"Param": name})
	}
	return value, nil
}

// PathInt reads an integer path value.
func PathInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(r.PathValue(name)))
	if err != nil {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidArgument, name+" must be an integer", map[string]string{"Param": name})
	}
	return value, nil
}
