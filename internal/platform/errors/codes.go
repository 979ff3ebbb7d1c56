// Package errors provides structured error handling shared by every service.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeUnauthenticated  Code = "UNAUTHENTICATED"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"

	// Combat errors
	CodeInvalidCombat  Code = "INVALID_COMBAT"
	CodeCombatNotFound Code = "COMBAT_NOT_FOUND"

	// Invocation errors
	CodeNoTemplateAvailable Code = "NO_TEMPLATE_AVAILABLE"
	CodeTemplateNotFound    Code = "TEMPLATE_NOT_FOUND"
	CodeInvocationFailed    Code = "INVOCATION_FAILED"
	CodeInventoryFull       Code = "INVENTORY_FULL"

	// Monster errors
	CodeMonsterNotFound      Code = "MONSTER_NOT_FOUND"
	CodeMonsterNotOwned      Code = "MONSTER_NOT_OWNED"
	CodeSkillUpgradeRejected Code = "SKILL_UPGRADE_REJECTED"

	// Player errors
	CodePlayerNotFound      Code = "PLAYER_NOT_FOUND"
	CodePlayerAlreadyExists Code = "PLAYER_ALREADY_EXISTS"
	CodeMonsterAlreadyOwned Code = "MONSTER_ALREADY_OWNED"

	// Dependency errors
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"
)

// HTTPStatus maps the domain error code to an HTTP status code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeInvalidArgument, CodeInvalidCombat:
		return http.StatusBadRequest
	case CodePermissionDenied, CodeMonsterNotOwned:
		return http.StatusForbidden
	case CodeCombatNotFound, CodeTemplateNotFound, CodeMonsterNotFound, CodePlayerNotFound:
		return http.StatusNotFound
	case CodeInventoryFull, CodeSkillUpgradeRejected, CodePlayerAlreadyExists, CodeMonsterAlreadyOwned:
		return http.StatusConflict
	case CodeServiceUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps the domain error code to a gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c.HTTPStatus() {
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.FailedPrecondition
	case http.StatusBadGateway:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
