// Package storage defines invocation and template persistence contracts.
package storage

import (
	"context"
	"errors"

	"github.com/gatchaworks/arena/internal/services/invocation/domain"
)

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// InvocationStore persists invocation progress.
type InvocationStore interface {
	PutInvocation(ctx context.Context, invocation domain.Invocation) error
	GetInvocation(ctx context.Context, id string) (domain.Invocation, error)
	// ListInvocationsByUsername lists a player's invocations newest first.
	ListInvocationsByUsername(ctx context.Context, username string) ([]domain.Invocation, error)
	// ListInvocationsByStatus lists invocations in any of statuses oldest first.
	ListInvocationsByStatus(ctx context.Context, statuses []domain.Status) ([]domain.Invocation, error)
}

// TemplateStore persists the summonable template catalog.
type TemplateStore interface {
	// ListTemplates lists templates ordered by id.
	ListTemplates(ctx context.Context) ([]domain.MonsterTemplate, error)
	GetTemplate(ctx context.Context, id int) (domain.MonsterTemplate, error)
	PutTemplate(ctx context.Context, template domain.MonsterTemplate) error
	CountTemplates(ctx context.Context) (int, error)
}
