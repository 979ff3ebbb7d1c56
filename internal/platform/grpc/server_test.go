package grpc

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "github.com/gatchaworks/arena/internal/platform/errors"
)

func TestErrorInterceptorMapsDomainErrors(t *testing.T) {
	interceptor := ErrorInterceptor()
	info := &gogrpc.UnaryServerInfo{FullMethod: "/arena.Test/Call"}
	handler := func(context.Context, any) (any, error) {
		return nil, apperrors.WithMetadata(apperrors.CodeMonsterNotFound, "monster not found", map[string]string{"MonsterID": "m-1"})
	}

	_, err := interceptor(context.Background(), nil, info, handler)
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("expected grpc status, got %v", err)
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("code = %s, want NotFound", st.Code())
	}
	var found bool
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			found = info.Reason == string(apperrors.CodeMonsterNotFound) && info.Metadata["MonsterID"] == "m-1"
		}
	}
	if !found {
		t.Fatalf("missing ErrorInfo detail: %v", st.Details())
	}
}

func TestErrorInterceptorPassesOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	_, err := ErrorInterceptor()(context.Background(), nil, &gogrpc.UnaryServerInfo{}, func(context.Context, any) (any, error) {
		return "ok", plain
	})
	if !errors.Is(err, plain) {
		t.Fatalf("err = %v, want passthrough", err)
	}
}
