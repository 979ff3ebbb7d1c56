package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func TestWaitForHealthServing(t *testing.T) {
	addr, _ := startHealthServer(t, true)

	conn := dialHealthServer(t, addr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "", nil); err != nil {
		t.Fatalf("wait for health: %v", err)
	}
}

func TestWaitForHealthTransitionsToServing(t *testing.T) {
	addr, server := startHealthServer(t, false)

	conn := dialHealthServer(t, addr)
	defer conn.Close()

	go func() {
		time.Sleep(200 * time.Millisecond)
		server.MarkServing()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "", nil); err != nil {
		t.Fatalf("wait for health after transition: %v", err)
	}
}

func TestWaitForHealthRespectsContext(t *testing.T) {
	addr, _ := startHealthServer(t, false)

	conn := dialHealthServer(t, addr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := WaitForHealth(ctx, conn, "", nil); err == nil {
		t.Fatal("expected context error, got nil")
	}
}

func TestWaitForHealthRejectsNilConn(t *testing.T) {
	if err := WaitForHealth(context.Background(), nil, "", nil); err == nil {
		t.Fatal("expected nil connection error")
	}
}

func TestDialWithHealthSuccess(t *testing.T) {
	addr, _ := startHealthServer(t, true)

	conn, err := DialWithHealth(context.Background(), addr, 2*time.Second, nil)
	if err != nil {
		t.Fatalf("dial with health: %v", err)
	}
	_ = conn.Close()
}

func TestDialWithHealthReportsHealthStage(t *testing.T) {
	addr, _ := startHealthServer(t, false)

	_, err := DialWithHealth(context.Background(), addr, 300*time.Millisecond, nil)
	var dialErr *DialError
	if !errors.As(err, &dialErr) {
		t.Fatalf("expected DialError, got %v", err)
	}
	if dialErr.Stage != DialStageHealth {
		t.Fatalf("stage = %s, want %s", dialErr.Stage, DialStageHealth)
	}
}

func TestDialWithHealthRejectsEmptyAddress(t *testing.T) {
	_, err := DialWithHealth(context.Background(), "  ", time.Second, nil)
	var dialErr *DialError
	if !errors.As(err, &dialErr) || dialErr.Stage != DialStageConnect {
		t.Fatalf("expected connect-stage DialError, got %v", err)
	}
}

func TestWaitForPeers(t *testing.T) {
	first, _ := startHealthServer(t, true)
	second, _ := startHealthServer(t, true)

	if err := WaitForPeers(context.Background(), []string{first, second}, 2*time.Second, nil); err != nil {
		t.Fatalf("wait for peers: %v", err)
	}
}

func TestDialErrorFormatting(t *testing.T) {
	err := &DialError{Addr: "monster:8092", Stage: DialStageConnect, Err: errors.New("refused")}
	if got, want := err.Error(), "gRPC connect error for monster:8092: refused"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	var nilErr *DialError
	if nilErr.Error() != "gRPC dial error" {
		t.Fatalf("nil Error() = %q", nilErr.Error())
	}
}

func startHealthServer(t *testing.T, serving bool) (string, *HealthServer) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	server := NewHealthServer()
	if serving {
		server.MarkServing()
	}
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)
	return listener.Addr().String(), server
}

func dialHealthServer(t *testing.T, addr string) *gogrpc.ClientConn {
	t.Helper()

	conn, err := gogrpc.NewClient(addr, gogrpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return conn
}
