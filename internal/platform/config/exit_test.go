package config

import (
	"bytes"
	"testing"
)

func TestExitToWritesMessageAndExitsWithOne(t *testing.T) {
	var code int
	previous := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = previous })

	var out bytes.Buffer
	exitTo(&out, "boom: %s", "reason")

	if out.String() != "boom: reason\n" {
		t.Fatalf("output = %q, want %q", out.String(), "boom: reason\n")
	}
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}
