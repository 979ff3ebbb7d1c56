// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// GRPCDial caps the wait for a peer's gRPC health check to report SERVING.
const GRPCDial = 10 * time.Second

// ServiceRequest caps a single HTTP call from one service to another.
const ServiceRequest = 5 * time.Second

// RewardHook caps a single post-combat reward side effect.
const RewardHook = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
