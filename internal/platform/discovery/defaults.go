// Package discovery centralizes internal service-discovery conventions.
package discovery

import (
	"strconv"
	"strings"
)

const (
	// ServiceCombat is the combat service identity.
	ServiceCombat = "combat"
	// ServiceInvocation is the invocation service identity.
	ServiceInvocation = "invocation"
	// ServiceMonster is the monster service identity.
	ServiceMonster = "monster"
	// ServicePlayer is the player service identity.
	ServicePlayer = "player"
)

var grpcPorts = map[string]int{
	ServiceCombat:     9081,
	ServiceInvocation: 9082,
	ServiceMonster:    9083,
	ServicePlayer:     9084,
}

var httpPorts = map[string]int{
	ServiceCombat:     8081,
	ServiceInvocation: 8082,
	ServiceMonster:    8083,
	ServicePlayer:     8084,
}

// DefaultGRPCAddr returns the canonical in-network gRPC health address for a service.
func DefaultGRPCAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), grpcPorts)
}

// DefaultHTTPAddr returns the canonical in-network HTTP address for a service.
func DefaultHTTPAddr(service string) string {
	return defaultAddr(strings.TrimSpace(service), httpPorts)
}

// OrDefaultGRPCAddr returns value when set, otherwise the service convention.
func OrDefaultGRPCAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultGRPCAddr(service)
}

// OrDefaultHTTPBaseURL returns value when set, otherwise http://<service-host:port>.
func OrDefaultHTTPBaseURL(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return strings.TrimRight(value, "/")
	}
	addr := DefaultHTTPAddr(service)
	if addr == "" {
		return ""
	}
	return "http://" + addr
}

func defaultAddr(service string, ports map[string]int) string {
	port, ok := ports[service]
	if !ok || port <= 0 {
		return ""
	}
	return service + ":" + strconv.Itoa(port)
}
