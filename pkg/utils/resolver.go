package utils

import (
	"context"
	"net"
)

// Resolver is the subset of *net.Resolver the lookup helpers use.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupCNAME(ctx context.Context, host string) (string, error)
}
