// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"net"
	"strings"
	"time"
)

// NetResolver resolves MX records with the standard resolver, bounding
// each lookup with Timeout.
type NetResolver struct {
	Resolver *net.Resolver
	Timeout  time.Duration
}

// NewNetResolver returns a NetResolver using net.DefaultResolver.
func NewNetResolver(timeout time.Duration) *NetResolver {
	return &NetResolver{Resolver: net.DefaultResolver, Timeout: timeout}
}

// LookupMX returns the exchanger hostnames for domain ordered by preference,
// without trailing dots.
func (n *NetResolver) LookupMX(ctx context.Context, domain string) ([]string, error) {
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}
	mxs, err := n.Resolver.LookupMX(ctx, domain)
	if err != nil {
		return nil, err
	}
	hosts := make([]string, 0, len(mxs))
	for _, mx := range mxs {
		hosts = append(hosts, strings.TrimSuffix(mx.Host, "."))
	}
	return hosts, nil
}
