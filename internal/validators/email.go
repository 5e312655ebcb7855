package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// Resolver is the subset of *net.Resolver the domain check needs.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

type EmailDomainChecker struct {
	resolver Resolver
	timeout  time.Duration
}

func NewEmailDomainChecker(r Resolver) *EmailDomainChecker {
	if r == nil {
		r = net.DefaultResolver
	}
	return &EmailDomainChecker{resolver: r, timeout: 3 * time.Second}
}

// Valid reports whether the email's domain has an MX record, falling back
// to an A/AAAA record.
func (c *EmailDomainChecker) Valid(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if mx, err := c.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := c.resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
