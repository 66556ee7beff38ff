package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

type clientIPKey struct{}

// ProxyTrust resolves the address of the client behind a request.
// X-Forwarded-For and X-Real-Ip are read only when the connection comes
// from a trusted proxy; otherwise the socket peer is the client.
type ProxyTrust struct {
	trusted []netip.Prefix
}

// NewProxyTrust parses a list of CIDRs or single addresses. An empty list
// trusts nothing.
func NewProxyTrust(proxies []string) (*ProxyTrust, error) {
	p := &ProxyTrust{}
	for _, s := range proxies {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			prefix, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", s, err)
			}
			p.trusted = append(p.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", s, err)
		}
		addr = addr.Unmap()
		p.trusted = append(p.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return p, nil
}

// Handler stores the resolved client address for ClientIP.
func (p *ProxyTrust) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), clientIPKey{}, p.resolve(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolve walks X-Forwarded-For from the right and returns the first hop
// that is not a trusted proxy. X-Real-Ip is used only when every forwarded
// hop is trusted.
func (p *ProxyTrust) resolve(r *http.Request) string {
	peer := peerIP(r)
	if !p.isTrusted(peer) {
		return peer
	}

	var hops []string
	for _, h := range r.Header.Values("X-Forwarded-For") {
		hops = append(hops, strings.Split(h, ",")...)
	}
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			return peer
		}
		if !p.isTrusted(hop) {
			return addr.Unmap().String()
		}
	}

	if xr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); err == nil {
		return xr.Unmap().String()
	}
	return peer
}

func (p *ProxyTrust) isTrusted(ip string) bool {
	if p == nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the address resolved by ProxyTrust.Handler, or the
// socket peer when the request did not pass through it.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok {
		return ip
	}
	return peerIP(r)
}

func peerIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
