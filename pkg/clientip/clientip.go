// Package clientip resolves the client address used as the rate-limit key.
//
// Behind a proxy the socket peer is the proxy, so a Resolver that trusts
// proxies reads X-Forwarded-For from the right: each trusted hop appends the
// address it saw, so the entry ProxyHops positions from the end is the last
// one written by infrastructure. Entries further left come from the client
// and are never used. CDN headers (CF-Connecting-IP, DO-Connecting-IP,
// X-Real-IP) take precedence only with TrustCDNHeaders, since they are
// client-settable unless the edge overwrites them. RemoteAddr is the fallback
// and the only source when proxies are not trusted. Returned addresses are
// normalised through net.ParseIP so "::ffff:1.2.3.4" and "1.2.3.4" share a key.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Config controls header trust. Disable TRUST_PROXY when the service is
// exposed directly, otherwise any client can pick its own rate-limit key.
type Config struct {
	TrustProxy      bool `env:"TRUST_PROXY" envDefault:"true"`
	ProxyHops       int  `env:"TRUST_PROXY_HOPS" envDefault:"1"`
	TrustCDNHeaders bool `env:"TRUST_CDN_HEADERS" envDefault:"false"`
}

var cdnHeaders = []string{"CF-Connecting-IP", "DO-Connecting-IP", "X-Real-IP"}

// Resolver extracts the client address from requests.
type Resolver struct {
	trustProxy bool
	hops       int
	trustCDN   bool
}

// New creates a Resolver. ProxyHops below 1 counts as 1.
func New(cfg Config) *Resolver {
	return &Resolver{
		trustProxy: cfg.TrustProxy,
		hops:       max(cfg.ProxyHops, 1),
		trustCDN:   cfg.TrustProxy && cfg.TrustCDNHeaders,
	}
}

// IP returns the client address for r, or "" when none is parseable.
func (res *Resolver) IP(r *http.Request) string {
	if res.trustCDN {
		for _, h := range cdnHeaders {
			if ip := parseIP(r.Header.Get(h)); ip != "" {
				return ip
			}
		}
	}
	if res.trustProxy {
		if ip := res.forwarded(r); ip != "" {
			return ip
		}
	}
	return RemoteIP(r)
}

// forwarded picks the X-Forwarded-For entry res.hops positions from the
// right, or the leftmost one when the chain is shorter. Repeated headers are
// joined in arrival order.
func (res *Resolver) forwarded(r *http.Request) string {
	var chain []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		for entry := range strings.SplitSeq(v, ",") {
			if entry = strings.TrimSpace(entry); entry != "" {
				chain = append(chain, entry)
			}
		}
	}
	if len(chain) == 0 {
		return ""
	}
	return parseIP(chain[max(len(chain)-res.hops, 0)])
}

// RemoteIP returns the socket peer address of r.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ip.String()
}
