package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/rest"
)

// UnknownIP stands in for the client address when none can be found.
const UnknownIP = "0.0.0.0"

// DefaultIPHeaders lists the headers proxies forward the client address in.
var DefaultIPHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic lists the IANA special-purpose ranges never taken as the client address.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("10.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("172.16.0.0/12"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.168.0.0/16"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("fc00::/7"),
}

// InjectIPAddress finds the client address of the request
// and records it in the rest.Attributes under rest.ClientIPAttr
// as well as in the *http.Request.Context under rest.IpAddrKey.
//
// headers replace DefaultIPHeaders.
func InjectIPAddress(headers ...string) Adapter {
	if len(headers) == 0 {
		headers = DefaultIPHeaders
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, headers)

			ctx, attrs := rest.NewAttributesContext(r.Context())
			attrs.Set(rest.ClientIPAttr, ip)
			h.ServeHTTP(w, r.WithContext(context.WithValue(ctx, rest.IpAddrKey, ip)))
		})
	}
}

// ClientIP returns the address of the client that sent r.
//
// The address recorded by InjectIPAddress is preferred.
// Otherwise, DefaultIPHeaders are searched, then the remote address of r.
func ClientIP(r *http.Request) string {
	if ip := rest.AttributesFromContext(r.Context()).String(rest.ClientIPAttr); ip != "" {
		return ip
	}

	return clientIP(r, DefaultIPHeaders)
}

// GetIPAddress searches headers in hm for the public address nearest the client's side of our proxy.
// UnknownIP returns if none is found.
func GetIPAddress(hm http.Header, headers ...string) string {
	if len(headers) == 0 {
		headers = DefaultIPHeaders
	}

	for _, h := range headers {
		addresses := strings.Split(hm.Get(h), ",")
		// march from right to left until we get a public address
		// that will be the address right before our proxy.
		for i := len(addresses) - 1; i >= 0; i-- {
			addr, ok := publicAddr(addresses[i])
			if !ok {
				continue
			}

			return addr.String()
		}
	}

	return UnknownIP
}

func clientIP(r *http.Request, headers []string) string {
	if ip := GetIPAddress(r.Header, headers...); ip != UnknownIP {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil && addr.IsValid() && !addr.IsUnspecified() {
		return addr.Unmap().String()
	}

	return UnknownIP
}

// publicAddr parses s, reporting whether it is a routable address outside nonPublic.
func publicAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}

	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() {
		return netip.Addr{}, false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return netip.Addr{}, false
		}
	}

	return addr, true
}
