package ip

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/pintwise/pintwise/internal/rest/render"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type ipCtxKey struct{}

// UnknownIP is returned when no valid IP can be determined.
const UnknownIP = "unknown"

// FromContext retrieves the client IP from the context.
func FromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ipCtxKey{}).(string); ok {
		return ip
	}
	return UnknownIP
}

// WithIP stores a client IP in the context.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipCtxKey{}, ip)
}

// Middleware detects the client IP and stores it in the context.
type Middleware struct {
	trusted []netip.Prefix
	logger  *zap.Logger
}

// New creates a new IP middleware. Forwarded headers are only honoured when the
// connection comes from one of the trusted proxy CIDRs.
func New(logger *zap.Logger, trustedProxies []string) (*Middleware, error) {
	trusted := make([]netip.Prefix, 0, len(trustedProxies))
	for _, cidr := range trustedProxies {
		prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", cidr, err)
		}
		trusted = append(trusted, prefix.Masked())
	}

	return &Middleware{
		trusted: trusted,
		logger:  logger.Named("ip_middleware"),
	}, nil
}

// AsRESTMiddleware returns a bunrouter middleware handler for IP detection.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		clientIP := m.ClientIP(req.Request)
		if clientIP == UnknownIP {
			return render.Error(w, http.StatusForbidden, "invalid_ip", "Invalid IP address")
		}

		return next(w, req.WithContext(WithIP(req.Context(), clientIP)))
	}
}

// ClientIP returns the IP of the client that sent the request.
func (m *Middleware) ClientIP(r *http.Request) string {
	remote, ok := parseRemoteAddr(r.RemoteAddr)
	if !ok {
		m.logger.Debug("Failed to parse remote address", zap.String("addr", r.RemoteAddr))
		return UnknownIP
	}

	if !m.isTrustedProxy(remote) {
		return remote.String()
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip, ok := m.forwardedIP(forwarded); ok {
			return ip.String()
		}
		m.logger.Debug("No valid IP found in forwarded header", zap.String("header", forwarded))
	}

	return remote.String()
}

// forwardedIP walks the forwarded chain from right to left and returns the first address
// that is not one of our proxies.
func (m *Middleware) forwardedIP(forwarded string) (netip.Addr, bool) {
	hops := strings.Split(forwarded, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			return netip.Addr{}, false
		}
		addr = addr.Unmap()
		if !m.isTrustedProxy(addr) {
			return addr, true
		}
	}
	return netip.Addr{}, false
}

func (m *Middleware) isTrustedProxy(addr netip.Addr) bool {
	for _, prefix := range m.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func parseRemoteAddr(remoteAddr string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
