package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// dialTimeout bounds establishing a TCP connection, with or without a proxy.
const dialTimeout = 10 * time.Second

// NewHTTPClient returns an HTTP client for page and robots.txt requests.
// When proxyAddress is a "host:port" pair, every connection is tunneled
// through that SOCKS5 proxy. An empty proxyAddress dials directly.
func NewHTTPClient(proxyAddress string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyAddress == "" {
		return &http.Client{Transport: transport}, nil
	}

	if !ValidProxyAddress(proxyAddress) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProxyAddress, proxyAddress)
	}

	forward := &net.Dialer{Timeout: dialTimeout}
	dialer, err := proxy.SOCKS5("tcp", proxyAddress, nil, forward)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	// The environment proxy must not be applied on top of the SOCKS5 tunnel.
	transport.Proxy = nil
	transport.DialContext = contextDialer(dialer)
	return &http.Client{Transport: transport}, nil
}

// contextDialer adapts a proxy.Dialer to http.Transport.DialContext.
func contextDialer(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type result struct {
			conn net.Conn
			err  error
		}
		ch := make(chan result, 1)
		go func() {
			conn, err := d.Dial(network, addr)
			ch <- result{conn, err}
		}()

		select {
		case <-ctx.Done():
			go func() {
				if r := <-ch; r.conn != nil {
					_ = r.conn.Close()
				}
			}()
			return nil, ctx.Err()
		case r := <-ch:
			return r.conn, r.err
		}
	}
}

// ValidProxyAddress reports whether address is a "host:port" pair with a
// port between 1 and 65535.
func ValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}
