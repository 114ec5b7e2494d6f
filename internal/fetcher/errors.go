package fetcher

import "errors"

var (
	// ErrInvalidURL is returned when the URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrUnexpectedStatus is returned when the server answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrNotHTML is returned when the response is not an HTML document.
	ErrNotHTML = errors.New("response is not HTML")

	// ErrDisallowedByRobots is returned when robots.txt forbids fetching the URL.
	ErrDisallowedByRobots = errors.New("disallowed by robots.txt")
)

// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is not "host:port".
var ErrInvalidProxyAddress = errors.New("invalid proxy address: must be host:port")
