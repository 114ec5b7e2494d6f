package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// defaultRobotsTimeout bounds the download of one robots.txt.
const defaultRobotsTimeout = 5 * time.Second

// HostPolicy decides whether and when a URL may be fetched. It can honor
// robots.txt and limit the request rate per host. The zero configuration
// allows everything immediately.
type HostPolicy struct {
	mu    sync.Mutex
	hosts map[string]*hostState

	client        *http.Client
	userAgent     string
	respectRobots bool
	perHostRate   float64
	robotsTimeout time.Duration
	logger        *slog.Logger
}

// hostState is the policy state of one scheme and host pair.
type hostState struct {
	robotsOnce sync.Once
	robots     *robotstxt.RobotsData
	limiter    *rate.Limiter
}

// HostPolicyOption configures a HostPolicy.
type HostPolicyOption func(*HostPolicy)

// WithRobots enables robots.txt compliance.
func WithRobots(enabled bool) HostPolicyOption {
	return func(p *HostPolicy) {
		p.respectRobots = enabled
	}
}

// WithHostRate limits requests to each host to rps per second.
// Zero or a negative value disables the limit.
func WithHostRate(rps float64) HostPolicyOption {
	return func(p *HostPolicy) {
		p.perHostRate = rps
	}
}

// WithPolicyClient sets the HTTP client used to download robots.txt.
func WithPolicyClient(c *http.Client) HostPolicyOption {
	return func(p *HostPolicy) {
		p.client = c
	}
}

// WithPolicyUserAgent sets the agent name matched against robots.txt groups.
func WithPolicyUserAgent(ua string) HostPolicyOption {
	return func(p *HostPolicy) {
		p.userAgent = ua
	}
}

// WithPolicyLogger sets the logger.
func WithPolicyLogger(l *slog.Logger) HostPolicyOption {
	return func(p *HostPolicy) {
		p.logger = l
	}
}

// NewHostPolicy creates a HostPolicy.
func NewHostPolicy(opts ...HostPolicyOption) *HostPolicy {
	p := &HostPolicy{
		hosts:         make(map[string]*hostState),
		client:        &http.Client{},
		userAgent:     DefaultUserAgent,
		robotsTimeout: defaultRobotsTimeout,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enabled reports whether the policy restricts anything.
func (p *HostPolicy) Enabled() bool {
	return p.respectRobots || p.perHostRate > 0
}

// Wait returns ErrDisallowedByRobots when robots.txt forbids u, and
// otherwise blocks until the host's rate limit admits the request.
func (p *HostPolicy) Wait(ctx context.Context, u *url.URL) error {
	if !p.Enabled() {
		return nil
	}
	state := p.host(u)

	if p.respectRobots {
		state.robotsOnce.Do(func() {
			state.robots = p.fetchRobots(ctx, u)
		})
		if state.robots != nil && !state.robots.TestAgent(u.RequestURI(), p.userAgent) {
			return fmt.Errorf("%w: %s", ErrDisallowedByRobots, u.String())
		}
	}

	if state.limiter != nil {
		if err := state.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait for %s: %w", u.Host, err)
		}
	}
	return nil
}

func (p *HostPolicy) host(u *url.URL) *hostState {
	key := u.Scheme + "://" + u.Host

	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.hosts[key]
	if !ok {
		state = &hostState{}
		if p.perHostRate > 0 {
			burst := max(1, int(p.perHostRate))
			state.limiter = rate.NewLimiter(rate.Limit(p.perHostRate), burst)
		}
		p.hosts[key] = state
	}
	return state
}

// fetchRobots downloads robots.txt of u's host. Any failure is treated as
// the absence of a robots.txt.
func (p *HostPolicy) fetchRobots(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.robotsTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("robots.txt unavailable", "url", robotsURL, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil
	}
	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		p.logger.Debug("invalid robots.txt", "url", robotsURL, "error", err)
		return nil
	}
	return robots
}
