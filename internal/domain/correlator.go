package domain

import (
	"context"
	"log/slog"
	"strings"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// DefaultBundlerPrefixes are the path prefixes bundlers put in front of
// runtime-reported file names.
var DefaultBundlerPrefixes = []string{"webpack:///", "webpack://", "file://"}

// PathNormalizer rewrites a runtime-reported file name before comparison.
type PathNormalizer func(file string) string

// StripBundlerPrefix returns a PathNormalizer that removes the first
// matching prefix and a leading "./". It falls back to
// DefaultBundlerPrefixes when no prefixes are given.
func StripBundlerPrefix(prefixes ...string) PathNormalizer {
	if len(prefixes) == 0 {
		prefixes = DefaultBundlerPrefixes
	}

	return func(file string) string {
		for _, prefix := range prefixes {
			if prefix != "" && strings.HasPrefix(file, prefix) {
				file = strings.TrimPrefix(file, prefix)
				break
			}
		}

		return strings.TrimPrefix(file, "./")
	}
}

// Correlator decides whether a runtime event belongs to a registered probe point.
type Correlator struct {
	registry  *Registry
	normalize PathNormalizer
}

// NewCorrelator creates a Correlator over registry. A nil normalize uses
// StripBundlerPrefix().
func NewCorrelator(registry *Registry, normalize PathNormalizer) *Correlator {
	if normalize == nil {
		normalize = StripBundlerPrefix()
	}

	return &Correlator{registry: registry, normalize: normalize}
}

// Match returns the first registered point matching the runtime location r.
func (c *Correlator) Match(r m.Location) (m.Location, bool) {
	file := c.normalize(r.File)

	for _, point := range c.registry.Points() {
		if point.Line != r.Line || point.Column != r.Column+m.RuntimeColumnSkew {
			continue
		}

		if pathSuffixMatch(point.File, file) {
			return point, true
		}
	}

	return m.Location{}, false
}

// Admit reports whether e belongs to a registered probe point.
func (c *Correlator) Admit(e m.Event) bool {
	_, ok := c.Match(e.Source())
	return ok
}

// Admitted is an event together with the probe point it matched.
type Admitted struct {
	Event m.Event
	Point m.Location
}

// Filter forwards the events from in that match a registered point and
// discards the rest. The returned channel closes when in closes or ctx is done.
func (c *Correlator) Filter(ctx context.Context, in <-chan m.Event) <-chan Admitted {
	out := make(chan Admitted)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-in:
				if !ok {
					return
				}

				point, matched := c.Match(event.Source())
				if !matched {
					slog.Debug("discarding unregistered event", "kind", event.Kind(), "source", event.Source())
					continue
				}

				select {
				case <-ctx.Done():
					return
				case out <- Admitted{Event: event, Point: point}:
				}
			}
		}
	}()

	return out
}

// pathSuffixMatch reports whether one path ends with the other on a path
// segment boundary. Static and runtime reports disagree on whether paths
// are absolute, so either side may be the longer one.
func pathSuffixMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	a = strings.ReplaceAll(a, "\\", "/")
	b = strings.ReplaceAll(b, "\\", "/")

	if a == b {
		return true
	}

	if len(a) < len(b) {
		a, b = b, a
	}

	return strings.HasSuffix(a, b) && (strings.HasPrefix(b, "/") || a[len(a)-len(b)-1] == '/')
}
