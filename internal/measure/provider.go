package measure

import (
	"fmt"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderEstimate = "estimate"
	ProviderBrowser  = "browser"
)

// New returns the measurer registered under name; empty means estimate.
func New(name string, browserTimeout time.Duration) (Measurer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderEstimate:
		return Estimator{}, nil
	case ProviderBrowser:
		return Browser{Timeout: browserTimeout}, nil
	default:
		return nil, fmt.Errorf("unknown measurer %q (known: %s, %s)", name, ProviderEstimate, ProviderBrowser)
	}
}
