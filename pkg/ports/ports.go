package ports

import (
	"errors"
	"fmt"
)

const (
	// DefaultRangeStart and DefaultRangeEnd bound the preferred range for
	// application ports on a droplet.
	DefaultRangeStart = 9000
	DefaultRangeEnd   = 9999
)

// ErrRangeExhausted is returned by Suggest when every port in the requested
// range is already in use. There is no point retrying; the operator has to
// free a port or widen the range.
var ErrRangeExhausted = errors.New("no available ports in range")

// Available reports whether the candidate port conflicts with any port
// already in use. Pure membership test: true means free.
func Available(port int, inUse []int) bool {
	for _, p := range inUse {
		if p == port {
			return false
		}
	}
	return true
}

// Suggest returns the lowest port in [start, end] not present in inUse.
// Returns an error wrapping ErrRangeExhausted when the range is fully
// occupied, and an error for an inverted range.
func Suggest(inUse []int, start, end int) (int, error) {
	if start > end {
		return 0, fmt.Errorf("invalid port range %d-%d", start, end)
	}

	used := make(map[int]struct{}, len(inUse))
	for _, p := range inUse {
		used[p] = struct{}{}
	}

	for port := start; port <= end; port++ {
		if _, ok := used[port]; !ok {
			return port, nil
		}
	}

	return 0, fmt.Errorf("%w %d-%d", ErrRangeExhausted, start, end)
}

// SuggestDefault is Suggest over the default 9000-9999 range.
func SuggestDefault(inUse []int) (int, error) {
	return Suggest(inUse, DefaultRangeStart, DefaultRangeEnd)
}
