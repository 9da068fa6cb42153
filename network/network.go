// Package network resolves deployment coordinates (factory contract, chain id,
// backend path segment) for a launchpad environment and chain.
package network

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedNetwork is returned, before any I/O, whenever an operation is
// asked to work on a network the launchpad is not deployed on.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// UnsupportedNetworkError carries the offending network. It matches
// ErrUnsupportedNetwork with errors.Is.
type UnsupportedNetworkError struct {
	Network Network
}

func (e *UnsupportedNetworkError) Error() string {
	return fmt.Sprintf("unsupported network %q, currently supporting: %s", e.Network.String(), Abstract.String())
}

func (e *UnsupportedNetworkError) Unwrap() error {
	return ErrUnsupportedNetwork
}

type Environment int

const (
	Devnet Environment = iota
	Mainnet
)

func (env Environment) String() string {
	if env == Mainnet {
		return "mainnet"
	}
	return "devnet"
}

// ParseEnvironment accepts "mainnet"; every other value selects the dev deployment.
func ParseEnvironment(s string) Environment {
	if strings.EqualFold(strings.TrimSpace(s), "mainnet") {
		return Mainnet
	}
	return Devnet
}

// Network is a chain the launchpad may be deployed on. The zero value is Abstract.
type Network int

const (
	Abstract Network = iota
	Base
	Bera
)

var networkNames = map[Network]string{
	Abstract: "abstract",
	Base:     "base",
	Bera:     "bera",
}

// String returns the lowercase name, which is also the backend path segment.
func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return fmt.Sprintf("network(%d)", int(n))
}

func ParseNetwork(s string) (Network, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Abstract, nil
	}
	for n, name := range networkNames {
		if name == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown network %q", s)
}

// Supported reports whether n is served end to end.
func Supported(n Network) bool {
	return n == Abstract
}

func unsupported(n Network) error {
	return &UnsupportedNetworkError{Network: n}
}
