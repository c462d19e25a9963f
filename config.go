package golix

import (
	"io"

	"github.com/muterra/golix/internal/golixlog"
)

// Config is passed explicitly to FirstParty constructors.
// There is deliberately no package-level mutable default beyond
// DefaultConfig's return value — see Design Notes §9, "avoid ambient
// state."
type Config struct {
	// DefaultCipher and DefaultAddressAlgo are convenience values for
	// callers that want one place to change both; constructors still
	// take explicit cipher/address-algo arguments and never read these
	// implicitly.
	DefaultCipher      uint8
	DefaultAddressAlgo uint8

	// Rand is the entropy source for key and secret generation. Nil
	// means crypto/rand.Reader. Implementations must prefer a blocking
	// entropy source.
	Rand io.Reader

	// Logger receives diagnostic (never secret) events. Nil means a
	// no-op logger.
	Logger *golixlog.Logger
}

// DefaultConfig returns the suite-1/address-algo-1 configuration with a
// no-op logger and crypto/rand entropy.
func DefaultConfig() Config {
	return Config{
		DefaultCipher:      1,
		DefaultAddressAlgo: 1,
		Logger:             golixlog.Noop(),
	}
}

func (c Config) logger() *golixlog.Logger {
	if c.Logger == nil {
		return golixlog.Noop()
	}
	return c.Logger
}
