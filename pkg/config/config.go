package config

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/healthcalc/pkg/calc/units"
)

// Config is the server configuration. Getters fall back to defaults for
// anything left unset and are safe for concurrent use.
type Config interface {
	ListenAddr() string
	UnixSocket() string
	LogLevel() string
	GinMode() string
	DefaultUnits() units.System
	TrustedProxies() []string

	SetListenAddr(string)
	SetUnixSocket(string)
	SetLogLevel(string)
	SetDefaultUnits(units.System)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	LogrusFields() logrus.Fields
}
