package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/healthcalc/pkg/calc/units"
	"github.com/charlie0129/healthcalc/pkg/utils/ptr"
)

// Environment variables that take precedence over the config file.
const (
	EnvListenAddr   = "HEALTHCALC_LISTEN_ADDR"
	EnvUnixSocket   = "HEALTHCALC_UNIX_SOCKET"
	EnvLogLevel     = "HEALTHCALC_LOG_LEVEL"
	EnvDefaultUnits = "HEALTHCALC_DEFAULT_UNITS"
)

var (
	defaultFileConfig = &RawFileConfig{
		ListenAddr: ptr.To("127.0.0.1:8787"),
		// Empty means TCP only.
		UnixSocket:     ptr.To(""),
		LogLevel:       ptr.To("info"),
		GinMode:        ptr.To(gin.ReleaseMode),
		DefaultUnits:   ptr.To(string(units.Metric)),
		TrustedProxies: []string{},
	}
)

var _ Config = &File{}

type File struct {
	c *RawFileConfig
	// env holds overrides read from the environment (and .env) on Load.
	env      *RawFileConfig
	mu       *sync.RWMutex
	filepath string
	envFile  string
}

// NewFile loads configPath. envFile, when not empty, is a dotenv file whose
// variables are added to the environment before overrides are read; a
// missing envFile is not an error.
func NewFile(configPath, envFile string) (*File, error) {
	f := &File{
		filepath: configPath,
		envFile:  envFile,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		env:      &RawFileConfig{},
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	ListenAddr     *string  `json:"listenAddr,omitempty"`
	UnixSocket     *string  `json:"unixSocket,omitempty"`
	LogLevel       *string  `json:"logLevel,omitempty"`
	GinMode        *string  `json:"ginMode,omitempty"`
	DefaultUnits   *string  `json:"defaultUnits,omitempty"`
	TrustedProxies []string `json:"trustedProxies,omitempty"`
}

// NewRawFileConfigFromConfig snapshots the effective values of c.
func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		ListenAddr:     ptr.To(c.ListenAddr()),
		UnixSocket:     ptr.To(c.UnixSocket()),
		LogLevel:       ptr.To(c.LogLevel()),
		GinMode:        ptr.To(c.GinMode()),
		DefaultUnits:   ptr.To(string(c.DefaultUnits())),
		TrustedProxies: c.TrustedProxies(),
	}, nil
}

// validate rejects values the server could not start with.
func (c *RawFileConfig) validate(source string) error {
	if c.LogLevel != nil {
		if _, err := logrus.ParseLevel(*c.LogLevel); err != nil {
			return pkgerrors.Wrapf(err, "invalid logLevel in %s", source)
		}
	}
	if c.GinMode != nil {
		switch *c.GinMode {
		case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		default:
			return pkgerrors.Errorf("invalid ginMode %q in %s", *c.GinMode, source)
		}
	}
	if c.DefaultUnits != nil {
		sys, err := units.ParseSystem(*c.DefaultUnits)
		if err != nil {
			return pkgerrors.Wrapf(err, "invalid defaultUnits in %s", source)
		}
		c.DefaultUnits = ptr.To(string(sys))
	}
	return nil
}

// pick returns the first non-nil of override, value and def.
func pick[T any](override, value, def *T) T {
	return ptr.Deref(override, ptr.Deref(value, *def))
}

func (f *File) ListenAddr() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.env.ListenAddr, f.c.ListenAddr, defaultFileConfig.ListenAddr)
}

func (f *File) UnixSocket() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.env.UnixSocket, f.c.UnixSocket, defaultFileConfig.UnixSocket)
}

func (f *File) LogLevel() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(f.env.LogLevel, f.c.LogLevel, defaultFileConfig.LogLevel)
}

func (f *File) GinMode() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return pick(nil, f.c.GinMode, defaultFileConfig.GinMode)
}

func (f *File) DefaultUnits() units.System {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return units.System(pick(f.env.DefaultUnits, f.c.DefaultUnits, defaultFileConfig.DefaultUnits))
}

func (f *File) TrustedProxies() []string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.TrustedProxies != nil {
		return append([]string(nil), f.c.TrustedProxies...)
	}
	return []string{}
}

func (f *File) SetListenAddr(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ListenAddr = &s
}

func (f *File) SetUnixSocket(s string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.UnixSocket = &s
}

func (f *File) SetLogLevel(s string) {
	if f.c == nil {
		panic("config is nil")
	}
	if _, err := logrus.ParseLevel(s); err != nil {
		panic("invalid log level: " + s)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LogLevel = &s
}

func (f *File) SetDefaultUnits(s units.System) {
	if f.c == nil {
		panic("config is nil")
	}
	if s != units.Metric && s != units.Imperial {
		panic("invalid unit system: " + string(s))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.DefaultUnits = ptr.To(string(s))
}

func (f *File) Load() error {
	env, err := f.loadEnv()
	if err != nil {
		return err
	}

	conf, err := f.loadFile()
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c = conf
	f.env = env

	return nil
}

// loadFile reads the JSON config. A missing or empty file yields an empty
// config, never nil.
func (f *File) loadFile() (*RawFileConfig, error) {
	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return &RawFileConfig{}, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		return &RawFileConfig{}, nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	if err := conf.validate(f.filepath); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (f *File) loadEnv() (*RawFileConfig, error) {
	if f.envFile != "" {
		// godotenv never overrides variables that are already set.
		err := godotenv.Load(f.envFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, pkgerrors.Wrapf(err, "failed to load env file %s", f.envFile)
		}
	}

	env := &RawFileConfig{}
	lookup := func(key string) *string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return &v
		}
		return nil
	}
	env.ListenAddr = lookup(EnvListenAddr)
	env.UnixSocket = lookup(EnvUnixSocket)
	env.LogLevel = lookup(EnvLogLevel)
	env.DefaultUnits = lookup(EnvDefaultUnits)

	if err := env.validate("environment"); err != nil {
		return nil, err
	}

	return env, nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"listenAddr":     f.ListenAddr(),
		"unixSocket":     f.UnixSocket(),
		"logLevel":       f.LogLevel(),
		"ginMode":        f.GinMode(),
		"defaultUnits":   f.DefaultUnits(),
		"trustedProxies": f.TrustedProxies(),
	}
}
