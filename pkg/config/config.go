// Package config contains the vselect configuration read with Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"go.minekube.com/vselect/pkg/edition/java/proto/version"
	"go.minekube.com/vselect/pkg/proto"
	"go.minekube.com/vselect/pkg/registry"
)

// DefaultMarkerDirName is the directory below the user config
// directory holding feature marker files.
const DefaultMarkerDirName = "ViaFabric"

// Config is the vselect configuration.
type Config struct {
	// Directory of feature marker files.
	// Empty means <user config dir>/ViaFabric.
	ConfigDir string
	// The protocol the translation layer speaks.
	NativeProtocol int
	// The protocol selected on startup, -1 selects NativeProtocol.
	ClientSideProtocol int
	Matcher     Matcher
	Translation Translation
	Debug       bool
}

// Matcher configures how version names are matched.
type Matcher struct {
	Mode     MatcherMode
	MinScore float64 // For MatcherSimilarity.
}

// MatcherMode selects a registry.Matcher.
type MatcherMode string

// Available matcher modes.
const (
	MatcherAlias      MatcherMode = "alias"
	MatcherSimilarity MatcherMode = "similarity"
)

// Translation configures translation paths between protocols.
type Translation struct {
	Chain    bool // Link neighbour versions.
	Edges    []Edge
	CacheTTL time.Duration
}

// Edge is a bidirectional translation.
type Edge struct {
	From, To int
}

// SetDefault abstracts setting Viper defaults.
type SetDefault interface {
	SetDefault(key string, value interface{})
}

// SetDefaults sets Config defaults to use with Viper.
func SetDefaults(i SetDefault) {
	i.SetDefault("configDir", "")
	i.SetDefault("nativeProtocol", int(version.Minecraft_1_14_4.Protocol))
	i.SetDefault("clientSideProtocol", int(proto.Unknown))
	i.SetDefault("matcher.mode", string(MatcherAlias))
	i.SetDefault("matcher.minScore", registry.DefaultMinimumSimilarityScore)
	i.SetDefault("translation.chain", true)
	i.SetDefault("translation.cacheTTL", registry.DefaultPathCacheTTL.String())
	i.SetDefault("debug", false)
}

// LoadConfig reads the config file set in v, if any,
// and unmarshals it on top of the defaults.
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file %q: %w", v.ConfigFileUsed(), err)
			}
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}

// Validate validates c.
func (c *Config) Validate() (warns []error, errs []error) {
	e := func(m string, args ...interface{}) { errs = append(errs, fmt.Errorf(m, args...)) }
	w := func(m string, args ...interface{}) { warns = append(warns, fmt.Errorf(m, args...)) }
	if c == nil {
		e("config must not be nil")
		return
	}

	if !version.Protocol(c.NativeProtocol).Known() {
		e("Native protocol %d is not a known version (%s)", c.NativeProtocol, version.RangeString)
	}
	if !proto.Protocol(c.ClientSideProtocol).Unknown() && !version.Protocol(c.ClientSideProtocol).Known() {
		w("Client-side protocol %d is not a known version", c.ClientSideProtocol)
	}

	switch MatcherMode(strings.ToLower(string(c.Matcher.Mode))) {
	case MatcherAlias:
	case MatcherSimilarity:
		if c.Matcher.MinScore <= 0 || c.Matcher.MinScore > 1 {
			e("Matcher minScore must be within (0,1], got %v", c.Matcher.MinScore)
		}
	default:
		e("Unknown matcher mode %q (valid modes: %s, %s)", c.Matcher.Mode, MatcherAlias, MatcherSimilarity)
	}

	if !c.Translation.Chain && len(c.Translation.Edges) == 0 {
		w("Translation chain is disabled and no edges are configured, only the native protocol is supported")
	}
	for _, edge := range c.Translation.Edges {
		for _, p := range []int{edge.From, edge.To} {
			if !version.Protocol(p).Known() {
				e("Translation edge %d<->%d references unknown protocol %d", edge.From, edge.To, p)
			}
		}
	}
	if c.Translation.CacheTTL < 0 {
		e("Translation cacheTTL must not be negative")
	}
	return
}

// MarkerDir returns the directory of feature marker files.
func (c *Config) MarkerDir() (string, error) {
	if c.ConfigDir != "" {
		return c.ConfigDir, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error resolving user config directory: %w", err)
	}
	return filepath.Join(dir, DefaultMarkerDirName), nil
}

// Initial returns the protocol to select on startup.
func (c *Config) Initial() proto.Protocol {
	if proto.Protocol(c.ClientSideProtocol).Unknown() {
		return proto.Protocol(c.NativeProtocol)
	}
	return proto.Protocol(c.ClientSideProtocol)
}

// Registry builds the registry of known Java edition versions.
func (c *Config) Registry() (*registry.Static, error) {
	opts := []registry.Option{
		registry.WithPathCacheTTL(c.Translation.CacheTTL),
		registry.WithChain(c.Translation.Chain),
	}
	switch MatcherMode(strings.ToLower(string(c.Matcher.Mode))) {
	case MatcherSimilarity:
		opts = append(opts, registry.WithMatcher(&registry.SimilarityMatcher{
			MinScore: c.Matcher.MinScore,
		}))
	default:
		opts = append(opts, registry.WithMatcher(&registry.AliasMatcher{}))
	}
	for _, e := range c.Translation.Edges {
		opts = append(opts, registry.WithEdges(registry.Edge{
			From: proto.Protocol(e.From),
			To:   proto.Protocol(e.To),
		}))
	}
	return registry.New(version.Versions, proto.Protocol(c.NativeProtocol), opts...)
}
