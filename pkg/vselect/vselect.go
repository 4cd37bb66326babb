// Package vselect wires a configuration into a ready to use version field.
package vselect

import (
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/robinbraemer/event"

	"go.minekube.com/vselect/pkg/config"
	"go.minekube.com/vselect/pkg/feature"
	"go.minekube.com/vselect/pkg/field"
	"go.minekube.com/vselect/pkg/internal/reload"
	"go.minekube.com/vselect/pkg/registry"
	"go.minekube.com/vselect/pkg/resolve"
	"go.minekube.com/vselect/pkg/session"
	"go.minekube.com/vselect/pkg/util/errs"
)

// Options are Selector options.
type Options struct {
	// Config requires a valid configuration.
	Config *config.Config
	// Logger is optional.
	Logger logr.Logger
	// Event is optional.
	Event event.Manager
}

// Selector holds the components built from one configuration.
// The session survives reloads, the rest is rebuilt.
type Selector struct {
	log     logr.Logger
	event   event.Manager
	session *session.Session

	mu    sync.RWMutex // protects following fields
	cfg   *config.Config
	reg   *registry.Static
	flag  *feature.Flag
	field *field.Field
}

// New returns a new Selector. The given Options require a validated Config.
func New(options Options) (*Selector, error) {
	if options.Config == nil {
		return nil, errs.ErrMissingConfig
	}
	if options.Event == nil {
		options.Event = event.Nop
	}
	if options.Logger.GetSink() == nil {
		options.Logger = logr.Discard()
	}
	s := &Selector{
		log:     options.Logger,
		event:   options.Event,
		session: session.New(options.Config.Initial(), options.Event),
	}
	if err := s.apply(options.Config); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Selector) apply(cfg *config.Config) error {
	reg, err := cfg.Registry()
	if err != nil {
		return fmt.Errorf("error creating registry: %w", err)
	}
	dir, err := cfg.MarkerDir()
	if err != nil {
		return err
	}
	flag := feature.NewFlag(dir)
	f, err := field.New(field.Options{
		Resolver: resolve.New(reg),
		Session:  s.session,
		Flag:     flag,
		Event:    s.event,
		Logger:   s.log.WithName("field"),
	})
	if err != nil {
		return fmt.Errorf("error creating version field: %w", err)
	}

	s.mu.Lock()
	prev := s.cfg
	s.cfg, s.reg, s.flag, s.field = cfg, reg, flag, f
	s.mu.Unlock()

	if prev != nil {
		reload.FireConfigUpdate(s.event, cfg, prev)
	}
	return nil
}

// Reload rebuilds the registry, flag and field from cfg.
// The selected protocol is kept. On error the previous state remains.
func (s *Selector) Reload(cfg *config.Config) error {
	if cfg == nil {
		return errs.ErrMissingConfig
	}
	if err := s.apply(cfg); err != nil {
		return err
	}
	s.log.Info("applied new configuration",
		"nativeProtocol", cfg.NativeProtocol,
		"matcher", cfg.Matcher.Mode)
	return nil
}

// Session returns the session holding the selected protocol.
func (s *Selector) Session() *session.Session { return s.session }

// Event returns the event manager.
func (s *Selector) Event() event.Manager { return s.event }

// Config returns the current configuration.
func (s *Selector) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Registry returns the current registry.
func (s *Selector) Registry() *registry.Static {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg
}

// Flag returns the client-side mode flag.
func (s *Selector) Flag() *feature.Flag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flag
}

// Field returns the current version field.
func (s *Selector) Field() *field.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.field
}
