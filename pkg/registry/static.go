package registry

import (
	"fmt"
	"slices"
	"time"

	"github.com/gammazero/deque"
	"github.com/jellydator/ttlcache/v3"

	"go.minekube.com/vselect/pkg/internal/cachutil"
	"go.minekube.com/vselect/pkg/proto"
)

// DefaultPathCacheTTL is how long a computed translation path is cached.
const DefaultPathCacheTTL = 5 * time.Minute

// Edge is a bidirectional translation between two protocols.
type Edge struct {
	From, To proto.Protocol
}

type options struct {
	matcher  Matcher
	chain    *bool
	edges    []Edge
	cacheTTL time.Duration
}

// Option configures a Static registry.
type Option func(*options)

// WithMatcher sets the Matcher used by Closest.
// Defaults to an AliasMatcher.
func WithMatcher(m Matcher) Option {
	return func(o *options) { o.matcher = m }
}

// WithChain sets whether every version is linked to its neighbours
// in protocol order. Defaults to true if no edges are given.
func WithChain(enabled bool) Option {
	return func(o *options) { o.chain = &enabled }
}

// WithEdges adds explicit translations.
func WithEdges(edges ...Edge) Option {
	return func(o *options) { o.edges = append(o.edges, edges...) }
}

// WithPathCacheTTL sets how long computed paths are cached.
func WithPathCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.cacheTTL = ttl }
}

// Static is an immutable in-memory Registry.
// It is safe for concurrent use.
type Static struct {
	versions []*proto.Version
	byID     map[proto.Protocol]*proto.Version
	native   proto.Protocol
	matcher  Matcher
	graph    map[proto.Protocol][]proto.Protocol
	paths    *ttlcache.Cache[Edge, []proto.Protocol]
}

var _ Registry = (*Static)(nil)

// New returns a Static registry of the given versions
// whose translation layer speaks native.
func New(versions []*proto.Version, native proto.Protocol, opts ...Option) (*Static, error) {
	o := &options{cacheTTL: DefaultPathCacheTTL}
	for _, opt := range opts {
		opt(o)
	}
	if o.matcher == nil {
		o.matcher = &AliasMatcher{}
	}
	chain := len(o.edges) == 0
	if o.chain != nil {
		chain = *o.chain
	}

	s := &Static{
		versions: slices.Clone(versions),
		byID:     make(map[proto.Protocol]*proto.Version, len(versions)),
		native:   native,
		matcher:  o.matcher,
		graph:    make(map[proto.Protocol][]proto.Protocol),
	}
	slices.SortStableFunc(s.versions, func(a, b *proto.Version) int {
		return int(a.Protocol) - int(b.Protocol)
	})
	for _, v := range s.versions {
		if _, ok := s.byID[v.Protocol]; ok {
			return nil, fmt.Errorf("duplicate protocol %d (%s)", v.Protocol, v)
		}
		s.byID[v.Protocol] = v
	}
	if _, ok := s.byID[native]; !ok {
		return nil, fmt.Errorf("native protocol %d is not registered", native)
	}

	if chain {
		for i := 1; i < len(s.versions); i++ {
			s.link(s.versions[i-1].Protocol, s.versions[i].Protocol)
		}
	}
	for _, e := range o.edges {
		if !s.IsRegistered(e.From) || !s.IsRegistered(e.To) {
			return nil, fmt.Errorf("translation %d<->%d references unregistered protocol", e.From, e.To)
		}
		s.link(e.From, e.To)
	}

	s.paths = ttlcache.New[Edge, []proto.Protocol](
		ttlcache.WithTTL[Edge, []proto.Protocol](o.cacheTTL),
		ttlcache.WithLoader[Edge, []proto.Protocol](cachutil.NewSuppressedLoader(s.findPath)),
	)
	return s, nil
}

func (s *Static) link(a, b proto.Protocol) {
	if a == b {
		return
	}
	if !slices.Contains(s.graph[a], b) {
		s.graph[a] = append(s.graph[a], b)
	}
	if !slices.Contains(s.graph[b], a) {
		s.graph[b] = append(s.graph[b], a)
	}
}

// IsRegistered implements Registry.
func (s *Static) IsRegistered(p proto.Protocol) bool {
	_, ok := s.byID[p]
	return ok
}

// Protocol implements Registry.
func (s *Static) Protocol(p proto.Protocol) (*proto.Version, bool) {
	v, ok := s.byID[p]
	return v, ok
}

// Protocols implements Registry.
// The returned slice must not be modified.
func (s *Static) Protocols() []*proto.Version { return s.versions }

// Closest implements Registry.
func (s *Static) Closest(name string) *proto.Version {
	return s.matcher.Closest(name, s.versions)
}

// Native implements Registry.
func (s *Static) Native() proto.Protocol { return s.native }

// Supported implements Registry.
func (s *Static) Supported(p proto.Protocol) bool { return Supported(s, p) }

// Path implements Registry.
func (s *Static) Path(from, to proto.Protocol) []proto.Protocol {
	if !s.IsRegistered(from) || !s.IsRegistered(to) {
		return nil
	}
	item := s.paths.Get(Edge{From: from, To: to})
	if item == nil {
		return nil
	}
	return slices.Clone(item.Value())
}

// findPath does a breadth-first search for the shortest path.
func (s *Static) findPath(e Edge) []proto.Protocol {
	if e.From == e.To {
		return []proto.Protocol{}
	}
	prev := map[proto.Protocol]proto.Protocol{e.From: e.From}
	var queue deque.Deque[proto.Protocol]
	queue.PushBack(e.From)
	for queue.Len() != 0 {
		cur := queue.PopFront()
		for _, next := range s.graph[cur] {
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = cur
			if next == e.To {
				return walkBack(prev, e.From, e.To)
			}
			queue.PushBack(next)
		}
	}
	return nil
}

func walkBack(prev map[proto.Protocol]proto.Protocol, from, to proto.Protocol) []proto.Protocol {
	var path []proto.Protocol
	for p := to; p != from; p = prev[p] {
		path = append(path, p)
	}
	slices.Reverse(path)
	return path
}
