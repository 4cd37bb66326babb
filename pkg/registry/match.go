package registry

import (
	"strings"

	"github.com/agext/levenshtein"
	"go.minekube.com/vselect/pkg/proto"
)

// Matcher finds the version closest to a user given name.
type Matcher interface {
	Closest(name string, versions []*proto.Version) *proto.Version
}

// MatcherFunc implements Matcher.
type MatcherFunc func(name string, versions []*proto.Version) *proto.Version

// Closest implements Matcher.
func (f MatcherFunc) Closest(name string, versions []*proto.Version) *proto.Version {
	return f(name, versions)
}

// wildcardSuffix marks a name standing for all patch releases.
const wildcardSuffix = ".x"

// AliasMatcher matches a name against the full version name and its aliases.
//
// A version matches if its name equals name or name+".x", or if one of
// its aliases equals name ignoring case or equals name+".x".
// The first matching version in the given order wins.
type AliasMatcher struct {
	Separator string // Defaults to proto.DefaultAliasSeparator.
}

var _ Matcher = (*AliasMatcher)(nil)

// Closest implements Matcher.
func (m *AliasMatcher) Closest(name string, versions []*proto.Version) *proto.Version {
	sep := proto.DefaultAliasSeparator
	if m != nil && m.Separator != "" {
		sep = m.Separator
	}
	for _, v := range versions {
		full := v.Name()
		if full == name || full == name+wildcardSuffix {
			return v
		}
		for _, alias := range v.Aliases(sep) {
			if strings.EqualFold(alias, name) || alias == name+wildcardSuffix {
				return v
			}
		}
	}
	return nil
}

// DefaultMinimumSimilarityScore is the default SimilarityMatcher.MinScore.
const DefaultMinimumSimilarityScore = 0.8

// SimilarityMatcher first tries an AliasMatcher and falls back to the
// version whose name or alias has the highest levenshtein similarity.
//
// A similarity below MinScore never matches.
type SimilarityMatcher struct {
	AliasMatcher
	MinScore float64
}

var _ Matcher = (*SimilarityMatcher)(nil)

// Closest implements Matcher.
func (m *SimilarityMatcher) Closest(name string, versions []*proto.Version) *proto.Version {
	if v := m.AliasMatcher.Closest(name, versions); v != nil {
		return v
	}
	if name == "" {
		return nil
	}
	sep := m.Separator
	if sep == "" {
		sep = proto.DefaultAliasSeparator
	}
	var (
		best      *proto.Version
		bestScore = m.MinScore
	)
	for _, v := range versions {
		for _, candidate := range append([]string{v.Name()}, v.Aliases(sep)...) {
			score := Score(name, candidate)
			if score > bestScore || (score == bestScore && best == nil) {
				best, bestScore = v, score
			}
		}
	}
	return best
}

// Score calculates the similarity score in the range of 0..1 of two strings.
// A score of 1 means the strings are identical, and 0 means they have nothing in common.
func Score(given, candidate string) float64 {
	return levenshtein.Similarity(given, candidate, nil)
}
