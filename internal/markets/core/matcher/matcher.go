package matcher

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"

	"github.com/Synth-Beta/synth-beta-testing-sub007/internal/markets/core/domain"
)

// Profile city strings repeat heavily inside a batch, so resolutions are
// memoized. The value stored is the target index, -1 for no match.
const memoSize = 4096

// Normalize lowercases and trims a free-text city string.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Matcher resolves free-text city strings to configured targets.
type Matcher struct {
	targets []domain.CityTarget
	memo    *lru.Cache
}

func New(targets []domain.CityTarget) *Matcher {
	memo, _ := lru.New(memoSize)
	return &Matcher{targets: targets, memo: memo}
}

// Targets returns the configured targets in declaration order.
func (m *Matcher) Targets() []domain.CityTarget {
	return m.targets
}

// Match resolves a raw city string to a target, or nil when nothing matches.
// Targets are evaluated in declaration order; per target the rules are exact
// canonical name, exact alias, then substring containment in either direction
// against the canonical name and every alias. The first target satisfying any
// rule wins. Substring containment can false-positive on short names; the
// deterministic first-match order is what keeps results stable.
func (m *Matcher) Match(raw string) *domain.CityTarget {
	key := Normalize(raw)
	if key == "" {
		return nil
	}

	if idx, ok := m.memo.Get(key); ok {
		i := idx.(int)
		if i < 0 {
			return nil
		}
		return &m.targets[i]
	}

	for i := range m.targets {
		if matchesTarget(&m.targets[i], key) {
			m.memo.Add(key, i)
			return &m.targets[i]
		}
	}

	m.memo.Add(key, -1)
	return nil
}

func matchesTarget(t *domain.CityTarget, key string) bool {
	name := Normalize(t.Name)
	if key == name {
		return true
	}

	for _, a := range t.Aliases {
		if key == Normalize(a) {
			return true
		}
	}

	if strings.Contains(key, name) || strings.Contains(name, key) {
		return true
	}
	for _, a := range t.Aliases {
		alias := Normalize(a)
		if strings.Contains(key, alias) || strings.Contains(alias, key) {
			return true
		}
	}

	return false
}

// targetSource implements fuzzy.Source over canonical target names.
type targetSource []domain.CityTarget

func (s targetSource) String(i int) string { return s[i].Name }
func (s targetSource) Len() int            { return len(s) }

// Suggest returns up to n target names ranked by fuzzy score against raw.
// Suggestions are diagnostic only and never resolve a city.
func (m *Matcher) Suggest(raw string, n int) []string {
	matches := fuzzy.FindFrom(Normalize(raw), targetSource(m.targets))

	names := make([]string, 0, n)
	for _, match := range matches {
		if len(names) == n {
			break
		}
		names = append(names, m.targets[match.Index].Name)
	}
	return names
}
