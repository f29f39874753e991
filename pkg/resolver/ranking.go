package resolver

import (
	"sort"

	"github.com/arthur-debert/openwith/pkg/desktop"
)

// Rank = MIME specificity * specificityMultiplier + source rank. Specificity
// is N-i for the i-th of N expanded MIME types, so any match on a more
// specific type beats every source on a less specific one.
const (
	specificityMultiplier = 100

	rankGlobalDefault   = 5
	rankMimeappsDefault = 4
	rankMimeappsAdded   = 3
	rankCacheOrScan     = 2
)

// identity deduplicates the same application shipped under several ids
type identity struct {
	name string
	exec string
}

// ranked refers to its entry by desktop id; the entry itself lives in the
// call's store
type ranked struct {
	id     string
	name   string
	rank   int
	source string
}

type candidateMap map[identity]*ranked

// merge inserts entry or replaces the existing candidate when rank is
// strictly higher
func (m candidateMap) merge(entry *desktop.Entry, rank int, source string) {
	key := identity{name: entry.Name, exec: entry.Exec}
	if cur, ok := m[key]; ok {
		if rank > cur.rank {
			cur.id = entry.ID
			cur.rank = rank
			cur.source = source
		}
		return
	}
	m[key] = &ranked{id: entry.ID, name: entry.Name, rank: rank, source: source}
}

// intersect keeps the candidates present in other, raising ranks to the
// better of the two
func (m candidateMap) intersect(other candidateMap) {
	for key, cur := range m {
		match, ok := other[key]
		if !ok {
			delete(m, key)
			continue
		}
		if match.rank > cur.rank {
			cur.rank = match.rank
		}
	}
}

// sorted orders candidates by rank then name, or by name alone
func (m candidateMap) sorted(alphabetical bool) []*ranked {
	list := make([]*ranked, 0, len(m))
	for _, r := range m {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !alphabetical && a.rank != b.rank {
			return a.rank > b.rank
		}
		if a.name != b.name {
			return a.name < b.name
		}
		return a.id < b.id
	})
	return list
}
