package resolver

import (
	"fmt"

	"github.com/arthur-debert/openwith/pkg/desktop"
	"github.com/arthur-debert/openwith/pkg/detect"
	"github.com/arthur-debert/openwith/pkg/keyfile"
	"github.com/arthur-debert/openwith/pkg/xdgdb"
)

// discover collects the candidates for an expanded MIME list
func (o *opContext) discover(mimes []string) candidateMap {
	m := make(candidateMap)
	n := len(mimes)
	if n == 0 {
		return m
	}

	if first := mimes[0]; o.xdgMime {
		if id := o.defaultApp(first); id != "" && !o.assoc.IsRemoved(first, id) {
			o.registerID(m, id, n*specificityMultiplier+rankGlobalDefault, "xdg-mime query default "+first)
		}
	}

	for i, mime := range mimes {
		specificity := (n - i) * specificityMultiplier

		if def, ok := o.assoc.Defaults[mime]; ok && !o.assoc.IsRemoved(mime, def.ID) {
			o.registerID(m, def.ID, specificity+rankMimeappsDefault,
				fmt.Sprintf("%s in [%s] for %s", def.Source, xdgdb.SectionDefault, mime))
		}
		for _, added := range o.assoc.Added[mime] {
			if o.assoc.IsRemoved(mime, added.ID) {
				continue
			}
			o.registerID(m, added.ID, specificity+rankMimeappsAdded,
				fmt.Sprintf("%s in [%s] for %s", added.Source, xdgdb.SectionAdded, mime))
		}
	}

	o.discoverFromIndex(m, mimes)
	return m
}

type score struct {
	rank   int
	source string
}

// discoverFromIndex ranks every indexed handler by its most specific match
// before registering it, so a generic type never demotes an application.
func (o *opContext) discoverFromIndex(m candidateMap, mimes []string) {
	n := len(mimes)
	best := make(map[string]*score)
	var order []string

	for i, mime := range mimes {
		rank := (n-i)*specificityMultiplier + rankCacheOrScan
		for _, h := range o.index.Lookup(mime) {
			if h.ID == "" || o.assoc.IsRemoved(mime, h.ID) {
				continue
			}
			var source string
			if o.index.Kind == xdgdb.KindFullScan {
				source = "full scan for " + mime
			} else {
				source = h.Source + " for " + mime
			}

			if cur, ok := best[h.ID]; ok {
				if rank > cur.rank {
					cur.rank = rank
					cur.source = source
				}
				continue
			}
			best[h.ID] = &score{rank: rank, source: source}
			order = append(order, h.ID)
		}
	}

	for _, id := range order {
		o.registerID(m, id, best[id].rank, best[id].source)
	}
}

// registerID loads the entry for id and merges it when it passes the filters
func (o *opContext) registerID(m candidateMap, id string, rank int, source string) {
	entry, ok := o.store.GetOrLoad(id)
	if !ok {
		return
	}
	if !o.accepts(entry) {
		return
	}
	m.merge(entry, rank, source)
}

func (o *opContext) accepts(entry *desktop.Entry) bool {
	if !entry.Analysis.Usable() {
		o.logger.Trace().Str("id", entry.ID).Msg("Skipping entry with unusable Exec")
		return false
	}
	if o.settings.ValidateTryExec && entry.TryExec != "" && !o.runner.LookPath(keyfile.Unescape(entry.TryExec)) {
		o.logger.Trace().Str("id", entry.ID).Str("tryExec", entry.TryExec).Msg("Skipping entry with missing TryExec")
		return false
	}
	if len(o.desktops) > 0 && !entry.ShownIn(o.desktops) {
		o.logger.Trace().Str("id", entry.ID).Msg("Skipping entry hidden in this desktop")
		return false
	}
	return true
}

// discoverProfile expands and discovers one detection profile
func (o *opContext) discoverProfile(p detect.Profile) candidateMap {
	mimes := o.expander.Expand(p)
	o.logger.Debug().
		Str("profile", p.String()).
		Strs("mimes", mimes).
		Msg("Expanded MIME types")
	return o.discover(mimes)
}

// discoverAll resolves each unique profile and intersects the results,
// starting from the smallest set. Any profile without handlers empties the
// whole result.
func (o *opContext) discoverAll(profiles []detect.Profile) candidateMap {
	if len(profiles) == 0 {
		return nil
	}

	sets := make([]candidateMap, 0, len(profiles))
	smallest := 0
	for _, p := range profiles {
		set := o.discoverProfile(p)
		if len(set) == 0 {
			return nil
		}
		if len(sets) > 0 && len(set) < len(sets[smallest]) {
			smallest = len(sets)
		}
		sets = append(sets, set)
	}

	result := sets[smallest]
	for i, set := range sets {
		if i == smallest {
			continue
		}
		result.intersect(set)
		if len(result) == 0 {
			return nil
		}
	}
	return result
}
