// Package selection implements the dual-pane territory picker state: one
// logical universe split into an available partition and a chosen partition,
// each independently searchable and highlightable, with atomic bulk transfer
// between the two. It has no rendering or input dependencies; the TUI layer
// owns presentation.
package selection

import "strings"

// Side identifies one pane of the view.
type Side int

const (
	// SideAvailable is the left pane: catalog items not yet chosen.
	SideAvailable Side = iota
	// SideChosen is the right pane: the chosen set.
	SideChosen
)

// View is the selection state for a single edit session. The available
// partition is always derived as catalog minus chosen, so moving items never
// touches the catalog itself.
type View struct {
	catalog    []string
	chosen     map[string]struct{}
	queries    [2]string
	highlights [2]map[string]struct{}
}

// New builds a view over catalog with the given initial chosen set.
// Catalog order is preserved in both panes.
func New(catalog []string, chosen []string) *View {
	v := &View{
		catalog: append([]string(nil), catalog...),
		chosen:  make(map[string]struct{}, len(chosen)),
	}
	v.highlights[SideAvailable] = map[string]struct{}{}
	v.highlights[SideChosen] = map[string]struct{}{}
	for _, item := range chosen {
		v.chosen[item] = struct{}{}
	}
	return v
}

// SetQuery replaces the filter query for one side. Highlight state is
// independent of visibility: items hidden by the new query stay highlighted
// and remain transferable.
func (v *View) SetQuery(side Side, text string) {
	v.queries[side] = text
}

// Query returns the current filter text for one side.
func (v *View) Query(side Side) string {
	return v.queries[side]
}

// ToggleHighlight flips membership of item in the side's highlighted set.
// Toggling twice is a no-op.
func (v *View) ToggleHighlight(side Side, item string) {
	set := v.highlights[side]
	if _, ok := set[item]; ok {
		delete(set, item)
	} else {
		set[item] = struct{}{}
	}
}

// Highlighted reports whether item is highlighted on the given side.
func (v *View) Highlighted(side Side, item string) bool {
	_, ok := v.highlights[side][item]
	return ok
}

// HighlightCount returns the size of a side's highlighted set, including
// items currently hidden by the filter.
func (v *View) HighlightCount(side Side) int {
	return len(v.highlights[side])
}

// MoveToChosen adds every left-highlighted item to the chosen set and clears
// the left highlights. No-op when nothing is highlighted. The transfer keys
// off the highlighted set, not the visible rows, so filtered-out highlights
// move too.
func (v *View) MoveToChosen() {
	if len(v.highlights[SideAvailable]) == 0 {
		return
	}
	for item := range v.highlights[SideAvailable] {
		v.chosen[item] = struct{}{}
	}
	v.highlights[SideAvailable] = map[string]struct{}{}
}

// MoveToAvailable removes every right-highlighted item from the chosen set
// and clears the right highlights. No-op when nothing is highlighted.
func (v *View) MoveToAvailable() {
	if len(v.highlights[SideChosen]) == 0 {
		return
	}
	for item := range v.highlights[SideChosen] {
		delete(v.chosen, item)
	}
	v.highlights[SideChosen] = map[string]struct{}{}
}

// Available returns the left pane rows: catalog minus chosen, filtered by
// the left query, in catalog order.
func (v *View) Available() []string {
	var out []string
	for _, item := range v.catalog {
		if _, ok := v.chosen[item]; ok {
			continue
		}
		if !matches(item, v.queries[SideAvailable]) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Visible returns the filtered rows for either side.
func (v *View) Visible(side Side) []string {
	if side == SideAvailable {
		return v.Available()
	}
	return v.ChosenVisible()
}

// ChosenVisible returns the right pane rows: the chosen set filtered by the
// right query, in catalog order.
func (v *View) ChosenVisible() []string {
	var out []string
	for _, item := range v.catalog {
		if _, ok := v.chosen[item]; !ok {
			continue
		}
		if !matches(item, v.queries[SideChosen]) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Chosen returns the full chosen set regardless of filters, in catalog
// order. This is what gets folded back into the region draft on save.
func (v *View) Chosen() []string {
	var out []string
	for _, item := range v.catalog {
		if _, ok := v.chosen[item]; ok {
			out = append(out, item)
		}
	}
	return out
}

// matches is the case-insensitive substring filter shared by both panes.
func matches(item, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item), strings.ToLower(query))
}
