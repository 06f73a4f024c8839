package model

import (
	"sort"
	"strings"
)

// ColorUnset is the sentinel for a region without an assigned display color.
const ColorUnset = ""

// Region is a named, colored grouping of territories assigned to at most
// one owner. OwnerID == "" means unset. Territories behave as a set.
type Region struct {
	Name        string
	OwnerID     string
	Color       string
	Territories []string
}

// HasTerritory reports set membership.
func (r Region) HasTerritory(name string) bool {
	for _, t := range r.Territories {
		if t == name {
			return true
		}
	}
	return false
}

// DraftState tracks the single in-progress region edit.
type DraftState int

const (
	// DraftNone means no edit session is active.
	DraftNone DraftState = iota
	// DraftNew means the draft will append a new region on commit.
	DraftNew
	// DraftEditing means the draft will replace the region at DraftIndex.
	DraftEditing
)

// RegionStore owns the persisted regions plus the single draft slot.
// Exactly one draft may be active; starting a draft replaces whatever
// was in the slot, so callers must serialize edit sessions.
type RegionStore struct {
	regions    []Region
	draft      *Region
	draftState DraftState
	draftIndex int
}

func NewRegionStore() *RegionStore {
	return &RegionStore{}
}

// StartDraft opens an empty draft for a new region.
func (s *RegionStore) StartDraft() *Region {
	s.draft = &Region{Color: ColorUnset}
	s.draftState = DraftNew
	s.draftIndex = -1
	return s.draft
}

// StartEditDraft copies the region at index into the draft. Committing
// applies the copy back at the same index; canceling leaves the stored
// region untouched.
func (s *RegionStore) StartEditDraft(index int) (*Region, error) {
	if index < 0 || index >= len(s.regions) {
		return nil, ErrNotFound
	}
	copied := s.regions[index]
	copied.Territories = append([]string(nil), copied.Territories...)
	s.draft = &copied
	s.draftState = DraftEditing
	s.draftIndex = index
	return s.draft, nil
}

// Draft returns the active draft, or nil when no edit session is open.
func (s *RegionStore) Draft() *Region {
	return s.draft
}

func (s *RegionStore) DraftState() DraftState {
	return s.draftState
}

// DraftIndex returns the index being edited, or -1 for a new draft.
func (s *RegionStore) DraftIndex() int {
	if s.draftState != DraftEditing {
		return -1
	}
	return s.draftIndex
}

// CommitDraft validates the draft and folds it into the store: replaced at
// the original index when editing, appended when new. The draft slot is
// cleared on success and untouched on failure.
func (s *RegionStore) CommitDraft() error {
	if s.draft == nil {
		return ErrNotFound
	}
	fields := map[string]string{}
	name := strings.TrimSpace(s.draft.Name)
	if name == "" {
		fields["name"] = "region name is required"
	} else if s.nameTaken(name) {
		fields["name"] = "a region with this name already exists"
	}
	if s.draft.OwnerID == "" {
		fields["owner"] = "assign a sales person"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	committed := *s.draft
	committed.Name = name
	committed.Territories = normalizeTerritories(s.draft.Territories)
	if s.draftState == DraftEditing {
		s.regions[s.draftIndex] = committed
	} else {
		s.regions = append(s.regions, committed)
	}
	s.resetDraft()
	return nil
}

// CancelDraft discards the draft unconditionally.
func (s *RegionStore) CancelDraft() {
	s.resetDraft()
}

// Remove deletes the region at index. Removing the region currently being
// edited cancels the draft; a draft editing a later region keeps tracking
// it across the shift.
func (s *RegionStore) Remove(index int) error {
	if index < 0 || index >= len(s.regions) {
		return ErrNotFound
	}
	s.regions = append(s.regions[:index], s.regions[index+1:]...)
	if s.draftState == DraftEditing {
		switch {
		case s.draftIndex == index:
			s.resetDraft()
		case s.draftIndex > index:
			s.draftIndex--
		}
	}
	return nil
}

// Get returns a copy of the region at index.
func (s *RegionStore) Get(index int) (Region, error) {
	if index < 0 || index >= len(s.regions) {
		return Region{}, ErrNotFound
	}
	r := s.regions[index]
	r.Territories = append([]string(nil), r.Territories...)
	return r, nil
}

// List returns copies of the persisted regions in order.
func (s *RegionStore) List() []Region {
	out := make([]Region, len(s.regions))
	for i, r := range s.regions {
		r.Territories = append([]string(nil), r.Territories...)
		out[i] = r
	}
	return out
}

func (s *RegionStore) Len() int {
	return len(s.regions)
}

// Replace swaps the whole collection and drops any draft, used when
// importing a document.
func (s *RegionStore) Replace(regions []Region) {
	s.regions = make([]Region, len(regions))
	for i, r := range regions {
		r.Territories = normalizeTerritories(r.Territories)
		s.regions[i] = r
	}
	s.resetDraft()
}

// clearOwnerRef unsets every reference to the given owner, draft included.
// Called from OwnerRegistry.Remove as part of the delete cascade.
func (s *RegionStore) clearOwnerRef(ownerID string) {
	for i := range s.regions {
		if s.regions[i].OwnerID == ownerID {
			s.regions[i].OwnerID = ""
		}
	}
	if s.draft != nil && s.draft.OwnerID == ownerID {
		s.draft.OwnerID = ""
	}
}

// nameTaken reports whether another persisted region already uses name.
// The region being edited does not collide with itself.
func (s *RegionStore) nameTaken(name string) bool {
	for i := range s.regions {
		if s.draftState == DraftEditing && i == s.draftIndex {
			continue
		}
		if s.regions[i].Name == name {
			return true
		}
	}
	return false
}

func (s *RegionStore) resetDraft() {
	s.draft = nil
	s.draftState = DraftNone
	s.draftIndex = -1
}

// normalizeTerritories deduplicates and sorts, giving set semantics a
// stable stored order.
func normalizeTerritories(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
