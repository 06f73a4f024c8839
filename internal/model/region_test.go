package model

import "testing"

func TestDraftStateMachine(t *testing.T) {
	s := NewRegionStore()
	if s.DraftState() != DraftNone {
		t.Fatalf("fresh store should have no draft")
	}

	d := s.StartDraft()
	if s.DraftState() != DraftNew || d == nil {
		t.Fatalf("StartDraft should open a new draft")
	}
	if d.Color != ColorUnset {
		t.Fatalf("new draft color should be the unset sentinel")
	}
	s.CancelDraft()
	if s.DraftState() != DraftNone || s.Draft() != nil {
		t.Fatalf("CancelDraft should clear the slot")
	}

	d = s.StartDraft()
	d.Name = "West"
	d.OwnerID = "owner-1"
	d.Territories = []string{"Oregon", "California", "Oregon"}
	if err := s.CommitDraft(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if s.DraftState() != DraftNone {
		t.Fatalf("commit should clear the draft")
	}
	if s.Len() != 1 {
		t.Fatalf("store should hold one region")
	}
	got, _ := s.Get(0)
	if len(got.Territories) != 2 {
		t.Fatalf("duplicate territories should collapse: %v", got.Territories)
	}
}

func TestCommitValidation(t *testing.T) {
	s := NewRegionStore()
	d := s.StartDraft()
	d.Territories = []string{"Nevada"}
	err := s.CommitDraft()
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.FieldError("name") == "" || ve.FieldError("owner") == "" {
		t.Fatalf("expected name and owner errors, got %v", ve.Fields)
	}
	// failed commit leaves the draft and the store untouched
	if s.DraftState() != DraftNew || s.Len() != 0 {
		t.Fatalf("failed commit should not mutate anything")
	}
}

func TestCommitRejectsDuplicateName(t *testing.T) {
	s := NewRegionStore()
	d := s.StartDraft()
	d.Name = "West"
	d.OwnerID = "o1"
	if err := s.CommitDraft(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	d = s.StartDraft()
	d.Name = "West"
	d.OwnerID = "o2"
	err := s.CommitDraft()
	if ve, ok := AsValidation(err); !ok || ve.FieldError("name") == "" {
		t.Fatalf("expected duplicate-name error, got %v", err)
	}

	// editing the region itself does not collide with its own name
	if _, err := s.StartEditDraft(0); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	if err := s.CommitDraft(); err != nil {
		t.Fatalf("re-committing under the same name should pass: %v", err)
	}
}

func TestEditDraftIsACopy(t *testing.T) {
	s := NewRegionStore()
	d := s.StartDraft()
	d.Name = "East"
	d.OwnerID = "o1"
	d.Territories = []string{"Maine"}
	if err := s.CommitDraft(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	draft, err := s.StartEditDraft(0)
	if err != nil {
		t.Fatalf("start edit: %v", err)
	}
	draft.Name = "Renamed"
	draft.Territories = append(draft.Territories, "Vermont")
	s.CancelDraft()

	got, _ := s.Get(0)
	if got.Name != "East" || len(got.Territories) != 1 {
		t.Fatalf("cancel leaked draft changes into the store: %+v", got)
	}

	draft, _ = s.StartEditDraft(0)
	draft.Name = "Renamed"
	if err := s.CommitDraft(); err != nil {
		t.Fatalf("commit edit: %v", err)
	}
	got, _ = s.Get(0)
	if got.Name != "Renamed" {
		t.Fatalf("commit should replace at the original index, got %+v", got)
	}
	if s.Len() != 1 {
		t.Fatalf("editing must not append, len = %d", s.Len())
	}
}

func TestRemoveCancelsDraftEditingSameIndex(t *testing.T) {
	s := NewRegionStore()
	for _, name := range []string{"A", "B", "C"} {
		d := s.StartDraft()
		d.Name = name
		d.OwnerID = "o1"
		if err := s.CommitDraft(); err != nil {
			t.Fatalf("commit %s: %v", name, err)
		}
	}

	if _, err := s.StartEditDraft(1); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	if err := s.Remove(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.DraftState() != DraftNone {
		t.Fatalf("removing the edited region should cancel the draft")
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestRemoveShiftsDraftIndex(t *testing.T) {
	s := NewRegionStore()
	for _, name := range []string{"A", "B", "C"} {
		d := s.StartDraft()
		d.Name = name
		d.OwnerID = "o1"
		if err := s.CommitDraft(); err != nil {
			t.Fatalf("commit %s: %v", name, err)
		}
	}

	if _, err := s.StartEditDraft(2); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	if err := s.Remove(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.DraftIndex() != 1 {
		t.Fatalf("draft index = %d, want 1 after shift", s.DraftIndex())
	}
	if err := s.CommitDraft(); err != nil {
		t.Fatalf("commit after shift: %v", err)
	}
	got, _ := s.Get(1)
	if got.Name != "C" {
		t.Fatalf("draft landed on the wrong region: %+v", got)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	s := NewRegionStore()
	if err := s.Remove(0); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := s.StartEditDraft(3); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
