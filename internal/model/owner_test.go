package model

import "testing"

func validFields() OwnerFields {
	return OwnerFields{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "5551234567"}
}

func TestAddAssignsStableIdentity(t *testing.T) {
	reg := NewOwnerRegistry()
	o, err := reg.Add(validFields())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if o.ID == "" {
		t.Fatalf("expected identity to be assigned")
	}

	edited, err := reg.Edit(o.ID, validFields())
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ID != o.ID {
		t.Fatalf("identity changed across edit: %s != %s", edited.ID, o.ID)
	}
}

func TestAddIdentitiesUnique(t *testing.T) {
	reg := NewOwnerRegistry()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		o, err := reg.Add(validFields())
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[o.ID] {
			t.Fatalf("identity %s reused", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestAddValidationFailureMutatesNothing(t *testing.T) {
	reg := NewOwnerRegistry()
	f := validFields()
	f.Email = "not-an-email"
	_, err := reg.Add(f)
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.FieldError("email") == "" {
		t.Fatalf("expected email field error")
	}
	// only the email field is bad
	for _, field := range []string{"firstName", "lastName", "phone"} {
		if ve.FieldError(field) != "" {
			t.Fatalf("unexpected error on %s: %s", field, ve.FieldError(field))
		}
	}
	if reg.Len() != 0 {
		t.Fatalf("registry should be empty after failed add")
	}
}

func TestValidationCollectsAllBadFields(t *testing.T) {
	reg := NewOwnerRegistry()
	_, err := reg.Add(OwnerFields{})
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"firstName", "lastName", "email", "phone"} {
		if ve.FieldError(field) == "" {
			t.Fatalf("expected error on %s", field)
		}
	}
}

func TestPhoneValidation(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"5551234567", true},
		{"555-123-4567", true},
		{"+1 (555) 123-4567", true},
		{"123456789", true},
		{"12345678", false},
		{"", false},
		{"1234567890123456", false},
	}
	for _, tc := range cases {
		if got := validPhone(tc.phone); got != tc.ok {
			t.Fatalf("validPhone(%q) = %v, want %v", tc.phone, got, tc.ok)
		}
	}
}

func TestEditAbsentIdentity(t *testing.T) {
	reg := NewOwnerRegistry()
	if _, err := reg.Edit("missing", validFields()); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := reg.Remove("missing", nil); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveCascadesIntoRegions(t *testing.T) {
	reg := NewOwnerRegistry()
	store := NewRegionStore()

	jane, err := reg.Add(validFields())
	if err != nil {
		t.Fatalf("add jane: %v", err)
	}
	other, err := reg.Add(OwnerFields{FirstName: "Sam", LastName: "Roe", Email: "sam@x.com", Phone: "5559876543"})
	if err != nil {
		t.Fatalf("add sam: %v", err)
	}

	mustCommit := func(name, ownerID string) {
		d := store.StartDraft()
		d.Name = name
		d.OwnerID = ownerID
		if err := store.CommitDraft(); err != nil {
			t.Fatalf("commit %s: %v", name, err)
		}
	}
	mustCommit("West", jane.ID)
	mustCommit("East", jane.ID)
	mustCommit("North", other.ID)

	// draft referencing jane must be cleared too
	draft := store.StartDraft()
	draft.Name = "South"
	draft.OwnerID = jane.ID

	if err := reg.Remove(jane.ID, store); err != nil {
		t.Fatalf("remove: %v", err)
	}

	regions := store.List()
	if regions[0].OwnerID != "" || regions[1].OwnerID != "" {
		t.Fatalf("regions owned by removed owner should be unset: %+v", regions)
	}
	if regions[2].OwnerID != other.ID {
		t.Fatalf("unrelated region was touched: %+v", regions[2])
	}
	if store.Draft().OwnerID != "" {
		t.Fatalf("draft ownerRef should be cleared by the cascade")
	}

	// committing without re-selecting an owner fails validation
	if err := store.CommitDraft(); err == nil {
		t.Fatalf("expected validation error after cascade cleared the draft owner")
	} else if ve, ok := AsValidation(err); !ok || ve.FieldError("owner") == "" {
		t.Fatalf("expected owner field error, got %v", err)
	}
}
