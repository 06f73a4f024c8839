package model

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Owner is a sales person who can be assigned to own a region. ID is
// assigned at creation and never reused or mutated.
type Owner struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// DisplayName is the "First Last" form used in lists and map labels.
func (o Owner) DisplayName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// OwnerFields are the user-editable fields of an Owner.
type OwnerFields struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var nonDigit = regexp.MustCompile(`\D`)

// validateOwnerFields checks every field and reports all failures at once so
// a form can mark each bad field in a single pass.
func validateOwnerFields(f OwnerFields) *ValidationError {
	fields := map[string]string{}
	if strings.TrimSpace(f.FirstName) == "" {
		fields["firstName"] = "first name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		fields["lastName"] = "last name is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		fields["email"] = "enter a valid email address"
	}
	if !validPhone(f.Phone) {
		fields["phone"] = "enter a valid phone number"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// validPhone accepts an optional leading +1 country code followed by 9-15
// digits, ignoring separators.
func validPhone(phone string) bool {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return false
	}
	digits := nonDigit.ReplaceAllString(trimmed, "")
	if strings.HasPrefix(trimmed, "+1") && len(digits) > 0 {
		digits = digits[1:]
	}
	return len(digits) >= 9 && len(digits) <= 15
}

// OwnerRegistry owns the collection of owners. It stores only validated
// owners; all mutation goes through Add, Edit and Remove.
type OwnerRegistry struct {
	owners []Owner
}

func NewOwnerRegistry() *OwnerRegistry {
	return &OwnerRegistry{}
}

// Add validates fields, assigns a fresh identity and appends the owner.
// On validation failure nothing is added.
func (r *OwnerRegistry) Add(f OwnerFields) (Owner, error) {
	if ve := validateOwnerFields(f); ve != nil {
		return Owner{}, ve
	}
	o := Owner{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
	}
	r.owners = append(r.owners, o)
	return o, nil
}

// Edit replaces the fields of the owner with the given identity. The
// identity itself never changes.
func (r *OwnerRegistry) Edit(id string, f OwnerFields) (Owner, error) {
	idx := r.indexOf(id)
	if idx < 0 {
		return Owner{}, ErrNotFound
	}
	if ve := validateOwnerFields(f); ve != nil {
		return Owner{}, ve
	}
	o := Owner{
		ID:        id,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
	}
	r.owners[idx] = o
	return o, nil
}

// Remove deletes the owner and clears every reference to it in regions,
// including the active draft. The cascade happens inside this call so no
// region is ever observable pointing at a removed owner.
func (r *OwnerRegistry) Remove(id string, regions *RegionStore) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.owners = append(r.owners[:idx], r.owners[idx+1:]...)
	if regions != nil {
		regions.clearOwnerRef(id)
	}
	return nil
}

// Get returns the owner with the given identity.
func (r *OwnerRegistry) Get(id string) (Owner, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return Owner{}, false
	}
	return r.owners[idx], true
}

// List returns the owners in creation order.
func (r *OwnerRegistry) List() []Owner {
	return append([]Owner(nil), r.owners...)
}

func (r *OwnerRegistry) Len() int {
	return len(r.owners)
}

// Replace swaps the whole collection, used when importing a document.
// Imported owners keep their document identities verbatim.
func (r *OwnerRegistry) Replace(owners []Owner) {
	r.owners = append([]Owner(nil), owners...)
}

func (r *OwnerRegistry) indexOf(id string) int {
	for i := range r.owners {
		if r.owners[i].ID == id {
			return i
		}
	}
	return -1
}
