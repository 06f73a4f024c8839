// Package exchange converts the in-memory workspace to and from the
// exchange document used for export and import. The document shape is fixed
// by the rendering backend: an owner array plus a map keyed by region name.
package exchange

import (
	"encoding/json"
	"fmt"
	"sort"

	"salesmap/internal/model"
)

// Document is the self-contained serialized workspace.
type Document struct {
	SalesPeople []SalesPerson          `json:"salesPeople"`
	Regions     map[string]RegionEntry `json:"regions"`
}

// SalesPerson mirrors model.Owner on the wire.
type SalesPerson struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// RegionEntry is the per-region payload. SalesPersonID may be empty, and on
// import may reference an owner missing from the document; the raw value is
// preserved either way.
type RegionEntry struct {
	Territories   []string `json:"territories"`
	Color         string   `json:"color"`
	SalesPersonID string   `json:"salesPersonId"`
}

// FromModel serializes owners verbatim and regions into the name-keyed map.
// Duplicate region names are last-write-wins; the store forbids them at
// commit time, so imported legacy documents are the only way to hit that.
func FromModel(owners []model.Owner, regions []model.Region) Document {
	doc := Document{
		SalesPeople: make([]SalesPerson, 0, len(owners)),
		Regions:     make(map[string]RegionEntry, len(regions)),
	}
	for _, o := range owners {
		doc.SalesPeople = append(doc.SalesPeople, SalesPerson{
			ID:        o.ID,
			FirstName: o.FirstName,
			LastName:  o.LastName,
			Email:     o.Email,
			Phone:     o.Phone,
		})
	}
	for _, r := range regions {
		doc.Regions[r.Name] = RegionEntry{
			Territories:   append([]string(nil), r.Territories...),
			Color:         r.Color,
			SalesPersonID: r.OwnerID,
		}
	}
	return doc
}

// ToModel deserializes the document. Owners come back in document order;
// regions come back sorted by name, since the map carries no order of its
// own. Owner references are not resolved here: a salesPersonId that matches
// no owner is kept as-is and treated as unset by the presentation layer.
func (d Document) ToModel() ([]model.Owner, []model.Region) {
	owners := make([]model.Owner, 0, len(d.SalesPeople))
	for _, sp := range d.SalesPeople {
		owners = append(owners, model.Owner{
			ID:        sp.ID,
			FirstName: sp.FirstName,
			LastName:  sp.LastName,
			Email:     sp.Email,
			Phone:     sp.Phone,
		})
	}

	names := make([]string, 0, len(d.Regions))
	for name := range d.Regions {
		names = append(names, name)
	}
	sort.Strings(names)

	regions := make([]model.Region, 0, len(names))
	for _, name := range names {
		entry := d.Regions[name]
		regions = append(regions, model.Region{
			Name:        name,
			OwnerID:     entry.SalesPersonID,
			Color:       entry.Color,
			Territories: append([]string(nil), entry.Territories...),
		})
	}
	return owners, regions
}

// Encode renders the document as indented JSON, matching the files the
// backend produces on export.
func Encode(d Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Decode parses an exchange document from JSON.
func Decode(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}
