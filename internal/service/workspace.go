// Package service coordinates the in-memory model with the sqlite autosave
// and prepares imported documents for loading into the stores.
package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"salesmap/internal/catalog"
	"salesmap/internal/database"
	"salesmap/internal/database/repository"
	"salesmap/internal/exchange"
	"salesmap/internal/model"
)

// WorkspaceService snapshots the workspace after each committed mutation and
// restores it at startup. The exchange document stays the only interchange
// format; this is purely local persistence.
type WorkspaceService struct {
	DB      *sql.DB
	Owners  *repository.OwnerRepo
	Regions *repository.RegionRepo
}

// Save replaces the stored snapshot with the current workspace, atomically.
func (s *WorkspaceService) Save(ctx context.Context, owners []model.Owner, regions []model.Region) error {
	people := make([]repository.SalesPerson, 0, len(owners))
	for i, o := range owners {
		people = append(people, repository.SalesPerson{
			ID:        o.ID,
			FirstName: o.FirstName,
			LastName:  o.LastName,
			Email:     o.Email,
			Phone:     o.Phone,
			Position:  i,
		})
	}
	rows := make([]repository.Region, 0, len(regions))
	for i, r := range regions {
		rows = append(rows, repository.Region{
			Name:          r.Name,
			Color:         r.Color,
			SalesPersonID: r.OwnerID,
			Position:      i,
			Territories:   append([]string(nil), r.Territories...),
		})
	}
	return database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := s.Owners.ReplaceAll(ctx, tx, people); err != nil {
			return err
		}
		return s.Regions.ReplaceAll(ctx, tx, rows)
	})
}

// Load restores the last snapshot. An empty database yields empty slices.
func (s *WorkspaceService) Load(ctx context.Context) ([]model.Owner, []model.Region, error) {
	people, err := s.Owners.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.Regions.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	owners := make([]model.Owner, 0, len(people))
	for _, sp := range people {
		owners = append(owners, model.Owner{
			ID:        sp.ID,
			FirstName: sp.FirstName,
			LastName:  sp.LastName,
			Email:     sp.Email,
			Phone:     sp.Phone,
		})
	}
	regions := make([]model.Region, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, model.Region{
			Name:        row.Name,
			OwnerID:     row.SalesPersonID,
			Color:       row.Color,
			Territories: append([]string(nil), row.Territories...),
		})
	}
	return owners, regions, nil
}

// DroppedTerritory is an imported territory name that is not in the catalog,
// with the nearest catalog name when one is close enough to suggest.
type DroppedTerritory struct {
	Region     string
	Name       string
	Suggestion string
}

// ImportResult is a deserialized document resolved against the catalog.
type ImportResult struct {
	Owners  []model.Owner
	Regions []model.Region
	Dropped []DroppedTerritory
}

// suggestion cutoff: beyond this edit distance a name is just unknown.
const maxSuggestDistance = 3

// ResolveImport converts a document into model collections. Territory names
// outside the catalog are dropped from their region and reported with a
// nearest-match suggestion. Owner references are left untouched even when
// they resolve to nothing; the stores treat those as unset.
func ResolveImport(doc exchange.Document) ImportResult {
	owners, regions := doc.ToModel()
	res := ImportResult{Owners: owners}
	for _, r := range regions {
		kept := make([]string, 0, len(r.Territories))
		for _, t := range r.Territories {
			if catalog.Contains(t) {
				kept = append(kept, t)
				continue
			}
			res.Dropped = append(res.Dropped, DroppedTerritory{
				Region:     r.Name,
				Name:       t,
				Suggestion: nearestTerritory(t),
			})
		}
		r.Territories = kept
		res.Regions = append(res.Regions, r)
	}
	sort.Slice(res.Dropped, func(i, j int) bool {
		if res.Dropped[i].Region != res.Dropped[j].Region {
			return res.Dropped[i].Region < res.Dropped[j].Region
		}
		return res.Dropped[i].Name < res.Dropped[j].Name
	})
	return res
}

func nearestTerritory(name string) string {
	lower := strings.ToLower(name)
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, t := range catalog.All() {
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(t))
		if dist < bestDist {
			best = t
			bestDist = dist
		}
	}
	return best
}
