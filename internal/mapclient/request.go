package mapclient

import (
	"regexp"
	"strconv"

	"salesmap/internal/model"
)

// ExportSettings size the generated map image.
type ExportSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	DPI    int `json:"dpi"`
}

// RegionPayload is one region on the generate-map wire. Field names follow
// the backend contract: territories travel as "states" and the owner as
// "salesRep" plus a numeric "salesNumber".
type RegionPayload struct {
	Name        string   `json:"name"`
	States      []string `json:"states"`
	Color       string   `json:"color"`
	SalesRep    string   `json:"salesRep"`
	SalesNumber int64    `json:"salesNumber"`
}

// GenerateRequest is the full generate-map request body.
type GenerateRequest struct {
	Regions        []RegionPayload `json:"regions"`
	ExportSettings ExportSettings  `json:"exportSettings"`
}

var digitsOnly = regexp.MustCompile(`\D`)

// BuildGenerateRequest assembles the rendering payload from the workspace.
// An owner reference that does not resolve renders the same as unset: blank
// rep name, zero number.
func BuildGenerateRequest(regions []model.Region, owners *model.OwnerRegistry, opts ExportSettings) GenerateRequest {
	req := GenerateRequest{
		Regions:        make([]RegionPayload, 0, len(regions)),
		ExportSettings: opts,
	}
	for _, r := range regions {
		payload := RegionPayload{
			Name:   r.Name,
			States: append([]string(nil), r.Territories...),
			Color:  r.Color,
		}
		if owner, ok := owners.Get(r.OwnerID); ok {
			payload.SalesRep = owner.DisplayName()
			payload.SalesNumber = phoneNumber(owner.Phone)
		}
		req.Regions = append(req.Regions, payload)
	}
	return req
}

func phoneNumber(phone string) int64 {
	digits := digitsOnly.ReplaceAllString(phone, "")
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
