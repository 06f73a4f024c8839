package mapclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"salesmap/internal/exchange"
	"salesmap/internal/model"
)

func TestGenerateMap(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/generate-map", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Regions, 1)
		require.Equal(t, "West", req.Regions[0].Name)
		require.Equal(t, 1600, req.ExportSettings.Width)

		w.Header().Set("Content-Disposition", `attachment; filename="west_map.png"`)
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer srv.Close()

	c := New(srv.URL)
	art, err := c.GenerateMap(context.Background(), GenerateRequest{
		Regions:        []RegionPayload{{Name: "West", States: []string{"Oregon"}}},
		ExportSettings: ExportSettings{Width: 1600, Height: 1000, DPI: 150},
	})
	require.NoError(t, err)
	require.Equal(t, "west_map.png", art.Filename)
	require.Equal(t, png, art.Data)
}

func TestGenerateMapBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "no regions provided"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GenerateMap(context.Background(), GenerateRequest{})
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "no regions provided", fe.Message)
}

func TestGenerateMapServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GenerateMap(context.Background(), GenerateRequest{})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.Equal(t, http.StatusInternalServerError, te.Status)
}

func TestGenerateMapUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.GenerateMap(context.Background(), GenerateRequest{})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	require.NotNil(t, errors.Unwrap(te))
}

func TestExportRegionsFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/export-regions", r.URL.Path)
		var doc exchange.Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))

		w.Header().Set("Content-Disposition", `attachment; filename=regions_export_20260101_120000.json`)
		json.NewEncoder(w).Encode(doc)
	}))
	defer srv.Close()

	c := New(srv.URL)
	art, err := c.ExportRegions(context.Background(), exchange.Document{Regions: map[string]exchange.RegionEntry{}})
	require.NoError(t, err)
	require.Equal(t, "regions_export_20260101_120000.json", art.Filename)
}

func TestExportRegionsFallbackFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	art, err := c.ExportRegions(context.Background(), exchange.Document{})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(art.Filename, "regions_export_"))
	require.True(t, strings.HasSuffix(art.Filename, ".json"))
}

func TestImportRegions(t *testing.T) {
	doc := exchange.Document{
		SalesPeople: []exchange.SalesPerson{{ID: "a1", FirstName: "Jane", LastName: "Doe"}},
		Regions: map[string]exchange.RegionEntry{
			"West": {Territories: []string{"Oregon"}, Color: "#e6194b", SalesPersonID: "a1"},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/import-regions", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "regions.json", header.Filename)

		var got exchange.Document
		require.NoError(t, json.NewDecoder(file).Decode(&got))
		json.NewEncoder(w).Encode(got)
	}))
	defer srv.Close()

	body, err := exchange.Encode(doc)
	require.NoError(t, err)

	c := New(srv.URL)
	got, err := c.ImportRegions(context.Background(), "/tmp/uploads/regions.json", strings.NewReader(string(body)))
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestImportRegionsRejectsNonJSONBeforeNetwork(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.ImportRegions(context.Background(), "regions.csv", strings.NewReader(""))
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "file must be JSON format", fe.Message)
}

func TestImportRegionsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a document"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ImportRegions(context.Background(), "regions.json", strings.NewReader("{}"))
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "invalid document format", fe.Message)
}

func TestBuildGenerateRequest(t *testing.T) {
	owners := model.NewOwnerRegistry()
	jane, err := owners.Add(model.OwnerFields{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "(555) 123-4567"})
	require.NoError(t, err)

	regions := []model.Region{
		{Name: "West", OwnerID: jane.ID, Color: "#e6194b", Territories: []string{"Oregon", "California"}},
		{Name: "Orphan", OwnerID: "ghost", Territories: []string{"Texas"}},
		{Name: "Open", Territories: nil},
	}

	req := BuildGenerateRequest(regions, owners, ExportSettings{Width: 800, Height: 600, DPI: 96})
	require.Len(t, req.Regions, 3)
	require.Equal(t, ExportSettings{Width: 800, Height: 600, DPI: 96}, req.ExportSettings)

	west := req.Regions[0]
	require.Equal(t, "Jane Doe", west.SalesRep)
	require.Equal(t, int64(5551234567), west.SalesNumber)
	require.Equal(t, []string{"Oregon", "California"}, west.States)

	// unresolved and unset owners render the same
	for _, p := range req.Regions[1:] {
		require.Empty(t, p.SalesRep)
		require.Zero(t, p.SalesNumber)
	}
}
