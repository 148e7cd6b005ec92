package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gomotor/internal/catalog/entity"
	"github.com/shandysiswandi/gomotor/internal/catalog/usecase"
	"github.com/shandysiswandi/gomotor/internal/pkg/clock"
	"github.com/shandysiswandi/gomotor/internal/pkg/instrument"
	"github.com/shandysiswandi/gomotor/internal/pkg/jwt"
	"github.com/shandysiswandi/gomotor/internal/pkg/router"
	"github.com/shandysiswandi/gomotor/internal/pkg/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUC struct {
	listIn   usecase.ListVehiclesInput
	uploadID int64
	uploaded string
	deleted  int64
}

func (f *fakeUC) ListVehicles(_ context.Context, in usecase.ListVehiclesInput) (*usecase.ListVehiclesOutput, error) {
	f.listIn = in
	return &usecase.ListVehiclesOutput{
		Page:     max(in.Page, 1),
		Size:     12,
		Total:    1,
		Vehicles: []entity.Vehicle{{ID: 42, Slug: "2021-toyota-avanza-g-1a2b3c", Make: "Toyota"}},
	}, nil
}

func (f *fakeUC) GetVehicle(context.Context, usecase.GetVehicleInput) (*entity.Vehicle, error) {
	return &entity.Vehicle{ID: 42}, nil
}

func (f *fakeUC) GetVehicleSEO(context.Context, usecase.GetVehicleInput) (*usecase.VehicleSEO, error) {
	return &usecase.VehicleSEO{}, nil
}

func (f *fakeUC) ListMakes(context.Context) ([]entity.MakeCount, error) {
	return nil, nil
}

func (f *fakeUC) AdminListVehicles(ctx context.Context, in usecase.ListVehiclesInput) (*usecase.ListVehiclesOutput, error) {
	return f.ListVehicles(ctx, in)
}

func (f *fakeUC) AdminGetVehicle(context.Context, usecase.AdminGetVehicleInput) (*entity.Vehicle, error) {
	return &entity.Vehicle{ID: 42}, nil
}

func (f *fakeUC) CreateVehicle(context.Context, usecase.VehicleInput) (*entity.Vehicle, error) {
	return &entity.Vehicle{ID: 43, Status: entity.StatusDraft}, nil
}

func (f *fakeUC) UpdateVehicle(context.Context, usecase.UpdateVehicleInput) (*entity.Vehicle, error) {
	return &entity.Vehicle{ID: 42}, nil
}

func (f *fakeUC) UpdateVehicleStatus(context.Context, usecase.UpdateVehicleStatusInput) error {
	return nil
}

func (f *fakeUC) DeleteVehicle(_ context.Context, in usecase.DeleteVehicleInput) error {
	f.deleted = in.ID
	return nil
}

func (f *fakeUC) UploadVehicleImage(_ context.Context, in usecase.UploadVehicleImageInput) (*entity.VehicleImage, error) {
	data, err := io.ReadAll(in.File)
	if err != nil {
		return nil, err
	}
	f.uploadID = in.VehicleID
	f.uploaded = string(data)
	return &entity.VehicleImage{ID: 9, URL: "https://cdn.gomotor.test/v/42/9.jpg", Position: 1}, nil
}

func (f *fakeUC) DeleteVehicleImage(context.Context, usecase.DeleteVehicleImageInput) error {
	return nil
}

type server struct {
	router *router.Router
	jwt    *jwt.Symmetric
}

func newServer(t *testing.T, uc *fakeUC) *server {
	t.Helper()

	signer, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("s", 64)),
		Issuer: "gomotor",
		Clock:  clock.NewFrozen(time.Now()),
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	r := router.NewRouter(router.Config{
		UUID:       uid.NewUUID(),
		JWT:        signer,
		Instrument: instrument.NewNoop(),
		CookieName: "session",
	})
	RegisterHTTPEndpoint(r, uc)

	return &server{router: r, jwt: signer}
}

func (s *server) do(t *testing.T, req *http.Request, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()

	if signedIn {
		tok, err := s.jwt.Issue(jwt.Subject{AdminID: 1, Email: "admin@gomotor.test", Stage: jwt.StageFull})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "session", Value: tok.Value})
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func imageForm(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("caption", "front"))
	fw, err := mw.CreateFormFile(field, "front.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func TestListVehicles(t *testing.T) {
	t.Run("ParsesQuery", func(t *testing.T) {
		uc := &fakeUC{}
		s := newServer(t, uc)

		rec := s.do(t, httptest.NewRequest(http.MethodGet,
			"/api/v1/vehicles?q=+avanza+&make=Toyota&year_min=2018&year_max=2022&price_max=250000000&mileage_max=60000&featured=true&sort=price_asc&page=2&size=12", nil), false)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "avanza", uc.listIn.Search)
		assert.Equal(t, "Toyota", uc.listIn.Make)
		assert.Equal(t, 2018, uc.listIn.YearMin)
		assert.Equal(t, 2022, uc.listIn.YearMax)
		assert.Equal(t, int64(250000000), uc.listIn.PriceMax)
		assert.Equal(t, 60000, uc.listIn.MileageMax)
		require.NotNil(t, uc.listIn.Featured)
		assert.True(t, *uc.listIn.Featured)
		assert.Equal(t, "price_asc", uc.listIn.Sort)
		assert.Equal(t, 2, uc.listIn.Page)
		assert.Equal(t, 12, uc.listIn.Size)

		var body struct {
			Data VehiclesResponse `json:"data"`
			Meta map[string]any   `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data.Vehicles, 1)
		assert.Equal(t, "2021-toyota-avanza-g-1a2b3c", body.Data.Vehicles[0].Slug)
		assert.InDelta(t, 1, body.Meta["total"], 0)
		assert.InDelta(t, 2, body.Meta["page"], 0)
	})

	t.Run("FeaturedAbsentIsUnfiltered", func(t *testing.T) {
		uc := &fakeUC{}
		s := newServer(t, uc)

		rec := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil), false)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, uc.listIn.Featured)
	})

	tests := []struct {
		name  string
		query string
	}{
		{name: "BadYear", query: "year_min=twenty"},
		{name: "BadPrice", query: "price_min=1e9"},
		{name: "BadFeatured", query: "featured=maybe"},
		{name: "BadPage", query: "page=two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t, &fakeUC{})

			rec := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/vehicles?"+tt.query, nil), false)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodGet, path: "/api/v1/admin/vehicles"},
		{method: http.MethodPost, path: "/api/v1/admin/vehicles"},
		{method: http.MethodDelete, path: "/api/v1/admin/vehicles/42"},
		{method: http.MethodPost, path: "/api/v1/admin/vehicles/42/images"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			s := newServer(t, &fakeUC{})

			rec := s.do(t, httptest.NewRequest(tt.method, tt.path, nil), false)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminListVehicles(t *testing.T) {
	uc := &fakeUC{}
	s := newServer(t, uc)

	rec := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/admin/vehicles?status=draft", nil), true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "draft", uc.listIn.Status)
}

func TestCreateVehicle(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		s := newServer(t, &fakeUC{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/vehicles", strings.NewReader(`{"title":"Avanza G","make":"Toyota","year":2021}`))
		req.Header.Set("Content-Type", "application/json")

		rec := s.do(t, req, true)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"Vehicle created"`)
		assert.Contains(t, rec.Body.String(), `"id":"43"`)
	})

	t.Run("UnknownField", func(t *testing.T) {
		s := newServer(t, &fakeUC{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/vehicles", strings.NewReader(`{"title":"Avanza G","owner":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		rec := s.do(t, req, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteVehicle(t *testing.T) {
	t.Run("NoContent", func(t *testing.T) {
		uc := &fakeUC{}
		s := newServer(t, uc)

		rec := s.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/vehicles/42", nil), true)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(42), uc.deleted)
	})

	t.Run("BadID", func(t *testing.T) {
		s := newServer(t, &fakeUC{})

		rec := s.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/vehicles/abc", nil), true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUploadVehicleImage(t *testing.T) {
	t.Run("StreamsFilePart", func(t *testing.T) {
		uc := &fakeUC{}
		s := newServer(t, uc)
		body, contentType := imageForm(t, "file", "\xff\xd8\xff jpeg bytes")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/vehicles/42/images", body)
		req.Header.Set("Content-Type", contentType)

		rec := s.do(t, req, true)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(42), uc.uploadID)
		assert.Equal(t, "\xff\xd8\xff jpeg bytes", uc.uploaded)
		assert.Contains(t, rec.Body.String(), `"url":"https://cdn.gomotor.test/v/42/9.jpg"`)
	})

	t.Run("WrongFieldName", func(t *testing.T) {
		s := newServer(t, &fakeUC{})
		body, contentType := imageForm(t, "photo", "bytes")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/vehicles/42/images", body)
		req.Header.Set("Content-Type", contentType)

		rec := s.do(t, req, true)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"file":"file is required"`)
	})

	t.Run("NotMultipart", func(t *testing.T) {
		s := newServer(t, &fakeUC{})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/vehicles/42/images", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")

		rec := s.do(t, req, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
