package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"foodbridge/internal/donation/handler/mocks"
	"foodbridge/internal/donation/models"
	"foodbridge/pkg/domain"
	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/geo"
)

type stubValidator struct {
	actor domain.Actor
}

func (v stubValidator) ValidateToken(token string) (domain.Actor, error) {
	if token != "valid-token" {
		return domain.Actor{}, errors.New("bad token")
	}
	return v.actor, nil
}

type DonationHandlerSuite struct {
	suite.Suite
	recipient domain.Actor
}

func (s *DonationHandlerSuite) SetupTest() {
	s.recipient = domain.Actor{ID: domain.NewUserID(), Name: "Bob Recipient", Role: domain.RoleRecipient}
}

func TestDonationHandlerSuite(t *testing.T) {
	suite.Run(t, new(DonationHandlerSuite))
}

func (s *DonationHandlerSuite) newHandler(t *testing.T) (*mocks.MockService, *mocks.MockLocationProvider, *chi.Mux) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	mockService := mocks.NewMockService(ctrl)
	mockLocations := mocks.NewMockLocationProvider(ctrl)
	h := New(mockService, mockLocations, stubValidator{actor: s.recipient}, logger)

	r := chi.NewRouter()
	h.Register(r)
	return mockService, mockLocations, r
}

func (s *DonationHandlerSuite) do(t *testing.T, router *chi.Mux, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func (s *DonationHandlerSuite) TestRoutesRejectMissingToken() {
	t := s.T()
	_, _, router := s.newHandler(t)

	for _, target := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/donations"},
		{http.MethodGet, "/donations"},
		{http.MethodGet, "/donations/nearby"},
		{http.MethodGet, "/location"},
		{http.MethodPost, "/donations/7/claim"},
		{http.MethodDelete, "/donations"},
		{http.MethodGet, "/donations/export"},
		{http.MethodPost, "/donations/import"},
	} {
		req := httptest.NewRequest(target.method, target.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", target.method, target.path)
	}
}

func (s *DonationHandlerSuite) TestCreateReturnsCreated() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		Create(gomock.Any(), gomock.Any(), s.recipient).
		Return(&models.Donation{ID: 1, Title: "rice"}, nil)

	status, body := s.do(t, router, http.MethodPost, "/donations",
		`{"title":"rice","lat":-1.286389,"lon":36.817223}`)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "rice", body["title"])
}

func (s *DonationHandlerSuite) TestCreateInvalidJSON() {
	t := s.T()
	_, _, router := s.newHandler(t)

	status, body := s.do(t, router, http.MethodPost, "/donations", "not json")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(dErrors.CodeBadRequest), body["error"])
}

func (s *DonationHandlerSuite) TestCreateMapsValidationError() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeValidation, "title is required"))

	status, body := s.do(t, router, http.MethodPost, "/donations", `{"title":""}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(dErrors.CodeValidation), body["error"])
	assert.Equal(t, "title is required", body["error_description"])
}

func (s *DonationHandlerSuite) TestFindNearbyWithExplicitCoordinates() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		FindNearby(gomock.Any(), geo.Coordinates{Lat: -1.286389, Lon: 36.817223}, 5.0).
		Return([]models.NearbyResult{{Donation: models.Donation{ID: 1, Title: "rice"}}})

	status, body := s.do(t, router, http.MethodGet,
		"/donations/nearby?lat=-1.286389&lon=36.817223&radius_km=5", "")

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
}

func (s *DonationHandlerSuite) TestFindNearbyDefaultsRadius() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		FindNearby(gomock.Any(), geo.Coordinates{Lat: 1, Lon: 2}, DefaultRadiusKm).
		Return(nil)

	status, body := s.do(t, router, http.MethodGet, "/donations/nearby?lat=1&lon=2", "")

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["count"])
}

func (s *DonationHandlerSuite) TestFindNearbyRejectsBadRadius() {
	t := s.T()
	_, _, router := s.newHandler(t)

	status, body := s.do(t, router, http.MethodGet, "/donations/nearby?lat=1&lon=2&radius_km=abc", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(dErrors.CodeBadRequest), body["error"])
}

func (s *DonationHandlerSuite) TestFindNearbyRejectsHalfCoordinates() {
	t := s.T()
	_, _, router := s.newHandler(t)

	status, _ := s.do(t, router, http.MethodGet, "/donations/nearby?lat=1", "")

	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *DonationHandlerSuite) TestFindNearbyUsesLocationProvider() {
	t := s.T()
	mockService, mockLocations, router := s.newHandler(t)

	resolved := geo.Coordinates{Lat: -1.3, Lon: 36.8}
	mockLocations.EXPECT().
		RequestCurrentLocation(gomock.Any(), gomock.Any()).
		Return(resolved, nil)
	mockService.EXPECT().
		FindNearby(gomock.Any(), resolved, DefaultRadiusKm).
		Return(nil)

	status, _ := s.do(t, router, http.MethodGet, "/donations/nearby", "")

	assert.Equal(t, http.StatusOK, status)
}

func (s *DonationHandlerSuite) TestFindNearbyFallsBackToBrowseMode() {
	t := s.T()
	mockService, mockLocations, router := s.newHandler(t)

	mockLocations.EXPECT().
		RequestCurrentLocation(gomock.Any(), gomock.Any()).
		Return(geo.Coordinates{}, dErrors.New(dErrors.CodeUnavailable, "no location known for client address"))
	mockService.EXPECT().
		FindNearby(gomock.Any(), gomock.Cond(func(origin geo.Coordinates) bool {
			return math.IsNaN(origin.Lat) && math.IsNaN(origin.Lon)
		}), DefaultRadiusKm).
		Return([]models.NearbyResult{{Donation: models.Donation{ID: 1}}})

	status, body := s.do(t, router, http.MethodGet, "/donations/nearby", "")

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])
}

func (s *DonationHandlerSuite) TestBrowseListsEverythingWithoutOrigin() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		FindNearby(gomock.Any(), gomock.Cond(func(origin geo.Coordinates) bool {
			return math.IsNaN(origin.Lat) && math.IsNaN(origin.Lon)
		}), 0.0).
		Return([]models.NearbyResult{
			{Donation: models.Donation{ID: 2, Title: "beans"}},
			{Donation: models.Donation{ID: 1, Title: "rice"}},
		})

	status, body := s.do(t, router, http.MethodGet, "/donations", "")

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["count"])
	results, ok := body["results"].([]any)
	require.True(t, ok)
	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "beans", first["title"])
	assert.NotContains(t, first, "distance_km")
}

func (s *DonationHandlerSuite) TestLocationReturnsResolvedCoordinates() {
	t := s.T()
	_, mockLocations, router := s.newHandler(t)

	mockLocations.EXPECT().
		RequestCurrentLocation(gomock.Any(), gomock.Any()).
		Return(geo.Coordinates{Lat: -1.3, Lon: 36.8}, nil)

	status, body := s.do(t, router, http.MethodGet, "/location", "")

	assert.Equal(t, http.StatusOK, status)
	assert.InDelta(t, -1.3, body["lat"], 0.0001)
	assert.InDelta(t, 36.8, body["lon"], 0.0001)
}

func (s *DonationHandlerSuite) TestLocationSurfacesProviderFailure() {
	t := s.T()
	_, mockLocations, router := s.newHandler(t)

	mockLocations.EXPECT().
		RequestCurrentLocation(gomock.Any(), gomock.Any()).
		Return(geo.Coordinates{}, dErrors.New(dErrors.CodeUnavailable, "no location known for client address"))

	status, body := s.do(t, router, http.MethodGet, "/location", "")

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, string(dErrors.CodeUnavailable), body["error"])
}

func (s *DonationHandlerSuite) TestLocationWithoutProviderIsUnavailable() {
	t := s.T()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(mocks.NewMockService(ctrl), nil, stubValidator{actor: s.recipient}, logger)
	r := chi.NewRouter()
	h.Register(r)

	status, body := s.do(t, r, http.MethodGet, "/location", "")

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, string(dErrors.CodeUnavailable), body["error"])
}

func (s *DonationHandlerSuite) TestClaimSuccess() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		Claim(gomock.Any(), domain.DonationID(7), s.recipient).
		Return(&models.Donation{ID: 7, Claimed: true}, nil)

	status, body := s.do(t, router, http.MethodPost, "/donations/7/claim", "")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["claimed"])
}

func (s *DonationHandlerSuite) TestClaimInvalidID() {
	t := s.T()
	_, _, router := s.newHandler(t)

	status, body := s.do(t, router, http.MethodPost, "/donations/abc/claim", "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(dErrors.CodeBadRequest), body["error"])
}

func (s *DonationHandlerSuite) TestClaimMapsConflict() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		Claim(gomock.Any(), domain.DonationID(7), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeConflict, "donation already claimed"))

	status, body := s.do(t, router, http.MethodPost, "/donations/7/claim", "")

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(dErrors.CodeConflict), body["error"])
}

func (s *DonationHandlerSuite) TestClaimMapsNotFound() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		Claim(gomock.Any(), domain.DonationID(99), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "donation not found"))

	status, _ := s.do(t, router, http.MethodPost, "/donations/99/claim", "")

	assert.Equal(t, http.StatusNotFound, status)
}

func (s *DonationHandlerSuite) TestClearAllNoContent() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().ClearAll(gomock.Any()).Return(nil)

	status, _ := s.do(t, router, http.MethodDelete, "/donations", "")

	assert.Equal(t, http.StatusNoContent, status)
}

func (s *DonationHandlerSuite) TestExportReturnsSnapshot() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		ExportSnapshot(gomock.Any()).
		Return(&models.Snapshot{Donations: []models.Donation{{ID: 1, Title: "rice"}}}, nil)

	status, body := s.do(t, router, http.MethodGet, "/donations/export", "")

	assert.Equal(t, http.StatusOK, status)
	donations, ok := body["donations"].([]any)
	require.True(t, ok)
	assert.Len(t, donations, 1)
}

func (s *DonationHandlerSuite) TestImportMapsMalformedData() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		ImportSnapshot(gomock.Any(), gomock.Any()).
		Return(dErrors.New(dErrors.CodeMalformedData, "duplicate donation id 1"))

	status, body := s.do(t, router, http.MethodPost, "/donations/import",
		`{"donations":[]}`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(dErrors.CodeMalformedData), body["error"])
}

func (s *DonationHandlerSuite) TestImportSuccess() {
	t := s.T()
	mockService, _, router := s.newHandler(t)

	mockService.EXPECT().
		ImportSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, snap *models.Snapshot) error {
			require.Len(t, snap.Donations, 0)
			return nil
		})

	status, body := s.do(t, router, http.MethodPost, "/donations/import", `{"donations":[]}`)

	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["imported"])
}
