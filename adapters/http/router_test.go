package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mozzabt/portfolio/adapters/persistence"
	overrideUC "github.com/mozzabt/portfolio/internal/application/usecase/override"
	profileUC "github.com/mozzabt/portfolio/internal/application/usecase/profile"
	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/apperror"
	"github.com/mozzabt/portfolio/pkg/logger"
)

type RouterTestSuite struct {
	suite.Suite
	router  *gin.Engine
	storage *persistence.MemorySlotStorage
	store   *overrideUC.Store
	bundled portfolio.BundledDataset
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()

	s.storage = persistence.NewMemorySlotStorage()
	s.store = overrideUC.NewStore(s.storage, portfolio.NewSlotKeys(""), nil, log)
	_, err := s.store.Load(context.Background())
	s.Require().NoError(err)
	s.bundled = portfolio.Bundled()

	admin := NewAdminHandler(s.store, log)
	admin.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }

	s.router = NewRouter(RouterDeps{
		PortfolioHandler: NewPortfolioHandler(profileUC.NewProfileUseCase(s.store, nil), log),
		AdminHandler:     admin,
		Logger:           log,
	})
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (s *RouterTestSuite) Test_Health() {
	w := s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"UP"}`, w.Body.String())
}

func (s *RouterTestSuite) Test_AddProject_DefaultsYearAndPrepends() {
	w := s.do(http.MethodPost, "/api/admin/overrides/projects", ProjectRequest{Title: "First", Stack: []string{"Go"}})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/admin/overrides/project", ProjectRequest{Title: "Second", Year: "2024"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var state OverrideStateDTO
	s.decode(w, &state)
	s.Require().Len(state.Projects, 2)
	s.Equal("Second", state.Projects[0].Title)
	s.Equal("2031", state.Projects[1].Year)
	s.True(state.IsDefault)

	w = s.do(http.MethodGet, "/api/projects", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var merged []portfolio.ProjectEntry
	s.decode(w, &merged)
	s.Len(merged, 2+len(s.bundled.Projects))
	s.Equal(s.bundled.Projects[0].Title, merged[2].Title)
}

func (s *RouterTestSuite) Test_AddExperience_DefaultsType() {
	w := s.do(http.MethodPost, "/api/admin/overrides/experience", ExperienceRequest{Role: "SRE", Achievements: []string{"Paged less"}})
	s.Require().Equal(http.StatusCreated, w.Code)

	s.Equal(DefaultExperienceType, s.store.State().Experience[0].Type)
}

func (s *RouterTestSuite) Test_AddSkill_BlankItemRejected() {
	w := s.do(http.MethodPost, "/api/admin/overrides/skills", SkillRequest{Category: "Ops", Items: []string{"Docker", ""}})
	s.Equal(http.StatusBadRequest, w.Code)

	var body map[string]string
	s.decode(w, &body)
	s.Equal("invalid input", body["error"])
	s.Contains(body["details"], "items[1]")
	s.Empty(s.store.State().Skills)
}

func (s *RouterTestSuite) Test_AddProject_BlankStackRejectedByBinding() {
	w := s.do(http.MethodPost, "/api/admin/overrides/projects", ProjectRequest{Title: "X", Stack: []string{"Go", "  "}})
	s.Equal(http.StatusBadRequest, w.Code)

	var body map[string]string
	s.decode(w, &body)
	s.Equal("stack[1]: list items must not be blank", body["details"])
	s.Empty(s.store.State().Projects)
}

func (s *RouterTestSuite) Test_UnknownRoute() {
	w := s.do(http.MethodGet, "/api/hobbies", nil)
	s.Equal(http.StatusNotFound, w.Code)

	var body map[string]string
	s.decode(w, &body)
	s.Equal("not found", body["error"])
}

func (s *RouterTestSuite) Test_AddOverride_UnknownKindAndBadJSON() {
	w := s.do(http.MethodPost, "/api/admin/overrides/hobbies", SkillRequest{Category: "x"})
	s.Equal(http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/overrides/skills", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) Test_DeleteOverride() {
	for _, c := range []string{"A", "B"} {
		w := s.do(http.MethodPost, "/api/admin/overrides/skills", SkillRequest{Category: c, Items: []string{}})
		s.Require().Equal(http.StatusCreated, w.Code)
	}

	w := s.do(http.MethodDelete, "/api/admin/overrides/skills/0", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var state OverrideStateDTO
	s.decode(w, &state)
	s.Require().Len(state.Skills, 1)
	s.Equal("A", state.Skills[0].Category)

	// out of range is a no-op, not an error
	w = s.do(http.MethodDelete, "/api/admin/overrides/skills/9", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.store.State().Skills, 1)

	w = s.do(http.MethodDelete, "/api/admin/overrides/skills/first", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) Test_HeroImage_UploadAndReset() {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="me.png"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := mw.CreatePart(h)
	s.Require().NoError(err)
	_, err = part.Write(png)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/admin/hero-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var state OverrideStateDTO
	s.decode(w, &state)
	s.Equal(portfolio.DataURI("image/png", png), state.HeroImage)
	s.False(state.IsDefault)

	w = s.do(http.MethodGet, "/api/portfolio", nil)
	var dto PortfolioDTO
	s.decode(w, &dto)
	s.Equal(state.HeroImage, dto.HeroImageSrc)

	w = s.do(http.MethodDelete, "/api/admin/hero-image", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &state)
	s.True(state.IsDefault)
	_, ok, err := s.storage.Read(context.Background(), portfolio.NewSlotKeys("").ProfileImage)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RouterTestSuite) Test_HeroImage_MissingFile() {
	w := s.do(http.MethodPut, "/api/admin/hero-image", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) Test_Export() {
	w := s.do(http.MethodPost, "/api/admin/overrides/experience", ExperienceRequest{Role: "R", Achievements: []string{}})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/api/admin/export", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "application/json")

	var snap portfolio.Snapshot
	s.decode(w, &snap)
	s.Len(snap.Experience, 1)
	s.Empty(snap.Projects)
	s.NotContains(w.Body.String(), s.bundled.Experience[0].Company)
}

func (s *RouterTestSuite) Test_Portfolio() {
	w := s.do(http.MethodGet, "/api/portfolio", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var dto PortfolioDTO
	s.decode(w, &dto)
	s.Equal(s.bundled.Profile.Name, dto.Profile.Name)
	s.Equal("/static/"+portfolio.DefaultHeroImage, dto.HeroImageSrc)
	s.Equal(portfolio.FallbackHeroImageURL, dto.FallbackImage)
	s.Equal(s.bundled.Skills, dto.Skills)
}

func (s *RouterTestSuite) Test_Index_RendersMergedSections() {
	w := s.do(http.MethodPost, "/api/admin/overrides/skills", SkillRequest{Category: "Observability", Items: []string{"OpenTelemetry"}})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	html := w.Body.String()

	s.Contains(html, s.bundled.Profile.Name)
	s.Contains(html, `src="/static/profile.jpeg"`)
	s.Contains(html, "OpenTelemetry")
	s.Less(strings.Index(html, "<h3>Observability</h3>"), strings.Index(html, "<h3>"+s.bundled.Skills[0].Category+"</h3>"))
	for _, id := range []string{"about", "experience", "skills", "projects", "contact"} {
		s.Contains(html, `id="`+id+`"`)
	}
}

// downStorage stands in for a backend that cannot be reached.
type downStorage struct{}

func (downStorage) Read(context.Context, string) (string, bool, error) {
	return "", false, apperror.NewUnavailable("redis get", errors.New("connection refused"))
}

func (downStorage) Write(context.Context, string, string) error {
	return apperror.NewUnavailable("redis set", errors.New("connection refused"))
}

func (downStorage) Remove(context.Context, string) error {
	return apperror.NewUnavailable("redis del", errors.New("connection refused"))
}

func TestRouter_StorageUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	store := overrideUC.NewStore(downStorage{}, portfolio.NewSlotKeys(""), nil, log)
	router := NewRouter(RouterDeps{
		PortfolioHandler: NewPortfolioHandler(profileUC.NewProfileUseCase(store, nil), log),
		AdminHandler:     NewAdminHandler(store, log),
		Logger:           log,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/overrides/skills", strings.NewReader(`{"category":"A","items":["x"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "service unavailable")
}

func TestMediaTypeOf(t *testing.T) {
	gif := []byte("GIF89a\x01\x00\x01\x00")
	assert.Equal(t, "image/jpeg", mediaTypeOf("image/jpeg", gif))
	assert.Equal(t, "image/gif", mediaTypeOf("application/octet-stream", gif))
	assert.Equal(t, "image/gif", mediaTypeOf("", gif))
	assert.Equal(t, "text/plain", mediaTypeOf("", []byte("hello")))
}
