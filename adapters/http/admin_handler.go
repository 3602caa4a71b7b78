package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/apperror"
	"github.com/mozzabt/portfolio/pkg/logger"
)

// OverrideStore is what the admin console needs from the override store.
type OverrideStore interface {
	State() portfolio.OverrideState
	Add(ctx context.Context, rec portfolio.Record) (portfolio.OverrideState, error)
	Delete(ctx context.Context, kind portfolio.Kind, index int) (portfolio.OverrideState, error)
	SetHeroImage(ctx context.Context, dataURI string) error
	ResetHeroImage(ctx context.Context) error
	ExportSnapshot() (string, error)
}

// AdminHandler serves the owner console. There is no authentication.
type AdminHandler struct {
	store  OverrideStore
	logger logger.Logger
	now    func() time.Time
}

func NewAdminHandler(store OverrideStore, log logger.Logger) *AdminHandler {
	return &AdminHandler{store: store, logger: log, now: time.Now}
}

func (h *AdminHandler) GetOverrides(c *gin.Context) {
	c.JSON(http.StatusOK, ToOverrideStateDTO(h.store.State()))
}

func (h *AdminHandler) AddOverride(c *gin.Context) {
	kind, err := portfolio.ParseKind(c.Param("kind"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("unknown collection", err))
		return
	}

	var rec portfolio.Record
	switch kind {
	case portfolio.KindExperience:
		var req ExperienceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(bindError("invalid experience data", err))
			return
		}
		rec = req.ToDomain()
	case portfolio.KindProject:
		var req ProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(bindError("invalid project data", err))
			return
		}
		rec = req.ToDomain(h.now())
	case portfolio.KindSkill:
		var req SkillRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(bindError("invalid skill data", err))
			return
		}
		rec = req.ToDomain()
	}

	state, err := h.store.Add(c.Request.Context(), rec)
	if err != nil {
		c.Error(err)
		return
	}
	h.logger.Info("Override added", zap.String("kind", kind.String()), zap.Int("count", state.Len(kind)))
	c.JSON(http.StatusCreated, ToOverrideStateDTO(state))
}

func (h *AdminHandler) DeleteOverride(c *gin.Context) {
	kind, err := portfolio.ParseKind(c.Param("kind"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("unknown collection", err))
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("index must be an integer", err))
		return
	}

	state, err := h.store.Delete(c.Request.Context(), kind, index)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToOverrideStateDTO(state))
}

// UploadHeroImage accepts any file and stores it inline as a data URI.
func (h *AdminHandler) UploadHeroImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.NewInternal("failed to read file", err))
		return
	}

	dataURI := portfolio.DataURI(mediaTypeOf(fileHeader.Header.Get("Content-Type"), data), data)
	if err := h.store.SetHeroImage(c.Request.Context(), dataURI); err != nil {
		c.Error(err)
		return
	}
	h.logger.Info("Hero image updated",
		zap.String("original_filename", fileHeader.Filename),
		zap.Int64("size", fileHeader.Size),
	)
	c.JSON(http.StatusOK, ToOverrideStateDTO(h.store.State()))
}

func (h *AdminHandler) ResetHeroImage(c *gin.Context) {
	if err := h.store.ResetHeroImage(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToOverrideStateDTO(h.store.State()))
}

// Export returns the snapshot text for the operator to copy.
func (h *AdminHandler) Export(c *gin.Context) {
	snapshot, err := h.store.ExportSnapshot()
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(snapshot))
}

// bindError keeps the positional detail of a failed binding rule, e.g.
// "items[1]: list items must not be blank".
func bindError(msg string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		verr := portfolio.ValidationError(verrs)
		return apperror.NewInvalidInput(verr.Error(), verr)
	}
	return apperror.NewInvalidInput(msg, err)
}

// mediaTypeOf prefers the declared type and sniffs the bytes otherwise.
// Parameters such as charset are dropped; they do not belong in a data URI.
func mediaTypeOf(declared string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
		return mt
	}
	mt, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		return "application/octet-stream"
	}
	return mt
}
