package placements

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/profiles"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
	"placement-backend/internal/shared/util"
)

const defaultMaxUploadSize = 5 << 20 // 5MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	MaxUploadSize int64
}

// NewHandler constructs a Handler. maxUploadSize <= 0 selects the default.
func NewHandler(svc *Service, maxUploadSize int64) *Handler {
	if maxUploadSize <= 0 {
		maxUploadSize = defaultMaxUploadSize
	}
	return &Handler{Svc: svc, MaxUploadSize: maxUploadSize}
}

// RegisterRoutes attaches scoring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/matches", h.match)
	rg.POST("/matches/explore", h.explore)
	rg.POST("/predictions", h.predict)
	rg.POST("/profiles/extract", h.extract)
}

type skillsRequest struct {
	Skills []string `json:"skills"`
}

func (h *Handler) match(c *gin.Context) {
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	res, err := h.Svc.Match(c.Request.Context(), req.Skills)
	if err != nil {
		writeError(c, err)
		return
	}
	annotate(c, res.CatalogVersion, len(res.Matches))
	respond.OK(c, res)
}

func (h *Handler) explore(c *gin.Context) {
	var req skillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	res, err := h.Svc.Explore(c.Request.Context(), req.Skills)
	if err != nil {
		writeError(c, err)
		return
	}
	annotate(c, res.CatalogVersion, len(res.Matches))
	respond.OK(c, res)
}

func (h *Handler) predict(c *gin.Context) {
	var profile profiles.CandidateProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	res, err := h.Svc.Assess(c.Request.Context(), profile)
	if err != nil {
		writeError(c, err)
		return
	}
	annotate(c, res.CatalogVersion, len(res.Matches))
	respond.OK(c, res)
}

func (h *Handler) extract(c *gin.Context) {
	if c.Request.ContentLength > h.MaxUploadSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooBig, "file exceeds size limit", nil)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooBig, "file exceeds size limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "file is required", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read file", nil)
		return
	}

	res, err := h.Svc.ExtractProfile(c.Request.Context(), profiles.Upload{
		FileName:    fileName,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	annotate(c, res.CatalogVersion, len(res.Matches))
	respond.OK(c, res)
}

func annotate(c *gin.Context, catalogVersion string, matches int) {
	c.Set(middleware.CatalogVersionKey, catalogVersion)
	c.Set(middleware.MatchCountKey, matches)
	respond.WithCatalogVersion(c, catalogVersion)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		var details interface{}
		if fields := profiles.FieldErrors(err); fields != nil {
			details = fields
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid candidate profile", details)
	case errors.Is(err, profiles.ErrUnsupportedFile):
		respond.Error(c, http.StatusUnsupportedMediaType, respond.CodeUnsupported, "only PDF and DOCX files are supported", nil)
	case errors.Is(err, profiles.ErrUnreadableFile):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeValidation, "file could not be read as a document", nil)
	case errors.Is(err, ErrCatalogEmpty):
		respond.Error(c, http.StatusServiceUnavailable, respond.CodeCatalogEmpty, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to score candidate", nil)
	}
}
