package jobs

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
	"placement-backend/internal/shared/storage/object"
)

const maxCatalogSize = 5 << 20 // 5MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.POST("/jobs/import", h.importCatalog)
}

func (h *Handler) list(c *gin.Context) {
	snap := h.Svc.Current()
	c.Set(middleware.CatalogVersionKey, snap.Version)
	respond.WithCatalogVersion(c, snap.Version)
	respond.OK(c, toListResponse(snap))
}

// importCatalog accepts either raw catalog text or a JSON body naming an
// object store key.
func (h *Handler) importCatalog(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCatalogSize)
	ctx := c.Request.Context()

	var (
		snap *Snapshot
		err  error
	)
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req importFromStoreRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
			return
		}
		snap, err = h.Svc.ImportFromStore(ctx, strings.TrimSpace(req.StorageKey))
	} else {
		body, readErr := io.ReadAll(c.Request.Body)
		if readErr != nil {
			var tooBig *http.MaxBytesError
			if errors.As(readErr, &tooBig) {
				respond.Error(c, http.StatusRequestEntityTooLarge, respond.CodePayloadTooBig, "catalog exceeds size limit", nil)
				return
			}
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unable to read body", nil)
			return
		}
		if strings.TrimSpace(string(body)) == "" {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "catalog body is required", nil)
			return
		}
		snap, err = h.Svc.Import(ctx, string(body))
	}

	if err != nil {
		writeImportError(c, err)
		return
	}

	c.Set(middleware.CatalogVersionKey, snap.Version)
	respond.WithCatalogVersion(c, snap.Version)
	respond.Created(c, toImportResponse(snap))
}

func writeImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, object.ErrInvalidKey):
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case errors.Is(err, object.ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "catalog source not found", nil)
	case errors.Is(err, ErrCatalogEmpty):
		respond.Error(c, http.StatusUnprocessableEntity, respond.CodeCatalogEmpty, err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to import catalog", nil)
	}
}
