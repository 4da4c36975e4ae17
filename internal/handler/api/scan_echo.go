package api

import (
	"errors"
	"time"

	"FinScreen/internal/catalog"
	"FinScreen/internal/domain/models"
	domrepo "FinScreen/internal/domain/repository"
	"FinScreen/internal/screener"
	"FinScreen/internal/usecase"
	xhttp "FinScreen/pkg/http"
	xlogger "FinScreen/pkg/logger"
	"FinScreen/pkg/util"

	"github.com/labstack/echo/v4"
)

// ScanEchoHandler serves scans, catalogs and presets over Echo.
type ScanEchoHandler struct {
	logger  *xlogger.Logger
	runner  *usecase.ScanRunner
	presets *usecase.PresetService
}

func NewScanEchoHandler(logger *xlogger.Logger, runner *usecase.ScanRunner, presets *usecase.PresetService) *ScanEchoHandler {
	if logger == nil {
		logger = xlogger.NewNop()
	}
	return &ScanEchoHandler{logger: logger, runner: runner, presets: presets}
}

func (h *ScanEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/scans", h.RunScan)
	g.GET("/scans", h.ListScans)
	g.GET("/scans/:id", h.GetScan)
	g.GET("/catalogs/:screener", h.Catalog)

	p := g.Group("/presets")
	p.GET("", h.ListPresets)
	p.PUT("/:name", h.SavePreset)
	p.GET("/:name", h.GetPreset)
	p.DELETE("/:name", h.DeletePreset)
	p.POST("/:name/run", h.RunPreset)
}

func (h *ScanEchoHandler) RunScan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.runner.Run(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("scan failed", xlogger.String("screener", req.Screener), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.CreatedResponse(c, res)
}

func (h *ScanEchoHandler) ListScans(c echo.Context) error {
	req := &models.ScanListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	since := util.ParseTimeDefault(req.Since, time.Time{})
	limit := util.ParseIntDefault(req.Limit, 0)

	rows, err := h.runner.ListScans(c.Request().Context(), since, limit)
	if err != nil {
		h.logger.Error("list scans", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *ScanEchoHandler) GetScan(c echo.Context) error {
	req := &models.ScanIDRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.runner.GetScan(c.Request().Context(), req.ID)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")
	return xhttp.SuccessResponse(c, res)
}

type catalogResponse struct {
	Screener models.ScreenerKind `json:"screener"`
	Fields   []models.Field      `json:"fields"`
}

func (h *ScanEchoHandler) Catalog(c echo.Context) error {
	req := &models.CatalogRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	kind := models.ScreenerKind(req.Screener)
	cat, err := catalog.ForKind(kind)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.ValidationAppError("screener", err.Error()))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
	return xhttp.SuccessResponse(c, catalogResponse{Screener: kind, Fields: cat.Fields()})
}

func (h *ScanEchoHandler) ListPresets(c echo.Context) error {
	ps, err := h.presets.List(c.Request().Context())
	if err != nil {
		h.logger.Error("list presets", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.ListResponse(c, ps, int64(len(ps)))
}

func (h *ScanEchoHandler) SavePreset(c echo.Context) error {
	req := &models.PresetRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p, err := h.presets.Save(c.Request().Context(), req.Name, req.Description, req.Scan)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	h.logger.Info("preset saved", xlogger.String("name", p.Name))
	return xhttp.SuccessResponse(c, p)
}

func (h *ScanEchoHandler) GetPreset(c echo.Context) error {
	req := &models.PresetNameRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p, err := h.presets.Get(c.Request().Context(), req.Name)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, p)
}

func (h *ScanEchoHandler) DeletePreset(c echo.Context) error {
	req := &models.PresetNameRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.presets.Delete(c.Request().Context(), req.Name); err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.NoContentResponse(c)
}

func (h *ScanEchoHandler) RunPreset(c echo.Context) error {
	req := &models.PresetNameRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.presets.Run(c.Request().Context(), req.Name)
	if err != nil {
		h.logger.Warn("preset run failed", xlogger.String("name", req.Name), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.CreatedResponse(c, res)
}

// toAppError maps domain and screener errors onto API errors.
func toAppError(err error) error {
	var verr *screener.ValidationError
	var merr *screener.MalformedRequestError
	var rerr *xhttp.RequestError
	switch {
	case errors.As(err, &verr):
		return xhttp.ValidationAppError(verr.Field, verr.Error()).WithError(err)
	case errors.As(err, &merr):
		return xhttp.UpstreamErrorf("scanner request failed with status %d", merr.StatusCode).
			WithParams(map[string]interface{}{"status_code": merr.StatusCode, "url": merr.URL}).
			WithError(err)
	case errors.As(err, &rerr):
		return rerr
	case errors.Is(err, domrepo.ErrNotFound):
		return xhttp.NotFoundError(err.Error()).WithError(err)
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}
