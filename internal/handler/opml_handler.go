package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"opmlkit/internal/service"
	"opmlkit/pkg/opml"
)

const maxOPMLSize = 5 << 20

type OPMLHandler struct {
	imports  service.ImportService
	exports  service.ExportService
	maxDepth int
}

type validateResponse struct {
	Valid   bool   `json:"valid"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewOPMLHandler(imports service.ImportService, exports service.ExportService, maxDepth int) *OPMLHandler {
	return &OPMLHandler{imports: imports, exports: exports, maxDepth: maxDepth}
}

func (h *OPMLHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/opml/validate", h.Validate)
	g.POST("/opml/convert", h.Convert)
	g.POST("/opml/import", h.Import)
	g.GET("/opml/export", h.Export)
}

// Validate parses the request body as OPML and reports the outcome without
// touching the store.
func (h *OPMLHandler) Validate(c echo.Context) error {
	reader, closer, err := h.openPayload(c)
	if err != nil {
		return err
	}
	defer closer()

	doc, parseErr := opml.ParseWithOptions(reader, opml.ParseOptions{MaxDepth: h.maxDepth})
	if parseErr != nil {
		return c.JSON(http.StatusBadRequest, validateResponse{Valid: false, Error: parseErr.Error()})
	}
	return c.JSON(http.StatusOK, validateResponse{Valid: true, Version: doc.Version})
}

// Convert parses the request body as OPML and returns the JSON view of the
// document. The pretty=1 query parameter switches to indented output.
func (h *OPMLHandler) Convert(c echo.Context) error {
	reader, closer, err := h.openPayload(c)
	if err != nil {
		return err
	}
	defer closer()

	doc, parseErr := opml.ParseWithOptions(reader, opml.ParseOptions{MaxDepth: h.maxDepth})
	if parseErr != nil {
		return c.JSON(http.StatusBadRequest, validateResponse{Valid: false, Error: parseErr.Error()})
	}

	payload, jsonErr := doc.JSON(c.QueryParam("pretty") == "1")
	if jsonErr != nil {
		return writeError(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSONBlob(http.StatusOK, payload)
}

func (h *OPMLHandler) Import(c echo.Context) error {
	reader, closer, err := h.openPayload(c)
	if err != nil {
		return err
	}
	defer closer()

	result, importErr := h.imports.Import(c.Request().Context(), reader)
	if importErr != nil {
		return writeServiceError(c, importErr)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *OPMLHandler) Export(c echo.Context) error {
	payload, err := h.exports.Export(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="opmlkit.opml"`)
	return c.Blob(http.StatusOK, "application/xml", payload)
}

// openPayload returns the OPML payload of the request, either from a
// multipart "file" field or from the raw body, capped at maxOPMLSize.
// A non-nil error means the error response has already been written.
func (h *OPMLHandler) openPayload(c echo.Context) (io.Reader, func(), error) {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxOPMLSize)

	contentType := req.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			if err == http.ErrMissingFile {
				return nil, nil, writeError(c, http.StatusBadRequest, "missing file")
			}
			return nil, nil, writeError(c, http.StatusBadRequest, "invalid request")
		}
		if file.Size > maxOPMLSize {
			return nil, nil, writeError(c, http.StatusRequestEntityTooLarge, "file too large")
		}
		src, err := file.Open()
		if err != nil {
			return nil, nil, writeError(c, http.StatusBadRequest, "invalid request")
		}
		return io.LimitReader(src, maxOPMLSize), func() { src.Close() }, nil
	}
	return io.LimitReader(req.Body, maxOPMLSize), func() {}, nil
}
