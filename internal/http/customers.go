package http

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmehdipour/custgen/internal/config"
	"github.com/jmehdipour/custgen/internal/export"
	"github.com/jmehdipour/custgen/internal/generator"
	"github.com/jmehdipour/custgen/internal/metrics"
	"github.com/jmehdipour/custgen/internal/service/dataset"
	"github.com/labstack/echo/v4"
)

const defaultPreviewCount = 50

var contentTypes = map[export.Format]string{
	export.FormatCSV:  "text/csv; charset=utf-8",
	export.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type previewHandler struct {
	svc        *dataset.Service
	gen        config.GeneratorConfig
	maxPreview int64
}

// options applies seed/start/count query overrides to the configured generator.
func (h *previewHandler) options(c echo.Context) (generator.Options, error) {
	opts, err := h.gen.Options()
	if err != nil {
		return opts, err
	}

	opts.Count = defaultPreviewCount
	if v := c.QueryParam("count"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return opts, echo.NewHTTPError(http.StatusBadRequest, "invalid count")
		}
		opts.Count = n
	}
	if h.maxPreview > 0 && opts.Count > h.maxPreview {
		opts.Count = h.maxPreview
	}
	if v := c.QueryParam("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, echo.NewHTTPError(http.StatusBadRequest, "invalid seed")
		}
		opts.Seed = n
	}
	if v := c.QueryParam("start"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return opts, echo.NewHTTPError(http.StatusBadRequest, "invalid start")
		}
		opts.SequenceStart = n
	}
	return opts, nil
}

func badRequest(c echo.Context, err error) error {
	if he, ok := err.(*echo.HTTPError); ok {
		return c.JSON(he.Code, map[string]any{"error": he.Message})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func (h *previewHandler) list(c echo.Context) error {
	metrics.PreviewRequests.WithLabelValues("customers").Inc()

	opts, err := h.options(c)
	if err != nil {
		return badRequest(c, err)
	}
	records, _, err := h.svc.Build(opts)
	if err != nil {
		return badRequest(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count":   len(records),
		"seed":    opts.Seed,
		"start":   opts.SequenceStart,
		"results": records,
	})
}

func (h *previewHandler) export(c echo.Context) error {
	metrics.PreviewRequests.WithLabelValues("export").Inc()

	format, err := export.ParseFormat(strings.TrimSpace(c.QueryParam("format")))
	if err != nil {
		return badRequest(c, err)
	}
	opts, err := h.options(c)
	if err != nil {
		return badRequest(c, err)
	}
	records, _, err := h.svc.Build(opts)
	if err != nil {
		return badRequest(c, err)
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, format, records); err != nil {
		c.Logger().Errorf("encode %s failed: %v", format, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "encode failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="customer`+format.Ext()+`"`)
	c.Response().Header().Set("X-Checksum-Sha256", export.Checksum(buf.Bytes()))
	return c.Blob(http.StatusOK, contentTypes[format], buf.Bytes())
}
