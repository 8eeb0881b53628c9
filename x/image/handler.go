package image

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voidarchive/archive/core"
)

// Handler is the interface for handling image HTTP requests
type Handler interface {
	Upload(c echo.Context) error
	Serve(c echo.Context) error
}

type handler struct {
	service core.ImageService
}

// NewHandler creates a new handler
func NewHandler(service core.ImageService) Handler {
	return &handler{service: service}
}

// Upload stores a multipart "file" field under the "folder" form value
func (h handler) Upload(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Image.Handler.Upload")
	defer span.End()

	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "file is required"})
	}

	if header.Size > core.MaxImageSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": core.NewErrorImageTooLarge().Error()})
	}

	file, err := header.Open()
	if err != nil {
		span.RecordError(err)
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, core.MaxImageSize+1))
	if err != nil {
		span.RecordError(err)
		return err
	}

	url, err := h.service.Upload(ctx, data, header.Filename, header.Header.Get("Content-Type"), c.FormValue("folder"))
	if err != nil {
		var invalidImage core.ErrorInvalidImage
		var tooLarge core.ErrorImageTooLarge
		if errors.As(err, &invalidImage) || errors.As(err, &tooLarge) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		span.RecordError(err)
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": url})
}

// Serve streams a public bucket object
func (h handler) Serve(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Image.Handler.Serve")
	defer span.End()

	data, err := h.service.Open(ctx, c.Param("*"))
	if err != nil {
		if errors.Is(err, core.NewErrorNotFound()) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Object not found"})
		}
		span.RecordError(err)
		return err
	}

	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}
