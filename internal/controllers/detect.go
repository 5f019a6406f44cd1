package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/etkecc/langdetect/internal/model"
)

type detectionService interface {
	Detect(ctx context.Context, text, accountID string) (*model.Detection, error)
	DetectMany(ctx context.Context, items []*model.DetectRequest) ([]*model.DetectResponse, error)
}

type languagesService interface {
	SupportedLanguagesNames(ctx context.Context) []*model.Language
}

// maxBatchSize limits amount of texts in a single batch request
const maxBatchSize = 1000

var errBatchTooBig = errors.New("too many items in the batch")

// detect language of the text. Responds with 204 No Content if there is nothing to detect
func detect(svc detectionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.DetectRequest
		if err := bindJSON(c, &req); err != nil {
			return errorResponse(c, http.StatusBadRequest, err)
		}

		ctx := c.Request().Context()
		detection, err := svc.Detect(ctx, req.Text, req.AccountID)
		if err != nil {
			return errorResponse(c, http.StatusInternalServerError, err)
		}
		detectionLog(ctx, detection)
		if detection == nil {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, detection)
	}
}

// detectBatch detects languages of multiple texts. Per-item failures are reported within items
func detectBatch(svc detectionService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var items []*model.DetectRequest
		if err := bindJSON(c, &items); err != nil {
			return errorResponse(c, http.StatusBadRequest, err)
		}
		if len(items) > maxBatchSize {
			return errorResponse(c, http.StatusRequestEntityTooLarge, errBatchTooBig)
		}
		for _, item := range items {
			if item == nil {
				return errorResponse(c, http.StatusBadRequest, errBadBody)
			}
		}

		// item errors are already included in the responses
		responses, _ := svc.DetectMany(c.Request().Context(), items) //nolint:errcheck // see above
		return c.JSON(http.StatusOK, responses)
	}
}

func languages(svc languagesService) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, svc.SupportedLanguagesNames(c.Request().Context()))
	}
}
