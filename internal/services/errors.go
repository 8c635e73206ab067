package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/senyabanana/rfq-desk/internal/models"
	"github.com/senyabanana/rfq-desk/internal/repository"
	"github.com/senyabanana/rfq-desk/internal/workflow"
)

// validationErrors - ошибки ввода закупщика, отвечаем 400.
var validationErrors = []error{
	workflow.ErrNotANumber,
	workflow.ErrNegativePrice,
	workflow.ErrPercentOutOfRange,
	workflow.ErrAboveCostPrice,
	workflow.ErrInvalidOfferType,
	workflow.ErrInvalidPriority,
	workflow.ErrInvalidTab,
	workflow.ErrUnknownItem,
	workflow.ErrUnknownVendor,
	workflow.ErrNoVendorOffers,
	workflow.ErrNothingStaged,
	workflow.ErrNotCollected,
	workflow.ErrEmptyCounterBatch,
	workflow.ErrEmptyArcBatch,
	workflow.ErrMissingApprover,
}

// mapError переводит ошибки workflow и репозитория в ErrorResponse.
func mapError(err error) error {
	if errorResponse, ok := models.AsErrorResponse(err); ok {
		return errorResponse
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return models.NewErrorResponse(http.StatusBadRequest, target.Error())
		}
	}

	var malformed *repository.MalformedResponseError
	switch {
	case errors.Is(err, workflow.ErrExpired):
		return models.NewErrorResponse(http.StatusConflict, workflow.ErrExpired.Error())
	case errors.Is(err, workflow.ErrSubmitFailed):
		if msg, ok := repository.BackendMessage(err); ok {
			return models.NewErrorResponse(http.StatusBadGateway, msg)
		}
		return models.NewErrorResponse(http.StatusBadGateway, "failed to submit batch, please try again")
	case errors.Is(err, repository.ErrNotFound):
		return models.NewErrorResponse(http.StatusNotFound, "rfq not found")
	case errors.As(err, &malformed):
		return models.NewErrorResponse(http.StatusBadGateway, "backend returned malformed rfq data")
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewErrorResponse(http.StatusGatewayTimeout, "backend request timed out")
	default:
		return models.NewErrorResponse(http.StatusBadGateway, "failed to load rfq from backend")
	}
}
