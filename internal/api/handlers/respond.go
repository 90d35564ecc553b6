package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Beliver-247/sliit-choir-backend/internal/domain/attendance"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/donation"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/event"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/member"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/merchandise"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/order"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/resource"
	"github.com/Beliver-247/sliit-choir-backend/internal/domain/schedule"
	"github.com/Beliver-247/sliit-choir-backend/internal/infrastructure/storage"
)

// The frontend decodes every response through the same envelope:
// {"success": true, "data": ...} or {"success": false, "message": ...}.

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondServiceError maps domain sentinels onto HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	var verr *attendance.ValidationError
	if errors.As(err, &verr) {
		respondError(c, http.StatusBadRequest, verr.Message)
		return
	}

	switch {
	case errors.Is(err, member.ErrForbidden):
		respondError(c, http.StatusForbidden, "insufficient privileges")
	case errors.Is(err, member.ErrMemberNotFound),
		errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, schedule.ErrScheduleNotFound),
		errors.Is(err, attendance.ErrRecordNotFound),
		errors.Is(err, donation.ErrDonationNotFound),
		errors.Is(err, merchandise.ErrItemNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, resource.ErrResourceNotFound),
		errors.Is(err, resource.ErrRequestNotFound),
		errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, member.ErrDuplicateStudentID),
		errors.Is(err, member.ErrDuplicateEmail),
		errors.Is(err, event.ErrAlreadyRegistered),
		errors.Is(err, resource.ErrAlreadyFavorite),
		errors.Is(err, order.ErrNotPending),
		errors.Is(err, resource.ErrRequestNotPending):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, member.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, member.ErrEmailNotVerified),
		errors.Is(err, member.ErrAccountNotActive):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, event.ErrInvalidInput),
		errors.Is(err, schedule.ErrInvalidInput),
		errors.Is(err, donation.ErrInvalidInput),
		errors.Is(err, merchandise.ErrInvalidInput),
		errors.Is(err, order.ErrInvalidInput),
		errors.Is(err, resource.ErrInvalidInput),
		errors.Is(err, member.ErrInvalidInput),
		errors.Is(err, member.ErrPasswordMismatch),
		errors.Is(err, member.ErrInvalidOTP),
		errors.Is(err, event.ErrNotRegistered),
		errors.Is(err, event.ErrEventFull),
		errors.Is(err, merchandise.ErrInsufficientStock),
		errors.Is(err, order.ErrMissingReceipt),
		errors.Is(err, order.ErrMissingReason),
		errors.Is(err, resource.ErrMissingFile),
		errors.Is(err, resource.ErrMissingURL),
		errors.Is(err, resource.ErrNotFavorite),
		errors.Is(err, storage.ErrFileTooLarge):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}
