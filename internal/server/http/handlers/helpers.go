package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from the context.
func CurrentUserID(c *gin.Context) int64 {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		return 0
	}
	return identity.UserID
}

// CurrentActor renders the audit-trail actor string for the caller.
func CurrentActor(c *gin.Context) string {
	return fmt.Sprintf("user:%d", CurrentUserID(c))
}

func pageFromQuery(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	return limit, offset
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// respondError translates a domain error into an HTTP status with a
// JSON error body.
func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrAddressNotOwned):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrUserInactive),
		errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrInvalidInput),
		errors.Is(err, domainErrors.ErrInvalidQuantity),
		errors.Is(err, domainErrors.ErrInvalidAmount),
		errors.Is(err, domainErrors.ErrEmptyCart),
		errors.Is(err, domainErrors.ErrProductUnavailable),
		errors.Is(err, domainErrors.ErrInsufficientStock),
		errors.Is(err, domainErrors.ErrInvalidStatusTransition),
		errors.Is(err, domainErrors.ErrOrderNotDelivered),
		errors.Is(err, domainErrors.ErrDeliveryDateUnknown),
		errors.Is(err, domainErrors.ErrRefundWindowExpired),
		errors.Is(err, domainErrors.ErrRefundAlreadyRequested),
		errors.Is(err, domainErrors.ErrRefundNotRequested):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
