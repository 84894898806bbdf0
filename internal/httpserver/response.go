package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-cart/internal/domain"
	cartsvc "storefront-cart/internal/service/cart"
	"storefront-cart/internal/service/session"
)

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	ExpiresIn int    `json:"expiresIn"`
}

type toggleResponse struct {
	InCart bool             `json:"inCart"`
	Cart   *domain.CartView `json:"cart"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{StatusCode: status, Message: msg})
}

// writeServiceError maps domain and service errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyInCart):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, cartsvc.ErrProductNotFound),
		errors.Is(err, domain.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
