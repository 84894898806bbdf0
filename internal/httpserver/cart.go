package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const sessionIDKey = "sessionID"

// sessionMiddleware rejects requests for sessions that are unknown or expired
// before any handler runs.
func sessionMiddleware(svc sessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("sessionID"))
		if id == "" {
			writeError(c, http.StatusBadRequest, "sessionID is required")
			return
		}
		if _, err := svc.Lookup(c.Request.Context(), id); err != nil {
			writeServiceError(c, err)
			return
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func openSessionHandler(svc sessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := svc.Open(c.Request.Context())
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sessionResponse{SessionID: sess.ID, ExpiresIn: svc.TTLSeconds()})
	}
}

func endSessionHandler(svc sessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.End(c.Request.Context(), c.GetString(sessionIDKey)); err != nil {
			writeServiceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Get(c.Request.Context(), c.GetString(sessionIDKey))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func addCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ProductID <= 0 {
			writeError(c, http.StatusBadRequest, "productId must be a positive integer")
			return
		}
		view, err := svc.Add(c.Request.Context(), c.GetString(sessionIDKey), req.ProductID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func removeCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productIDParam(c)
		if !ok {
			return
		}
		view, err := svc.Remove(c.Request.Context(), c.GetString(sessionIDKey), id)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func toggleCartItemHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productIDParam(c)
		if !ok {
			return
		}
		view, in, err := svc.Toggle(c.Request.Context(), c.GetString(sessionIDKey), id)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, toggleResponse{InCart: in, Cart: view})
	}
}

func clearCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Clear(c.Request.Context(), c.GetString(sessionIDKey))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func finalizeCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Finalize(c.Request.Context(), c.GetString(sessionIDKey))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
