package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productIDParam(c)
		if !ok {
			return
		}
		product, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "productID must be a positive integer")
		return 0, false
	}
	return id, true
}
