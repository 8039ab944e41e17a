package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedash/internal/adapters/http/dto"
)

func noRoute(c *gin.Context) {
	resp := dto.NewErrorResponse(dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path).
		WithTraceID(dto.GetTraceID(c))
	c.JSON(http.StatusNotFound, resp)
}

func noMethod(c *gin.Context) {
	resp := dto.NewErrorResponse(dto.ErrorCodeMethodNotAllowed, c.Request.Method+" is not allowed on "+c.Request.URL.Path).
		WithTraceID(dto.GetTraceID(c))
	c.JSON(http.StatusMethodNotAllowed, resp)
}
