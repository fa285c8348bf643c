package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusError is an error that knows the HTTP status it should be rendered with.
type StatusError interface {
	error
	HTTPStatus() int
}

// Detailer is implemented by errors carrying diagnostics for the caller, e.g. an upstream response body.
type Detailer interface {
	Detail() string
}

func Response(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, data)
}

// ResponseError renders err as {"error": message}. Errors that do not know their status are 500.
func ResponseError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	var se StatusError
	if errors.As(err, &se) {
		status = se.HTTPStatus()
	}
	body := gin.H{"error": err.Error()}
	var d Detailer
	if errors.As(err, &d) && d.Detail() != "" {
		body["detail"] = d.Detail()
	}
	_ = ctx.Error(err)
	Response(ctx, status, body)
}

func ResponseBadRequestError(ctx *gin.Context, message string) {
	Response(ctx, http.StatusBadRequest, gin.H{"error": message})
}

func ResponseSuccess(ctx *gin.Context, data interface{}) {
	Response(ctx, http.StatusOK, data)
}
