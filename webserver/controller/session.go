package controller

import (
	"errors"
	"io"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
)

// PostCreateSession opens a provider session and returns its redirect URL.
func (c *Controller) PostCreateSession(ctx *gin.Context) {
	var req model.CreateSessionRequest
	// an empty body is reported as a missing userId below
	if err := jsoniter.NewDecoder(ctx.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		common.ResponseBadRequestError(ctx, "invalid request body")
		return
	}
	resp, err := c.Services.Sessions.CreateSession(ctx.Request.Context(), req.UserID, req.AccountType)
	if err != nil {
		common.ResponseError(ctx, err)
		return
	}
	common.ResponseSuccess(ctx, resp)
}
