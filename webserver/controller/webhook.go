package controller

import (
	"io"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	"github.com/gin-gonic/gin"
)

const SignatureHeader = "X-Signature"

// PostWebhook receives a decision pushed by the provider.
// The body is read raw because the signature covers its exact bytes.
func (c *Controller) PostWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, MaxWebhookBody))
	if err != nil {
		common.ResponseBadRequestError(ctx, "failed to read body")
		return
	}
	res, err := c.Services.Webhook.Ingest(ctx.Request.Context(), body, ctx.GetHeader(SignatureHeader))
	if err != nil {
		log.Warn("Webhook from %v: %v", ctx.ClientIP(), err)
		common.ResponseError(ctx, err)
		return
	}
	common.ResponseSuccess(ctx, res)
}
