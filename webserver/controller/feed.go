package controller

import (
	"net/http"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/gin-gonic/gin"
)

// GetAlertFeed renders the operator alert feed as RSS.
func (c *Controller) GetAlertFeed(ctx *gin.Context) {
	if c.Feed == nil {
		ctx.String(http.StatusNotFound, "Not Found")
		return
	}
	str, err := c.Feed.RSS(ctx.Request.Context(), c.Page.Company)
	if err != nil {
		common.ResponseError(ctx, err)
		return
	}
	ctx.Header("Content-Type", "application/rss+xml")
	ctx.Writer.WriteString(str)
}
