package controller

import (
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/gin-gonic/gin"
)

func (c *Controller) GetStatus(ctx *gin.Context) {
	report, err := c.Services.Status.GetStatus(ctx.Request.Context(), ctx.Query("userId"))
	if err != nil {
		common.ResponseError(ctx, err)
		return
	}
	common.ResponseSuccess(ctx, report)
}
