package controller

import (
	"net/http"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/webserver/templates"
	"github.com/gin-gonic/gin"
)

const StartStatusReady = "ready"

func (c *Controller) page(name, title string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.HTML(http.StatusOK, name, templates.View{Title: title, Page: c.Page})
	}
}

func (c *Controller) GetStartPage() gin.HandlerFunc {
	return c.page("start.html", "Identity Verification")
}

func (c *Controller) GetUploadPage() gin.HandlerFunc {
	return c.page("upload.html", "Upload ID")
}

func (c *Controller) GetSuccessPage() gin.HandlerFunc {
	return c.page("success.html", "Verification Success")
}

func (c *Controller) GetReviewPage() gin.HandlerFunc {
	return c.page("review.html", "Manual Review")
}

func (c *Controller) GetRejectedPage() gin.HandlerFunc {
	return c.page("rejected.html", "Verification Failed")
}

// GetStartConfig returns what the start page shows, for clients rendering their own page.
func (c *Controller) GetStartConfig(ctx *gin.Context) {
	common.ResponseSuccess(ctx, gin.H{
		"status":  StartStatusReady,
		"message": c.Page.Message,
		"company": c.Page.Company,
		"logo":    c.Page.Logo,
	})
}
