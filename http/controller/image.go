package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aakash/content-server/utils"
)

func (ctrl *Controller) GetImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid image id")
		return
	}

	image, err := ctrl.Service.GetImage(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, image)
}

// GetImageURL hands out a time-limited link straight to the object store.
func (ctrl *Controller) GetImageURL(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid image id")
		return
	}

	url, err := ctrl.Service.GetImageURL(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, gin.H{"url": url})
}

// GetImageContent serves the stored bytes directly.
func (ctrl *Controller) GetImageContent(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid image id")
		return
	}

	data, contentType, err := ctrl.Service.GetImageContent(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
