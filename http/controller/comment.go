package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/aakash/content-server/http/controller/dto"
	"github.com/aakash/content-server/utils"
)

func (ctrl *Controller) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid post id")
		return
	}

	var req dto.CreateCommentRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	comment, err := ctrl.Service.CreateComment(ctx, postID, req.Content, req.Creator)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Comment] Created comment %s on post %s", comment.ID, postID)
	utils.JSON201(c, comment)
}

func (ctrl *Controller) ListComments(c *gin.Context) {
	postID, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid post id")
		return
	}

	comments, err := ctrl.Service.ListComments(c.Request.Context(), postID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, gin.H{"comments": comments})
}

func (ctrl *Controller) GetComment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid comment id")
		return
	}

	comment, err := ctrl.Service.GetComment(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, comment)
}

func (ctrl *Controller) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid comment id")
		return
	}

	creator := c.Query("creator")
	if creator == "" {
		utils.JSON400(c, "Missing creator")
		return
	}

	if err := ctrl.Service.DeleteComment(ctx, id, creator); err != nil {
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Comment] Deleted comment %s", id)
	utils.JSON204(c)
}
