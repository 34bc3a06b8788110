package controller

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/aakash/content-server/http/controller/dto"
	"github.com/aakash/content-server/service"
	"github.com/aakash/content-server/utils"
)

// CreatePost accepts a multipart form with caption, creator and an optional
// image file. The response carries the post skeleton; the image link shows up
// once background processing completes.
func (ctrl *Controller) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()

	caption := c.PostForm("caption")
	creator := c.PostForm("creator")

	var upload *service.ImageUpload
	fileHeader, err := c.FormFile("image")
	if err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Post] Failed to open uploaded file")
			utils.JSON400(c, "Invalid image upload")
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Post] Failed to read uploaded file")
			utils.JSON400(c, "Invalid image upload")
			return
		}
		upload = &service.ImageUpload{Filename: fileHeader.Filename, Data: data}
	}

	post, err := ctrl.Service.CreatePost(ctx, caption, creator, upload)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, err, "[Post] Create rejected for creator %s", creator)
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Post] Created post %s by %s", post.ID, post.Creator)
	utils.JSON201(c, post)
}

func (ctrl *Controller) GetPost(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid post id")
		return
	}

	post, err := ctrl.Service.GetPost(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, post)
}

func (ctrl *Controller) UpdatePost(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid post id")
		return
	}

	var req dto.UpdatePostRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Invalid request payload")
		return
	}

	post, err := ctrl.Service.UpdatePost(ctx, id, req.Content)
	if err != nil {
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Post] Updated post %s", id)
	utils.JSON200(c, post)
}

func (ctrl *Controller) DeletePost(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		utils.JSON400(c, "Invalid post id")
		return
	}

	if err := ctrl.Service.DeletePost(ctx, id); err != nil {
		utils.JSONError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Post] Deleted post %s", id)
	utils.JSON204(c)
}

func (ctrl *Controller) ListPosts(c *gin.Context) {
	page := parseIntQuery(c, "page", 0)
	size := parsePageSize(c)

	posts, err := ctrl.Service.GetAllPosts(c.Request.Context(), page, size)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, gin.H{"posts": posts, "page": page, "size": size})
}

func (ctrl *Controller) GetTopPosts(c *gin.Context) {
	page := parseIntQuery(c, "page", 0)
	size := parsePageSize(c)

	posts, err := ctrl.Service.GetTopPosts(c.Request.Context(), page, size)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, gin.H{"posts": posts, "page": page, "size": size})
}

// GetCursorPosts pages the activity feed by comment count. direction is
// "next" (default) or "previous".
func (ctrl *Controller) GetCursorPosts(c *gin.Context) {
	cursorStr := c.Query("cursor")
	if cursorStr == "" {
		utils.JSON400(c, "Missing cursor")
		return
	}
	cursor := int64(parseIntQuery(c, "cursor", -1))
	if cursor < 0 {
		utils.JSON400(c, "Invalid cursor")
		return
	}
	size := parsePageSize(c)

	var (
		page *service.CursorPage
		err  error
	)
	if c.DefaultQuery("direction", "next") == "previous" {
		page, err = ctrl.Service.GetPreviousPosts(c.Request.Context(), cursor, size)
	} else {
		page, err = ctrl.Service.GetNextPosts(c.Request.Context(), cursor, size)
	}
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSON200(c, page)
}
