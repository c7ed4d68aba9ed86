package controller

import (
	"errors"
	"net/http"
	"strconv"

	"tryout_prep_backend/internal/service"
	"tryout_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	Service *service.MaterialService
}

func NewMaterialController(svc *service.MaterialService) *MaterialController {
	return &MaterialController{Service: svc}
}

func (c *MaterialController) respondError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrMaterialNotFound) {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}

// @Summary List study materials
// @Tags Material
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} util.Response
// @Router /materials [get]
func (c *MaterialController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	materials, total, err := c.Service.List(page, limit)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: materials, Total: total, Page: page, Limit: limit})
}

// @Summary Get a study material
// @Tags Material
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Material ID"
// @Success 200 {object} util.Response
// @Router /materials/{id} [get]
func (c *MaterialController) Get(ctx *gin.Context) {
	m, err := c.Service.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, m)
}

// @Summary Upload a study material (document or video)
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file formData file true "File"
// @Success 201 {object} util.Response
// @Router /admin/materials [post]
func (c *MaterialController) Upload(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	material, err := c.Service.Upload(ctx.Request.Context(), service.MaterialUploadRequest{
		Title:       title,
		Description: ctx.PostForm("description"),
		UploaderID:  user.UserID,
	}, file)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Created(ctx, material)
}

// @Summary Delete a study material and its stored object
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Material ID"
// @Success 200 {object} util.Response
// @Router /admin/materials/{id} [delete]
func (c *MaterialController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "material deleted"})
}
