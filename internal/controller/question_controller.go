package controller

import (
	"errors"
	"net/http"
	"strconv"

	"tryout_prep_backend/internal/service"
	"tryout_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

func (c *QuestionController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuestionNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrNoCorrectOption), errors.Is(err, util.ErrDuplicateOptionCode):
		util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Create a question with its answer options
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response
// @Router /admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Create(req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary List questions
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} util.Response
// @Router /admin/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	qs, total, err := c.Service.List(page, limit)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: qs, Total: total, Page: page, Limit: limit})
}

// @Summary Get a question
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	q, err := c.Service.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Update a question and replace its answer options
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Delete a question
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "question deleted"})
}
