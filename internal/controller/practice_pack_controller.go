package controller

import (
	"errors"
	"net/http"

	"tryout_prep_backend/internal/service"
	"tryout_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticePackController struct {
	Service *service.PracticePackService
}

func NewPracticePackController(svc *service.PracticePackService) *PracticePackController {
	return &PracticePackController{Service: svc}
}

func (c *PracticePackController) respondError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrPackNotFound) {
		util.Error(ctx, http.StatusNotFound, err.Error())
		return
	}
	util.LogInternalError(ctx, err)
}

// @Summary List practice packs
// @Tags PracticePack
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /practice-packs [get]
func (c *PracticePackController) List(ctx *gin.Context) {
	packs, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, packs)
}

// @Summary Get a practice pack with its questions
// @Tags PracticePack
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Pack ID"
// @Success 200 {object} util.Response
// @Router /practice-packs/{id} [get]
func (c *PracticePackController) Detail(ctx *gin.Context) {
	view, err := c.Service.Detail(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary Create a practice pack
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.PracticePackRequest true "Pack"
// @Success 201 {object} util.Response
// @Router /admin/practice-packs [post]
func (c *PracticePackController) Create(ctx *gin.Context) {
	var req service.PracticePackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pack, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Created(ctx, pack)
}

// @Summary Update a practice pack
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Pack ID"
// @Param body body service.PracticePackRequest true "Pack"
// @Success 200 {object} util.Response
// @Router /admin/practice-packs/{id} [put]
func (c *PracticePackController) Update(ctx *gin.Context) {
	var req service.PracticePackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pack, err := c.Service.Update(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, pack)
}

// @Summary Delete a practice pack
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Pack ID"
// @Success 200 {object} util.Response
// @Router /admin/practice-packs/{id} [delete]
func (c *PracticePackController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "practice pack deleted"})
}

type setPackQuestionsRequest struct {
	Questions []service.PackQuestionLink `json:"questions" binding:"required"`
}

// @Summary Replace the ordered question set of a practice pack
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Pack ID"
// @Param body body setPackQuestionsRequest true "Question linkage"
// @Success 200 {object} util.Response
// @Router /admin/practice-packs/{id}/questions [put]
func (c *PracticePackController) SetQuestions(ctx *gin.Context) {
	var req setPackQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.SetQuestions(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req.Questions); err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "questions updated"})
}
