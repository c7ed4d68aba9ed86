package controller

import (
	"errors"
	"net/http"

	"tryout_prep_backend/internal/service"
	"tryout_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TryoutController struct {
	Service *service.TryoutService
}

func NewTryoutController(svc *service.TryoutService) *TryoutController {
	return &TryoutController{Service: svc}
}

func (c *TryoutController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTryoutNotFound), errors.Is(err, util.ErrAttemptNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrAttemptNotOwned):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrAttemptNotOngoing):
		util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary List tryouts with the caller's attempt status
// @Tags Tryout
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /tryouts [get]
func (c *TryoutController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	items, err := c.Service.List(user.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, items)
}

// @Summary Get the caller's current attempt on a tryout
// @Tags Tryout
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Success 200 {object} util.Response
// @Router /tryouts/{id} [get]
func (c *TryoutController) Find(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GetCurrentAttempt(util.MustParseUint(ctx.Param("id")), user.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary Start (or resume) an attempt
// @Tags Tryout
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Success 200 {object} util.Response
// @Router /tryouts/{id}/start [post]
func (c *TryoutController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.StartAttempt(util.MustParseUint(ctx.Param("id")), user.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

type saveAnswerRequest struct {
	SelectedAnswerID uint `json:"selectedAnswerId" binding:"required"`
}

// @Summary Save the selected answer for one question of the ongoing attempt
// @Tags Tryout
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Param questionId path int true "Question ID"
// @Param body body saveAnswerRequest true "Selected answer"
// @Success 200 {object} util.Response
// @Router /tryouts/{id}/questions/{questionId}/save [post]
func (c *TryoutController) SaveAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req saveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.Service.SaveAnswer(
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("questionId")),
		req.SelectedAnswerID,
		user.UserID,
	)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "answer saved"})
}

// @Summary Submit the attempt, finishing the session
// @Tags Tryout
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Success 200 {object} util.Response
// @Router /tryouts/{id}/submit [post]
func (c *TryoutController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.SubmitAttempt(util.MustParseUint(ctx.Param("id")), user.UserID); err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "tryout submitted"})
}

// @Summary List the caller's attempt history
// @Tags Tryout
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /tryouts/history [get]
func (c *TryoutController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GetHistory(user.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary Review a finished attempt with per-question correctness
// @Tags Tryout
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Success 200 {object} util.Response
// @Router /tryouts/{id}/history [get]
func (c *TryoutController) HistoryByTryout(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.Service.GetHistoryByTryout(util.MustParseUint(ctx.Param("id")), user.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

type tryoutRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type tryoutQuestionLink struct {
	QuestionID uint `json:"questionId" binding:"required"`
	Order      *int `json:"order"`
}

type setTryoutQuestionsRequest struct {
	Questions []tryoutQuestionLink `json:"questions" binding:"required"`
}

// @Summary Create a tryout
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body tryoutRequest true "Tryout"
// @Success 201 {object} util.Response
// @Router /admin/tryouts [post]
func (c *TryoutController) Create(ctx *gin.Context) {
	var req tryoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tryout, err := c.Service.CreateTryout(req.Title, req.Description)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Created(ctx, tryout)
}

// @Summary Update a tryout
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Param body body tryoutRequest true "Tryout"
// @Success 200 {object} util.Response
// @Router /admin/tryouts/{id} [put]
func (c *TryoutController) Update(ctx *gin.Context) {
	var req tryoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tryout, err := c.Service.UpdateTryout(util.MustParseUint(ctx.Param("id")), req.Title, req.Description)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, tryout)
}

// @Summary Delete a tryout
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Success 200 {object} util.Response
// @Router /admin/tryouts/{id} [delete]
func (c *TryoutController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteTryout(util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "tryout deleted"})
}

// @Summary Replace the ordered question set of a tryout
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tryout ID"
// @Param body body setTryoutQuestionsRequest true "Question linkage"
// @Success 200 {object} util.Response
// @Router /admin/tryouts/{id}/questions [put]
func (c *TryoutController) SetQuestions(ctx *gin.Context) {
	var req setTryoutQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	links := make([]service.TryoutQuestionLink, len(req.Questions))
	for i, q := range req.Questions {
		links[i] = service.TryoutQuestionLink{QuestionID: q.QuestionID, Order: q.Order}
	}

	if err := c.Service.SetQuestions(util.MustParseUint(ctx.Param("id")), links); err != nil {
		c.respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "questions updated"})
}
