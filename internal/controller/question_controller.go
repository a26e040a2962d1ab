package controller

import (
	"errors"
	"strconv"

	"tutor_backend/internal/model"
	"tutor_backend/internal/repository"
	"tutor_backend/internal/service"
	"tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// listQuestionsCap bounds bank listings regardless of filter width.
const listQuestionsCap = 200

type QuestionController struct {
	CatalogService *service.CatalogService
}

func NewQuestionController(catalogService *service.CatalogService) *QuestionController {
	return &QuestionController{CatalogService: catalogService}
}

// GetTopics godoc
// @Summary Topics for a level and subject
// @Tags catalog
// @Produce json
// @Param level query string true "grade level"
// @Param subject query string false "subject, defaults to Math"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /topics [get]
func (c *QuestionController) GetTopics(ctx *gin.Context) {
	level := ctx.Query("level")
	if level == "" {
		util.BadRequest(ctx, "level is required")
		return
	}
	subject := ctx.DefaultQuery("subject", "Math")

	topics, err := c.CatalogService.Topics(ctx.Request.Context(), subject, model.GradeLevel(level))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"topics": topics})
}

// ListQuestions godoc
// @Summary List bank questions
// @Tags catalog
// @Produce json
// @Param subject query string false "subject"
// @Param level query string false "grade level"
// @Param topic query string false "topic"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions, err := c.CatalogService.ListQuestions(repository.QuestionFilter{
		Subject: ctx.Query("subject"),
		Level:   model.GradeLevel(ctx.Query("level")),
		Topic:   ctx.Query("topic"),
	}, listQuestionsCap)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// RandomQuestion godoc
// @Summary One random bank question
// @Tags catalog
// @Produce json
// @Param subject query string false "subject"
// @Param level query string false "grade level"
// @Param topic query string false "topic"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /questions/random [get]
func (c *QuestionController) RandomQuestion(ctx *gin.Context) {
	question, err := c.CatalogService.RandomQuestion(
		ctx.Query("subject"),
		model.GradeLevel(ctx.Query("level")),
		ctx.Query("topic"),
	)
	if err != nil {
		if errors.Is(err, util.ErrNoQuestions) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// FlagQuestion godoc
// @Summary Flag a question for review
// @Tags catalog
// @Produce json
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /questions/{id}/flag [post]
func (c *QuestionController) FlagQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.CatalogService.FlagQuestion(uint(id)); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Question flagged"})
}
