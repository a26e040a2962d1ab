package controller

import (
	"errors"
	"strconv"

	"tutor_backend/internal/service"
	"tutor_backend/internal/util"
	"tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService    *service.QuizService
	StudentService *service.StudentService
}

func NewQuizController(quizService *service.QuizService, studentService *service.StudentService) *QuizController {
	return &QuizController{
		QuizService:    quizService,
		StudentService: studentService,
	}
}

// resolveStudent decides which student profile a quiz request acts on. A
// student session (token issued via join code) is bound to its own profile;
// a parent session must name a child it owns.
func (c *QuizController) resolveStudent(ctx *gin.Context, requestedID uint) (uint, error) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return 0, util.ErrPermissionDenied
	}

	if claims.StudentID != 0 {
		if requestedID != 0 && requestedID != claims.StudentID {
			return 0, util.ErrPermissionDenied
		}
		return claims.StudentID, nil
	}

	if requestedID == 0 {
		return 0, util.ErrStudentNotFound
	}
	if _, err := c.StudentService.AuthorizeParent(claims.UserID, requestedID); err != nil {
		return 0, err
	}
	return requestedID, nil
}

// swagger:model StartSessionRequest
type StartSessionRequest struct {
	StudentID uint   `json:"student_id"`
	Subject   string `json:"subject"`
	Topic     string `json:"topic" binding:"required"`
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Deals a random question for the topic at the student's level and opens an unanswered session
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartSessionRequest true "session parameters"
// @Success 200 {object} util.Response{data=service.StartedSession}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /start-session [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Subject == "" {
		req.Subject = "Math"
	}

	studentID, err := c.resolveStudent(ctx, req.StudentID)
	if err != nil {
		c.writeDomainError(ctx, err)
		return
	}

	started, err := c.QuizService.StartSession(studentID, req.Subject, req.Topic)
	if err != nil {
		c.writeDomainError(ctx, err)
		return
	}

	util.Success(ctx, started)
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	SessionID  uint   `json:"session_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

// SubmitAnswer godoc
// @Summary Grade and persist an answer
// @Description First submission wins; repeating a graded session answers 409 and never re-awards XP
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitAnswerRequest true "session id and answer"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /submit-answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// Only the owning session may grade; otherwise the correction would
	// leak and the first-submission rule could be consumed by a stranger.
	ownerID, err := c.QuizService.SessionOwner(req.SessionID)
	if err != nil {
		c.writeDomainError(ctx, err)
		return
	}
	if _, err := c.resolveStudent(ctx, ownerID); err != nil {
		c.writeDomainError(ctx, err)
		return
	}

	result, err := c.QuizService.SubmitAnswer(req.SessionID, req.UserAnswer)
	if err != nil {
		c.writeDomainError(ctx, err)
		return
	}

	monitoring.AnswersGraded.WithLabelValues(strconv.FormatBool(result.IsCorrect)).Inc()
	util.Success(ctx, result)
}

// GetProgress godoc
// @Summary Per-topic progress for a student
// @Description Only the owning parent (or the student's own session) may read progress
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "student id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /progress/{studentId} [get]
func (c *QuizController) GetProgress(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("studentId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	studentID, err := c.resolveStudent(ctx, uint(id))
	if err != nil {
		c.writeDomainError(ctx, err)
		return
	}

	student, err := c.StudentService.StudentRepo.FindByID(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	progress, err := c.QuizService.ProgressByTopic(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"student":  student,
		"progress": progress,
	})
}

func (c *QuizController) writeDomainError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrStudentNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrNoQuestions):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrAlreadyAnswered):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
