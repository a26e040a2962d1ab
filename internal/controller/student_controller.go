package controller

import (
	"errors"
	"strconv"

	"tutor_backend/internal/model"
	"tutor_backend/internal/service"
	"tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
	AuthService    *service.AuthService
}

func NewStudentController(studentService *service.StudentService, authService *service.AuthService) *StudentController {
	return &StudentController{
		StudentService: studentService,
		AuthService:    authService,
	}
}

// swagger:model CreateChildRequest
type CreateChildRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required"`
}

// CreateChild godoc
// @Summary Create a student profile
// @Description Registers a child under the authenticated parent and issues a unique join code
// @Tags children
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateChildRequest true "child details"
// @Success 201 {object} util.Response{data=model.StudentProfile}
// @Failure 400 {object} util.Response
// @Router /children [post]
func (c *StudentController) CreateChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.CreateChild(claims.UserID, req.Name, model.GradeLevel(req.Level))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNameRequired), errors.Is(err, util.ErrInvalidLevel):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, student)
}

// ListChildren godoc
// @Summary List the caller's student profiles
// @Tags children
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudentProfile}
// @Router /children [get]
func (c *StudentController) ListChildren(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	children, err := c.StudentService.ListChildren(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, children)
}

// DeleteChild godoc
// @Summary Delete an owned student profile
// @Description Removes the profile and its quiz history; profiles of other parents read as not found
// @Tags children
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "child id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /children/{id} [delete]
func (c *StudentController) DeleteChild(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	childID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid child id")
		return
	}

	student, err := c.StudentService.DeleteChild(claims.UserID, uint(childID))
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message":          "Child \"" + student.Name + "\" has been deleted",
		"deleted_child_id": student.ID,
	})
}

// swagger:model StudentLoginRequest
type StudentLoginRequest struct {
	JoinCode string `json:"join_code" binding:"required"`
}

// StudentLogin godoc
// @Summary Student login with a join code
// @Description Resolves the join code and issues a JWT bound to the owning parent plus the student id
// @Tags auth
// @Accept json
// @Produce json
// @Param body body StudentLoginRequest true "join code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /student-login [post]
func (c *StudentController) StudentLogin(ctx *gin.Context) {
	var req StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.ResolveJoinCode(req.JoinCode)
	if err != nil {
		if errors.Is(err, util.ErrInvalidJoinCode) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Students have no credential of their own; the session is the
	// parent's identity scoped to this student profile.
	token, err := util.GenerateJWT(&student.Parent, student.ID, c.AuthService.Cfg.JWT.Secret, c.AuthService.Cfg.JWT.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token":   token,
		"student": student,
		"parent": gin.H{
			"id":         student.Parent.ID,
			"email":      student.Parent.Email,
			"first_name": student.Parent.FirstName,
			"last_name":  student.Parent.LastName,
		},
	})
}
