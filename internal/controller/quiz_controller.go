package controller

import (
	"errors"
	"music_learning_backend/internal/model"
	"music_learning_backend/internal/service"
	"music_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// publicQuiz returns a copy without correct answers. The cached quiz is shared and must not be modified.
func publicQuiz(q *model.Quiz) *model.Quiz {
	out := *q
	out.Questions = make([]model.QuizQuestion, len(q.Questions))
	for i, question := range q.Questions {
		question.CorrectAnswer = ""
		out.Questions[i] = question
	}
	return &out
}

// GetQuiz godoc
// @Summary 获取测验
// @Description 非管理员看不到正确答案
// @Tags 测验
// @Produce json
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFoundMessage(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if util.GetUserFromContext(ctx).IsAdmin() {
		util.Success(ctx, quiz)
		return
	}
	util.Success(ctx, publicQuiz(quiz))
}

// CreateQuiz godoc
// @Summary 创建测验
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizInput true "测验内容"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuiz) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验
// @Description 整体替换标题、描述和题目
// @Tags 管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body service.QuizInput true "测验内容"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidQuiz):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFoundMessage(ctx, "Quiz not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// ListQuizzes godoc
// @Summary 测验列表
// @Description 非管理员看不到正确答案
// @Tags 测验
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.List(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if !util.GetUserFromContext(ctx).IsAdmin() {
		for i := range quizzes {
			quizzes[i] = *publicQuiz(&quizzes[i])
		}
	}
	util.Success(ctx, quizzes)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Description 已有的完成记录保留
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.QuizService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFoundMessage(ctx, "Quiz not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.SuccessWithMessage(ctx, "Quiz deleted", gin.H{"id": id})
}
