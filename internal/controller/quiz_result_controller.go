package controller

import (
	"music_learning_backend/internal/service"
	"music_learning_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizResultController struct {
	CompletionService *service.CompletionService
}

func NewQuizResultController(completionService *service.CompletionService) *QuizResultController {
	return &QuizResultController{CompletionService: completionService}
}

// SubmitQuizRequest accepts answers either as a list or in the index map form
// {"0": "...", "1": "..."}. The list wins when both are sent. A null answer
// counts as not answered.
// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	QuizID      string             `json:"quizId" binding:"required"`
	Answers     []service.Answer   `json:"answers"`
	UserAnswers map[string]*string `json:"userAnswers"`
}

// SubmitQuiz godoc
// @Summary 提交测验答案
// @Description 全部答对时记录完成，重复提交视为已完成
// @Tags 测验结果
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitQuizRequest true "答案"
// @Success 200 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response{data=service.SubmitResult}
// @Failure 404 {object} util.Response{data=service.SubmitResult}
// @Failure 500 {object} util.Response
// @Router /api/quiz-results/submit [post]
func (c *QuizResultController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answers := req.Answers
	if len(answers) == 0 && len(req.UserAnswers) > 0 {
		var err error
		if answers, err = service.AnswersFromIndexMap(req.UserAnswers); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	sub, err := service.NewSubmission(answers)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res := c.CompletionService.Submit(ctx.Request.Context(), claims.UserID, req.QuizID, sub)
	switch {
	case res.Success:
		util.SuccessWithMessage(ctx, res.Message, res)
	case res.Outcome == service.OutcomeQuizNotFound:
		util.ErrorWithData(ctx, http.StatusNotFound, res.Message, res)
	case res.Outcome == service.OutcomeInternalFailure:
		util.Error(ctx, http.StatusInternalServerError, res.Message)
	default:
		util.ErrorWithData(ctx, http.StatusBadRequest, res.Message, res)
	}
}

// resolveUser returns the user a request may read: itself, or anyone for admins.
func resolveUser(ctx *gin.Context, requested string) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return "", false
	}
	if requested == "" || requested == claims.UserID {
		return claims.UserID, true
	}
	if !claims.IsAdmin() {
		util.Forbidden(ctx)
		return "", false
	}
	return requested, true
}

// GetCompletionStatus godoc
// @Summary 查询测验完成状态
// @Tags 测验结果
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path string true "测验ID"
// @Param userId query string false "用户ID（仅管理员）"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/quiz-results/status/{quizId} [get]
func (c *QuizResultController) GetCompletionStatus(ctx *gin.Context) {
	userID, ok := resolveUser(ctx, ctx.Query("userId"))
	if !ok {
		return
	}
	quizID := ctx.Param("quizId")

	done, err := c.CompletionService.CompletionStatus(ctx.Request.Context(), userID, quizID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"quizId":      quizID,
		"userId":      userID,
		"isCompleted": done,
	})
}

// GetMyCompletedQuizzes godoc
// @Summary 我完成的测验
// @Tags 测验结果
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/quiz-results/me [get]
func (c *QuizResultController) GetMyCompletedQuizzes(ctx *gin.Context) {
	c.completedQuizzes(ctx, "")
}

// GetUserCompletedQuizzes godoc
// @Summary 指定用户完成的测验
// @Description 仅本人或管理员
// @Tags 测验结果
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/quiz-results/user/{userId} [get]
func (c *QuizResultController) GetUserCompletedQuizzes(ctx *gin.Context) {
	c.completedQuizzes(ctx, ctx.Param("userId"))
}

func (c *QuizResultController) completedQuizzes(ctx *gin.Context, requested string) {
	userID, ok := resolveUser(ctx, requested)
	if !ok {
		return
	}

	recs, err := c.CompletionService.CompletedQuizzesForUser(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"userId":           userID,
		"completedQuizzes": recs,
	})
}
