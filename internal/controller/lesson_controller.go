package controller

import (
	"errors"
	"music_learning_backend/internal/model"
	"music_learning_backend/internal/service"
	"music_learning_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
	UploadService *service.UploadService
}

func NewLessonController(lessonService *service.LessonService, uploadService *service.UploadService) *LessonController {
	return &LessonController{
		LessonService: lessonService,
		UploadService: uploadService,
	}
}

// GetLesson godoc
// @Summary 获取课程
// @Tags 课程
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lesson, err := c.LessonService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFoundMessage(ctx, "Lesson not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// CreateLesson godoc
// @Summary 创建课程
// @Description multipart 表单，可选上传乐谱图片和示范音频
// @Tags 管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "标题"
// @Param order formData int false "排序"
// @Param theoryContent formData string false "理论内容"
// @Param sheetMusicImage formData file false "乐谱图片"
// @Param audioFile formData file false "示范音频"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Failure 413 {object} util.Response
// @Router /api/admin/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	lesson := &model.Lesson{
		Title:         ctx.PostForm("title"),
		TheoryContent: ctx.PostForm("theoryContent"),
	}
	if raw := ctx.PostForm("order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "order must be an integer")
			return
		}
		lesson.Order = order
	}

	var uploaded []string
	discard := func() {
		for _, url := range uploaded {
			c.UploadService.Discard(ctx.Request.Context(), url)
		}
	}

	if file, err := ctx.FormFile("sheetMusicImage"); err == nil {
		url, err := c.UploadService.UploadLessonImage(ctx.Request.Context(), file)
		if err != nil {
			c.uploadFailed(ctx, err)
			return
		}
		uploaded = append(uploaded, url)
		lesson.SheetMusicImageURL = url
	}
	if file, err := ctx.FormFile("audioFile"); err == nil {
		url, err := c.UploadService.UploadLessonAudio(ctx.Request.Context(), file)
		if err != nil {
			discard()
			c.uploadFailed(ctx, err)
			return
		}
		uploaded = append(uploaded, url)
		lesson.AudioURL = url
	}

	if err := c.LessonService.Create(ctx.Request.Context(), lesson); err != nil {
		discard()
		if errors.Is(err, util.ErrInvalidLesson) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}

func (c *LessonController) uploadFailed(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrFileTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, "File is too large")
	case errors.Is(err, util.ErrInvalidImageFile), errors.Is(err, util.ErrInvalidAudioFile):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// AttachQuiz godoc
// @Summary 关联测验到课程
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "课程ID"
// @Param quizId path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/admin/lessons/{id}/quizzes/{quizId} [post]
func (c *LessonController) AttachQuiz(ctx *gin.Context) {
	lesson, err := c.LessonService.AttachQuiz(ctx.Request.Context(), ctx.Param("id"), ctx.Param("quizId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFoundMessage(ctx, "Lesson not found")
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFoundMessage(ctx, "Quiz not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}
