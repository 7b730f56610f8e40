package controller

import (
	"errors"
	"music_learning_backend/internal/service"
	"music_learning_backend/internal/util"
	"music_learning_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserRecordingController struct {
	RecordingService *service.RecordingService
	UploadService    *service.UploadService
}

func NewUserRecordingController(recordingService *service.RecordingService, uploadService *service.UploadService) *UserRecordingController {
	return &UserRecordingController{
		RecordingService: recordingService,
		UploadService:    uploadService,
	}
}

// UploadRecording godoc
// @Summary 上传课程录音
// @Description 每个用户每节课只保留一条录音，重复上传会替换旧录音
// @Tags 用户录音
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path string true "课程ID"
// @Param audioFile formData file true "录音文件"
// @Success 201 {object} util.Response{data=model.UserRecording}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 413 {object} util.Response
// @Router /api/user-recordings/{lessonId} [post]
func (c *UserRecordingController) UploadRecording(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	lessonID := ctx.Param("lessonId")

	file, err := ctx.FormFile("audioFile")
	if err != nil {
		util.BadRequest(ctx, "No audio file was uploaded")
		return
	}

	uploaded, err := c.UploadService.UploadRecording(ctx.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrFileTooLarge):
			util.Error(ctx, http.StatusRequestEntityTooLarge, "File is too large")
		case errors.Is(err, util.ErrInvalidAudioFile):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	res, err := c.RecordingService.SaveRecording(ctx.Request.Context(), claims.UserID, lessonID, uploaded.URL, uploaded.DurationSeconds)
	if err != nil {
		// 保存失败时删除刚上传的文件
		c.UploadService.Discard(ctx.Request.Context(), uploaded.URL)
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFoundMessage(ctx, "Lesson not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if res.ReplacedAudioURL != "" {
		c.UploadService.Discard(ctx.Request.Context(), res.ReplacedAudioURL)
	}
	util.Created(ctx, res.Recording)
}

// GetMyRecordings godoc
// @Summary 我的录音
// @Tags 用户录音
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.RecordingWithLesson}
// @Router /api/user-recordings/me [get]
func (c *UserRecordingController) GetMyRecordings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	recs, err := c.RecordingService.RecordingsForUser(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}

// GetMyRecordingsForLesson godoc
// @Summary 我在某节课的录音
// @Tags 用户录音
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.RecordingWithLesson}
// @Router /api/user-recordings/lesson/{lessonId} [get]
func (c *UserRecordingController) GetMyRecordingsForLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	recs, err := c.RecordingService.RecordingsForLessonAndUser(ctx.Request.Context(), claims.UserID, ctx.Param("lessonId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}

// DeleteRecording godoc
// @Summary 删除录音
// @Description 仅录音所有者可删除
// @Tags 用户录音
// @Produce json
// @Security ApiKeyAuth
// @Param recordingId path string true "录音ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/user-recordings/{recordingId} [delete]
func (c *UserRecordingController) DeleteRecording(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	deleted, err := c.RecordingService.DeleteRecording(ctx.Request.Context(), ctx.Param("recordingId"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRecordingNotFound):
			util.NotFoundMessage(ctx, "Recording not found")
		case errors.Is(err, util.ErrNotRecordingOwner):
			util.Error(ctx, http.StatusForbidden, "You are not allowed to delete this recording")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	c.UploadService.Discard(ctx.Request.Context(), deleted.AudioURL)
	logger.Log.Info("recording deleted", zap.String("recording_id", deleted.ID), zap.String("user_id", claims.UserID))
	util.SuccessWithMessage(ctx, "Recording deleted", gin.H{"id": deleted.ID})
}
