package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"music_learning_backend/internal/config"
	"music_learning_backend/internal/util"
	"music_learning_backend/pkg/logger"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// UploadedAudio is an audio asset that has been written to storage.
type UploadedAudio struct {
	URL             string
	DurationSeconds float64
}

// UploadService validates multipart uploads and hands them to storage.
type UploadService struct {
	Storage *StorageService
	Cfg     *config.Config
	// Probe reads audio metadata from a local file.
	Probe func(path string) (*util.AudioInfo, error)
}

func NewUploadService(storage *StorageService, cfg *config.Config) *UploadService {
	return &UploadService{
		Storage: storage,
		Cfg:     cfg,
		Probe:   util.GetAudioInfo,
	}
}

func megabytes(n int) int64 {
	return int64(n) << 20
}

// UploadRecording stores a user's recording as audio_recordings/audio-<ts>-<rand><ext>.
// The duration is probed with ffprobe when it is available, otherwise it is 0.
func (s *UploadService) UploadRecording(ctx context.Context, file *multipart.FileHeader) (*UploadedAudio, error) {
	if file.Size > megabytes(s.Cfg.Upload.RecordingMaxMB) {
		return nil, util.ErrFileTooLarge
	}
	if !util.HasAllowedExtension(file.Filename, util.AllowedAudioExtensions) {
		return nil, util.ErrInvalidAudioFile
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 深度验证 MIME 类型
	mimeType, err := util.ValidateMimeType(src, util.AllowedAudioMimeTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidAudioFile, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// 临时保存到本地进行探测
	if err := os.MkdirAll(s.Cfg.Upload.TempDir, 0755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(s.Cfg.Upload.TempDir, "recording-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = io.Copy(tmp, src)
	tmp.Close()
	if err != nil {
		return nil, err
	}

	var duration float64
	if info, err := s.Probe(tmpPath); err != nil {
		if errors.Is(err, util.ErrInvalidAudioFile) {
			return nil, err
		}
		logger.Log.Debug("audio probe unavailable", zap.String("file", file.Filename), zap.Error(err))
	} else {
		duration = info.Duration
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || !util.IsAudio(contentType) {
		contentType = mimeType
	}

	key := fmt.Sprintf("%s/audio-%d-%s%s", util.RecordingsDir, time.Now().UnixMilli(), util.GenerateRandomString(9), ext)
	url, err := s.Storage.UploadFile(ctx, key, tmpPath, contentType)
	if err != nil {
		return nil, fmt.Errorf("store recording: %w", err)
	}
	return &UploadedAudio{URL: url, DurationSeconds: duration}, nil
}

// UploadLessonImage stores a sheet-music image under lessons/.
func (s *UploadService) UploadLessonImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if !util.HasAllowedExtension(file.Filename, util.AllowedImageExtensions) {
		return "", util.ErrInvalidImageFile
	}
	return s.uploadLessonAsset(ctx, file, "sheet", []string{util.MimeImage}, util.ErrInvalidImageFile)
}

// UploadLessonAudio stores a lesson's reference audio under lessons/.
func (s *UploadService) UploadLessonAudio(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if !util.HasAllowedExtension(file.Filename, util.AllowedAudioExtensions) {
		return "", util.ErrInvalidAudioFile
	}
	return s.uploadLessonAsset(ctx, file, "audio", util.AllowedAudioMimeTypes, util.ErrInvalidAudioFile)
}

func (s *UploadService) uploadLessonAsset(ctx context.Context, file *multipart.FileHeader, prefix string, allowed []string, invalid error) (string, error) {
	if file.Size > megabytes(s.Cfg.Upload.LessonMaxMB) {
		return "", util.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, allowed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", invalid, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	key := fmt.Sprintf("%s/%s-%d-%s%s", util.LessonsDir, prefix, time.Now().UnixMilli(), util.GenerateRandomString(9), ext)
	return s.Storage.Upload(ctx, key, src, file.Size, mimeType)
}

// Discard removes an uploaded asset that is no longer referenced.
func (s *UploadService) Discard(ctx context.Context, url string) {
	s.Storage.DeleteByURL(ctx, url)
}
