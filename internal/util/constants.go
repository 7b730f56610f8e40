package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeAudio       = "audio/"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

// 允许上传的录音 MIME 类型
var AllowedAudioMimeTypes = []string{
	"audio/mpeg",
	"audio/wav",
	"audio/x-wav",
	"audio/wave",
	"audio/ogg",
	"audio/aac",
	"audio/webm",
	// http.DetectContentType reports webm containers as video/webm
	"video/webm",
	// and some mp3/aac streams without an ID3 header as octet-stream
	MimeOctetStream,
}

var AllowedAudioExtensions = []string{".mp3", ".wav", ".ogg", ".aac", ".webm", ".m4a"}

// 目录前缀
const (
	RecordingsDir = "audio_recordings"
	LessonsDir    = "lessons"
)

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
