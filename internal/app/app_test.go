package app

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"music_learning_backend/internal/config"
	"music_learning_backend/internal/repository"
	"music_learning_backend/internal/service"
	"music_learning_backend/internal/util"
	"music_learning_backend/pkg/database"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t   *testing.T
	app *App
	cfg *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: gin.TestMode},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "app.db")},
		JWT:      config.JWTConfig{Secret: "app-test-secret", ExpireTime: time.Hour},
		Storage:  config.StorageConfig{Type: util.StorageLocal, LocalPath: filepath.Join(dir, "uploads")},
		Upload:   config.UploadConfig{RecordingMaxMB: 1, LessonMaxMB: 1, TempDir: filepath.Join(dir, "tmp")},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	db, err := database.InitDB(&cfg.Database, false)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	a := New(cfg, db, nil)
	// ffprobe is not available everywhere
	a.services.upload.Probe = func(string) (*util.AudioInfo, error) {
		return &util.AudioInfo{Duration: 3.5}, nil
	}
	return &testServer{t: t, app: a, cfg: cfg}
}

func (s *testServer) do(req *http.Request, token string) (int, envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (s *testServer) json(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, token)
}

func (s *testServer) multipart(path, token string, fields map[string]string, fileField, filename string, content []byte) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(s.t, err)
		_, err = fw.Write(content)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req, token)
}

func (s *testServer) register(email string) string {
	s.t.Helper()
	code, _ := s.json(http.MethodPost, "/api/register", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusCreated, code)
	return s.login(email, "secret123")
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	code, env := s.json(http.MethodPost, "/api/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func (s *testServer) admin() string {
	s.t.Helper()
	auth := service.NewAuthService(repository.NewUserRepository(s.app.DB), s.cfg)
	_, err := auth.CreateAdmin(context.Background(), service.RegisterInput{Email: "admin@example.com", Password: "adminpass"})
	require.NoError(s.t, err)
	return s.login("admin@example.com", "adminpass")
}

func wavBytes() []byte {
	return append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 64)...)
}

func TestHealthAndAuthGuards(t *testing.T) {
	s := newTestServer(t)

	code, env := s.json(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"cache":"disabled"`)

	code, _ = s.json(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	user := s.register("ana@example.com")
	code, env = s.json(http.MethodGet, "/api/profile", user, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"role":"user"`)
	assert.NotContains(t, string(env.Data), "password")

	code, _ = s.json(http.MethodPost, "/api/admin/quizzes", user, gin.H{"title": "x"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.json(http.MethodPost, "/api/register", "", gin.H{"email": "ANA@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, code)
}

func TestQuizSubmissionFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()
	user := s.register("ben@example.com")

	code, env := s.json(http.MethodPost, "/api/admin/quizzes", admin, gin.H{
		"title": "Intervals",
		"questions": []gin.H{
			{"questionText": "C to E?", "options": []string{"Major third", "Minor third"}, "correctAnswer": "Major third"},
			{"questionText": "C to G?", "options": []string{"Fifth", "Fourth"}, "correctAnswer": "Fifth"},
		},
	})
	require.Equal(t, http.StatusCreated, code)
	var quiz struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &quiz))

	// 普通用户看不到正确答案
	code, env = s.json(http.MethodGet, "/api/quizzes/"+quiz.ID, user, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(env.Data), "correctAnswer")
	_, env = s.json(http.MethodGet, "/api/quizzes/"+quiz.ID, admin, nil)
	assert.Contains(t, string(env.Data), "correctAnswer")

	submit := func(answers []gin.H) (int, service.SubmitResult) {
		code, env := s.json(http.MethodPost, "/api/quiz-results/submit", user, gin.H{"quizId": quiz.ID, "answers": answers})
		var res service.SubmitResult
		if len(env.Data) > 0 {
			require.NoError(t, json.Unmarshal(env.Data, &res))
		}
		return code, res
	}

	code, res := submit([]gin.H{{"questionIndex": 0, "answer": "Major third"}, {"questionIndex": 1, "answer": "Fourth"}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.OutcomeIncorrect, res.Outcome)

	code, res = submit([]gin.H{{"questionIndex": 0, "answer": "major third "}})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.OutcomeIncomplete, res.Outcome)

	code, _ = s.json(http.MethodPost, "/api/quiz-results/submit", user, gin.H{"quizId": quiz.ID, "answers": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = submit([]gin.H{{"questionIndex": 0, "answer": "x"}, {"questionIndex": 0, "answer": "y"}})
	assert.Equal(t, http.StatusBadRequest, code)

	// null 视为未作答
	code, env = s.json(http.MethodPost, "/api/quiz-results/submit", user, gin.H{
		"quizId":      quiz.ID,
		"userAnswers": gin.H{"0": nil, "1": "Fifth"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, service.OutcomeIncomplete, res.Outcome)
	require.NotNil(t, res.Grade)
	assert.Equal(t, 0, res.Grade.CorrectCount)
	assert.Equal(t, 0, res.Grade.MissingIndex)

	code, res = submit([]gin.H{{"questionIndex": 0, "answer": "Major third"}, {"questionIndex": 1, "answer": "fifth"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, service.OutcomeCompleted, res.Outcome)
	require.NotNil(t, res.Record)
	firstID := res.Record.ID

	// 旧版 map 形式
	code, env = s.json(http.MethodPost, "/api/quiz-results/submit", user, gin.H{
		"quizId":      quiz.ID,
		"userAnswers": gin.H{"0": "Major third", "1": "Fifth"},
	})
	assert.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, service.OutcomeAlreadyCompleted, res.Outcome)
	assert.Equal(t, firstID, res.Record.ID)

	code, env = s.json(http.MethodPost, "/api/quiz-results/submit", user, gin.H{"quizId": "missing", "answers": []gin.H{{"questionIndex": 0, "answer": "a"}}})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Quiz with ID missing was not found.", env.Message)

	code, env = s.json(http.MethodGet, "/api/quiz-results/status/"+quiz.ID, user, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"isCompleted":true`)

	code, env = s.json(http.MethodGet, "/api/quiz-results/me", user, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, strings.Count(string(env.Data), quiz.ID))
}

func TestQuizListAndDelete(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()
	user := s.register("cleo@example.com")

	code, env := s.json(http.MethodPost, "/api/admin/quizzes", admin, gin.H{
		"title":     "Clefs",
		"questions": []gin.H{{"questionText": "Treble clef line?", "correctAnswer": "G"}},
	})
	require.Equal(t, http.StatusCreated, code)
	var quiz struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &quiz))

	code, env = s.json(http.MethodGet, "/api/quizzes", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), quiz.ID)
	assert.NotContains(t, string(env.Data), "correctAnswer")

	_, env = s.json(http.MethodGet, "/api/quizzes", admin, nil)
	assert.Contains(t, string(env.Data), "correctAnswer")

	code, _ = s.json(http.MethodDelete, "/api/admin/quizzes/"+quiz.ID, user, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.json(http.MethodDelete, "/api/admin/quizzes/"+quiz.ID, admin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.json(http.MethodGet, "/api/quizzes/"+quiz.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.json(http.MethodDelete, "/api/admin/quizzes/"+quiz.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCompletedQuizzesVisibility(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()
	ana := s.register("ana@example.com")
	s.register("ben@example.com")

	var profile struct {
		ID string `json:"id"`
	}
	_, env := s.json(http.MethodGet, "/api/profile", ana, nil)
	require.NoError(t, json.Unmarshal(env.Data, &profile))

	code, _ := s.json(http.MethodGet, "/api/quiz-results/user/"+profile.ID, ana, nil)
	assert.Equal(t, http.StatusOK, code)

	ben := s.login("ben@example.com", "secret123")
	code, _ = s.json(http.MethodGet, "/api/quiz-results/user/"+profile.ID, ben, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.json(http.MethodGet, "/api/quiz-results/user/"+profile.ID, admin, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"completedQuizzes":[]`)
}

func TestRecordingLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.admin()
	ana := s.register("ana@example.com")
	ben := s.register("ben@example.com")

	code, env := s.multipart("/api/admin/lessons", admin, map[string]string{"title": "Scales", "order": "1"}, "", "", nil)
	require.Equal(t, http.StatusCreated, code)
	var lesson struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &lesson))

	code, _ = s.multipart("/api/user-recordings/missing-lesson", ana, nil, "audioFile", "take.wav", wavBytes())
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.multipart("/api/user-recordings/"+lesson.ID, ana, nil, "audioFile", "take.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, code)

	upload := func() (string, string) {
		code, env := s.multipart("/api/user-recordings/"+lesson.ID, ana, nil, "audioFile", "take.wav", wavBytes())
		require.Equal(t, http.StatusCreated, code)
		var rec struct {
			ID              string  `json:"id"`
			AudioURL        string  `json:"audioUrl"`
			DurationSeconds float64 `json:"durationSeconds"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &rec))
		assert.Equal(t, 3.5, rec.DurationSeconds)
		return rec.ID, rec.AudioURL
	}
	localFile := func(url string) string {
		return filepath.Join(s.cfg.Storage.LocalPath, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/")))
	}

	firstID, firstURL := upload()
	assert.FileExists(t, localFile(firstURL))

	// 重复上传只保留一条，并删除旧文件
	secondID, secondURL := upload()
	assert.Equal(t, firstID, secondID)
	assert.NotEqual(t, firstURL, secondURL)
	assert.NoFileExists(t, localFile(firstURL))

	code, env = s.json(http.MethodGet, "/api/user-recordings/me", ana, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, strings.Count(string(env.Data), `"audioUrl":"`+secondURL))
	assert.Contains(t, string(env.Data), `"lessonDetails"`)

	code, env = s.json(http.MethodGet, "/api/user-recordings/lesson/"+lesson.ID, ben, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))

	code, _ = s.json(http.MethodDelete, "/api/user-recordings/"+secondID, ben, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.json(http.MethodDelete, "/api/user-recordings/"+secondID, ana, nil)
	assert.Equal(t, http.StatusOK, code)
	_, err := os.Stat(localFile(secondURL))
	assert.True(t, os.IsNotExist(err))

	code, _ = s.json(http.MethodDelete, "/api/user-recordings/"+secondID, ana, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestConfigCallbackUpdatesCORS(t *testing.T) {
	s := newTestServer(t)

	preflight := func(origin string) int {
		req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		s.app.Router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, preflight("http://localhost:5173"))
	assert.Equal(t, http.StatusForbidden, preflight("https://music.example"))

	newCfg := *s.cfg
	newCfg.CORS.AllowedOrigins = []string{"https://music.example"}
	for _, cb := range s.app.configCallbacks {
		cb(&newCfg)
	}
	assert.Equal(t, http.StatusNoContent, preflight("https://music.example"))
}
