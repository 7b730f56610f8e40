package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"music_learning_backend/internal/config"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want zapcore.Level
	}{
		{"debug mode", config.Config{Server: config.ServerConfig{Mode: "debug"}}, zap.DebugLevel},
		{"release mode", config.Config{Server: config.ServerConfig{Mode: "release"}}, zap.InfoLevel},
		{"explicit level wins", config.Config{Server: config.ServerConfig{Mode: "debug"}, Log: config.LogConfig{Level: "warn"}}, zap.WarnLevel},
		{"bad level ignored", config.Config{Server: config.ServerConfig{Mode: "release"}, Log: config.LogConfig{Level: "loud"}}, zap.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			SetLevel(&tc.cfg)
			assert.Equal(t, tc.want, level.Level())
		})
	}
}

func TestLogIsUsableBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Log.Info("before init", zap.String("k", "v"))
	})
}
