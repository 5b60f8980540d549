// Package logger 日志模块单元测试
package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/santaluna/hotel-backend/internal/common/config"
)

func TestInit_ConsoleFormat(t *testing.T) {
	cfg := &config.LoggerConfig{
		Level:  "debug",
		Format: "console",
		Output: "stdout",
		Caller: true,
	}

	err := Init(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, log)
	assert.NotNil(t, sugar)
}

func TestInit_FileOutput(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "app.log")

	cfg := &config.LoggerConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logPath,
	}

	err := Init(cfg)
	require.NoError(t, err)

	Info("booking confirmed", BookingID(1), ConfirmationCode("SAN-ABCDEF"))
	require.NoError(t, Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SAN-ABCDEF")
	assert.Contains(t, string(data), "booking_id")
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, getLogLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, getLogLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, getLogLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, getLogLevel("unknown"))
}

func TestDomainFields(t *testing.T) {
	assert.Equal(t, "room_no", RoomNo("101").Key)
	assert.Equal(t, "staff_id", StaffID(2).Key)
	assert.Equal(t, "guest_email", GuestEmail("a@b.com").Key)
	assert.Equal(t, "status", BookingStatus("confirmed").Key)
}

func TestGetLogger_LazyInit(t *testing.T) {
	log = nil
	sugar = nil
	assert.NotNil(t, GetLogger())
	assert.NotNil(t, GetSugar())
}
