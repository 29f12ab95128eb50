package lib

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout, // default to STDOUT
		lecho.WithLevel(log.INFO),
		lecho.WithTimestamp(),
	)
	// check if a log file config is set
	if logFilePath != "" {
		file, err := GetLoggingFile(logFilePath)
		if err != nil {
			logger.Errorf("failed to create logging file: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}

// GetLoggingFile opens a dated log file next to path.
func GetLoggingFile(path string) (*os.File, error) {
	date := time.Now().Format("-2006-01-02")
	extension := filepath.Ext(path)
	if extension != "" {
		path = strings.TrimSuffix(path, extension) + date + extension
	} else {
		path = path + date + ".log"
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}
