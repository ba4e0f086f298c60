package logger

import (
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// Setup initializes logrus with file rotation. Logs go to both stdout
// and a rotating file so container logs and on-disk history agree.
func Setup(logFile string) {
	if logFile == "" {
		logFile = "./logs/app.log"
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}

	logrus.SetOutput(io.MultiWriter(os.Stdout, rotator))
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(logrus.InfoLevel)
}

// Event logs a standardized line with module/action/request_id fields.
// Message should be summarized; never log passenger documents or
// password material.
func Event(requestID, module, action, message string) {
	logrus.WithFields(logrus.Fields{
		"module":     module,
		"action":     action,
		"request_id": requestID,
	}).Info(message)
}
