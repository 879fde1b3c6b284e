package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the session logger. With an empty directory logs go to stdout;
// otherwise one file per session id is written under the directory.
func New(logDirectory string, sessionID string) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = false

	if logDirectory != "" {
		if _, err := os.Stat(logDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(logDirectory, os.ModePerm); err != nil {
				return nil, err
			}
		}

		logPath := logDirectory + "/" + sessionID + ".log"
		if _, err := os.OpenFile(logPath, os.O_CREATE|os.O_RDWR, os.ModePerm); err != nil {
			return nil, err
		}
		config.OutputPaths = []string{logPath}
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log.Sugar(), nil
}
