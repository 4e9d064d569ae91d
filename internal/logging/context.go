package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

type logDataKey struct{}

func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey{}, logData)
}

// GetLogData returns the LogData attached to ctx. Without one it returns a
// detached LogData on the standard logger, so callers never nil-check.
func GetLogData(ctx context.Context) *LogData {
	if logData, ok := ctx.Value(logDataKey{}).(*LogData); ok && logData != nil {
		return logData
	}
	return NewLogData(logrus.StandardLogger())
}
