package logger

import (
	"time"

	"go.uber.org/zap"
)

// String returns a string-valued field.
func String(key, val string) Field {
	return zap.String(key, val)
}

// Int returns an int-valued field.
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Duration returns a duration-valued field.
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Error returns a field carrying err under the standard "error" key.
func Error(err error) Field {
	return zap.Error(err)
}
