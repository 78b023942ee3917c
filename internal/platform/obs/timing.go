package obs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs the duration of the named operation when the returned function
// runs, usually via defer. Pass a pointer to the caller's error to include
// failures in the log line; nil is accepted for infallible operations.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		fields := logrus.Fields{
			"req_id": reqID,
			"op":     name,
			"dur_ms": time.Since(start).Milliseconds(),
		}

		if errp != nil && *errp != nil {
			logrus.WithFields(fields).WithField("err", *errp).Warn("operation failed")
			return
		}
		logrus.WithFields(fields).Debug("operation complete")
	}
}
