package diagnostics

import (
	"context"
	"encoding/json"

	"edemy/internal/qerrors"

	"github.com/golang/glog"
)

// LogEmitter writes each failed commit to the error log.
type LogEmitter struct{}

func NewLogEmitter() *LogEmitter {
	return &LogEmitter{}
}

func (l *LogEmitter) Emit(_ context.Context, err *qerrors.ConsistencyWriteError) {
	event := NewEvent(err)
	payload, mErr := json.Marshal(event.Payload)
	if mErr != nil {
		glog.Warningf("failed to marshal payload of diagnostic event %s: %v\n", event.ID, mErr)
	}
	glog.Errorf("[%s] %s for user %s failed: %s paths=%v payload=%s\n", event.ID, event.Op, event.UserID, event.Error, event.Paths, payload)
}
