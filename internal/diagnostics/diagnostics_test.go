package diagnostics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"edemy/internal/qerrors"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	errs []*qerrors.ConsistencyWriteError
}

func (r *recordingEmitter) Emit(_ context.Context, err *qerrors.ConsistencyWriteError) {
	r.errs = append(r.errs, err)
}

type fakePublisher struct {
	channel  string
	messages [][]byte
	err      error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.messages = append(f.messages, message.([]byte))
	return redis.NewIntResult(1, f.err)
}

func checkoutFailure() *qerrors.ConsistencyWriteError {
	return &qerrors.ConsistencyWriteError{
		Op:     "checkout",
		UserID: "stu-1",
		Paths:  []string{"courses/2", "users/stu-1/enrolledCourses/2"},
		Payload: map[string]interface{}{
			"courses/2": map[string]interface{}{"enrolledStudents": "increment(1)"},
		},
		Err: errors.New("permission denied"),
	}
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(checkoutFailure())

	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, "checkout", event.Op)
	assert.Equal(t, "stu-1", event.UserID)
	assert.Equal(t, []string{"courses/2", "users/stu-1/enrolledCourses/2"}, event.Paths)
	assert.Equal(t, "permission denied", event.Error)

	assert.NotEqual(t, event.ID, NewEvent(checkoutFailure()).ID)
}

func TestMulti(t *testing.T) {
	a, b := &recordingEmitter{}, &recordingEmitter{}
	m := Multi{a, nil, b}

	m.Emit(context.Background(), checkoutFailure())

	assert.Len(t, a.errs, 1)
	assert.Len(t, b.errs, 1)
}

func TestRedisEmitterPublishes(t *testing.T) {
	pub := &fakePublisher{}
	emitter := NewRedisEmitter(pub, "")

	emitter.Emit(context.Background(), checkoutFailure())

	assert.Equal(t, DefaultChannel, pub.channel)
	require.Len(t, pub.messages, 1)

	var event Event
	require.NoError(t, json.Unmarshal(pub.messages[0], &event))
	assert.Equal(t, "checkout", event.Op)
	assert.Equal(t, "stu-1", event.UserID)
	assert.Len(t, event.Paths, 2)
	assert.Contains(t, event.Payload, "courses/2")
}

func TestRedisEmitterSwallowsPublishErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection refused")}
	emitter := NewRedisEmitter(pub, "ops")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NotPanics(t, func() {
		emitter.Emit(ctx, checkoutFailure())
	})
	assert.Equal(t, "ops", pub.channel)
}

func TestLogEmitter(t *testing.T) {
	assert.NotPanics(t, func() {
		NewLogEmitter().Emit(context.Background(), checkoutFailure())
		Discard{}.Emit(context.Background(), checkoutFailure())
	})
}
