package textgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edemy/internal/qerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, status int, body string) (*httptest.Server, *chatRequest) {
	t.Helper()
	var received chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func contentResponse(content string) string {
	raw, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(raw)
}

func TestGenerateCourseDescription(t *testing.T) {
	srv, received := completionServer(t, http.StatusOK, contentResponse(`{"description":"A long description.","summary":"Short."}`))
	c := NewHTTPClient(srv.URL+"/", "test-key", "", time.Second)

	out, err := c.GenerateCourseDescription(context.Background(), " Go ", "concurrency, channels")
	require.NoError(t, err)
	assert.Equal(t, "A long description.", out.Description)
	assert.Equal(t, "Short.", out.Summary)

	assert.Equal(t, DefaultModel, received.Model)
	assert.Equal(t, "json_object", received.ResponseFormat["type"])
	require.Len(t, received.Messages, 2)
	assert.Contains(t, received.Messages[1].Content, "Topic: Go\n")
	assert.Contains(t, received.Messages[1].Content, "Keywords: concurrency, channels")
}

func TestGenerateCourseDescriptionNotConfigured(t *testing.T) {
	c := NewHTTPClient("", "", "", 0)

	_, err := c.GenerateCourseDescription(context.Background(), "Go", "channels")
	assert.ErrorIs(t, err, qerrors.TextGenUnavailableError)
	assert.Equal(t, qerrors.KindConfiguration, qerrors.KindOf(err))
}

func TestGenerateCourseDescriptionRequiresInput(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", "test-key", "", time.Second)

	_, err := c.GenerateCourseDescription(context.Background(), "", "channels")
	assert.ErrorIs(t, err, qerrors.InvalidGenerateParams)
	_, err = c.GenerateCourseDescription(context.Background(), "Go", "  ")
	assert.ErrorIs(t, err, qerrors.InvalidGenerateParams)
}

func TestGenerateCourseDescriptionErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`, "invalid api key"},
		{"not json", http.StatusBadGateway, "<html>bad gateway</html>", "status 502"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
		{"malformed content", http.StatusOK, contentResponse("Description: great"), "malformed content"},
		{"empty summary", http.StatusOK, contentResponse(`{"description":"x","summary":""}`), "empty description or summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := completionServer(t, tt.status, tt.body)
			c := NewHTTPClient(srv.URL, "test-key", "some-model", time.Second)

			_, err := c.GenerateCourseDescription(context.Background(), "Go", "channels")
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}
}
