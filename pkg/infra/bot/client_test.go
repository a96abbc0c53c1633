package bot_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/infra/bot"
)

func TestClientNotifyHappyPath(t *testing.T) {
	const expectedBody = `{"id":"Applications/Folder1/Rel42/activity/7","type":"TASK_STARTED","message":"hello","taskId":"Applications/Folder1/Rel42/Phase1/Task3"}`

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/activity", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get(bot.DeliveryHeader))

		defer r.Body.Close()
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, expectedBody, string(buf))

		w.WriteHeader(http.StatusOK)
	})
	s := httptest.NewServer(h)
	defer s.Close()

	client := bot.NewClient(s.URL, bot.WithHTTPClient(s.Client()))

	err := client.Notify(context.Background(), &model.Notification{
		ID:      "Applications/Folder1/Rel42/activity/7",
		Type:    "TASK_STARTED",
		Message: "hello",
		TaskID:  "Applications/Folder1/Rel42/Phase1/Task3",
	})
	require.NoError(t, err)
}

func TestClientNotifyEscapesMessage(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, `{"id":"a","type":"TASK_STARTED","message":"say \"hi\" \\ bye","taskId":"t"}`, string(buf))
		w.WriteHeader(http.StatusOK)
	})
	s := httptest.NewServer(h)
	defer s.Close()

	client := bot.NewClient(s.URL)
	err := client.Notify(context.Background(), &model.Notification{
		ID:      "a",
		Type:    "TASK_STARTED",
		Message: `say "hi" \ bye`,
		TaskID:  "t",
	})
	require.NoError(t, err)
}

func TestClientNotifyNon200(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusCreated, http.StatusInternalServerError, http.StatusNotFound} {
		s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := bot.NewClient(s.URL)
		err := client.Notify(context.Background(), &model.Notification{ID: "a", Type: "TASK_STARTED", TaskID: "t"})
		require.Error(t, err, "status %d", status)
		s.Close()
	}
}

func TestClientNotifyTransportError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close()

	client := bot.NewClient(url)
	err := client.Notify(context.Background(), &model.Notification{ID: "a", Type: "TASK_STARTED", TaskID: "t"})
	require.Error(t, err)
}

func TestClientEndpointTrimsSlash(t *testing.T) {
	require.Equal(t, "http://bot.local/activity", bot.NewClient("http://bot.local/").Endpoint())
	require.Equal(t, "http://bot.local/activity", bot.NewClient("http://bot.local").Endpoint())
}

func TestClientRateLimitCancelled(t *testing.T) {
	var calls atomic.Int32
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer s.Close()

	client := bot.NewClient(s.URL, bot.WithRateLimit(0.001, 1))
	n := &model.Notification{ID: "a", Type: "TASK_STARTED", TaskID: "t"}

	require.NoError(t, client.Notify(context.Background(), n))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, client.Notify(ctx, n))
	require.Equal(t, int32(1), calls.Load())
}

func TestClientNotifyKeepsHTML(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Contains(t, string(buf), `"message":"<b>owner</b> & team"`)
		w.WriteHeader(http.StatusOK)
	})
	s := httptest.NewServer(h)
	defer s.Close()

	client := bot.NewClient(s.URL)
	err := client.Notify(context.Background(), &model.Notification{
		ID:      "a",
		Type:    "TASK_OWNER_UPDATED",
		Message: "<b>owner</b> & team",
		TaskID:  "t",
	})
	require.NoError(t, err)
}
