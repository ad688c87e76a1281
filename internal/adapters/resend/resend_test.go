package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradenexus/internal/domain"
	"tradenexus/internal/ports"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestNotifier(t *testing.T, baseURL string) *Notifier {
	t.Helper()
	n, err := New(Config{
		APIKey:  "re_test_key",
		From:    "TradeNexus <onboarding@resend.dev>",
		To:      "inbox@example.com",
		BaseURL: baseURL,
		Logger:  &mockLogger{},
	})
	require.NoError(t, err)
	return n
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{APIKey: "k", From: "a", To: "b"})
	assert.Error(t, err, "logger required")

	_, err = New(Config{Logger: &mockLogger{}})
	assert.Error(t, err, "credentials required")
}

func TestSendContact(t *testing.T) {
	var got sendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	n := newTestNotifier(t, srv.URL)
	err := n.SendContact(context.Background(), domain.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Does the signal bot cover MNQ?",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", auth)
	assert.Equal(t, []string{"inbox@example.com"}, got.To)
	assert.Equal(t, "New contact form message from Ada", got.Subject)
	assert.Equal(t, "ada@example.com", got.ReplyTo)
	assert.Contains(t, got.HTML, "Does the signal bot cover MNQ?")
}

func TestSendContact_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	n := newTestNotifier(t, srv.URL)
	err := n.SendContact(context.Background(), domain.ContactMessage{Name: "Ada"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrNotificationFailed)
}
