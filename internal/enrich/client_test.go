package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, content string, gotReq *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if gotReq != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotReq))
		}

		w.WriteHeader(status)
		if status == http.StatusOK {
			resp := map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]interface{}{"content": content}},
				},
			}
			json.NewEncoder(w).Encode(resp)
		}
	}))
}

func TestCreateCompletionRequestShape(t *testing.T) {
	var got chatRequest
	srv := chatServer(t, http.StatusOK, `{"ok": true}`, &got)
	defer srv.Close()

	client := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL})

	content, err := client.CreateCompletion(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, content)

	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "analyze this", got.Messages[0].Content)
	assert.Equal(t, 0.3, got.Temperature)
	assert.Equal(t, maxResponseTokens, got.MaxTokens)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestCreateCompletionNonSuccessStatus(t *testing.T) {
	srv := chatServer(t, http.StatusInternalServerError, "", nil)
	defer srv.Close()

	client := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := client.CreateCompletion(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestCreateCompletionFailsFastWithoutCredential(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	for _, key := range []string{"", PlaceholderAPIKey} {
		client := NewClient(&Config{APIKey: key, BaseURL: srv.URL})
		_, err := client.CreateCompletion(context.Background(), "prompt")
		require.Error(t, err)
	}

	assert.False(t, called, "no network call should happen without a credential")
}

func TestCreateCompletionEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	client := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := client.CreateCompletion(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion")
}

func TestCheckConnection(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "pong", nil)
	defer srv.Close()

	client := NewClient(&Config{APIKey: "sk-test", BaseURL: srv.URL})
	assert.NoError(t, client.CheckConnection(context.Background()))

	unset := NewClient(&Config{BaseURL: srv.URL})
	assert.Error(t, unset.CheckConnection(context.Background()))
}
