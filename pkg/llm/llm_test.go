package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer replies to chat completions with the given content or status
func chatServer(t *testing.T, status int, content string, reqs *[]openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if reqs != nil {
			*reqs = append(*reqs, req)
		}

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
			return
		}
		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(srv *httptest.Server) Config {
	return Config{Endpoint: srv.URL + "/v1/", APIKey: "test-key", Model: "llama2:7b-chat", Temperature: 0.2, MaxTokens: 300}
}

func TestClassifier_Classify(t *testing.T) {
	tbl := []struct {
		name, reply, want string
	}{
		{name: "exact label", reply: "sports", want: "sports"},
		{name: "upper case with noise", reply: "  Category: TECHNOLOGY.\n", want: "technology"},
		{name: "first listed label wins", reply: "science and technology", want: "technology"},
		{name: "unknown label", reply: "politics", want: "general"},
		{name: "empty reply", reply: "", want: "general"},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			var reqs []openai.ChatCompletionRequest
			srv := chatServer(t, http.StatusOK, tt.reply, &reqs)
			c := NewClassifier(testConfig(srv))

			res, err := c.Classify(context.Background(), "Local team wins the cup\n\nThe final was played...")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)

			require.Len(t, reqs, 1)
			assert.Equal(t, "llama2:7b-chat", reqs[0].Model)
			require.Len(t, reqs[0].Messages, 2)
			assert.Contains(t, reqs[0].Messages[0].Content, "technology, sports, health, business, entertainment, science, general")
			assert.True(t, strings.HasPrefix(reqs[0].Messages[1].Content, "Article:\nLocal team wins the cup"))
		})
	}
}

func TestClassifier_Errors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		srv := chatServer(t, http.StatusInternalServerError, "", nil)
		c := NewClassifier(testConfig(srv))
		_, err := c.Classify(context.Background(), "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "classify article")
	})

	t.Run("timeout", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		c := NewClassifier(Config{Endpoint: srv.URL + "/v1", APIKey: "test-key", Model: "m"})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		_, err := c.Classify(ctx, "text")
		require.Error(t, err)
		assert.Positive(t, atomic.LoadInt32(&calls))
	})
}

func TestSummarizer_Summarize(t *testing.T) {
	var reqs []openai.ChatCompletionRequest
	srv := chatServer(t, http.StatusOK, "  Storm hits the coast. Thousands without power.  ", &reqs)
	s := NewSummarizer(testConfig(srv), 120)

	res, err := s.Summarize(context.Background(), "A long article about a storm.")
	require.NoError(t, err)
	assert.Equal(t, "Storm hits the coast. Thousands without power.", res)

	require.Len(t, reqs, 1)
	assert.Equal(t, 120, reqs[0].MaxTokens)
	assert.Equal(t, "A long article about a storm.", reqs[0].Messages[1].Content)

	t.Run("default max tokens", func(t *testing.T) {
		var reqs []openai.ChatCompletionRequest
		srv := chatServer(t, http.StatusOK, "ok", &reqs)
		_, err := NewSummarizer(testConfig(srv), 0).Summarize(context.Background(), "text")
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, 300, reqs[0].MaxTokens)
	})

	t.Run("empty output", func(t *testing.T) {
		srv := chatServer(t, http.StatusOK, "   ", nil)
		_, err := NewSummarizer(testConfig(srv), 0).Summarize(context.Background(), "text")
		require.EqualError(t, err, "summarize article: empty summary")
	})
}
