package augment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/draftcheck/pkg/draft"
)

func TestOpenAIAdvisorReview(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/chat/completions", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "gpt-4o-mini", payload["model"])

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "- Mention pot size.\n- Clarify simmer time."}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	t.Setenv("OPENAI_BASE_URL", server.URL)
	advisor := NewOpenAIAdvisor("test-key", "")

	got, err := advisor.Review(context.Background(), &draft.RecipeDraft{Path: "a.md", Title: "Soup", Body: "body"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mention pot size.", "Clarify simmer time."}, got)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestOpenAIAdvisorNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	t.Setenv("OPENAI_BASE_URL", server.URL)
	advisor := NewOpenAIAdvisor("bad-key", "")

	_, err := advisor.Review(context.Background(), &draft.RecipeDraft{Path: "a.md"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestOpenAIAdvisorNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	t.Setenv("OPENAI_BASE_URL", server.URL)
	advisor := NewOpenAIAdvisor("k", "")

	_, err := advisor.Review(context.Background(), &draft.RecipeDraft{Path: "a.md"})
	assert.Error(t, err)
}
