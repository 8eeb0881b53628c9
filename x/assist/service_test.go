package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/util"
)

func fakeCompletions(t *testing.T, content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": content},
				},
			},
		})
	}))
}

func newTestService(t *testing.T, server *httptest.Server) core.AssistService {
	config := util.Config{}
	config.Assist.APIKey = "test-key"
	config.Assist.BaseURL = server.URL
	config.Assist.Model = "test-model"

	service, err := NewService(config)
	assert.NoError(t, err)
	return service
}

func TestNewServiceRequiresKey(t *testing.T) {
	_, err := NewService(util.Config{})
	assert.Error(t, err)
}

func TestGenerateCharacter(t *testing.T) {
	server := fakeCompletions(t, "```json\n"+`{
		"name": "Vey",
		"title": "Archivist",
		"introduction": "Keeper of the void.",
		"ability": "Recall",
		"stats": "Power: A",
		"tags": ["quiet"],
		"attributes": {"height": "170cm", "age": "??", "alignment": "Cult of Light", "gender": "F"}
	}`+"\n```")
	defer server.Close()

	draft, err := newTestService(t, server).GenerateCharacter(context.Background(), "a quiet archivist")
	assert.NoError(t, err)
	assert.Equal(t, "Vey", draft.Name)
	assert.Equal(t, []string{"quiet"}, draft.Tags)
	assert.Equal(t, []string{}, draft.Trivia)
	assert.Equal(t, core.AlignmentNone, draft.Attributes.Alignment)
}

func TestGenerateCharacterKeepsKnownAlignment(t *testing.T) {
	draft, err := parseDraft(`{"name":"Kai","attributes":{"alignment":"结社"}}`)
	assert.NoError(t, err)
	assert.Equal(t, "结社", draft.Attributes.Alignment)

	_, err = parseDraft("not json")
	assert.Error(t, err)
}

func TestContinueLog(t *testing.T) {
	server := fakeCompletions(t, "  The lights flickered once more.  ")
	defer server.Close()

	paragraph, err := newTestService(t, server).ContinueLog(context.Background(), "a dark hall", "Who goes there?")
	assert.NoError(t, err)
	assert.Equal(t, "The lights flickered once more.", paragraph)
}
