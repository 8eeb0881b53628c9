package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/voidarchive/archive/core"
)

type envelope struct {
	Status  string          `json:"status"`
	Content json.RawMessage `json:"content"`
	Message string          `json:"message"`
}

func call(t *testing.T, fn echo.HandlerFunc, method, body string, params ...string) (*httptest.ResponseRecorder, envelope) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(params) > 0 {
		names := []string{}
		values := []string{}
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	assert.NoError(t, fn(c))

	var response envelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return rec, response
}

func TestHandlerNavigatePresence(t *testing.T) {
	c, _ := startSignedIn(t)
	h := NewHandler(c, nil)

	rec, _ := call(t, h.Navigate, http.MethodPost, `{"view":"character_editor","character":"c1","from":"drafts"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	snapshot := c.Snapshot()
	assert.Equal(t, "c1", snapshot.SelectedCharacter.ID)
	assert.Equal(t, core.ViewDrafts, snapshot.Source)

	// absent keys leave the selection alone, null clears it
	rec, _ = call(t, h.Navigate, http.MethodPost, `{"view":"character_editor"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, c.Snapshot().SelectedCharacter)
	assert.Equal(t, core.ViewDrafts, c.Snapshot().Source)

	rec, _ = call(t, h.Navigate, http.MethodPost, `{"view":"dashboard","character":null}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Snapshot().SelectedCharacter)
	assert.Equal(t, core.ViewNone, c.Snapshot().Source)

	rec, _ = call(t, h.Navigate, http.MethodPost, `{"view":"log_detail","log":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, response := call(t, h.Navigate, http.MethodPost, `{"view":"lobby"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", response.Status)
}

func TestHandlerToggleFavorite(t *testing.T) {
	c, m := startSignedIn(t)
	h := NewHandler(c, nil)

	m.logs.EXPECT().ToggleFavorite(gomock.Any(), "l1", false).Return(nil)

	rec, response := call(t, h.ToggleFavorite, http.MethodPost, "", "id", "l1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var log core.ArchiveLog
	assert.NoError(t, json.Unmarshal(response.Content, &log))
	assert.True(t, log.IsFavorite)
}

func TestHandlerSignInFailure(t *testing.T) {
	c, m := newTestController(t)
	m.auth.EXPECT().CurrentUser(gomock.Any()).Return(nil, nil)
	c.Start(context.Background())
	h := NewHandler(c, nil)

	m.auth.EXPECT().SignIn(gomock.Any(), "ada@example.com", "bad").Return(nil, core.NewErrorInvalidCredentials())

	rec, response := call(t, h.SignIn, http.MethodPost, `{"email":"ada@example.com","password":"bad"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, core.NewErrorInvalidCredentials().Error(), response.Message)
}

func TestHandlerSelectors(t *testing.T) {
	c, _ := startSignedIn(t)
	h := NewHandler(c, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?q=night&sort=title", nil)
	rec := httptest.NewRecorder()
	assert.NoError(t, h.AllLogs(e.NewContext(req, rec)))

	var response struct {
		Content AllLogsResult `json:"content"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Content.Total)
	assert.Equal(t, "l1", response.Content.Ongoing[0].ID)

	rec, stats := call(t, h.Stats, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"logsCount":2,"wordCount":"2.5k","charactersCount":1}`, string(stats.Content))
}

func TestHandlerAssistUnavailable(t *testing.T) {
	c, _ := newTestController(t)
	h := NewHandler(c, nil)

	rec, _ := call(t, h.GenerateCharacter, http.MethodPost, `{"prompt":"x"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
