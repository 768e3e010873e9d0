package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	telegram "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/conversation"
	"github.com/smith3v/tg-vocab-trainer/pkg/internal/testutil"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

type recordedRequest struct {
	path        string
	method      string
	contentType string
	body        []byte
}

type mockClient struct {
	requests []recordedRequest
	response string
}

func newMockClient() *mockClient {
	return &mockClient{
		response: `{"ok":true,"result":{}}`,
	}
}

func (m *mockClient) Do(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if err := req.Body.Close(); err != nil {
		return nil, fmt.Errorf("failed to close request body: %w", err)
	}
	m.requests = append(m.requests, recordedRequest{
		path:        req.URL.Path,
		method:      req.Method,
		contentType: req.Header.Get("Content-Type"),
		body:        body,
	})

	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(m.response)),
		Header:     make(http.Header),
	}
	return resp, nil
}

func (m *mockClient) lastMessageText(t *testing.T) string {
	t.Helper()
	value, _ := m.lastMultipartField(t, "text")
	return value
}

// messageTexts returns the text of every sendMessage call in order.
func (m *mockClient) messageTexts(t *testing.T) []string {
	t.Helper()
	var texts []string
	for _, req := range m.requests {
		if !strings.HasSuffix(req.path, "/sendMessage") {
			continue
		}
		if value, _, ok := multipartField(t, req, "text"); ok {
			texts = append(texts, value)
		}
	}
	return texts
}

// lastReplyKeyboard decodes the reply_markup of the last request.
func (m *mockClient) lastReplyKeyboard(t *testing.T) models.ReplyKeyboardMarkup {
	t.Helper()
	raw, _ := m.lastMultipartField(t, "reply_markup")
	var markup models.ReplyKeyboardMarkup
	if err := json.Unmarshal([]byte(raw), &markup); err != nil {
		t.Fatalf("failed to decode reply markup %q: %v", raw, err)
	}
	return markup
}

func (m *mockClient) lastMultipartField(t *testing.T, fieldName string) (string, string) {
	t.Helper()
	if len(m.requests) == 0 {
		t.Fatalf("expected at least one recorded request")
	}
	value, fileName, ok := multipartField(t, m.requests[len(m.requests)-1], fieldName)
	if !ok {
		t.Fatalf("field %q not found in request", fieldName)
	}
	return value, fileName
}

func multipartField(t *testing.T, req recordedRequest, fieldName string) (string, string, bool) {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(req.contentType)
	if err != nil {
		t.Fatalf("failed to parse media type: %v", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		t.Fatalf("unexpected media type: %s", mediaType)
	}

	reader := multipart.NewReader(bytes.NewReader(req.body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read multipart part: %v", err)
		}
		if part.FormName() == fieldName {
			data, err := io.ReadAll(part)
			if err != nil {
				t.Fatalf("failed to read multipart field: %v", err)
			}
			return string(data), part.FileName(), true
		}
	}
	return "", "", false
}

func newTestTelegramBot(t *testing.T, client *mockClient) *telegram.Bot {
	t.Helper()
	b, err := telegram.New("test-token",
		telegram.WithSkipGetMe(),
		telegram.WithHTTPClient(time.Second, client),
	)
	if err != nil {
		t.Fatalf("failed to create test bot: %v", err)
	}
	return b
}

func newTestUpdate(text string, userID int64) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{
				ID: userID,
			},
			Chat: models.Chat{
				ID: userID,
			},
			Text: text,
		},
	}
}

func newTestDocumentUpdate(fileName, fileID string, userID int64) *models.Update {
	return &models.Update{
		Message: &models.Message{
			From: &models.User{
				ID: userID,
			},
			Chat: models.Chat{
				ID:   userID,
				Type: models.ChatTypePrivate,
			},
			Document: &models.Document{
				FileID:   fileID,
				FileName: fileName,
			},
		},
	}
}

func newTestHandler(t *testing.T) (*Handler, *vocabulary.Service) {
	t.Helper()
	store, _ := testutil.SetupStore(t)
	service, err := vocabulary.NewService(store)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if _, err := service.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to seed vocabulary: %v", err)
	}
	h, err := New(service, conversation.NewMemoryStore())
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return h, service
}
