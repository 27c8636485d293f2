package gemini_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"isms-assistant/pkg/gemini"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) gemini.IGemini {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := gemini.New(gemini.Config{
		APIKey: "test-api-key",
		Model:  "gemini-2.5-flash",
		APIURL: ts.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestGenerateContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{
			"candidates": [
				{
					"content": {
						"parts": [{ "text": "mocked response string" }],
						"role": "model"
					}
				}
			]
		}`))
	})

	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: "Hello world"}}},
		},
		Temperature: 0.1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Content.Parts) != 1 || resp.Content.Parts[0].Text != "mocked response string" {
		t.Errorf("unexpected content: %+v", resp.Content)
	}
}

func TestGenerateContentServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{{Parts: []gemini.Part{{Text: "boom"}}}},
	}); err == nil {
		t.Fatal("expected error from 500 response")
	}
}

func TestGenerateContentRateLimited(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{{Parts: []gemini.Part{{Text: "hi"}}}},
	})
	if !errors.Is(err, gemini.ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatal("missing API key must fail")
	}
}
