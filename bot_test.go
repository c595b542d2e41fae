package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"
)

// apiTestServer fakes the Bot API over httptest. Methods without a
// scripted handler fall back to a working getMe so the constructor
// succeeds.
func apiTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := path.Base(r.URL.Path)
		if h, ok := handlers[method]; ok {
			h(w, r)
			return
		}
		if method == "getMe" {
			fmt.Fprint(w, `{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"Test","username":"test_bot"}}`)
			return
		}
		t.Errorf("unexpected API method %s", method)
		fmt.Fprint(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestBot(t *testing.T, handlers map[string]http.HandlerFunc) *BotAPI {
	t.Helper()
	srv := apiTestServer(t, handlers)
	bot, err := NewBotAPIWithAPIEndpoint("TOKEN", srv.URL+"/bot%s/%s")
	if err != nil {
		t.Fatalf("NewBotAPIWithAPIEndpoint: %v", err)
	}
	return bot
}

func TestNewBotAPI_VerifiesTokenAndFillsSelf(t *testing.T) {
	bot := newTestBot(t, nil)
	if bot.Self.UserName != "test_bot" {
		t.Fatalf("expected Self.UserName test_bot, got %q", bot.Self.UserName)
	}
	if bot.Self.ID != 42 {
		t.Fatalf("expected Self.ID 42, got %d", bot.Self.ID)
	}
	if bot.Buffer != defaultUpdatesBuffer {
		t.Fatalf("expected default buffer %d, got %d", defaultUpdatesBuffer, bot.Buffer)
	}
}

func TestNewBotAPI_RejectedTokenSurfacesAPIError(t *testing.T) {
	srv := apiTestServer(t, map[string]http.HandlerFunc{
		"getMe": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`)
		},
	})

	_, err := NewBotAPIWithAPIEndpoint("BAD", srv.URL+"/bot%s/%s")
	if err == nil {
		t.Fatal("expected constructor to fail on a rejected token")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError in the chain, got %v", err)
	}
	if apiErr.Code != 401 {
		t.Fatalf("expected code 401, got %d", apiErr.Code)
	}
}

func TestMakeRequest_SendsFormEncodedParams(t *testing.T) {
	var gotContentType, gotChatID, gotText string
	bot := newTestBot(t, map[string]http.HandlerFunc{
		"sendMessage": func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			r.ParseForm()
			gotChatID = r.PostForm.Get("chat_id")
			gotText = r.PostForm.Get("text")
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":7}}`)
		},
	})

	msg, err := bot.Send(NewMessage(12345, "hello"))
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if msg.MessageID != 7 {
		t.Fatalf("expected decoded message_id 7, got %d", msg.MessageID)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("expected form encoding, got %q", gotContentType)
	}
	if gotChatID != "12345" || gotText != "hello" {
		t.Fatalf("expected chat_id=12345 text=hello, got chat_id=%q text=%q", gotChatID, gotText)
	}
}

func TestMakeRequest_NotOkReturnsAPIErrorWithParameters(t *testing.T) {
	bot := newTestBot(t, map[string]http.HandlerFunc{
		"sendMessage": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 3","parameters":{"retry_after":3}}`)
		},
	})

	_, err := bot.Send(NewMessage(1, "x"))
	if err == nil {
		t.Fatal("expected error on ok=false")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Code != 429 {
		t.Fatalf("expected code 429, got %d", apiErr.Code)
	}
	if apiErr.Parameters == nil || apiErr.Parameters.RetryAfter != 3 {
		t.Fatalf("expected retry_after 3 in parameters, got %+v", apiErr.Parameters)
	}
}

func TestGetUpdates_SendsOffsetAndDecodesBatch(t *testing.T) {
	var gotOffset, gotLimit, gotTimeout string
	bot := newTestBot(t, map[string]http.HandlerFunc{
		"getUpdates": func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			gotOffset = r.PostForm.Get("offset")
			gotLimit = r.PostForm.Get("limit")
			gotTimeout = r.PostForm.Get("timeout")
			fmt.Fprint(w, `{"ok":true,"result":[
				{"update_id":100,"message":{"message_id":1,"text":"hi","chat":{"id":5,"type":"private"}}},
				{"update_id":101,"inline_query":{"id":"q1","query":"weather"}}
			]}`)
		},
	})

	updates, err := bot.GetUpdates(UpdateConfig{Offset: 100, Limit: 50, Timeout: 30})
	if err != nil {
		t.Fatalf("GetUpdates: %v", err)
	}

	if gotOffset != "100" || gotLimit != "50" || gotTimeout != "30" {
		t.Fatalf("expected offset=100 limit=50 timeout=30, got offset=%q limit=%q timeout=%q",
			gotOffset, gotLimit, gotTimeout)
	}

	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].UpdateID != 100 || updates[0].Type() != UpdateTypeMessage {
		t.Fatalf("first update: expected message 100, got %d %s", updates[0].UpdateID, updates[0].Type())
	}
	if updates[1].UpdateID != 101 || updates[1].Type() != UpdateTypeInlineQuery {
		t.Fatalf("second update: expected inline_query 101, got %d %s", updates[1].UpdateID, updates[1].Type())
	}
	if updates[1].InlineQuery.Query != "weather" {
		t.Fatalf("expected decoded query, got %q", updates[1].InlineQuery.Query)
	}
}

func TestGetUpdates_AllowedUpdatesSerialized(t *testing.T) {
	var gotAllowed string
	bot := newTestBot(t, map[string]http.HandlerFunc{
		"getUpdates": func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			gotAllowed = r.PostForm.Get("allowed_updates")
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		},
	})

	_, err := bot.GetUpdates(UpdateConfig{
		AllowedUpdates: []UpdateType{UpdateTypeMessage, UpdateTypeCallbackQuery},
	})
	if err != nil {
		t.Fatalf("GetUpdates: %v", err)
	}
	if gotAllowed != `["message","callback_query"]` {
		t.Fatalf("expected JSON-encoded allowed_updates, got %q", gotAllowed)
	}
}

func TestGetWebhookInfo(t *testing.T) {
	bot := newTestBot(t, map[string]http.HandlerFunc{
		"getWebhookInfo": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"ok":true,"result":{"url":"https://example.com/hook","pending_update_count":4}}`)
		},
	})

	info, err := bot.GetWebhookInfo()
	if err != nil {
		t.Fatalf("GetWebhookInfo: %v", err)
	}
	if !info.IsSet() {
		t.Fatal("expected IsSet with a registered URL")
	}
	if info.PendingUpdateCount != 4 {
		t.Fatalf("expected 4 pending, got %d", info.PendingUpdateCount)
	}
}

func TestGetMyCommands(t *testing.T) {
	bot := newTestBot(t, map[string]http.HandlerFunc{
		"getMyCommands": func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"ok":true,"result":[{"command":"start","description":"begin"}]}`)
		},
	})

	commands, err := bot.GetMyCommands()
	if err != nil {
		t.Fatalf("GetMyCommands: %v", err)
	}
	if len(commands) != 1 || commands[0].Command != "start" {
		t.Fatalf("expected [start], got %v", commands)
	}
}

func TestIsMessageToMe(t *testing.T) {
	bot := newTestBot(t, nil)
	if !bot.IsMessageToMe(Message{Text: "hey @test_bot how are you"}) {
		t.Fatal("expected mention to be detected")
	}
	if bot.IsMessageToMe(Message{Text: "hey there"}) {
		t.Fatal("expected no mention")
	}
}
