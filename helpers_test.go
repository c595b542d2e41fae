package telegram

import "testing"

func TestNewMessage(t *testing.T) {
	msg := NewMessage(42, "hello")
	if msg.ChatID != 42 {
		t.Fatalf("expected chat 42, got %d", msg.ChatID)
	}
	if msg.Text != "hello" {
		t.Fatalf("expected text hello, got %q", msg.Text)
	}
	if msg.method() != "sendMessage" {
		t.Fatalf("expected sendMessage, got %s", msg.method())
	}
}

func TestNewUpdate(t *testing.T) {
	u := NewUpdate(17)
	if u.Offset != 17 {
		t.Fatalf("expected offset 17, got %d", u.Offset)
	}
	if u.method() != "getUpdates" {
		t.Fatalf("expected getUpdates, got %s", u.method())
	}
}

func TestNewWebhook_ParsesURL(t *testing.T) {
	wh, err := NewWebhook("https://example.com/hook")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wh.URL.Host != "example.com" {
		t.Fatalf("expected host example.com, got %s", wh.URL.Host)
	}

	if _, err := NewWebhook("://not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewWebhookWithSecret(t *testing.T) {
	wh, err := NewWebhookWithSecret("https://example.com/hook", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wh.SecretToken != "tok" {
		t.Fatalf("expected secret carried, got %q", wh.SecretToken)
	}

	params, err := wh.params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if params["secret_token"] != "tok" {
		t.Fatalf("expected secret_token param, got %v", params)
	}
	if params["url"] != "https://example.com/hook" {
		t.Fatalf("expected url param, got %v", params)
	}
}

func TestNewInlineKeyboard(t *testing.T) {
	markup := NewInlineKeyboardMarkup(
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("Yes", "confirm_yes"),
			NewInlineKeyboardButtonURL("Docs", "https://example.com"),
		),
	)

	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 2 {
		t.Fatalf("expected 1 row with 2 buttons, got %+v", markup.InlineKeyboard)
	}
	yes := markup.InlineKeyboard[0][0]
	if yes.CallbackData == nil || *yes.CallbackData != "confirm_yes" {
		t.Fatalf("expected callback data confirm_yes, got %+v", yes)
	}
	docs := markup.InlineKeyboard[0][1]
	if docs.URL == nil || *docs.URL != "https://example.com" {
		t.Fatalf("expected url button, got %+v", docs)
	}
}

func TestNewReplyKeyboard(t *testing.T) {
	kb := NewReplyKeyboard(
		NewKeyboardButtonRow(NewKeyboardButton("1"), NewKeyboardButton("2")),
	)
	if !kb.ResizeKeyboard {
		t.Fatal("expected resize_keyboard set")
	}
	if len(kb.Keyboard) != 1 || kb.Keyboard[0][1].Text != "2" {
		t.Fatalf("unexpected keyboard layout: %+v", kb.Keyboard)
	}
}

func TestNewCallback(t *testing.T) {
	cb := NewCallback("q1", "done")
	if cb.CallbackQueryID != "q1" || cb.Text != "done" || cb.ShowAlert {
		t.Fatalf("unexpected callback config: %+v", cb)
	}
	alert := NewCallbackWithAlert("q2", "look!")
	if !alert.ShowAlert {
		t.Fatal("expected show_alert set")
	}
}

func TestNewSetMyCommandsWithScope(t *testing.T) {
	cfg := NewSetMyCommandsWithScope(
		NewBotCommandScopeAllPrivateChats(),
		NewBotCommand("start", "begin"),
	)
	if cfg.Scope == nil || cfg.Scope.Type != "all_private_chats" {
		t.Fatalf("expected scope carried, got %+v", cfg.Scope)
	}

	params, err := cfg.params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if params["scope"] != `{"type":"all_private_chats"}` {
		t.Fatalf("expected JSON scope, got %q", params["scope"])
	}
	if params["commands"] != `[{"command":"start","description":"begin"}]` {
		t.Fatalf("expected JSON commands, got %q", params["commands"])
	}
}
