package telegram

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func newTestApp(t *testing.T, handlers map[string]http.HandlerFunc) *App {
	t.Helper()
	srv := apiTestServer(t, handlers)
	app, err := NewApp(&BotConfig{
		Token:       "TOKEN",
		APIBaseURL:  srv.URL + "/bot",
		RuntimeMode: "polling",
		PollTimeout: 1,
		WebhookPort: 8443,
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestNewApp_InitializesBotAndRouter(t *testing.T) {
	app := newTestApp(t, nil)

	if app.Bot.Self.UserName != "test_bot" {
		t.Fatalf("expected Self filled, got %q", app.Bot.Self.UserName)
	}
	if app.Router == nil || app.Poller == nil {
		t.Fatal("expected router and poller wired")
	}
}

func TestApp_HandleUpdateRoutesThroughRouter(t *testing.T) {
	app := newTestApp(t, nil)

	var got string
	app.AddCommand("start", func(bot *BotAPI, u Update) {
		got = u.Message.Command()
	})

	if err := app.handleUpdate(commandUpdate("/start")); err != nil {
		t.Fatalf("handleUpdate: %v", err)
	}
	if got != "start" {
		t.Fatalf("expected routed command, got %q", got)
	}
}

func TestApp_MiddlewareWrapsDispatch(t *testing.T) {
	app := newTestApp(t, nil)

	var order []string
	app.Use(func(ctx *MiddlewareContext, next NextFunc) {
		order = append(order, "before")
		next()
		order = append(order, "after")
		if !ctx.Handled {
			t.Fatal("expected Handled set after the core ran")
		}
	})
	app.AddMessage(FilterAll, func(bot *BotAPI, u Update) {
		order = append(order, "handler")
	})

	if err := app.handleUpdate(textUpdate("hi", "private")); err != nil {
		t.Fatalf("handleUpdate: %v", err)
	}

	want := []string{"before", "handler", "after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("at %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestApp_MiddlewareCanIntercept(t *testing.T) {
	app := newTestApp(t, nil)

	app.Use(func(ctx *MiddlewareContext, next NextFunc) {
		// swallow the update
	})
	app.AddMessage(FilterAll, func(bot *BotAPI, u Update) {
		t.Fatal("handler must not run when middleware intercepts")
	})

	if err := app.handleUpdate(textUpdate("hi", "private")); err != nil {
		t.Fatalf("handleUpdate: %v", err)
	}
}

func TestApp_HandleUpdatePanicBecomesError(t *testing.T) {
	app := newTestApp(t, nil)

	app.AddMessage(FilterAll, func(bot *BotAPI, u Update) {
		panic("handler exploded")
	})

	err := app.handleUpdate(textUpdate("boom", "private"))
	if err == nil {
		t.Fatal("expected the panic surfaced as an error")
	}
	if !strings.Contains(err.Error(), "handler exploded") {
		t.Fatalf("expected panic payload in error, got: %v", err)
	}
}

func TestApp_DrainFatalFindsFatalError(t *testing.T) {
	app := newTestApp(t, nil)

	var seen []BotError
	app.OnError(func(bot *BotAPI, be BotError) {
		seen = append(seen, be)
	})

	// Simulate what the engine leaves behind after stopping itself.
	app.Poller.report(newTransportError(errors.New("connection reset")))
	fatal := newServiceError(&APIError{Code: 401, Description: "Unauthorized"})
	app.Poller.report(fatal)

	err := app.drainFatal()
	if err == nil || !IsFatal(err) {
		t.Fatalf("expected the fatal error surfaced, got: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected both errors passed to OnError, got %d", len(seen))
	}
}

func TestApp_DrainFatalWithoutFatalError(t *testing.T) {
	app := newTestApp(t, nil)

	err := app.drainFatal()
	if err == nil {
		t.Fatal("expected a generic error when the loop died without a fatal report")
	}
	if IsFatal(err) {
		t.Fatal("the generic exit error must not classify as fatal")
	}
}
