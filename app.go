package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// webhookShutdownTimeout bounds the HTTP server drain on shutdown.
const webhookShutdownTimeout = 10 * time.Second

// App is the high-level runtime that wraps BotAPI with handler
// registration, middleware, lifecycle hooks and automatic
// polling/webhook mode selection.
//
// Usage:
//
//	config, _ := telegram.NewBotConfigFromEnv()
//	app, _ := telegram.NewApp(config)
//
//	app.AddCommand("start", func(bot *telegram.BotAPI, u telegram.Update) {
//	    msg := telegram.NewMessage(u.Message.Chat.ID, "Hello!")
//	    bot.Send(msg)
//	})
//
//	app.Run()
type App struct {
	// Config is the bot configuration.
	Config *BotConfig
	// Bot is the underlying low-level client.
	Bot *BotAPI
	// Router handles command/callback/inline/message dispatch.
	Router *Router
	// Poller is the update engine driving polling mode. Exposed so
	// applications can register category handlers or read the offset.
	Poller *Poller

	onPostInit func(*App)
	onShutdown func(*App)
	onError    func(*BotAPI, BotError)
	pipeline   *MiddlewarePipeline
}

// NewApp creates a high-level app from configuration. It initializes
// the underlying BotAPI against the configured endpoint and verifies
// the token.
func NewApp(config *BotConfig) (*App, error) {
	var bot *BotAPI
	var err error

	if config.APIBaseURL != "" {
		// Self-hosted Bot API server
		endpoint := config.APIBaseURL + "%s/%s"
		bot, err = NewBotAPIWithAPIEndpoint(config.Token, endpoint)
	} else {
		bot, err = NewBotAPI(config.Token)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	bot.Debug = config.Debug

	router := NewRouter()
	router.debug = config.Debug

	return &App{
		Config:   config,
		Bot:      bot,
		Router:   router,
		Poller:   NewPoller(bot),
		pipeline: NewMiddlewarePipeline(),
	}, nil
}

// --- Handler Registration (delegates to Router) ---

// AddCommand registers a handler for a bot command.
func (app *App) AddCommand(name string, handler HandlerFunc) {
	app.Router.AddCommand(name, handler)
}

// AddCallbackQuery registers a handler for callback queries matching
// the pattern.
func (app *App) AddCallbackQuery(pattern string, handler HandlerFunc) {
	app.Router.AddCallbackQuery(pattern, handler)
}

// AddInlineQuery registers a handler for inline queries matching the
// pattern.
func (app *App) AddInlineQuery(pattern string, handler HandlerFunc) {
	app.Router.AddInlineQuery(pattern, handler)
}

// AddMessage registers a handler for text messages.
// filter: FilterPrivate, FilterGroup or FilterAll.
func (app *App) AddMessage(filter string, handler HandlerFunc) {
	app.Router.AddMessage(filter, handler)
}

// --- Middleware ---

// Use registers a global middleware (onion model). Middlewares execute
// in registration order, wrapping the handler dispatch. Each middleware
// receives (ctx, next) and must call next() to proceed.
func (app *App) Use(mw MiddlewareFunc) {
	app.pipeline.Use(mw)
}

// --- Lifecycle Hooks ---

// OnPostInit registers a callback that runs after the bot is
// initialized but before it starts receiving updates.
func (app *App) OnPostInit(fn func(*App)) {
	app.onPostInit = fn
}

// OnPostShutdown registers a callback that runs when the bot is
// shutting down.
func (app *App) OnPostShutdown(fn func(*App)) {
	app.onShutdown = fn
}

// OnError registers a global observer for classified errors: handler
// failures and panics, transport trouble, rate limits and the fatal
// errors that stop the engine.
func (app *App) OnError(fn func(*BotAPI, BotError)) {
	app.onError = fn
}

// --- Run ---

// Run starts the bot in the configured mode and blocks until SIGINT or
// SIGTERM, then shuts down cleanly. It returns nil after a clean stop
// and the fatal error when the engine stopped by itself.
func (app *App) Run() error {
	if err := SetupLogging(app.Config.Debug, app.Config.LogFile); err != nil {
		log.Printf("[App] Warning: %v, logging to stdout only", err)
	}
	log.Printf("[App] %s", app.Config.Summary())

	if app.onPostInit != nil {
		app.onPostInit(app)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var err error
	if app.Config.RuntimeMode == "webhook" {
		err = app.runWebhook(sigChan)
	} else {
		err = app.runPolling(sigChan)
	}

	if app.onShutdown != nil {
		app.onShutdown(app)
	}
	log.Println("[App] Goodbye!")
	return err
}

// runPolling drives the Poller until a signal or a fatal error.
func (app *App) runPolling(sigChan <-chan os.Signal) error {
	lock, err := acquirePollingInstanceLock(app.Bot.Token)
	if err != nil {
		return fmt.Errorf("polling instance lock: %w", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Printf("[App] Warning: release polling lock: %v", err)
		}
	}()

	// A leftover webhook registration blocks getUpdates entirely, so
	// clear it before the first poll.
	if _, err := app.Bot.Request(DeleteWebhookConfig{}); err != nil {
		log.Printf("[App] Warning: failed to delete webhook: %v", err)
	} else {
		log.Println("[App] Cleared existing webhook for polling mode")
	}

	// Updates run through the pipeline and router on the engine
	// goroutine, preserving batch order.
	app.Poller.HandleAll(func(u Update) error {
		return app.handleUpdate(u)
	})

	if err := app.Poller.Start(PollConfig{
		Timeout: app.Config.PollTimeout,
		Limit:   app.Config.PollLimit,
	}); err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	log.Println("[App] Polling for updates. Press Ctrl+C to stop.")

	for {
		select {
		case be := <-app.Poller.Errors():
			app.reportError(be)
			if be.Fatal {
				<-app.Poller.Done()
				return be
			}

		case <-app.Poller.Done():
			// The loop exited on its own; surface what it reported.
			return app.drainFatal()

		case <-sigChan:
			log.Println("[App] Shutting down...")
			app.Poller.Stop()
			log.Printf("[App] Waiting for the poll in flight (up to %ds)...", app.Config.PollTimeout)
			<-app.Poller.Done()
			return nil
		}
	}
}

// drainFatal empties the observer channel after an unexpected loop
// exit and returns the fatal error that caused it.
func (app *App) drainFatal() error {
	for {
		select {
		case be := <-app.Poller.Errors():
			app.reportError(be)
			if be.Fatal {
				return be
			}
		default:
			return fmt.Errorf("polling loop exited unexpectedly")
		}
	}
}

func (app *App) reportError(be BotError) {
	log.Printf("[App] %v", be)
	if app.onError != nil {
		app.onError(app.Bot, be)
	}
}

// runWebhook registers the webhook and serves deliveries until a
// signal.
func (app *App) runWebhook(sigChan <-chan os.Signal) error {
	// Determine the webhook path: use explicit WebhookPath, or default
	// to the bot token.
	webhookPath := app.Config.WebhookPath
	if webhookPath == "" {
		webhookPath = app.Bot.Token
	}
	webhookFullURL := app.Config.WebhookURL + "/" + webhookPath

	wh, err := NewWebhookWithSecret(webhookFullURL, app.Config.WebhookSecret)
	if err != nil {
		return fmt.Errorf("failed to create webhook: %w", err)
	}
	if _, err := app.Bot.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	handler, updates := app.Bot.WebhookHandler(app.Config.WebhookSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/"+webhookPath, handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", app.Config.WebhookHost, app.Config.WebhookPort),
		Handler: mux,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[App] Webhook listening on %s (path: /%s)", srv.Addr, webhookPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Webhook deliveries are independent pushes; handle them
	// concurrently like any HTTP workload.
	go func() {
		for update := range updates {
			u := update
			go func() {
				if err := app.handleUpdate(u); err != nil {
					app.reportError(newHandlerError(u.UpdateID, err))
				}
			}()
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("webhook server: %w", err)
	case <-sigChan:
		log.Println("[App] Shutting down...")
	}

	// Deregister first so the platform stops pushing at a dying server.
	if _, err := app.Bot.Request(DeleteWebhookConfig{}); err != nil {
		log.Printf("[App] Warning: failed to delete webhook on shutdown: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), webhookShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[App] Warning: webhook server shutdown: %v", err)
	}
	return nil
}

// handleUpdate runs one update through the middleware pipeline with the
// router dispatch as the core, converting a panic into an error.
func (app *App) handleUpdate(update Update) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in handler: %v", r)
		}
	}()

	if app.pipeline.Len() == 0 {
		app.Router.Dispatch(app.Bot, update)
		return nil
	}

	ctx := &MiddlewareContext{
		Update: update,
		Bot:    app.Bot,
		Extra:  make(map[string]interface{}),
	}
	app.pipeline.Execute(ctx, func() {
		ctx.Handled = true
		app.Router.Dispatch(app.Bot, update)
	})
	return nil
}
