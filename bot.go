// Package telegram provides a client for the Telegram Bot API built
// around a supervised long-polling engine. BotAPI covers the remote
// methods, Poller acquires and dispatches updates, and App wires both
// into a runnable bot with routing, middleware and lifecycle hooks.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

const (
	// APIEndpoint is the endpoint template for all API methods, filled
	// with the bot token and the method name.
	APIEndpoint = "https://api.telegram.org/bot%s/%s"
	// fileEndpoint is the endpoint template for file downloads.
	fileEndpoint = "https://api.telegram.org/file/bot%s/%s"
)

// defaultUpdatesBuffer is the capacity of update channels handed out by
// GetUpdatesChan and ListenForWebhook.
const defaultUpdatesBuffer = 100

// HTTPClient is the interface BotAPI needs from an HTTP client.
// *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BotAPI gives typed access to the Bot API: one config type per remote
// method, sent through Request or Send, plus getUpdates as the fetch
// the polling engine runs on.
//
// Usage:
//
//	bot, err := telegram.NewBotAPI(os.Getenv("TELEGRAM_BOT_TOKEN"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bot.Send(telegram.NewMessage(chatID, "Hello!"))
type BotAPI struct {
	// Token authenticates every request.
	Token string
	// Debug logs every request and response through the standard logger.
	Debug bool
	// Buffer is the capacity of update channels created by
	// GetUpdatesChan and ListenForWebhook.
	Buffer int
	// Self is the bot's own account, filled by getMe at construction.
	Self User

	apiEndpoint string
	client      HTTPClient

	compatMu     sync.Mutex
	compatPoller *Poller
}

// The poller runs on BotAPI's getUpdates.
var _ UpdateFetcher = (*BotAPI)(nil)

// NewBotAPI creates a client for the official endpoint and verifies the
// token with a getMe call.
func NewBotAPI(token string) (*BotAPI, error) {
	return NewBotAPIWithClient(token, APIEndpoint, &http.Client{})
}

// NewBotAPIWithAPIEndpoint creates a client for a custom endpoint, e.g.
// a self-hosted Bot API server. The endpoint must contain two %s verbs:
// token first, then method.
func NewBotAPIWithAPIEndpoint(token, apiEndpoint string) (*BotAPI, error) {
	return NewBotAPIWithClient(token, apiEndpoint, &http.Client{})
}

// NewBotAPIWithClient creates a client using a caller-supplied HTTP
// client. The client must not carry a Timeout shorter than the long
// poll timeout or getUpdates calls will be cut short; deadlines are
// passed per request instead.
func NewBotAPIWithClient(token, apiEndpoint string, client HTTPClient) (*BotAPI, error) {
	bot := &BotAPI{
		Token:       token,
		Buffer:      defaultUpdatesBuffer,
		apiEndpoint: apiEndpoint,
		client:      client,
	}

	self, err := bot.GetMe()
	if err != nil {
		return nil, fmt.Errorf("getMe: %w", err)
	}
	bot.Self = self

	return bot, nil
}

// SetAPIEndpoint swaps the endpoint template used for every request.
func (bot *BotAPI) SetAPIEndpoint(apiEndpoint string) {
	bot.apiEndpoint = apiEndpoint
}

func (bot *BotAPI) buildEndpoint(method string) string {
	return fmt.Sprintf(bot.apiEndpoint, bot.Token, method)
}

// MakeRequest calls one Bot API method with the given parameters and
// decodes the response envelope. A well-formed response with ok=false
// is returned alongside an *APIError carrying its code and description.
func (bot *BotAPI) MakeRequest(endpoint string, params Params) (*APIResponse, error) {
	return bot.MakeRequestWithContext(context.Background(), endpoint, params)
}

// MakeRequestWithContext is MakeRequest bounded by ctx.
func (bot *BotAPI) MakeRequestWithContext(ctx context.Context, endpoint string, params Params) (*APIResponse, error) {
	if bot.Debug {
		log.Printf("[BotAPI] %s params: %v", endpoint, params)
	}

	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		bot.buildEndpoint(endpoint), strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := bot.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}

	if bot.Debug {
		log.Printf("[BotAPI] %s response: ok=%v result=%s", endpoint, apiResp.Ok, apiResp.Result)
	}

	if !apiResp.Ok {
		return &apiResp, &APIError{
			Code:        apiResp.ErrorCode,
			Description: apiResp.Description,
			Parameters:  apiResp.Parameters,
		}
	}

	return &apiResp, nil
}

// Request sends a Chattable and returns the raw response envelope. Use
// it for methods whose result the caller does not need decoded, like
// setWebhook or answerCallbackQuery.
func (bot *BotAPI) Request(c Chattable) (*APIResponse, error) {
	return bot.RequestWithContext(context.Background(), c)
}

// RequestWithContext is Request bounded by ctx.
func (bot *BotAPI) RequestWithContext(ctx context.Context, c Chattable) (*APIResponse, error) {
	params, err := c.params()
	if err != nil {
		return nil, fmt.Errorf("%s: build params: %w", c.method(), err)
	}
	return bot.MakeRequestWithContext(ctx, c.method(), params)
}

// Send sends a Chattable whose result is a Message and decodes it.
func (bot *BotAPI) Send(c Chattable) (Message, error) {
	return bot.SendWithContext(context.Background(), c)
}

// SendWithContext is Send bounded by ctx.
func (bot *BotAPI) SendWithContext(ctx context.Context, c Chattable) (Message, error) {
	resp, err := bot.RequestWithContext(ctx, c)
	if err != nil {
		return Message{}, err
	}

	var message Message
	if err := json.Unmarshal(resp.Result, &message); err != nil {
		return Message{}, fmt.Errorf("%s: decode message: %w", c.method(), err)
	}
	return message, nil
}

// GetMe fetches the bot's own account.
func (bot *BotAPI) GetMe() (User, error) {
	resp, err := bot.MakeRequest("getMe", nil)
	if err != nil {
		return User{}, err
	}

	var user User
	if err := json.Unmarshal(resp.Result, &user); err != nil {
		return User{}, fmt.Errorf("getMe: decode user: %w", err)
	}
	return user, nil
}

// IsMessageToMe reports whether the message text mentions the bot.
func (bot *BotAPI) IsMessageToMe(message Message) bool {
	return strings.Contains(message.Text, "@"+bot.Self.UserName)
}

// GetUpdates performs one getUpdates call and returns the batch. Most
// applications want Poller or GetUpdatesChan instead; this is the
// single-shot primitive underneath them.
func (bot *BotAPI) GetUpdates(config UpdateConfig) ([]Update, error) {
	return bot.GetUpdatesWithContext(context.Background(), config)
}

// GetUpdatesWithContext is GetUpdates bounded by ctx. The polling
// engine calls this with the long-poll deadline on ctx.
func (bot *BotAPI) GetUpdatesWithContext(ctx context.Context, config UpdateConfig) ([]Update, error) {
	resp, err := bot.RequestWithContext(ctx, config)
	if err != nil {
		return nil, err
	}

	var updates []Update
	if err := json.Unmarshal(resp.Result, &updates); err != nil {
		return nil, fmt.Errorf("getUpdates: decode updates: %w", err)
	}
	return updates, nil
}

// GetFile resolves a file_id into a File whose Link can be downloaded.
func (bot *BotAPI) GetFile(config GetFileConfig) (File, error) {
	resp, err := bot.Request(config)
	if err != nil {
		return File{}, err
	}

	var file File
	if err := json.Unmarshal(resp.Result, &file); err != nil {
		return File{}, fmt.Errorf("getFile: decode file: %w", err)
	}
	return file, nil
}

// GetWebhookInfo fetches the current webhook status. Check IsSet to
// learn whether a webhook is registered before starting to poll.
func (bot *BotAPI) GetWebhookInfo() (WebhookInfo, error) {
	resp, err := bot.MakeRequest("getWebhookInfo", nil)
	if err != nil {
		return WebhookInfo{}, err
	}

	var info WebhookInfo
	if err := json.Unmarshal(resp.Result, &info); err != nil {
		return WebhookInfo{}, fmt.Errorf("getWebhookInfo: decode info: %w", err)
	}
	return info, nil
}

// GetMyCommands fetches the bot's registered command list for the
// default scope.
func (bot *BotAPI) GetMyCommands() ([]BotCommand, error) {
	return bot.GetMyCommandsWithConfig(GetMyCommandsConfig{})
}

// GetMyCommandsWithConfig fetches the command list for a specific scope
// or language.
func (bot *BotAPI) GetMyCommandsWithConfig(config GetMyCommandsConfig) ([]BotCommand, error) {
	resp, err := bot.Request(config)
	if err != nil {
		return nil, err
	}

	var commands []BotCommand
	if err := json.Unmarshal(resp.Result, &commands); err != nil {
		return nil, fmt.Errorf("getMyCommands: decode commands: %w", err)
	}
	return commands, nil
}
