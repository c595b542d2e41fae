package telegram

import (
	"net/url"
)

// Chattable is any config type that can be sent to the platform.
type Chattable interface {
	params() (Params, error)
	method() string
}

// RequestFileData is a reference to a file the platform can resolve,
// either an existing file_id or a public URL the platform fetches
// itself. Multipart uploads are not handled here.
type RequestFileData interface {
	// SendData returns the file representation to send as a parameter.
	SendData() string
}

// FileID is an ID of a file already uploaded to the platform.
type FileID string

// SendData returns the file_id.
func (fi FileID) SendData() string { return string(fi) }

// FileURL is a URL the platform will download the file from.
type FileURL string

// SendData returns the URL.
func (fu FileURL) SendData() string { return string(fu) }

// BaseChat is base type for all chat config types.
type BaseChat struct {
	ChatID              int64 // required
	ChannelUsername     string
	ReplyToMessageID    int
	ReplyMarkup         interface{}
	DisableNotification bool
}

func (chat BaseChat) params() (Params, error) {
	params := make(Params)

	if err := params.AddFirstValid("chat_id", chat.ChatID, chat.ChannelUsername); err != nil {
		return params, err
	}
	params.AddNonZero("reply_to_message_id", chat.ReplyToMessageID)
	params.AddBool("disable_notification", chat.DisableNotification)
	err := params.AddInterface("reply_markup", chat.ReplyMarkup)

	return params, err
}

// BaseEdit is base type of all chat edits.
type BaseEdit struct {
	ChatID          int64
	ChannelUsername string
	MessageID       int
	InlineMessageID string
	ReplyMarkup     *InlineKeyboardMarkup
}

func (edit BaseEdit) params() (Params, error) {
	params := make(Params)

	if edit.InlineMessageID != "" {
		params["inline_message_id"] = edit.InlineMessageID
	} else {
		if err := params.AddFirstValid("chat_id", edit.ChatID, edit.ChannelUsername); err != nil {
			return params, err
		}
		params.AddNonZero("message_id", edit.MessageID)
	}
	err := params.AddInterface("reply_markup", edit.ReplyMarkup)

	return params, err
}

// MessageConfig contains information about a SendMessage request.
type MessageConfig struct {
	BaseChat
	Text                  string
	ParseMode             string
	Entities              []MessageEntity
	DisableWebPagePreview bool
}

func (config MessageConfig) params() (Params, error) {
	params, err := config.BaseChat.params()
	if err != nil {
		return params, err
	}

	params["text"] = config.Text
	params.AddNonEmpty("parse_mode", config.ParseMode)
	params.AddBool("disable_web_page_preview", config.DisableWebPagePreview)
	err = params.AddInterface("entities", config.Entities)

	return params, err
}

func (config MessageConfig) method() string { return "sendMessage" }

// ForwardConfig contains information about a ForwardMessage request.
type ForwardConfig struct {
	BaseChat
	FromChatID int64
	MessageID  int
}

func (config ForwardConfig) params() (Params, error) {
	params, err := config.BaseChat.params()
	if err != nil {
		return params, err
	}

	params.AddNonZero64("from_chat_id", config.FromChatID)
	params.AddNonZero("message_id", config.MessageID)

	return params, nil
}

func (config ForwardConfig) method() string { return "forwardMessage" }

// PhotoConfig contains information about a SendPhoto request.
type PhotoConfig struct {
	BaseChat
	File      RequestFileData
	Caption   string
	ParseMode string
}

func (config PhotoConfig) params() (Params, error) {
	params, err := config.BaseChat.params()
	if err != nil {
		return params, err
	}

	params["photo"] = config.File.SendData()
	params.AddNonEmpty("caption", config.Caption)
	params.AddNonEmpty("parse_mode", config.ParseMode)

	return params, nil
}

func (config PhotoConfig) method() string { return "sendPhoto" }

// VideoConfig contains information about a SendVideo request.
type VideoConfig struct {
	BaseChat
	File      RequestFileData
	Duration  int
	Caption   string
	ParseMode string
}

func (config VideoConfig) params() (Params, error) {
	params, err := config.BaseChat.params()
	if err != nil {
		return params, err
	}

	params["video"] = config.File.SendData()
	params.AddNonZero("duration", config.Duration)
	params.AddNonEmpty("caption", config.Caption)
	params.AddNonEmpty("parse_mode", config.ParseMode)

	return params, nil
}

func (config VideoConfig) method() string { return "sendVideo" }

// DocumentConfig contains information about a SendDocument request.
type DocumentConfig struct {
	BaseChat
	File      RequestFileData
	Caption   string
	ParseMode string
}

func (config DocumentConfig) params() (Params, error) {
	params, err := config.BaseChat.params()
	if err != nil {
		return params, err
	}

	params["document"] = config.File.SendData()
	params.AddNonEmpty("caption", config.Caption)
	params.AddNonEmpty("parse_mode", config.ParseMode)

	return params, nil
}

func (config DocumentConfig) method() string { return "sendDocument" }

// ChatActionConfig contains information about a SendChatAction request.
type ChatActionConfig struct {
	BaseChat
	Action string // e.g. "typing"
}

func (config ChatActionConfig) params() (Params, error) {
	params, err := config.BaseChat.params()
	if err != nil {
		return params, err
	}

	params["action"] = config.Action

	return params, nil
}

func (config ChatActionConfig) method() string { return "sendChatAction" }

// DeleteMessageConfig contains information about a DeleteMessage request.
type DeleteMessageConfig struct {
	ChatID    int64
	MessageID int
}

func (config DeleteMessageConfig) params() (Params, error) {
	params := make(Params)

	params.AddNonZero64("chat_id", config.ChatID)
	params.AddNonZero("message_id", config.MessageID)

	return params, nil
}

func (config DeleteMessageConfig) method() string { return "deleteMessage" }

// EditMessageTextConfig allows you to modify the text in a message.
type EditMessageTextConfig struct {
	BaseEdit
	Text                  string
	ParseMode             string
	DisableWebPagePreview bool
}

func (config EditMessageTextConfig) params() (Params, error) {
	params, err := config.BaseEdit.params()
	if err != nil {
		return params, err
	}

	params["text"] = config.Text
	params.AddNonEmpty("parse_mode", config.ParseMode)
	params.AddBool("disable_web_page_preview", config.DisableWebPagePreview)

	return params, nil
}

func (config EditMessageTextConfig) method() string { return "editMessageText" }

// CallbackConfig contains information on making an AnswerCallbackQuery response.
type CallbackConfig struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
	URL             string
	CacheTime       int
}

func (config CallbackConfig) params() (Params, error) {
	params := make(Params)

	params["callback_query_id"] = config.CallbackQueryID
	params.AddNonEmpty("text", config.Text)
	params.AddBool("show_alert", config.ShowAlert)
	params.AddNonEmpty("url", config.URL)
	params.AddNonZero("cache_time", config.CacheTime)

	return params, nil
}

func (config CallbackConfig) method() string { return "answerCallbackQuery" }

// ShippingConfig contains information for an AnswerShippingQuery request.
type ShippingConfig struct {
	ShippingQueryID string // required
	OK              bool   // required
	ShippingOptions []ShippingOption
	ErrorMessage    string
}

func (config ShippingConfig) params() (Params, error) {
	params := make(Params)

	params["shipping_query_id"] = config.ShippingQueryID
	params.AddBool("ok", config.OK)
	params.AddNonEmpty("error_message", config.ErrorMessage)
	err := params.AddInterface("shipping_options", config.ShippingOptions)

	return params, err
}

func (config ShippingConfig) method() string { return "answerShippingQuery" }

// PreCheckoutConfig contains information for an AnswerPreCheckoutQuery request.
type PreCheckoutConfig struct {
	PreCheckoutQueryID string // required
	OK                 bool   // required
	ErrorMessage       string
}

func (config PreCheckoutConfig) params() (Params, error) {
	params := make(Params)

	params["pre_checkout_query_id"] = config.PreCheckoutQueryID
	params.AddBool("ok", config.OK)
	params.AddNonEmpty("error_message", config.ErrorMessage)

	return params, nil
}

func (config PreCheckoutConfig) method() string { return "answerPreCheckoutQuery" }

// UpdateConfig contains information about a GetUpdates request.
type UpdateConfig struct {
	// Offset is the identifier of the first update to be returned.
	Offset int64
	// Limit caps the number of updates retrieved, 1-100. 0 keeps the
	// server default.
	Limit int
	// Timeout in seconds for long polling. 0 means short polling.
	Timeout int
	// AllowedUpdates filters which update categories the server returns.
	// Empty keeps the previous setting on the server.
	AllowedUpdates []UpdateType
}

func (config UpdateConfig) params() (Params, error) {
	params := make(Params)

	params.AddNonZero64("offset", config.Offset)
	params.AddNonZero("limit", config.Limit)
	params.AddNonZero("timeout", config.Timeout)
	err := params.AddInterface("allowed_updates", config.AllowedUpdates)

	return params, err
}

func (config UpdateConfig) method() string { return "getUpdates" }

// WebhookConfig contains information about a SetWebhook request.
type WebhookConfig struct {
	URL                *url.URL
	IPAddress          string
	MaxConnections     int
	AllowedUpdates     []UpdateType
	DropPendingUpdates bool
	// SecretToken is echoed back by the platform in the
	// X-Telegram-Bot-Api-Secret-Token header of every delivery.
	SecretToken string
}

func (config WebhookConfig) params() (Params, error) {
	params := make(Params)

	if config.URL != nil {
		params["url"] = config.URL.String()
	}
	params.AddNonEmpty("ip_address", config.IPAddress)
	params.AddNonZero("max_connections", config.MaxConnections)
	params.AddBool("drop_pending_updates", config.DropPendingUpdates)
	params.AddNonEmpty("secret_token", config.SecretToken)
	err := params.AddInterface("allowed_updates", config.AllowedUpdates)

	return params, err
}

func (config WebhookConfig) method() string { return "setWebhook" }

// DeleteWebhookConfig is a helper to delete a webhook.
type DeleteWebhookConfig struct {
	DropPendingUpdates bool
}

func (config DeleteWebhookConfig) params() (Params, error) {
	params := make(Params)

	params.AddBool("drop_pending_updates", config.DropPendingUpdates)

	return params, nil
}

func (config DeleteWebhookConfig) method() string { return "deleteWebhook" }

// GetFileConfig has information about a file hosted on Telegram.
type GetFileConfig struct {
	FileID string
}

func (config GetFileConfig) params() (Params, error) {
	params := make(Params)

	params["file_id"] = config.FileID

	return params, nil
}

func (config GetFileConfig) method() string { return "getFile" }

// SetMyCommandsConfig sets the bot's command list.
type SetMyCommandsConfig struct {
	Commands     []BotCommand
	Scope        *BotCommandScope
	LanguageCode string
}

func (config SetMyCommandsConfig) params() (Params, error) {
	params := make(Params)

	if err := params.AddInterface("commands", config.Commands); err != nil {
		return params, err
	}
	params.AddNonEmpty("language_code", config.LanguageCode)
	err := params.AddInterface("scope", config.Scope)

	return params, err
}

func (config SetMyCommandsConfig) method() string { return "setMyCommands" }

// GetMyCommandsConfig gets the bot's command list for a scope.
type GetMyCommandsConfig struct {
	Scope        *BotCommandScope
	LanguageCode string
}

func (config GetMyCommandsConfig) params() (Params, error) {
	params := make(Params)

	params.AddNonEmpty("language_code", config.LanguageCode)
	err := params.AddInterface("scope", config.Scope)

	return params, err
}

func (config GetMyCommandsConfig) method() string { return "getMyCommands" }

// DeleteMyCommandsConfig deletes the bot's command list for a scope.
type DeleteMyCommandsConfig struct {
	Scope        *BotCommandScope
	LanguageCode string
}

func (config DeleteMyCommandsConfig) params() (Params, error) {
	params := make(Params)

	params.AddNonEmpty("language_code", config.LanguageCode)
	err := params.AddInterface("scope", config.Scope)

	return params, err
}

func (config DeleteMyCommandsConfig) method() string { return "deleteMyCommands" }
