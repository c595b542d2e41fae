package telegram

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// APIResponse is a response from the Bot API with the result
// stored raw. If Ok is false, ErrorCode and Description say why.
type APIResponse struct {
	Ok          bool                `json:"ok"`
	Result      json.RawMessage     `json:"result,omitempty"`
	ErrorCode   int                 `json:"error_code,omitempty"`
	Description string              `json:"description,omitempty"`
	Parameters  *ResponseParameters `json:"parameters,omitempty"`
}

// ResponseParameters are various errors that can be returned in APIResponse.
type ResponseParameters struct {
	// MigrateToChatID is the group's new chat identifier after a
	// supergroup migration. Optional.
	MigrateToChatID int64 `json:"migrate_to_chat_id,omitempty"`
	// RetryAfter is the number of seconds to wait before the request
	// can be repeated. Optional.
	RetryAfter int `json:"retry_after,omitempty"`
}

// Update is an update response, from GetUpdates.
//
// Exactly one of the optional payload fields is populated in a
// well-formed update. Type classifies it; malformed updates with zero
// populated fields classify as UpdateTypeUnknown.
type Update struct {
	// UpdateID is the update's unique identifier. Update identifiers
	// start from a certain positive number and increase sequentially.
	UpdateID int64 `json:"update_id"`
	// Message is a new incoming message of any kind. Optional.
	Message *Message `json:"message,omitempty"`
	// EditedMessage is a new version of a message that is known to the
	// bot and was edited. Optional.
	EditedMessage *Message `json:"edited_message,omitempty"`
	// ChannelPost is a new incoming channel post of any kind. Optional.
	ChannelPost *Message `json:"channel_post,omitempty"`
	// EditedChannelPost is a new version of a channel post that is
	// known to the bot and was edited. Optional.
	EditedChannelPost *Message `json:"edited_channel_post,omitempty"`
	// InlineQuery is a new incoming inline query. Optional.
	InlineQuery *InlineQuery `json:"inline_query,omitempty"`
	// ChosenInlineResult is the result of an inline query that was
	// chosen by a user and sent to their chat partner. Optional.
	ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result,omitempty"`
	// CallbackQuery is a new incoming callback query. Optional.
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
	// ShippingQuery is a new incoming shipping query. Only for invoices
	// with flexible price. Optional.
	ShippingQuery *ShippingQuery `json:"shipping_query,omitempty"`
	// PreCheckoutQuery is a new incoming pre-checkout query. Contains
	// full information about checkout. Optional.
	PreCheckoutQuery *PreCheckoutQuery `json:"pre_checkout_query,omitempty"`
}

// SentFrom returns the user who sent the update, regardless of variant.
// May be nil (channel posts have no sender).
func (u *Update) SentFrom() *User {
	switch {
	case u.Message != nil:
		return u.Message.From
	case u.EditedMessage != nil:
		return u.EditedMessage.From
	case u.InlineQuery != nil:
		return u.InlineQuery.From
	case u.ChosenInlineResult != nil:
		return u.ChosenInlineResult.From
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	case u.ShippingQuery != nil:
		return u.ShippingQuery.From
	case u.PreCheckoutQuery != nil:
		return u.PreCheckoutQuery.From
	default:
		return nil
	}
}

// FromChat returns the chat the update occurred in, if any.
func (u *Update) FromChat() *Chat {
	switch {
	case u.Message != nil:
		return u.Message.Chat
	case u.EditedMessage != nil:
		return u.EditedMessage.Chat
	case u.ChannelPost != nil:
		return u.ChannelPost.Chat
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost.Chat
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return u.CallbackQuery.Message.Chat
	default:
		return nil
	}
}

// CallbackData returns the callback query data, if any.
func (u *Update) CallbackData() string {
	if u.CallbackQuery != nil {
		return u.CallbackQuery.Data
	}
	return ""
}

// UpdatesChannel is a channel for reading updates of a bot.
type UpdatesChannel <-chan Update

// Clear discards all unprocessed incoming updates.
func (ch UpdatesChannel) Clear() {
	for len(ch) != 0 {
		<-ch
	}
}

// User represents a Telegram user or bot.
type User struct {
	// ID is the unique identifier for this user or bot.
	ID int64 `json:"id"`
	// IsBot is true if this user is a bot.
	IsBot bool `json:"is_bot"`
	// FirstName is the user's or bot's first name.
	FirstName string `json:"first_name"`
	// LastName is the user's or bot's last name. Optional.
	LastName string `json:"last_name,omitempty"`
	// UserName is the user's or bot's username. Optional.
	UserName string `json:"username,omitempty"`
	// LanguageCode is the IETF language tag of the user's language. Optional.
	LanguageCode string `json:"language_code,omitempty"`
	// CanJoinGroups is true if the bot can be invited to groups.
	// Returned only in getMe. Optional.
	CanJoinGroups bool `json:"can_join_groups,omitempty"`
	// CanReadAllGroupMessages is true if privacy mode is disabled for
	// the bot. Returned only in getMe. Optional.
	CanReadAllGroupMessages bool `json:"can_read_all_group_messages,omitempty"`
	// SupportsInlineQueries is true if the bot supports inline queries.
	// Returned only in getMe. Optional.
	SupportsInlineQueries bool `json:"supports_inline_queries,omitempty"`
}

// String displays a simple text version of a user.
//
// It is normally a user's username, but falls back to a first/last name
// as available.
func (u *User) String() string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return u.UserName
	}
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	return name
}

// Chat represents a chat.
type Chat struct {
	// ID is the unique identifier for this chat.
	ID int64 `json:"id"`
	// Type of chat: "private", "group", "supergroup" or "channel".
	Type string `json:"type"`
	// Title for supergroups, channels and group chats. Optional.
	Title string `json:"title,omitempty"`
	// UserName for private chats, supergroups and channels. Optional.
	UserName string `json:"username,omitempty"`
	// FirstName of the other party in a private chat. Optional.
	FirstName string `json:"first_name,omitempty"`
	// LastName of the other party in a private chat. Optional.
	LastName string `json:"last_name,omitempty"`
	// Photo is the chat photo. Returned only in getChat. Optional.
	Photo *ChatPhoto `json:"photo,omitempty"`
	// Description for groups, supergroups and channel chats.
	// Returned only in getChat. Optional.
	Description string `json:"description,omitempty"`
	// InviteLink is the primary invite link for the chat.
	// Returned only in getChat. Optional.
	InviteLink string `json:"invite_link,omitempty"`
	// Permissions are default chat member permissions, for groups and
	// supergroups. Returned only in getChat. Optional.
	Permissions *ChatPermissions `json:"permissions,omitempty"`
}

// IsPrivate returns if the Chat is a private conversation.
func (c Chat) IsPrivate() bool { return c.Type == "private" }

// IsGroup returns if the Chat is a group.
func (c Chat) IsGroup() bool { return c.Type == "group" }

// IsSuperGroup returns if the Chat is a supergroup.
func (c Chat) IsSuperGroup() bool { return c.Type == "supergroup" }

// IsChannel returns if the Chat is a channel.
func (c Chat) IsChannel() bool { return c.Type == "channel" }

// ChatPhoto represents a chat photo.
type ChatPhoto struct {
	SmallFileID       string `json:"small_file_id"`
	SmallFileUniqueID string `json:"small_file_unique_id"`
	BigFileID         string `json:"big_file_id"`
	BigFileUniqueID   string `json:"big_file_unique_id"`
}

// ChatPermissions describes actions that a non-administrator user is
// allowed to take in a chat.
type ChatPermissions struct {
	CanSendMessages       bool `json:"can_send_messages,omitempty"`
	CanSendMediaMessages  bool `json:"can_send_media_messages,omitempty"`
	CanSendPolls          bool `json:"can_send_polls,omitempty"`
	CanSendOtherMessages  bool `json:"can_send_other_messages,omitempty"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews,omitempty"`
	CanChangeInfo         bool `json:"can_change_info,omitempty"`
	CanInviteUsers        bool `json:"can_invite_users,omitempty"`
	CanPinMessages        bool `json:"can_pin_messages,omitempty"`
}

// Message represents a message.
type Message struct {
	// MessageID is the unique message identifier inside this chat.
	MessageID int `json:"message_id"`
	// From is the sender. Empty for messages sent to channels. Optional.
	From *User `json:"from,omitempty"`
	// Date the message was sent, in Unix time.
	Date int `json:"date"`
	// Chat the message belongs to.
	Chat *Chat `json:"chat"`
	// ForwardFrom is the sender of the original message, for forwards. Optional.
	ForwardFrom *User `json:"forward_from,omitempty"`
	// ForwardFromChat is the channel the message was forwarded from. Optional.
	ForwardFromChat *Chat `json:"forward_from_chat,omitempty"`
	// ForwardDate is when the original message was sent, in Unix time. Optional.
	ForwardDate int `json:"forward_date,omitempty"`
	// ReplyToMessage is the original message, for replies. Optional.
	ReplyToMessage *Message `json:"reply_to_message,omitempty"`
	// ViaBot is the bot through which the message was sent. Optional.
	ViaBot *User `json:"via_bot,omitempty"`
	// EditDate is when the message was last edited, in Unix time. Optional.
	EditDate int `json:"edit_date,omitempty"`
	// MediaGroupID is the unique identifier of a media message group
	// this message belongs to. Optional.
	MediaGroupID string `json:"media_group_id,omitempty"`
	// Text is the message text, for text messages, 0-4096 characters. Optional.
	Text string `json:"text,omitempty"`
	// Entities are special entities that appear in the text, like
	// usernames, URLs and bot commands. Optional.
	Entities []MessageEntity `json:"entities,omitempty"`
	// Audio information. Optional.
	Audio *Audio `json:"audio,omitempty"`
	// Document is a general file. Optional.
	Document *Document `json:"document,omitempty"`
	// Photo is the available sizes of the photo. Optional.
	Photo []PhotoSize `json:"photo,omitempty"`
	// Sticker information. Optional.
	Sticker *Sticker `json:"sticker,omitempty"`
	// Video information. Optional.
	Video *Video `json:"video,omitempty"`
	// VideoNote information. Optional.
	VideoNote *VideoNote `json:"video_note,omitempty"`
	// Voice information. Optional.
	Voice *Voice `json:"voice,omitempty"`
	// Caption for media, 0-1024 characters. Optional.
	Caption string `json:"caption,omitempty"`
	// CaptionEntities are special entities in the caption. Optional.
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	// Contact is a shared contact. Optional.
	Contact *Contact `json:"contact,omitempty"`
	// Dice is a die with a random value. Optional.
	Dice *Dice `json:"dice,omitempty"`
	// Poll is a native poll. Optional.
	Poll *Poll `json:"poll,omitempty"`
	// Venue information. Optional.
	Venue *Venue `json:"venue,omitempty"`
	// Location is a shared location. Optional.
	Location *Location `json:"location,omitempty"`
	// NewChatMembers are members added to the group. Optional.
	NewChatMembers []User `json:"new_chat_members,omitempty"`
	// LeftChatMember is a member removed from the group. Optional.
	LeftChatMember *User `json:"left_chat_member,omitempty"`
	// NewChatTitle is the new chat title. Optional.
	NewChatTitle string `json:"new_chat_title,omitempty"`
	// PinnedMessage is the message that was pinned. Optional.
	PinnedMessage *Message `json:"pinned_message,omitempty"`
	// Invoice is a message about an invoice for payment. Optional.
	Invoice *Invoice `json:"invoice,omitempty"`
	// SuccessfulPayment is a service message about a successful payment. Optional.
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
	// ReplyMarkup is the inline keyboard attached to the message. Optional.
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// Time converts the message timestamp into a time.Time.
func (m *Message) Time() time.Time {
	return time.Unix(int64(m.Date), 0)
}

// IsCommand returns true if the message starts with a bot command,
// like "/help" or "/start@botname".
func (m *Message) IsCommand() bool {
	if m.Entities == nil || len(m.Entities) == 0 {
		return false
	}
	entity := m.Entities[0]
	return entity.Offset == 0 && entity.IsCommand()
}

// Command checks if the message was a command and returns the command
// name without the leading slash and without the @botname mention.
//
// If the message was not a command, it returns an empty string.
func (m *Message) Command() string {
	command := m.CommandWithAt()
	if i := strings.Index(command, "@"); i != -1 {
		command = command[:i]
	}
	return command
}

// CommandWithAt returns the command including the @botname mention.
func (m *Message) CommandWithAt() string {
	if !m.IsCommand() {
		return ""
	}
	entity := m.Entities[0]
	return m.Text[1:entity.Length]
}

// CommandArguments returns all text after the command name.
//
//	/foo bar baz -> "bar baz"
func (m *Message) CommandArguments() string {
	if !m.IsCommand() {
		return ""
	}
	entity := m.Entities[0]
	if len(m.Text) == entity.Length {
		return ""
	}
	return m.Text[entity.Length+1:]
}

// MessageEntity represents one special entity in a text message.
type MessageEntity struct {
	// Type of the entity: "mention", "hashtag", "cashtag", "bot_command",
	// "url", "email", "phone_number", "bold", "italic", "underline",
	// "strikethrough", "code", "pre", "text_link" or "text_mention".
	Type string `json:"type"`
	// Offset in UTF-16 code units to the start of the entity.
	Offset int `json:"offset"`
	// Length of the entity in UTF-16 code units.
	Length int `json:"length"`
	// URL that will be opened after the user taps on the text.
	// For "text_link" only. Optional.
	URL string `json:"url,omitempty"`
	// User is the mentioned user, for "text_mention" only. Optional.
	User *User `json:"user,omitempty"`
	// Language of the entity text, for "pre" only. Optional.
	Language string `json:"language,omitempty"`
}

// IsCommand returns true if the entity is a bot command.
func (e MessageEntity) IsCommand() bool { return e.Type == "bot_command" }

// IsURL returns true if the entity is a URL.
func (e MessageEntity) IsURL() bool { return e.Type == "url" }

// IsMention returns true if the entity is a mention.
func (e MessageEntity) IsMention() bool { return e.Type == "mention" }

// PhotoSize represents one size of a photo or a file/sticker thumbnail.
type PhotoSize struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	FileSize     int    `json:"file_size,omitempty"`
}

// Audio represents an audio file to be treated as music.
type Audio struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Duration     int        `json:"duration"`
	Performer    string     `json:"performer,omitempty"`
	Title        string     `json:"title,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	FileSize     int        `json:"file_size,omitempty"`
	Thumbnail    *PhotoSize `json:"thumb,omitempty"`
}

// Document represents a general file.
type Document struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Thumbnail    *PhotoSize `json:"thumb,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	FileSize     int        `json:"file_size,omitempty"`
}

// Video represents a video file.
type Video struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Duration     int        `json:"duration"`
	Thumbnail    *PhotoSize `json:"thumb,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	MimeType     string     `json:"mime_type,omitempty"`
	FileSize     int        `json:"file_size,omitempty"`
}

// VideoNote represents a video message.
type VideoNote struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Length       int        `json:"length"`
	Duration     int        `json:"duration"`
	Thumbnail    *PhotoSize `json:"thumb,omitempty"`
	FileSize     int        `json:"file_size,omitempty"`
}

// Voice represents a voice note.
type Voice struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	Duration     int    `json:"duration"`
	MimeType     string `json:"mime_type,omitempty"`
	FileSize     int    `json:"file_size,omitempty"`
}

// Sticker represents a sticker.
type Sticker struct {
	FileID       string     `json:"file_id"`
	FileUniqueID string     `json:"file_unique_id"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	IsAnimated   bool       `json:"is_animated,omitempty"`
	Thumbnail    *PhotoSize `json:"thumb,omitempty"`
	Emoji        string     `json:"emoji,omitempty"`
	SetName      string     `json:"set_name,omitempty"`
	FileSize     int        `json:"file_size,omitempty"`
}

// Contact represents a phone contact.
type Contact struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
	VCard       string `json:"vcard,omitempty"`
}

// Location represents a point on the map.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Venue represents a venue.
type Venue struct {
	Location       Location `json:"location"`
	Title          string   `json:"title"`
	Address        string   `json:"address"`
	FoursquareID   string   `json:"foursquare_id,omitempty"`
	FoursquareType string   `json:"foursquare_type,omitempty"`
}

// Dice represents an animated emoji that displays a random value.
type Dice struct {
	Emoji string `json:"emoji"`
	Value int    `json:"value"`
}

// PollOption contains information about one answer option in a poll.
type PollOption struct {
	Text       string `json:"text"`
	VoterCount int    `json:"voter_count"`
}

// Poll contains information about a poll.
type Poll struct {
	ID                    string       `json:"id"`
	Question              string       `json:"question"`
	Options               []PollOption `json:"options"`
	TotalVoterCount       int          `json:"total_voter_count"`
	IsClosed              bool         `json:"is_closed"`
	IsAnonymous           bool         `json:"is_anonymous"`
	Type                  string       `json:"type"`
	AllowsMultipleAnswers bool         `json:"allows_multiple_answers"`
	CorrectOptionID       int          `json:"correct_option_id,omitempty"`
	Explanation           string       `json:"explanation,omitempty"`
	OpenPeriod            int          `json:"open_period,omitempty"`
	CloseDate             int          `json:"close_date,omitempty"`
}

// CallbackQuery represents an incoming callback query from a callback
// button in an inline keyboard.
type CallbackQuery struct {
	// ID is the unique identifier for this query.
	ID string `json:"id"`
	// From is the sender.
	From *User `json:"from"`
	// Message with the callback button that originated the query. Optional.
	Message *Message `json:"message,omitempty"`
	// InlineMessageID is the identifier of the message sent via the bot
	// in inline mode that originated the query. Optional.
	InlineMessageID string `json:"inline_message_id,omitempty"`
	// ChatInstance is a global identifier uniquely corresponding to the
	// chat the message with the callback button was sent to.
	ChatInstance string `json:"chat_instance"`
	// Data associated with the callback button. Optional.
	Data string `json:"data,omitempty"`
	// GameShortName of a game to be returned. Optional.
	GameShortName string `json:"game_short_name,omitempty"`
}

// InlineQuery is an incoming inline query. When the user sends an empty
// query, your bot could return some default or trending results.
type InlineQuery struct {
	// ID is the unique identifier for this query.
	ID string `json:"id"`
	// From is the sender.
	From *User `json:"from"`
	// Query is the text of the query, up to 256 characters.
	Query string `json:"query"`
	// Offset of the results to be returned, controllable by the bot.
	Offset string `json:"offset"`
	// ChatType is the type of the chat the inline query was sent from. Optional.
	ChatType string `json:"chat_type,omitempty"`
	// Location of the sender, only for bots that request it. Optional.
	Location *Location `json:"location,omitempty"`
}

// ChosenInlineResult represents a result of an inline query that was
// chosen by the user and sent to their chat partner.
type ChosenInlineResult struct {
	// ResultID is the unique identifier of the result that was chosen.
	ResultID string `json:"result_id"`
	// From is the user that chose the result.
	From *User `json:"from"`
	// Location of the sender, only for bots that request it. Optional.
	Location *Location `json:"location,omitempty"`
	// InlineMessageID of the sent inline message. Optional.
	InlineMessageID string `json:"inline_message_id,omitempty"`
	// Query that was used to obtain the result.
	Query string `json:"query"`
}

// ShippingAddress represents a shipping address.
type ShippingAddress struct {
	CountryCode string `json:"country_code"`
	State       string `json:"state"`
	City        string `json:"city"`
	StreetLine1 string `json:"street_line1"`
	StreetLine2 string `json:"street_line2"`
	PostCode    string `json:"post_code"`
}

// OrderInfo represents information about an order.
type OrderInfo struct {
	Name            string           `json:"name,omitempty"`
	PhoneNumber     string           `json:"phone_number,omitempty"`
	Email           string           `json:"email,omitempty"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
}

// ShippingQuery contains information about an incoming shipping query.
type ShippingQuery struct {
	// ID is the unique query identifier.
	ID string `json:"id"`
	// From is the user who sent the query.
	From *User `json:"from"`
	// InvoicePayload is the bot specified invoice payload.
	InvoicePayload string `json:"invoice_payload"`
	// ShippingAddress is the user specified shipping address.
	ShippingAddress *ShippingAddress `json:"shipping_address"`
}

// PreCheckoutQuery contains information about an incoming pre-checkout query.
type PreCheckoutQuery struct {
	// ID is the unique query identifier.
	ID string `json:"id"`
	// From is the user who sent the query.
	From *User `json:"from"`
	// Currency is a three-letter ISO 4217 currency code.
	Currency string `json:"currency"`
	// TotalAmount is the total price in the smallest units of the currency.
	TotalAmount int `json:"total_amount"`
	// InvoicePayload is the bot specified invoice payload.
	InvoicePayload string `json:"invoice_payload"`
	// ShippingOptionID is the identifier of the shipping option chosen
	// by the user. Optional.
	ShippingOptionID string `json:"shipping_option_id,omitempty"`
	// OrderInfo provided by the user. Optional.
	OrderInfo *OrderInfo `json:"order_info,omitempty"`
}

// Invoice contains basic information about an invoice.
type Invoice struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	StartParameter string `json:"start_parameter"`
	Currency       string `json:"currency"`
	TotalAmount    int    `json:"total_amount"`
}

// SuccessfulPayment contains basic information about a successful payment.
type SuccessfulPayment struct {
	Currency                string     `json:"currency"`
	TotalAmount             int        `json:"total_amount"`
	InvoicePayload          string     `json:"invoice_payload"`
	ShippingOptionID        string     `json:"shipping_option_id,omitempty"`
	OrderInfo               *OrderInfo `json:"order_info,omitempty"`
	TelegramPaymentChargeID string     `json:"telegram_payment_charge_id"`
	ProviderPaymentChargeID string     `json:"provider_payment_charge_id"`
}

// LabeledPrice represents a portion of the price for goods or services.
type LabeledPrice struct {
	Label string `json:"label"`
	// Amount is the price in the smallest units of the currency.
	Amount int `json:"amount"`
}

// ShippingOption represents one shipping option offered in reply to a
// shipping query.
type ShippingOption struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Prices []*LabeledPrice `json:"prices"`
}

// File contains information about a file ready to be downloaded.
type File struct {
	FileID       string `json:"file_id"`
	FileUniqueID string `json:"file_unique_id"`
	FileSize     int    `json:"file_size,omitempty"`
	// FilePath is the relative path of the file on the server.
	// Use Link to build a full download URL.
	FilePath string `json:"file_path,omitempty"`
}

// Link returns a full URL the file can be downloaded from.
func (f *File) Link(token string) string {
	return fmt.Sprintf(fileEndpoint, token, f.FilePath)
}

// WebhookInfo contains the current status of a webhook.
type WebhookInfo struct {
	// URL is the webhook URL, empty if no webhook is set up.
	URL string `json:"url"`
	// HasCustomCertificate reports if a custom certificate was provided.
	HasCustomCertificate bool `json:"has_custom_certificate"`
	// PendingUpdateCount is the number of updates awaiting delivery.
	PendingUpdateCount int `json:"pending_update_count"`
	// IPAddress is the currently used webhook IP address. Optional.
	IPAddress string `json:"ip_address,omitempty"`
	// LastErrorDate is the Unix time of the most recent delivery error. Optional.
	LastErrorDate int `json:"last_error_date,omitempty"`
	// LastErrorMessage describes the most recent delivery error. Optional.
	LastErrorMessage string `json:"last_error_message,omitempty"`
	// MaxConnections is the maximum allowed number of simultaneous
	// connections for update delivery. Optional.
	MaxConnections int `json:"max_connections,omitempty"`
	// AllowedUpdates is the list of update types the bot is subscribed to. Optional.
	AllowedUpdates []UpdateType `json:"allowed_updates,omitempty"`
}

// IsSet returns true if a webhook is currently registered.
func (info WebhookInfo) IsSet() bool { return info.URL != "" }

// BotCommand represents a bot command.
type BotCommand struct {
	// Command is the command text, 1-32 characters: lowercase letters,
	// digits and underscores.
	Command string `json:"command"`
	// Description of the command, 3-256 characters.
	Description string `json:"description"`
}

// BotCommandScope represents the scope to which bot commands apply.
type BotCommandScope struct {
	Type   string `json:"type"`
	ChatID int64  `json:"chat_id,omitempty"`
	UserID int64  `json:"user_id,omitempty"`
}

// ReplyKeyboardMarkup represents a custom keyboard with reply options.
type ReplyKeyboardMarkup struct {
	// Keyboard is an array of button rows.
	Keyboard [][]KeyboardButton `json:"keyboard"`
	// ResizeKeyboard requests clients to resize the keyboard vertically
	// for an optimal fit. Optional.
	ResizeKeyboard bool `json:"resize_keyboard,omitempty"`
	// OneTimeKeyboard requests clients to hide the keyboard as soon as
	// it has been used. Optional.
	OneTimeKeyboard bool `json:"one_time_keyboard,omitempty"`
	// InputFieldPlaceholder is shown in the input field while the
	// keyboard is active. Optional.
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	// Selective shows the keyboard to specific users only. Optional.
	Selective bool `json:"selective,omitempty"`
}

// KeyboardButton represents one button of the reply keyboard.
type KeyboardButton struct {
	// Text of the button, sent as a message when pressed.
	Text string `json:"text"`
	// RequestContact sends the user's phone number when pressed.
	// Private chats only. Optional.
	RequestContact bool `json:"request_contact,omitempty"`
	// RequestLocation sends the user's current location when pressed.
	// Private chats only. Optional.
	RequestLocation bool `json:"request_location,omitempty"`
}

// ReplyKeyboardRemove requests clients to remove the custom keyboard.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
	Selective      bool `json:"selective,omitempty"`
}

// InlineKeyboardMarkup represents an inline keyboard attached to a message.
type InlineKeyboardMarkup struct {
	// InlineKeyboard is an array of button rows.
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton represents one button of an inline keyboard.
// Exactly one of the optional fields must be set.
type InlineKeyboardButton struct {
	// Text is the label text on the button.
	Text string `json:"text"`
	// URL to be opened when the button is pressed. Optional.
	URL *string `json:"url,omitempty"`
	// LoginURL is an HTTPS URL used to automatically authorize the user. Optional.
	LoginURL *LoginURL `json:"login_url,omitempty"`
	// CallbackData is sent in a callback query when the button is
	// pressed, 1-64 bytes. Optional.
	CallbackData *string `json:"callback_data,omitempty"`
	// SwitchInlineQuery prompts the user to select a chat and inserts
	// the bot's username and this query in the input field. Optional.
	SwitchInlineQuery *string `json:"switch_inline_query,omitempty"`
	// SwitchInlineQueryCurrentChat inserts the bot's username and this
	// query in the current chat's input field. Optional.
	SwitchInlineQueryCurrentChat *string `json:"switch_inline_query_current_chat,omitempty"`
	// Pay specifies a pay button. First button in the first row only. Optional.
	Pay bool `json:"pay,omitempty"`
}

// LoginURL represents a parameter of the inline keyboard button used to
// automatically authorize a user.
type LoginURL struct {
	// URL opened with user authorization data added to the query string.
	URL string `json:"url"`
	// ForwardText is the new text of the button in forwarded messages. Optional.
	ForwardText string `json:"forward_text,omitempty"`
	// BotUsername of the bot used for user authorization. Optional.
	BotUsername string `json:"bot_username,omitempty"`
	// RequestWriteAccess requests permission to send messages to the user. Optional.
	RequestWriteAccess bool `json:"request_write_access,omitempty"`
}

// ForceReply shows a reply interface to the user, as if they manually
// selected the bot's message and tapped "Reply".
type ForceReply struct {
	ForceReply            bool   `json:"force_reply"`
	InputFieldPlaceholder string `json:"input_field_placeholder,omitempty"`
	Selective             bool   `json:"selective,omitempty"`
}
