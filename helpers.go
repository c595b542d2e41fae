package telegram

import "net/url"

// NewMessage creates a text message for a chat.
func NewMessage(chatID int64, text string) MessageConfig {
	return MessageConfig{
		BaseChat: BaseChat{ChatID: chatID},
		Text:     text,
	}
}

// NewForward creates a forward of a message.
func NewForward(chatID, fromChatID int64, messageID int) ForwardConfig {
	return ForwardConfig{
		BaseChat:   BaseChat{ChatID: chatID},
		FromChatID: fromChatID,
		MessageID:  messageID,
	}
}

// NewPhoto creates a photo message. The file is referenced by FileID or
// FileURL; the platform resolves it.
func NewPhoto(chatID int64, file RequestFileData) PhotoConfig {
	return PhotoConfig{
		BaseChat: BaseChat{ChatID: chatID},
		File:     file,
	}
}

// NewVideo creates a video message.
func NewVideo(chatID int64, file RequestFileData) VideoConfig {
	return VideoConfig{
		BaseChat: BaseChat{ChatID: chatID},
		File:     file,
	}
}

// NewDocument creates a document message.
func NewDocument(chatID int64, file RequestFileData) DocumentConfig {
	return DocumentConfig{
		BaseChat: BaseChat{ChatID: chatID},
		File:     file,
	}
}

// NewChatAction creates a chat action indicator such as "typing".
func NewChatAction(chatID int64, action string) ChatActionConfig {
	return ChatActionConfig{
		BaseChat: BaseChat{ChatID: chatID},
		Action:   action,
	}
}

// NewDeleteMessage deletes a message in a chat.
func NewDeleteMessage(chatID int64, messageID int) DeleteMessageConfig {
	return DeleteMessageConfig{
		ChatID:    chatID,
		MessageID: messageID,
	}
}

// NewEditMessageText edits the text of a previously sent message.
func NewEditMessageText(chatID int64, messageID int, text string) EditMessageTextConfig {
	return EditMessageTextConfig{
		BaseEdit: BaseEdit{ChatID: chatID, MessageID: messageID},
		Text:     text,
	}
}

// NewUpdate starts fetching updates from offset with no limit and short
// polling. Hand it to GetUpdates or GetUpdatesChan.
func NewUpdate(offset int64) UpdateConfig {
	return UpdateConfig{Offset: offset}
}

// NewWebhook creates a webhook registration for a public HTTPS URL.
func NewWebhook(link string) (WebhookConfig, error) {
	u, err := url.Parse(link)
	if err != nil {
		return WebhookConfig{}, err
	}
	return WebhookConfig{URL: u}, nil
}

// NewWebhookWithSecret is NewWebhook with a secret token the platform
// echoes on every delivery, enabling WebhookHandler validation.
func NewWebhookWithSecret(link, secret string) (WebhookConfig, error) {
	config, err := NewWebhook(link)
	if err != nil {
		return WebhookConfig{}, err
	}
	config.SecretToken = secret
	return config, nil
}

// NewCallback answers a callback query with a notification.
func NewCallback(id, text string) CallbackConfig {
	return CallbackConfig{
		CallbackQueryID: id,
		Text:            text,
	}
}

// NewCallbackWithAlert answers a callback query with a modal alert.
func NewCallbackWithAlert(id, text string) CallbackConfig {
	return CallbackConfig{
		CallbackQueryID: id,
		Text:            text,
		ShowAlert:       true,
	}
}

// NewSetMyCommands registers the bot's command list.
func NewSetMyCommands(commands ...BotCommand) SetMyCommandsConfig {
	return SetMyCommandsConfig{Commands: commands}
}

// NewBotCommand creates one command list entry.
func NewBotCommand(command, description string) BotCommand {
	return BotCommand{Command: command, Description: description}
}

// NewSetMyCommandsWithScope registers the bot's command list for a scope.
func NewSetMyCommandsWithScope(scope BotCommandScope, commands ...BotCommand) SetMyCommandsConfig {
	return SetMyCommandsConfig{Commands: commands, Scope: &scope}
}

// NewGetMyCommandsWithScope requests the command list for a scope.
func NewGetMyCommandsWithScope(scope BotCommandScope) GetMyCommandsConfig {
	return GetMyCommandsConfig{Scope: &scope}
}

// NewDeleteMyCommands clears the bot's default command list.
func NewDeleteMyCommands() DeleteMyCommandsConfig {
	return DeleteMyCommandsConfig{}
}

// NewDeleteMyCommandsWithScope clears the command list for a scope.
func NewDeleteMyCommandsWithScope(scope BotCommandScope) DeleteMyCommandsConfig {
	return DeleteMyCommandsConfig{Scope: &scope}
}

// NewBotCommandScopeDefault selects the default command scope.
func NewBotCommandScopeDefault() BotCommandScope {
	return BotCommandScope{Type: "default"}
}

// NewBotCommandScopeAllPrivateChats covers all private chats.
func NewBotCommandScopeAllPrivateChats() BotCommandScope {
	return BotCommandScope{Type: "all_private_chats"}
}

// NewBotCommandScopeAllGroupChats covers all group and supergroup chats.
func NewBotCommandScopeAllGroupChats() BotCommandScope {
	return BotCommandScope{Type: "all_group_chats"}
}

// NewBotCommandScopeChat covers a specific chat.
func NewBotCommandScopeChat(chatID int64) BotCommandScope {
	return BotCommandScope{Type: "chat", ChatID: chatID}
}

// NewInlineKeyboardMarkup creates an inline keyboard from button rows.
func NewInlineKeyboardMarkup(rows ...[]InlineKeyboardButton) InlineKeyboardMarkup {
	return InlineKeyboardMarkup{InlineKeyboard: rows}
}

// NewInlineKeyboardRow creates one row of inline buttons.
func NewInlineKeyboardRow(buttons ...InlineKeyboardButton) []InlineKeyboardButton {
	return buttons
}

// NewInlineKeyboardButtonData creates a button that sends a callback
// query with the given data when pressed.
func NewInlineKeyboardButtonData(text, data string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: &data}
}

// NewInlineKeyboardButtonURL creates a button that opens a URL.
func NewInlineKeyboardButtonURL(text, u string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, URL: &u}
}

// NewReplyKeyboard creates a custom reply keyboard from button rows.
func NewReplyKeyboard(rows ...[]KeyboardButton) ReplyKeyboardMarkup {
	return ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

// NewKeyboardButtonRow creates one row of reply keyboard buttons.
func NewKeyboardButtonRow(buttons ...KeyboardButton) []KeyboardButton {
	return buttons
}

// NewKeyboardButton creates a plain text reply button.
func NewKeyboardButton(text string) KeyboardButton {
	return KeyboardButton{Text: text}
}

// NewRemoveKeyboard hides a previously sent reply keyboard.
func NewRemoveKeyboard(selective bool) ReplyKeyboardRemove {
	return ReplyKeyboardRemove{
		RemoveKeyboard: true,
		Selective:      selective,
	}
}
