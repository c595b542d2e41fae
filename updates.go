package telegram

// UpdateType identifies the semantic category of an Update.
//
// The values are the wire names the Bot API uses for the
// allowed_updates filter, so a []UpdateType can be passed straight
// into UpdateConfig.AllowedUpdates.
type UpdateType string

const (
	// UpdateTypeMessage is a new incoming message of any kind.
	UpdateTypeMessage UpdateType = "message"
	// UpdateTypeEditedMessage is a new version of a known message.
	UpdateTypeEditedMessage UpdateType = "edited_message"
	// UpdateTypeChannelPost is a new incoming channel post of any kind.
	UpdateTypeChannelPost UpdateType = "channel_post"
	// UpdateTypeEditedChannelPost is a new version of a known channel post.
	UpdateTypeEditedChannelPost UpdateType = "edited_channel_post"
	// UpdateTypeInlineQuery is a new incoming inline query.
	UpdateTypeInlineQuery UpdateType = "inline_query"
	// UpdateTypeChosenInlineResult is an inline query result chosen by a user.
	UpdateTypeChosenInlineResult UpdateType = "chosen_inline_result"
	// UpdateTypeCallbackQuery is a new incoming callback query.
	UpdateTypeCallbackQuery UpdateType = "callback_query"
	// UpdateTypeShippingQuery is a new incoming shipping query.
	UpdateTypeShippingQuery UpdateType = "shipping_query"
	// UpdateTypePreCheckoutQuery is a new incoming pre-checkout query.
	UpdateTypePreCheckoutQuery UpdateType = "pre_checkout_query"
	// UpdateTypeUnknown marks an update with no recognized payload.
	// It never appears in allowed_updates.
	UpdateTypeUnknown UpdateType = "unknown"
)

// updateTypes lists all dispatchable categories, in classification
// priority order. Unknown is last.
var updateTypes = []UpdateType{
	UpdateTypeMessage,
	UpdateTypeEditedMessage,
	UpdateTypeChannelPost,
	UpdateTypeEditedChannelPost,
	UpdateTypeInlineQuery,
	UpdateTypeChosenInlineResult,
	UpdateTypeCallbackQuery,
	UpdateTypeShippingQuery,
	UpdateTypePreCheckoutQuery,
	UpdateTypeUnknown,
}

// UpdateTypes returns every dispatchable category, in classification
// priority order, Unknown last. The returned slice is a copy.
func UpdateTypes() []UpdateType {
	out := make([]UpdateType, len(updateTypes))
	copy(out, updateTypes)
	return out
}

// Type classifies the update into exactly one category.
//
// It is total and pure: it never fails, regardless of input. A
// well-formed update has exactly one populated payload field; when a
// malformed update carries several, the first populated field in the
// fixed order below wins. An update with no recognized payload
// classifies as UpdateTypeUnknown.
func (u *Update) Type() UpdateType {
	switch {
	case u.Message != nil:
		return UpdateTypeMessage
	case u.EditedMessage != nil:
		return UpdateTypeEditedMessage
	case u.ChannelPost != nil:
		return UpdateTypeChannelPost
	case u.EditedChannelPost != nil:
		return UpdateTypeEditedChannelPost
	case u.InlineQuery != nil:
		return UpdateTypeInlineQuery
	case u.ChosenInlineResult != nil:
		return UpdateTypeChosenInlineResult
	case u.CallbackQuery != nil:
		return UpdateTypeCallbackQuery
	case u.ShippingQuery != nil:
		return UpdateTypeShippingQuery
	case u.PreCheckoutQuery != nil:
		return UpdateTypePreCheckoutQuery
	default:
		return UpdateTypeUnknown
	}
}

// variantCount reports how many payload fields are populated. A
// well-formed update has exactly one; anything else is protocol noise
// that the engine tolerates and reports.
func (u *Update) variantCount() int {
	n := 0
	if u.Message != nil {
		n++
	}
	if u.EditedMessage != nil {
		n++
	}
	if u.ChannelPost != nil {
		n++
	}
	if u.EditedChannelPost != nil {
		n++
	}
	if u.InlineQuery != nil {
		n++
	}
	if u.ChosenInlineResult != nil {
		n++
	}
	if u.CallbackQuery != nil {
		n++
	}
	if u.ShippingQuery != nil {
		n++
	}
	if u.PreCheckoutQuery != nil {
		n++
	}
	return n
}
