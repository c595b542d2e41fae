package telegram

import (
	"log"
	"os"
	"regexp"
	"strings"
)

// HandlerFunc is the signature for routed update handlers. It receives
// the low-level BotAPI and the incoming Update.
type HandlerFunc func(bot *BotAPI, update Update)

// Chat type filters for AddMessage.
const (
	FilterAll     = "all"
	FilterPrivate = "private"
	FilterGroup   = "group"
)

// callbackRoute pairs a regex pattern with a handler.
type callbackRoute struct {
	pattern *regexp.Regexp
	handler HandlerFunc
}

// messageRoute pairs a chat type filter with a handler.
type messageRoute struct {
	filter  string
	handler HandlerFunc
}

// inlineRoute pairs a regex pattern with a handler.
type inlineRoute struct {
	pattern *regexp.Regexp
	handler HandlerFunc
}

// Router dispatches incoming updates to registered handlers.
//
// Dispatch priority:
//  1. Command handlers (exact match on command name)
//  2. Callback query handlers (regex match on callback data)
//  3. Inline query handlers (regex match on query text)
//  4. Message handlers (filter match on chat type)
//  5. The default handler, when one is set
type Router struct {
	commands  map[string]HandlerFunc
	callbacks []callbackRoute
	inlines   []inlineRoute
	messages  []messageRoute
	defaultFn HandlerFunc
	debug     bool
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		commands: make(map[string]HandlerFunc),
	}
}

// AddCommand registers a handler for a bot command (e.g. "start" for
// /start). Commands addressed to other bots in a group are not matched.
func (r *Router) AddCommand(name string, handler HandlerFunc) {
	r.commands[strings.TrimPrefix(name, "/")] = handler
	if r.debug {
		log.Printf("[Router] Registered command: /%s", name)
	}
}

// AddCallbackQuery registers a handler for callback queries whose data
// matches the regex pattern, e.g. AddCallbackQuery("^page_", handler).
func (r *Router) AddCallbackQuery(pattern string, handler HandlerFunc) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Printf("[Router] WARNING: invalid callback pattern %q: %v", pattern, err)
		return
	}
	r.callbacks = append(r.callbacks, callbackRoute{pattern: re, handler: handler})
	if r.debug {
		log.Printf("[Router] Registered callback: %s", pattern)
	}
}

// AddInlineQuery registers a handler for inline queries whose text
// matches the regex pattern. Use ".*" to catch every inline query.
func (r *Router) AddInlineQuery(pattern string, handler HandlerFunc) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		log.Printf("[Router] WARNING: invalid inline pattern %q: %v", pattern, err)
		return
	}
	r.inlines = append(r.inlines, inlineRoute{pattern: re, handler: handler})
	if r.debug {
		log.Printf("[Router] Registered inline query: %s", pattern)
	}
}

// AddMessage registers a handler for plain text messages matching the
// chat type filter: FilterPrivate, FilterGroup or FilterAll.
func (r *Router) AddMessage(filter string, handler HandlerFunc) {
	r.messages = append(r.messages, messageRoute{filter: strings.ToLower(filter), handler: handler})
	if r.debug {
		log.Printf("[Router] Registered message filter: %s", filter)
	}
}

// SetDefault registers the fallback handler invoked for every update
// nothing else matched. At most one; later calls replace it.
func (r *Router) SetDefault(handler HandlerFunc) {
	r.defaultFn = handler
}

// Dispatch routes an update to the first matching handler. It reports
// whether any handler (including the default) was invoked.
func (r *Router) Dispatch(bot *BotAPI, update Update) bool {
	trace := r.traceEnabled()

	// 1. Command messages
	if update.Message != nil && update.Message.IsCommand() {
		cmd := update.Message.Command()
		if handler, ok := r.commands[cmd]; ok {
			if trace {
				log.Printf("[RouteTrace] matched command=/%s", cmd)
			}
			handler(bot, update)
			return true
		}
		if trace {
			log.Printf("[RouteTrace] command not matched command=/%s", cmd)
		}
		// Unknown commands skip the message routes and reach only the
		// default handler.
	}

	// 2. Callback queries
	if update.CallbackQuery != nil {
		data := update.CallbackQuery.Data
		for _, route := range r.callbacks {
			if route.pattern.MatchString(data) {
				if trace {
					log.Printf("[RouteTrace] matched callback pattern=%s data=%q", route.pattern, clipRouteText(data, 120))
				}
				route.handler(bot, update)
				return true
			}
		}
		if trace {
			log.Printf("[RouteTrace] callback not matched data=%q", clipRouteText(data, 120))
		}
	}

	// 3. Inline queries
	if update.InlineQuery != nil {
		query := update.InlineQuery.Query
		for _, route := range r.inlines {
			if route.pattern.MatchString(query) {
				if trace {
					log.Printf("[RouteTrace] matched inline pattern=%s query=%q", route.pattern, clipRouteText(query, 120))
				}
				route.handler(bot, update)
				return true
			}
		}
		if trace {
			log.Printf("[RouteTrace] inline not matched query=%q", clipRouteText(query, 120))
		}
	}

	// 4. Plain text messages
	if update.Message != nil && !update.Message.IsCommand() && update.Message.Text != "" {
		chatType := ""
		if update.Message.Chat != nil {
			chatType = strings.ToLower(update.Message.Chat.Type)
		}

		for _, route := range r.messages {
			if matchChatFilter(route.filter, chatType) {
				if trace {
					log.Printf("[RouteTrace] matched message filter=%s chat_type=%s text=%q",
						route.filter, chatType, clipRouteText(update.Message.Text, 120))
				}
				route.handler(bot, update)
				return true
			}
		}
		if trace {
			log.Printf("[RouteTrace] message not matched chat_type=%s text=%q",
				chatType, clipRouteText(update.Message.Text, 120))
		}
	}

	// 5. Fallback
	if r.defaultFn != nil {
		if trace {
			log.Printf("[RouteTrace] matched default handler")
		}
		r.defaultFn(bot, update)
		return true
	}

	if trace {
		log.Printf("[RouteTrace] update dropped (no handler)")
	}
	return false
}

// matchChatFilter checks if a chat type matches the filter.
func matchChatFilter(filter, chatType string) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterPrivate:
		return chatType == "private"
	case FilterGroup:
		return chatType == "group" || chatType == "supergroup"
	default:
		return false
	}
}

func (r *Router) traceEnabled() bool {
	if r.debug {
		return true
	}
	v := strings.ToLower(strings.TrimSpace(os.Getenv("TGBOT_ROUTE_TRACE")))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

// clipRouteText keeps trace lines single-line and bounded.
func clipRouteText(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", "\\n")
	if runes := []rune(s); len(runes) > maxRunes {
		return string(runes[:maxRunes]) + "..."
	}
	return s
}
