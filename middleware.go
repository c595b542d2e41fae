package telegram

import "log"

// ──────────────────────────────────────────────
// Middleware — onion-model pipeline around dispatch
// ──────────────────────────────────────────────
//
// A middleware sees every update before the router does and again on
// the way back out. Call next() to pass control inward; return without
// it to swallow the update.
//
//	app.Use(func(ctx *MiddlewareContext, next NextFunc) {
//	    start := time.Now()
//	    next()
//	    log.Printf("handled in %v", time.Since(start))
//	})

// NextFunc passes control to the next layer, or to the router when the
// caller is the innermost middleware.
type NextFunc func()

// MiddlewareFunc is one layer of the pipeline.
type MiddlewareFunc func(ctx *MiddlewareContext, next NextFunc)

// MiddlewareContext flows through all layers of one dispatch.
type MiddlewareContext struct {
	// Update is the incoming update.
	Update Update
	// Bot is the low-level API client.
	Bot *BotAPI
	// Extra carries values between layers.
	Extra map[string]interface{}
	// Handled is set once the router has been reached.
	Handled bool
}

// MiddlewarePipeline holds the registered layers in order.
type MiddlewarePipeline struct {
	layers []MiddlewareFunc
}

// NewMiddlewarePipeline creates an empty pipeline.
func NewMiddlewarePipeline() *MiddlewarePipeline {
	return &MiddlewarePipeline{}
}

// Use appends a layer. Layers run in registration order, outermost
// first.
func (p *MiddlewarePipeline) Use(mw MiddlewareFunc) {
	p.layers = append(p.layers, mw)
}

// Len returns the number of registered layers.
func (p *MiddlewarePipeline) Len() int {
	return len(p.layers)
}

// Execute runs core wrapped in every registered layer:
//
//	layer[0] { layer[1] { core } }
func (p *MiddlewarePipeline) Execute(ctx *MiddlewareContext, core func()) {
	var step func(i int)
	step = func(i int) {
		if i >= len(p.layers) {
			core()
			return
		}
		p.layers[i](ctx, func() { step(i + 1) })
	}
	step(0)
}

// ──────────────────────────────────────────────
// Built-in middlewares
// ──────────────────────────────────────────────

// LoggingMiddleware logs every update before and after handling.
func LoggingMiddleware() MiddlewareFunc {
	return func(ctx *MiddlewareContext, next NextFunc) {
		log.Printf("[Middleware] Update %d (%s) received", ctx.Update.UpdateID, ctx.Update.Type())
		next()
		log.Printf("[Middleware] Update %d done, handled=%v", ctx.Update.UpdateID, ctx.Handled)
	}
}

// ChatAllowlistMiddleware drops updates from chats not on the list.
// Updates without a chat (e.g. inline queries) pass through.
func ChatAllowlistMiddleware(chatIDs ...int64) MiddlewareFunc {
	allowed := make(map[int64]bool, len(chatIDs))
	for _, id := range chatIDs {
		allowed[id] = true
	}
	return func(ctx *MiddlewareContext, next NextFunc) {
		if chat := ctx.Update.FromChat(); chat != nil && !allowed[chat.ID] {
			log.Printf("[Middleware] Dropped update %d from chat %d (not allowlisted)",
				ctx.Update.UpdateID, chat.ID)
			return
		}
		next()
	}
}
