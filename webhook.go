package telegram

import (
	"encoding/json"
	"log"
	"net/http"
)

// webhookSecretHeader is the header the platform echoes the configured
// secret token on with every webhook delivery.
const webhookSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler returns an http.HandlerFunc for mounting on any mux,
// plus the channel decoded updates are delivered on.
//
// Deliveries are validated before decoding: non-POST requests get 405,
// and when secret is non-empty a delivery whose
// X-Telegram-Bot-Api-Secret-Token header does not match gets 401. A
// body that fails to decode gets 400. A full updates channel gets 503
// so the platform retries later instead of losing the update.
func (bot *BotAPI) WebhookHandler(secret string) (http.HandlerFunc, UpdatesChannel) {
	updates := make(chan Update, bot.Buffer)

	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST required", http.StatusMethodNotAllowed)
			return
		}
		if secret != "" && r.Header.Get(webhookSecretHeader) != secret {
			log.Println("[Webhook] Delivery rejected: secret token mismatch")
			http.Error(w, "secret token mismatch", http.StatusUnauthorized)
			return
		}

		var update Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			log.Printf("[Webhook] Delivery rejected: decode: %v", err)
			http.Error(w, "malformed update", http.StatusBadRequest)
			return
		}

		select {
		case updates <- update:
		default:
			log.Println("[Webhook] Delivery deferred: updates channel full")
			http.Error(w, "updates queue full", http.StatusServiceUnavailable)
		}
	}

	return handler, updates
}

// ListenForWebhook registers a webhook handler on the DefaultServeMux
// and returns the channel updates arrive on. The caller still runs the
// server with http.ListenAndServe.
func (bot *BotAPI) ListenForWebhook(pattern string) UpdatesChannel {
	return bot.ListenForWebhookWithSecret(pattern, "")
}

// ListenForWebhookWithSecret is ListenForWebhook with secret token
// validation, matching the SecretToken set in the WebhookConfig.
func (bot *BotAPI) ListenForWebhookWithSecret(pattern, secret string) UpdatesChannel {
	handler, updates := bot.WebhookHandler(secret)
	http.HandleFunc(pattern, handler)
	return updates
}
