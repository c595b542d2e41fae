package telegram

import "log"

// ──────────────────────────────────────────────
// Channel-based update API (legacy surface)
// ──────────────────────────────────────────────

// GetUpdatesChan is the channel-based update API kept for drop-in
// compatibility with earlier releases. It runs a Poller underneath:
// every update is delivered on the returned channel in order, and the
// offset bookkeeping follows the engine's rules (advance only after
// delivery, re-poll the same batch after a crash).
//
// The channel closes once the loop fully exits after
// StopReceivingUpdates or a fatal error. Classified errors are logged;
// applications that want to inspect them should use Poller directly.
//
// Only one channel can be active per BotAPI. A second call while one is
// live returns an already-closed channel.
func (bot *BotAPI) GetUpdatesChan(config UpdateConfig) UpdatesChannel {
	ch := make(chan Update, bot.Buffer)

	bot.compatMu.Lock()
	defer bot.compatMu.Unlock()

	if bot.compatPoller != nil && bot.compatPoller.Status() != StateStopped {
		log.Println("[Compat] Updates channel already active, call StopReceivingUpdates first")
		close(ch)
		return ch
	}

	poller := NewPoller(bot)
	poller.HandleAll(func(u Update) error {
		ch <- u
		return nil
	})

	if err := poller.Start(PollConfig{
		Offset:         config.Offset,
		Limit:          config.Limit,
		Timeout:        config.Timeout,
		AllowedUpdates: config.AllowedUpdates,
	}); err != nil {
		log.Printf("[Compat] Start polling: %v", err)
		close(ch)
		return ch
	}
	bot.compatPoller = poller

	go func() {
		for {
			select {
			case be := <-poller.Errors():
				log.Printf("[Compat] %v", be)
			case <-poller.Done():
				// The loop has exited; no handler can send anymore.
				close(ch)
				return
			}
		}
	}()

	return ch
}

// StopReceivingUpdates requests a stop of the loop behind
// GetUpdatesChan. It returns immediately; the channel closes once the
// poll in flight has wound down.
func (bot *BotAPI) StopReceivingUpdates() {
	bot.compatMu.Lock()
	poller := bot.compatPoller
	bot.compatMu.Unlock()

	if poller == nil {
		return
	}
	poller.Stop()
}
