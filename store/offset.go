// Package store provides durable backends for the poll offset, so a
// bot can resume from where it stopped instead of re-reading whatever
// the platform still retains.
//
// The engine never persists on its own. Callers load the offset before
// starting and save it when it matters to them:
//
//	st, _ := store.NewSQLiteOffsetStore("bot.db", "mybot")
//	defer st.Close()
//
//	offset, _ := st.Load(ctx)
//	poller.Start(telegram.PollConfig{Offset: offset})
//	...
//	poller.Stop()
//	<-poller.Done()
//	st.Save(ctx, poller.Offset())
package store

import "context"

// OffsetStore persists a bot's poll offset under a name, one value per
// bot. Load returns 0 when nothing was saved yet, which starts the
// engine from the oldest retained update.
type OffsetStore interface {
	Load(ctx context.Context) (int64, error)
	Save(ctx context.Context, offset int64) error
	Close() error
}
