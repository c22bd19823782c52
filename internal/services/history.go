package services

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agentx/slack-summarizer/internal/models"
)

// HistoryOptions bounds a fetch.
type HistoryOptions struct {
	Lookback  time.Duration
	PageLimit int
	Location  *time.Location
}

// HistoryFetcher collects a channel's top-level messages and thread replies
// over a trailing window and returns them in chronological order.
type HistoryFetcher struct {
	history    HistoryReader
	threads    ThreadReader
	users      UserResolver
	normalizer *Normalizer
	lookback   time.Duration
	pageLimit  int
	logger     logrus.FieldLogger
}

// NewHistoryFetcher creates a fetcher over the given readers
func NewHistoryFetcher(history HistoryReader, threads ThreadReader, users UserResolver, opts HistoryOptions, logger logrus.FieldLogger) *HistoryFetcher {
	if opts.Lookback <= 0 {
		opts.Lookback = 7 * 24 * time.Hour
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = 1000
	}
	return &HistoryFetcher{
		history:    history,
		threads:    threads,
		users:      users,
		normalizer: NewNormalizer(opts.Location),
		lookback:   opts.Lookback,
		pageLimit:  opts.PageLimit,
		logger:     logger,
	}
}

// Lookback returns the window the fetcher covers.
func (f *HistoryFetcher) Lookback() time.Duration {
	return f.lookback
}

// Fetch returns every message in channelID posted within the lookback window
// ending at now, sorted by timestamp. A failed thread fetch drops only that
// thread's replies; a failed top-level fetch yields an empty result.
func (f *HistoryFetcher) Fetch(ctx context.Context, channelID string, now time.Time) []models.NormalizedMessage {
	logger := f.logger.WithField("channel_id", channelID)
	oldest := FormatSlackTimestamp(now.Add(-f.lookback))

	topLevel, err := f.history.History(ctx, channelID, oldest, f.pageLimit)
	if err != nil {
		logger.WithError(err).Error("Error fetching channel history")
		return nil
	}
	logger.WithField("count", len(topLevel)).Info("Fetched top-level messages")

	users := NewUserCache(f.users, logger)
	users.Prime(ctx, topLevel)

	all := make([]models.NormalizedMessage, 0, len(topLevel))
	for _, msg := range topLevel {
		all = append(all, f.normalizer.Normalize(msg, users.NameFor(ctx, msg)))

		if msg.ReplyCount <= 0 {
			continue
		}

		thread, err := f.threads.Replies(ctx, channelID, msg.Timestamp, oldest, f.pageLimit)
		if err != nil {
			logger.WithError(err).WithField("thread_ts", msg.Timestamp).Error("Error fetching thread replies")
			continue
		}
		if len(thread) <= 1 {
			continue
		}
		for _, reply := range thread[1:] {
			all = append(all, f.normalizer.Normalize(reply, users.NameFor(ctx, reply)))
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].SortKey < all[j].SortKey
	})

	logger.WithFields(logrus.Fields{
		"messages": len(all),
		"users":    users.Len(),
	}).Debug("Assembled channel history")

	return all
}
