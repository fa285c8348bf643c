package alert

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/db"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/model"
	"github.com/google/uuid"
	"github.com/gorilla/feeds"
)

const (
	FeedName     = "operator"
	MaxFeedItems = 100
)

func init() {
	Register("feed", func(opt Options) (Sink, error) {
		if opt.Store == nil {
			return nil, fmt.Errorf("feed sink: no store")
		}
		return NewFeed(opt.Store, opt.FeedLink), nil
	})
}

type FeedEntry struct {
	ID          string         `json:"id"`
	Severity    model.Severity `json:"severity"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
}

// Feed keeps the latest alerts in the store and renders them as RSS for the operator.
type Feed struct {
	store db.Store
	link  string
	// mu serializes the read-modify-write of the feed key
	mu sync.Mutex
}

func NewFeed(store db.Store, link string) *Feed {
	if link == "" {
		link = "/api/kyc/alerts.rss"
	}
	return &Feed{store: store, link: link}
}

// AlertID is stable for a transaction so that a redelivered webhook replaces its own entry.
func AlertID(transactionID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("kyc-transaction:"+transactionID)).String()
}

func (f *Feed) entries(ctx context.Context) ([]FeedEntry, error) {
	var entries []FeedEntry
	if err := f.store.Get(ctx, model.AlertFeedKey(FeedName), &entries); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return nil, err
	}
	return entries, nil
}

func (f *Feed) Send(ctx context.Context, a *model.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries, err := f.entries(ctx)
	if err != nil {
		return fmt.Errorf("feed sink: %w", err)
	}
	e := FeedEntry{
		ID:          AlertID(a.TransactionID),
		Severity:    a.Severity,
		Title:       a.Title(),
		Description: a.Text(),
		Created:     a.CreatedAt,
	}
	kept := entries[:0]
	for _, old := range entries {
		if old.ID != e.ID {
			kept = append(kept, old)
		}
	}
	entries = append(kept, e)
	if len(entries) > MaxFeedItems {
		entries = entries[len(entries)-MaxFeedItems:]
	}
	if err := f.store.Set(ctx, model.AlertFeedKey(FeedName), entries, model.OutcomeTTL); err != nil {
		return fmt.Errorf("feed sink: %w", err)
	}
	return nil
}

// RSS renders the feed, newest first.
func (f *Feed) RSS(ctx context.Context, company string) (string, error) {
	entries, err := f.entries(ctx)
	if err != nil {
		return "", err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Created.After(entries[j].Created)
	})
	items := make([]*feeds.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, &feeds.Item{
			Id:          e.ID,
			Title:       e.Title,
			Link:        &feeds.Link{Href: f.link + "#" + e.ID},
			Description: e.Description,
			Created:     e.Created,
		})
	}
	feed := feeds.Feed{
		Title:       company + " KYC alerts",
		Link:        &feeds.Link{Href: f.link},
		Description: "High-risk identity verification outcomes",
		Created:     time.Now(),
		Items:       items,
	}
	return feed.ToRss()
}
