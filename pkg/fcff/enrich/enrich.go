// Package enrich adds live market quotes to catalog rows so fair value can
// be compared with the current price.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	yfgo "github.com/komsit37/yf-go"
	"golang.org/x/sync/errgroup"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// QuoteService fetches a live quote for a ticker.
type QuoteService interface {
	Get(ctx context.Context, sym string) (types.Quote, error)
}

// YFService implements QuoteService using yf-go.
type YFService struct {
	client  *yfgo.Client
	timeout time.Duration
}

func NewYFService(timeout time.Duration) *YFService {
	return &YFService{client: yfgo.NewClient(), timeout: timeout}
}

func (s *YFService) Get(ctx context.Context, sym string) (types.Quote, error) {
	if sym == "" {
		return types.Quote{}, nil
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.client.QuoteSummaryTyped(cctx, sym, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil {
		return types.Quote{}, err
	}
	if res.Price == nil {
		return types.Quote{}, fmt.Errorf("no price for %s", sym)
	}

	var q types.Quote
	p := res.Price.RegularMarketPrice
	if p.Raw != nil {
		raw := *p.Raw
		q.PriceRaw = &raw
	}
	if p.Fmt != "" {
		q.Price = p.Fmt
	} else if p.Raw != nil {
		q.Price = fmt.Sprintf("%.2f", *p.Raw)
	}
	cp := res.Price.RegularMarketChangePercent
	if cp.Fmt != "" {
		q.ChgFmt = cp.Fmt
	}
	if cp.Raw != nil {
		q.ChgRaw = *cp.Raw
		if q.ChgFmt == "" {
			q.ChgFmt = fmt.Sprintf("%.2f%%", q.ChgRaw)
		}
	}
	if res.Price.ShortName != "" {
		q.Name = res.Price.ShortName
	} else if res.Price.LongName != "" {
		q.Name = res.Price.LongName
	}
	return q, nil
}

// CacheService decorates a QuoteService with a TTL+LRU cache.
type CacheService struct {
	next QuoteService
	ttl  time.Duration
	size int
	now  func() time.Time

	mu    sync.Mutex
	items map[string]cacheEntry
	order []string // oldest first
}

type cacheEntry struct {
	at time.Time
	q  types.Quote
}

func NewCacheService(next QuoteService, ttl time.Duration, size int) *CacheService {
	if size <= 0 {
		size = 1
	}
	return &CacheService{next: next, ttl: ttl, size: size, now: time.Now, items: make(map[string]cacheEntry)}
}

func (c *CacheService) Get(ctx context.Context, sym string) (types.Quote, error) {
	if sym == "" {
		return types.Quote{}, nil
	}
	now := c.now()
	c.mu.Lock()
	if ent, ok := c.items[sym]; ok {
		if now.Sub(ent.at) <= c.ttl {
			c.touchLocked(sym)
			q := ent.q
			c.mu.Unlock()
			return q, nil
		}
		delete(c.items, sym)
		c.removeFromOrderLocked(sym)
	}
	c.mu.Unlock()

	q, err := c.next.Get(ctx, sym)
	if err != nil {
		return q, err
	}
	c.mu.Lock()
	if _, ok := c.items[sym]; ok {
		c.removeFromOrderLocked(sym)
	}
	c.items[sym] = cacheEntry{at: now, q: q}
	c.order = append(c.order, sym)
	for len(c.items) > c.size && len(c.order) > 0 {
		old := c.order[0]
		c.order = c.order[1:]
		delete(c.items, old)
	}
	c.mu.Unlock()
	return q, nil
}

func (c *CacheService) touchLocked(k string) {
	c.removeFromOrderLocked(k)
	c.order = append(c.order, k)
}

func (c *CacheService) removeFromOrderLocked(k string) {
	for i, v := range c.order {
		if v == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Prefetch fetches quotes for syms with at most limit requests in flight.
// Failed lookups are logged and left out of the result.
func Prefetch(ctx context.Context, svc QuoteService, syms []string, limit int, log *slog.Logger) map[string]types.Quote {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if limit <= 0 {
		limit = 1
	}
	var mu sync.Mutex
	out := make(map[string]types.Quote, len(syms))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, sym := range syms {
		g.Go(func() error {
			q, err := svc.Get(gctx, sym)
			if err != nil {
				log.Warn("quote lookup failed", "ticker", sym, "error", err)
				return nil
			}
			mu.Lock()
			out[sym] = q
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
