// Package market собирает рыночные данные для клиента: котировки, историю,
// новости, лидеров дня и сводку по избранному. Ответы провайдера
// кешируются на короткое время.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/lib/symbol"
	"github.com/magabrotheeeer/profitpath/internal/marketdata"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

const (
	dateLayout   = "2006-01-02"
	maxMovers    = 50
	summaryLimit = 8
	newsLimit    = 20
)

// Provider - источник рыночных данных.
type Provider interface {
	PrevClose(ctx context.Context, symbol string) (*marketdata.AggsResponse, error)
	TickerDetails(ctx context.Context, symbol string) (*marketdata.TickerDetails, error)
	Aggregates(ctx context.Context, symbol, from, to string) (*marketdata.AggsResponse, error)
	News(ctx context.Context, tickers []string, query string, limit int) ([]marketdata.Article, error)
	Snapshot(ctx context.Context, direction string) ([]marketdata.SnapshotTicker, error)
	GroupedDaily(ctx context.Context, date string) ([]marketdata.Agg, error)
	LastTrade(ctx context.Context, symbol string) (*marketdata.Trade, error)
}

// Cache хранит готовые ответы.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service - сервис рыночных данных.
type Service struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewService создаёт Service. provider == nil означает, что ключ провайдера
// не настроен: все методы возвращают models.ErrServiceDisabled.
func NewService(provider Provider, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Quote возвращает агрегат предыдущей сессии по тикеру.
func (s *Service) Quote(ctx context.Context, raw string) (*models.Quote, error) {
	const op = "services.market.Quote"
	sym, err := s.prepare(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := cached(ctx, s, "market:quote:"+sym, func() (models.Quote, error) {
		prev, err := s.provider.PrevClose(ctx, sym)
		if err != nil {
			return models.Quote{}, err
		}
		q := models.Quote{Symbol: sym}
		if len(prev.Results) > 0 {
			a := prev.Results[0]
			q.Open, q.High, q.Low, q.Close, q.Volume = a.Open, a.High, a.Low, a.Close, a.Volume
		}
		return q, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// Ticker возвращает сводку по тикеру: справочные данные и цены предыдущей
// сессии, запрошенные параллельно.
func (s *Service) Ticker(ctx context.Context, raw string) (*models.TickerInfo, error) {
	const op = "services.market.Ticker"
	sym, err := s.prepare(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := cached(ctx, s, "market:ticker:"+sym, func() (models.TickerInfo, error) {
		var (
			prev    *marketdata.AggsResponse
			details *marketdata.TickerDetails
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			prev, err = s.provider.PrevClose(gctx, sym)
			return err
		})
		g.Go(func() error {
			var err error
			details, err = s.provider.TickerDetails(gctx, sym)
			return err
		})
		if err := g.Wait(); err != nil {
			return models.TickerInfo{}, err
		}

		info := models.TickerInfo{Symbol: sym, Name: details.Name}
		if info.Name == "" {
			info.Name = "N/A"
		}
		if len(prev.Results) > 0 {
			a := prev.Results[0]
			if a.Ticker != "" {
				info.Symbol = a.Ticker
			}
			info.Price, info.Close = a.Close, a.Close
			info.Open, info.High, info.Low, info.Volume = a.Open, a.High, a.Low, a.Volume
		}
		return info, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// Historical возвращает дневные свечи за период. Пустые from/to означают
// последний год до сегодняшнего дня.
func (s *Service) Historical(ctx context.Context, raw, from, to string) (*models.History, error) {
	const op = "services.market.Historical"
	sym, err := s.prepare(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	from, to, err = s.period(from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out, err := cached(ctx, s, "market:history:"+sym+":"+from+":"+to, func() (models.History, error) {
		aggs, err := s.provider.Aggregates(ctx, sym, from, to)
		if err != nil {
			return models.History{}, err
		}
		h := models.History{Symbol: sym, From: from, To: to, Bars: make([]models.Bar, 0, len(aggs.Results))}
		for _, a := range aggs.Results {
			h.Bars = append(h.Bars, models.Bar{
				Time:   time.UnixMilli(a.Timestamp).UTC(),
				Open:   deref(a.Open),
				High:   deref(a.High),
				Low:    deref(a.Low),
				Close:  deref(a.Close),
				Volume: deref(a.Volume),
			})
		}
		return h, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// News возвращает свежие новости по тикерам или, если тикеров нет, по
// поисковому запросу.
func (s *Service) News(ctx context.Context, tickers []string, query string) ([]models.NewsItem, error) {
	const op = "services.market.News"
	if s.provider == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrServiceDisabled)
	}
	syms, err := symbol.NormalizeList(tickers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(syms) > 0 {
		query = ""
	}
	articles, err := s.provider.News(ctx, syms, query, newsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items := make([]models.NewsItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, models.NewsItem{
			Title:       a.Title,
			URL:         a.ArticleURL,
			Source:      a.Publisher.Name,
			PublishedAt: a.PublishedUTC,
			Image:       a.ImageURL,
			Summary:     a.Description,
		})
	}
	return items, nil
}

// Movers возвращает лидеров роста и падения. Если снапшот недоступен,
// лидеры считаются по дневным агрегатам последнего рабочего дня.
func (s *Service) Movers(ctx context.Context) (*models.Movers, error) {
	const op = "services.market.Movers"
	if s.provider == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrServiceDisabled)
	}

	out, err := cached(ctx, s, "market:movers", func() (models.Movers, error) {
		m, err := s.snapshotMovers(ctx)
		if err == nil && (len(m.Gainers) > 0 || len(m.Losers) > 0) {
			return m, nil
		}
		if err != nil {
			s.log.Warn("snapshot unavailable, falling back to grouped daily", slog.String("op", op), sl.Err(err))
		}
		return s.groupedMovers(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// Summary возвращает цену и изменение за день по каждому тикеру.
// Тикеры, по которым провайдер не ответил, пропускаются.
func (s *Service) Summary(ctx context.Context, symbols []string) ([]models.StockSummary, error) {
	const op = "services.market.Summary"
	if s.provider == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrServiceDisabled)
	}
	syms, err := symbol.NormalizeList(symbols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	results := make([]*models.StockSummary, len(syms))
	var g errgroup.Group
	g.SetLimit(summaryLimit)
	for i, sym := range syms {
		g.Go(func() error {
			sum, err := s.summaryOne(ctx, sym)
			if err != nil {
				s.log.Info("skip symbol in summary", slog.String("op", op), slog.String("symbol", sym), sl.Err(err))
				return nil
			}
			results[i] = sum
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.StockSummary, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *Service) summaryOne(ctx context.Context, sym string) (*models.StockSummary, error) {
	var (
		prev  *marketdata.AggsResponse
		trade *marketdata.Trade
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prev, err = s.provider.PrevClose(gctx, sym)
		return err
	})
	g.Go(func() error {
		t, err := s.provider.LastTrade(gctx, sym)
		if err != nil {
			// цена последней сделки необязательна
			s.log.Debug("last trade unavailable", slog.String("symbol", sym), sl.Err(err))
			return nil
		}
		trade = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var prevClose float64
	if len(prev.Results) > 0 {
		prevClose = deref(prev.Results[0].Close)
	}
	price := prevClose
	if trade != nil && trade.Price != nil && *trade.Price > 0 {
		price = *trade.Price
	}
	if price == 0 {
		return nil, fmt.Errorf("no price data for %s: %w", sym, models.ErrUpstream)
	}

	var change float64
	if prevClose != 0 {
		change = (price - prevClose) / prevClose * 100
	}
	return &models.StockSummary{
		Symbol:        sym,
		Name:          sym,
		Price:         round2(price),
		ChangePercent: round2(change),
	}, nil
}

func (s *Service) snapshotMovers(ctx context.Context) (models.Movers, error) {
	var gainers, losers []marketdata.SnapshotTicker
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gainers, err = s.provider.Snapshot(gctx, marketdata.Gainers)
		return err
	})
	g.Go(func() error {
		var err error
		losers, err = s.provider.Snapshot(gctx, marketdata.Losers)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Movers{}, err
	}
	return models.Movers{
		Gainers: fromSnapshot(gainers),
		Losers:  fromSnapshot(losers),
	}, nil
}

func (s *Service) groupedMovers(ctx context.Context) (models.Movers, error) {
	date := lastWeekday(s.now()).Format(dateLayout)
	aggs, err := s.provider.GroupedDaily(ctx, date)
	if err != nil {
		return models.Movers{}, err
	}

	movers := make([]models.Mover, 0, len(aggs))
	for _, a := range aggs {
		open, closePrice := deref(a.Open), deref(a.Close)
		if a.Ticker == "" || open <= 0 || closePrice <= 0 {
			continue
		}
		change := closePrice - open
		pct := round2(change / open * 100)
		movers = append(movers, models.Mover{
			Symbol:    a.Ticker,
			Price:     ptr(closePrice),
			Change:    ptr(round2(change)),
			ChangePct: ptr(pct),
			Volume:    a.Volume,
		})
	}
	sort.SliceStable(movers, func(i, j int) bool {
		return *movers[i].ChangePct > *movers[j].ChangePct
	})

	gainers := make([]models.Mover, 0, maxMovers)
	for _, m := range movers {
		if len(gainers) == maxMovers || *m.ChangePct <= 0 {
			break
		}
		gainers = append(gainers, m)
	}
	losers := make([]models.Mover, 0, maxMovers)
	for i := len(movers) - 1; i >= 0; i-- {
		m := movers[i]
		if len(losers) == maxMovers || *m.ChangePct >= 0 {
			break
		}
		losers = append(losers, m)
	}
	return models.Movers{Gainers: gainers, Losers: losers}, nil
}

func (s *Service) prepare(raw string) (string, error) {
	if s.provider == nil {
		return "", models.ErrServiceDisabled
	}
	return symbol.Normalize(raw)
}

func (s *Service) period(from, to string) (string, string, error) {
	today := s.now().UTC()
	toDate := today
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return "", "", fmt.Errorf("%w: to must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		toDate = t
	}
	fromDate := toDate.AddDate(-1, 0, 0)
	if from != "" {
		f, err := time.Parse(dateLayout, from)
		if err != nil {
			return "", "", fmt.Errorf("%w: from must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		fromDate = f
	}
	if fromDate.After(toDate) {
		return "", "", fmt.Errorf("%w: from is after to", models.ErrInvalidInput)
	}
	return fromDate.Format(dateLayout), toDate.Format(dateLayout), nil
}

// cached читает key из кеша, при промахе вызывает fetch и сохраняет
// результат на s.ttl. Ошибки кеша не прерывают запрос.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	var out T
	found, err := s.cache.Get(ctx, key, &out)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
	}
	if found {
		return out, nil
	}

	v, err := fetch()
	if err != nil {
		var zero T
		if errors.Is(err, models.ErrUpstream) {
			return zero, err
		}
		return zero, fmt.Errorf("%w: %w", models.ErrUpstream, err)
	}
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		s.log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
	}
	return v, nil
}

func fromSnapshot(in []marketdata.SnapshotTicker) []models.Mover {
	out := make([]models.Mover, 0, min(len(in), maxMovers))
	for _, t := range in {
		if len(out) == maxMovers {
			break
		}
		price := t.LastTrade.Price
		if price == nil {
			price = t.Day.Close
		}
		out = append(out, models.Mover{
			Symbol:    t.Ticker,
			Price:     price,
			Change:    t.TodaysChange,
			ChangePct: t.TodaysChangePerc,
			Volume:    t.Day.Volume,
		})
	}
	return out
}

// lastWeekday возвращает предыдущий рабочий день относительно now.
func lastWeekday(now time.Time) time.Time {
	d := now.UTC().AddDate(0, 0, -1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func ptr(v float64) *float64 {
	return &v
}
