// Package marketdata - клиент REST API провайдера рыночных данных
// (Polygon-совместимый). Ключ передаётся параметром apiKey, любой ответ
// кроме 2xx превращается в UpstreamError.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/profitpath/internal/models"
)

// DefaultBaseURL - адрес API провайдера по умолчанию.
const DefaultBaseURL = "https://api.polygon.io"

// Направления снапшота лидеров дня.
const (
	Gainers = "gainers"
	Losers  = "losers"
)

const maxErrorBody = 512

// UpstreamError - провайдер ответил статусом вне 2xx.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("market data: unexpected status %d: %s", e.Status, e.Body)
}

// Unwrap позволяет сопоставлять ошибку с models.ErrUpstream.
func (e *UpstreamError) Unwrap() error {
	return models.ErrUpstream
}

// Observer получает длительность каждого запроса к провайдеру.
type Observer interface {
	ObserveBackendCall(service, method, status string, d time.Duration)
}

// Client - клиент API рыночных данных.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
	observer   Observer
	now        func() time.Time
}

// NewClient создаёт клиент. Пустой baseURL означает DefaultBaseURL,
// нулевой timeout - 10 секунд. observer может быть nil.
func NewClient(apiKey, baseURL string, timeout time.Duration, observer Observer) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		apiURL:     strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		observer:   observer,
		now:        time.Now,
	}
}

// PrevClose возвращает агрегат предыдущей торговой сессии.
func (c *Client) PrevClose(ctx context.Context, symbol string) (*AggsResponse, error) {
	var out AggsResponse
	path := "/v2/aggs/ticker/" + url.PathEscape(symbol) + "/prev"
	if err := c.get(ctx, "PrevClose", path, url.Values{"adjusted": {"true"}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TickerDetails возвращает справочные данные по тикеру.
func (c *Client) TickerDetails(ctx context.Context, symbol string) (*TickerDetails, error) {
	var out tickerDetailsResponse
	path := "/v3/reference/tickers/" + url.PathEscape(symbol)
	if err := c.get(ctx, "TickerDetails", path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Results, nil
}

// Aggregates возвращает дневные свечи за период [from, to] (YYYY-MM-DD).
func (c *Client) Aggregates(ctx context.Context, symbol, from, to string) (*AggsResponse, error) {
	var out AggsResponse
	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s",
		url.PathEscape(symbol), url.PathEscape(from), url.PathEscape(to))
	q := url.Values{"adjusted": {"true"}, "sort": {"asc"}}
	if err := c.get(ctx, "Aggregates", path, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// News возвращает свежие новости по тикерам или поисковому запросу.
// limit <= 0 означает 20.
func (c *Client) News(ctx context.Context, tickers []string, query string, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = 20
	}
	q := url.Values{
		"order": {"desc"},
		"sort":  {"published_utc"},
		"limit": {strconv.Itoa(limit)},
	}
	if len(tickers) > 0 {
		q.Set("ticker", strings.Join(tickers, ","))
	}
	if query != "" {
		q.Set("query", query)
	}
	var out newsResponse
	if err := c.get(ctx, "News", "/v2/reference/news", q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Snapshot возвращает лидеров роста или падения (direction: Gainers, Losers).
func (c *Client) Snapshot(ctx context.Context, direction string) ([]SnapshotTicker, error) {
	if direction != Gainers && direction != Losers {
		return nil, fmt.Errorf("marketdata.Snapshot: unknown direction %q", direction)
	}
	var out snapshotResponse
	path := "/v2/snapshot/locale/us/markets/stocks/" + direction
	if err := c.get(ctx, "Snapshot", path, url.Values{"limit": {"50"}}, &out); err != nil {
		return nil, err
	}
	return out.Tickers, nil
}

// GroupedDaily возвращает дневные агрегаты всего рынка за дату (YYYY-MM-DD).
func (c *Client) GroupedDaily(ctx context.Context, date string) ([]Agg, error) {
	var out AggsResponse
	path := "/v2/aggs/grouped/locale/us/market/stocks/" + url.PathEscape(date)
	q := url.Values{"adjusted": {"true"}, "include_otc": {"false"}}
	if err := c.get(ctx, "GroupedDaily", path, q, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// LastTrade возвращает последнюю сделку по тикеру.
func (c *Client) LastTrade(ctx context.Context, symbol string) (*Trade, error) {
	var out lastTradeResponse
	path := "/v2/last/trade/" + url.PathEscape(symbol)
	if err := c.get(ctx, "LastTrade", path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Results, nil
}

func (c *Client) get(ctx context.Context, method, path string, q url.Values, out any) (err error) {
	op := "marketdata." + method
	start := c.now()
	status := "error"
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBackendCall("marketdata", method, status, c.now().Sub(start))
		}
	}()

	if q == nil {
		q = url.Values{}
	}
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, models.ErrUpstream, redactKey(err))
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: %w", op, &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: decode: %w", op, models.ErrUpstream, err)
	}
	return nil
}

// redactKey убирает URL запроса (с ключом API) из сетевой ошибки.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
