package market_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/profitpath/internal/cache"
	"github.com/magabrotheeeer/profitpath/internal/config"
	"github.com/magabrotheeeer/profitpath/internal/marketdata"
	"github.com/magabrotheeeer/profitpath/internal/models"
	"github.com/magabrotheeeer/profitpath/internal/services/market"
)

// Мок для Provider
type ProviderMock struct {
	mock.Mock
}

func (m *ProviderMock) PrevClose(ctx context.Context, symbol string) (*marketdata.AggsResponse, error) {
	args := m.Called(ctx, symbol)
	resp, _ := args.Get(0).(*marketdata.AggsResponse)
	return resp, args.Error(1)
}

func (m *ProviderMock) TickerDetails(ctx context.Context, symbol string) (*marketdata.TickerDetails, error) {
	args := m.Called(ctx, symbol)
	resp, _ := args.Get(0).(*marketdata.TickerDetails)
	return resp, args.Error(1)
}

func (m *ProviderMock) Aggregates(ctx context.Context, symbol, from, to string) (*marketdata.AggsResponse, error) {
	args := m.Called(ctx, symbol, from, to)
	resp, _ := args.Get(0).(*marketdata.AggsResponse)
	return resp, args.Error(1)
}

func (m *ProviderMock) News(ctx context.Context, tickers []string, query string, limit int) ([]marketdata.Article, error) {
	args := m.Called(ctx, tickers, query, limit)
	resp, _ := args.Get(0).([]marketdata.Article)
	return resp, args.Error(1)
}

func (m *ProviderMock) Snapshot(ctx context.Context, direction string) ([]marketdata.SnapshotTicker, error) {
	args := m.Called(ctx, direction)
	resp, _ := args.Get(0).([]marketdata.SnapshotTicker)
	return resp, args.Error(1)
}

func (m *ProviderMock) GroupedDaily(ctx context.Context, date string) ([]marketdata.Agg, error) {
	args := m.Called(ctx, date)
	resp, _ := args.Get(0).([]marketdata.Agg)
	return resp, args.Error(1)
}

func (m *ProviderMock) LastTrade(ctx context.Context, symbol string) (*marketdata.Trade, error) {
	args := m.Called(ctx, symbol)
	resp, _ := args.Get(0).(*marketdata.Trade)
	return resp, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func f(v float64) *float64 { return &v }

func prev(sym string, c float64) *marketdata.AggsResponse {
	return &marketdata.AggsResponse{
		Ticker:  sym,
		Results: []marketdata.Agg{{Ticker: sym, Open: f(c - 1), High: f(c + 1), Low: f(c - 2), Close: f(c), Volume: f(1000)}},
	}
}

func upstream(status int) error {
	return &marketdata.UpstreamError{Status: status, Body: "boom"}
}

func TestService_Quote(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("PrevClose", mock.Anything, "AAPL").Return(prev("AAPL", 190), nil).Once()
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	q, err := svc.Quote(context.Background(), " aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.InDelta(t, 190, *q.Close, 1e-9)
	provider.AssertExpectations(t)
}

func TestService_Quote_InvalidSymbol(t *testing.T) {
	provider := new(ProviderMock)
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	_, err := svc.Quote(context.Background(), "bad symbol!")
	assert.ErrorIs(t, err, models.ErrInvalidSymbol)
	provider.AssertNotCalled(t, "PrevClose", mock.Anything, mock.Anything)
}

func TestService_Disabled(t *testing.T) {
	svc := market.NewService(nil, cache.Nop{}, time.Minute, newNoopLogger())

	_, err := svc.Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, models.ErrServiceDisabled)
	_, err = svc.Movers(context.Background())
	assert.ErrorIs(t, err, models.ErrServiceDisabled)
	_, err = svc.Summary(context.Background(), []string{"AAPL"})
	assert.ErrorIs(t, err, models.ErrServiceDisabled)
}

func TestService_Ticker(t *testing.T) {
	tests := []struct {
		name       string
		detailsErr error
		wantErr    error
	}{
		{name: "merged"},
		{name: "details failed", detailsErr: upstream(404), wantErr: models.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(ProviderMock)
			provider.On("PrevClose", mock.Anything, "MSFT").Return(prev("MSFT", 410), nil)
			if tt.detailsErr != nil {
				provider.On("TickerDetails", mock.Anything, "MSFT").Return(nil, tt.detailsErr)
			} else {
				provider.On("TickerDetails", mock.Anything, "MSFT").Return(&marketdata.TickerDetails{Name: "Microsoft Corp"}, nil)
			}
			svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

			info, err := svc.Ticker(context.Background(), "msft")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Microsoft Corp", info.Name)
			assert.InDelta(t, 410, *info.Price, 1e-9)
			assert.Equal(t, info.Price, info.Close)
		})
	}
}

func TestService_Historical(t *testing.T) {
	provider := new(ProviderMock)
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	provider.On("Aggregates", mock.Anything, "TSLA", "2024-01-01", "2024-03-01").Return(&marketdata.AggsResponse{
		Results: []marketdata.Agg{{Open: f(1), High: f(2), Low: f(0.5), Close: f(1.5), Volume: f(10), Timestamp: 1704067200000}},
	}, nil).Once()

	h, err := svc.Historical(context.Background(), "TSLA", "2024-01-01", "2024-03-01")
	require.NoError(t, err)
	require.Len(t, h.Bars, 1)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), h.Bars[0].Time)

	_, err = svc.Historical(context.Background(), "TSLA", "01/01/2024", "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Historical(context.Background(), "TSLA", "2024-05-01", "2024-01-01")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	provider.AssertExpectations(t)
}

func TestService_Historical_DefaultPeriod(t *testing.T) {
	provider := new(ProviderMock)
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	var from, to string
	provider.On("Aggregates", mock.Anything, "TSLA", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			from, to = args.String(2), args.String(3)
		}).
		Return(&marketdata.AggsResponse{}, nil).Once()

	_, err := svc.Historical(context.Background(), "TSLA", "", "")
	require.NoError(t, err)

	fromDate, err := time.Parse("2006-01-02", from)
	require.NoError(t, err)
	toDate, err := time.Parse("2006-01-02", to)
	require.NoError(t, err)
	assert.Equal(t, toDate.AddDate(-1, 0, 0), fromDate)
}

func TestService_News(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("News", mock.Anything, []string{"AAPL"}, "", 20).Return([]marketdata.Article{{
		Title:        "Apple up",
		ArticleURL:   "https://n/1",
		Publisher:    marketdata.Publisher{Name: "Wire"},
		PublishedUTC: "2024-05-01T10:00:00Z",
		ImageURL:     "https://n/1.png",
		Description:  "text",
	}}, nil)
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	items, err := svc.News(context.Background(), []string{"aapl"}, "ignored with tickers")
	require.NoError(t, err)
	assert.Equal(t, []models.NewsItem{{
		Title:       "Apple up",
		URL:         "https://n/1",
		Source:      "Wire",
		PublishedAt: "2024-05-01T10:00:00Z",
		Image:       "https://n/1.png",
		Summary:     "text",
	}}, items)
}

func TestService_News_QueryWithoutTickers(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("News", mock.Anything, []string{}, "rate cut", 20).Return([]marketdata.Article{}, nil).Once()
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	items, err := svc.News(context.Background(), nil, "rate cut")
	require.NoError(t, err)
	assert.Empty(t, items)
	provider.AssertExpectations(t)
}

func TestService_Movers_Snapshot(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("Snapshot", mock.Anything, marketdata.Gainers).Return([]marketdata.SnapshotTicker{
		{Ticker: "UP", TodaysChangePerc: f(10), Day: marketdata.DayBar{Close: f(5)}},
	}, nil)
	provider.On("Snapshot", mock.Anything, marketdata.Losers).Return([]marketdata.SnapshotTicker{
		{Ticker: "DOWN", TodaysChangePerc: f(-8), LastTrade: marketdata.TradePrice{Price: f(2)}},
	}, nil)
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	m, err := svc.Movers(context.Background())
	require.NoError(t, err)
	require.Len(t, m.Gainers, 1)
	require.Len(t, m.Losers, 1)
	assert.InDelta(t, 5, *m.Gainers[0].Price, 1e-9)
	assert.InDelta(t, 2, *m.Losers[0].Price, 1e-9)
	provider.AssertNotCalled(t, "GroupedDaily", mock.Anything, mock.Anything)
}

func TestService_Movers_Fallback(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("Snapshot", mock.Anything, mock.Anything).Return(nil, upstream(403))
	provider.On("GroupedDaily", mock.Anything, mock.Anything).Return([]marketdata.Agg{
		{Ticker: "A", Open: f(10), Close: f(12)},
		{Ticker: "B", Open: f(10), Close: f(8)},
		{Ticker: "C", Open: f(10), Close: f(15)},
		{Ticker: "FLAT", Open: f(10), Close: f(10)},
		{Ticker: "NOPE", Open: f(0), Close: f(10)},
	}, nil).Once()
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	m, err := svc.Movers(context.Background())
	require.NoError(t, err)

	require.Len(t, m.Gainers, 2)
	assert.Equal(t, "C", m.Gainers[0].Symbol)
	assert.Equal(t, "A", m.Gainers[1].Symbol)
	require.Len(t, m.Losers, 1)
	assert.Equal(t, "B", m.Losers[0].Symbol)
	assert.InDelta(t, -20, *m.Losers[0].ChangePct, 1e-9)

	date := provider.Calls[len(provider.Calls)-1].Arguments.String(1)
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	assert.NotEqual(t, time.Saturday, d.Weekday())
	assert.NotEqual(t, time.Sunday, d.Weekday())
}

func TestService_Summary(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("PrevClose", mock.Anything, "AAPL").Return(prev("AAPL", 200), nil)
	provider.On("LastTrade", mock.Anything, "AAPL").Return(&marketdata.Trade{Price: f(202.123)}, nil)
	provider.On("PrevClose", mock.Anything, "TSLA").Return(prev("TSLA", 100), nil)
	provider.On("LastTrade", mock.Anything, "TSLA").Return(nil, upstream(403))
	provider.On("PrevClose", mock.Anything, "GONE").Return(nil, upstream(404))
	provider.On("LastTrade", mock.Anything, "GONE").Return(nil, upstream(404))
	svc := market.NewService(provider, cache.Nop{}, time.Minute, newNoopLogger())

	out, err := svc.Summary(context.Background(), []string{"AAPL", "GONE", "TSLA"})
	require.NoError(t, err)
	assert.Equal(t, []models.StockSummary{
		{Symbol: "AAPL", Name: "AAPL", Price: 202.12, ChangePercent: 1.06},
		{Symbol: "TSLA", Name: "TSLA", Price: 100, ChangePercent: 0},
	}, out)
}

func TestService_QuoteCachedInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rc, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	provider := new(ProviderMock)
	provider.On("PrevClose", mock.Anything, "NVDA").Return(prev("NVDA", 900), nil).Once()
	svc := market.NewService(provider, rc, time.Minute, newNoopLogger())

	first, err := svc.Quote(context.Background(), "NVDA")
	require.NoError(t, err)
	second, err := svc.Quote(context.Background(), "nvda")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("market:quote:NVDA"))
	provider.AssertNumberOfCalls(t, "PrevClose", 1)
}
