package marketdata

// Agg - дневной агрегат в формате провайдера.
type Agg struct {
	Ticker    string   `json:"T,omitempty"`
	Open      *float64 `json:"o"`
	High      *float64 `json:"h"`
	Low       *float64 `json:"l"`
	Close     *float64 `json:"c"`
	Volume    *float64 `json:"v"`
	Timestamp int64    `json:"t"`
}

// AggsResponse - ответ /v2/aggs/*.
type AggsResponse struct {
	Ticker       string `json:"ticker"`
	Status       string `json:"status"`
	ResultsCount int    `json:"resultsCount"`
	Results      []Agg  `json:"results"`
}

// TickerDetails - справочные данные по тикеру.
type TickerDetails struct {
	Ticker          string  `json:"ticker"`
	Name            string  `json:"name"`
	Market          string  `json:"market"`
	PrimaryExchange string  `json:"primary_exchange"`
	Currency        string  `json:"currency_name"`
	MarketCap       float64 `json:"market_cap"`
	Description     string  `json:"description"`
}

type tickerDetailsResponse struct {
	Status  string        `json:"status"`
	Results TickerDetails `json:"results"`
}

// Publisher - издатель новости.
type Publisher struct {
	Name string `json:"name"`
}

// Article - новость в формате провайдера.
type Article struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ArticleURL   string    `json:"article_url"`
	Publisher    Publisher `json:"publisher"`
	PublishedUTC string    `json:"published_utc"`
	ImageURL     string    `json:"image_url"`
	Description  string    `json:"description"`
	Tickers      []string  `json:"tickers"`
}

type newsResponse struct {
	Status  string    `json:"status"`
	Results []Article `json:"results"`
}

// DayBar - часть снапшота с ценами за день.
type DayBar struct {
	Close  *float64 `json:"c"`
	Volume *float64 `json:"v"`
}

// TradePrice - последняя сделка внутри снапшота.
type TradePrice struct {
	Price *float64 `json:"p"`
}

// SnapshotTicker - снапшот одного тикера.
type SnapshotTicker struct {
	Ticker           string     `json:"ticker"`
	TodaysChange     *float64   `json:"todaysChange"`
	TodaysChangePerc *float64   `json:"todaysChangePerc"`
	Day              DayBar     `json:"day"`
	PrevDay          DayBar     `json:"prevDay"`
	LastTrade        TradePrice `json:"lastTrade"`
}

type snapshotResponse struct {
	Status  string           `json:"status"`
	Tickers []SnapshotTicker `json:"tickers"`
}

// Trade - последняя сделка по тикеру.
type Trade struct {
	Ticker string   `json:"T"`
	Price  *float64 `json:"p"`
	Size   *float64 `json:"s"`
	Time   int64    `json:"t"`
}

type lastTradeResponse struct {
	Status  string `json:"status"`
	Results Trade  `json:"results"`
}
