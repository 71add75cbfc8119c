package models

import "time"

// Quote - агрегат предыдущей торговой сессии по тикеру.
type Quote struct {
	Symbol string   `json:"symbol"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

// TickerInfo - сводка по тикеру: название компании и цены предыдущей сессии.
type TickerInfo struct {
	Symbol string   `json:"symbol"`
	Name   string   `json:"name"`
	Price  *float64 `json:"price"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

// Bar - дневная свеча для графика.
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// History - история дневных свечей за период.
type History struct {
	Symbol string `json:"symbol"`
	From   string `json:"from"`
	To     string `json:"to"`
	Bars   []Bar  `json:"bars"`
}

// NewsItem - новость в формате, который отдаётся клиенту.
type NewsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Image       string `json:"image,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// Mover - лидер роста или падения за день.
type Mover struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name,omitempty"`
	Price     *float64 `json:"price"`
	Change    *float64 `json:"change"`
	ChangePct *float64 `json:"changePct"`
	Volume    *float64 `json:"volume"`
}

// Movers - лидеры роста и падения.
type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// StockSummary - краткая сводка для списка наблюдения.
type StockSummary struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
}
