package models

// Pick - идея дня от AI-аналитика.
type Pick struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// DailyPicks - ответ на запрос идей дня.
type DailyPicks struct {
	Picks []Pick `json:"picks"`
}

// Review - развёрнутый обзор компании.
type Review struct {
	Symbol string `json:"symbol"`
	Review string `json:"review"`
}

// Sentiment - оценка настроения рынка по тикеру, Score в диапазоне [-1, 1].
type Sentiment struct {
	Symbol    string  `json:"symbol"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// Comparison - сравнение нескольких тикеров.
type Comparison struct {
	Symbols    []string `json:"symbols"`
	Comparison string   `json:"comparison"`
}

// Answer - ответ на свободный вопрос.
type Answer struct {
	Answer string `json:"answer"`
}

// Rating - рекомендация AI-аналитика по тикеру: Strong Buy, Buy, Hold,
// Sell или Strong Sell.
type Rating struct {
	Symbol string `json:"symbol"`
	Rating string `json:"rating"`
	Reason string `json:"reason"`
}

// NewsSummary - краткий пересказ свежих заголовков по тикеру.
type NewsSummary struct {
	Symbol    string   `json:"symbol"`
	Summary   string   `json:"summary"`
	Headlines []string `json:"headlines"`
}
