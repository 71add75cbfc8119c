// Package insights формирует AI-комментарии по рынку: ответы на вопросы,
// идеи дня, обзоры, рейтинги, пересказ новостей, оценку настроения и
// сравнение тикеров.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/magabrotheeeer/profitpath/internal/lib/sl"
	"github.com/magabrotheeeer/profitpath/internal/lib/symbol"
	"github.com/magabrotheeeer/profitpath/internal/models"
)

const (
	picksCount     = 3
	minCompare     = 2
	maxCompare     = 5
	maxQuestionLen = 2000
	maxHeadlines   = 5
)

const noRecentNews = "No recent news."

// ratings - допустимые рейтинги от сильной покупки к сильной продаже.
var ratings = []string{"Strong Buy", "Buy", "Hold", "Sell", "Strong Sell"}

const analystRole = "You are an expert financial analyst. Be concise and factual. " +
	"Never present your answer as personal investment advice."

// Generator - языковая модель.
type Generator interface {
	Generate(ctx context.Context, system, prompt string, asJSON bool) (string, error)
}

// NewsSource - источник новостей для пересказа заголовков.
type NewsSource interface {
	News(ctx context.Context, tickers []string, query string) ([]models.NewsItem, error)
}

// Service - сервис AI-комментариев.
type Service struct {
	gen  Generator
	news NewsSource
	log  *slog.Logger
}

// NewService создаёт Service. gen == nil означает, что ключ модели не
// настроен: все методы возвращают models.ErrServiceDisabled. Без news
// недоступен только NewsSummary.
func NewService(gen Generator, news NewsSource, log *slog.Logger) *Service {
	return &Service{
		gen:  gen,
		news: news,
		log:  log,
	}
}

// Ask отвечает на свободный вопрос пользователя.
func (s *Service) Ask(ctx context.Context, question string) (*models.Answer, error) {
	const op = "services.insights.Ask"
	if s.gen == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrServiceDisabled)
	}
	question = strings.TrimSpace(question)
	if question == "" || len(question) > maxQuestionLen {
		return nil, fmt.Errorf("%s: %w: question must be 1..%d characters", op, models.ErrInvalidInput, maxQuestionLen)
	}

	text, err := s.gen.Generate(ctx, analystRole, question, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Answer{Answer: text}, nil
}

// DailyPicks возвращает три идеи дня.
func (s *Service) DailyPicks(ctx context.Context) (*models.DailyPicks, error) {
	const op = "services.insights.DailyPicks"
	if s.gen == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrServiceDisabled)
	}

	prompt := fmt.Sprintf(`Provide %d US stock picks for today. `+
		`Return a JSON object {"picks":[{"symbol":"...","reason":"..."}]} with a short reason for each pick.`, picksCount)
	var out models.DailyPicks
	if err := s.generateJSON(ctx, op, prompt, &out); err != nil {
		return nil, err
	}

	picks := make([]models.Pick, 0, picksCount)
	for _, p := range out.Picks {
		sym, err := symbol.Normalize(p.Symbol)
		if err != nil {
			s.log.Info("model returned invalid symbol", slog.String("op", op), slog.String("symbol", p.Symbol))
			continue
		}
		picks = append(picks, models.Pick{Symbol: sym, Reason: strings.TrimSpace(p.Reason)})
		if len(picks) == picksCount {
			break
		}
	}
	if len(picks) == 0 {
		return nil, fmt.Errorf("%s: %w: no valid picks", op, models.ErrUpstream)
	}
	return &models.DailyPicks{Picks: picks}, nil
}

// Review возвращает обзор компании по тикеру.
func (s *Service) Review(ctx context.Context, raw string) (*models.Review, error) {
	const op = "services.insights.Review"
	sym, err := s.prepare(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	prompt := fmt.Sprintf(`Write a short review of the company with stock symbol %s: business, `+
		`recent performance, risks. Return a JSON object {"review":"..."}.`, sym)
	var out models.Review
	if err := s.generateJSON(ctx, op, prompt, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Review) == "" {
		return nil, fmt.Errorf("%s: %w: empty review", op, models.ErrUpstream)
	}
	out.Symbol = sym
	return &out, nil
}

// Rating оценивает тикер по шкале от Strong Buy до Strong Sell.
// Ответ модели вне шкалы считается ошибкой провайдера.
func (s *Service) Rating(ctx context.Context, raw string) (*models.Rating, error) {
	const op = "services.insights.Rating"
	sym, err := s.prepare(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	prompt := fmt.Sprintf(`Based on the recent performance and sentiment of the stock %s, rate it as exactly one of: %s. `+
		`Return a JSON object {"rating":"...","reason":"<one sentence>"}.`, sym, strings.Join(ratings, ", "))
	var out models.Rating
	if err := s.generateJSON(ctx, op, prompt, &out); err != nil {
		return nil, err
	}
	rating, ok := normalizeRating(out.Rating)
	if !ok {
		s.log.Warn("model returned unknown rating", slog.String("op", op), slog.String("rating", out.Rating))
		return nil, fmt.Errorf("%s: %w: unknown rating %q", op, models.ErrUpstream, out.Rating)
	}
	return &models.Rating{
		Symbol: sym,
		Rating: rating,
		Reason: strings.TrimSpace(out.Reason),
	}, nil
}

// NewsSummary пересказывает последние заголовки новостей по тикеру.
// Если новостей нет, модель не вызывается.
func (s *Service) NewsSummary(ctx context.Context, raw string) (*models.NewsSummary, error) {
	const op = "services.insights.NewsSummary"
	sym, err := s.prepare(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.news == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrServiceDisabled)
	}

	items, err := s.news.News(ctx, []string{sym}, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	headlines := make([]string, 0, maxHeadlines)
	for _, it := range items {
		if title := strings.TrimSpace(it.Title); title != "" {
			headlines = append(headlines, title)
		}
		if len(headlines) == maxHeadlines {
			break
		}
	}
	if len(headlines) == 0 {
		return &models.NewsSummary{Symbol: sym, Summary: noRecentNews, Headlines: headlines}, nil
	}

	prompt := fmt.Sprintf("Summarize these news headlines for %s in two or three sentences: %s",
		sym, strings.Join(headlines, "; "))
	text, err := s.gen.Generate(ctx, analystRole, prompt, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%s: %w: empty summary", op, models.ErrUpstream)
	}
	return &models.NewsSummary{Symbol: sym, Summary: text, Headlines: headlines}, nil
}

// Sentiment оценивает настроение рынка по тикеру. Score приводится к [-1, 1].
func (s *Service) Sentiment(ctx context.Context, raw string) (*models.Sentiment, error) {
	const op = "services.insights.Sentiment"
	sym, err := s.prepare(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	prompt := fmt.Sprintf(`Analyze the market sentiment for the stock symbol %s. Return a JSON object `+
		`{"sentiment":"Positive|Neutral|Negative","score":<number between -1 and 1>}.`, sym)
	var out models.Sentiment
	if err := s.generateJSON(ctx, op, prompt, &out); err != nil {
		return nil, err
	}
	out.Symbol = sym
	out.Score = clamp(out.Score)
	if out.Sentiment == "" {
		out.Sentiment = labelFor(out.Score)
	}
	return &out, nil
}

// Compare сравнивает от двух до пяти тикеров.
func (s *Service) Compare(ctx context.Context, raw []string) (*models.Comparison, error) {
	const op = "services.insights.Compare"
	if s.gen == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrServiceDisabled)
	}
	syms, err := symbol.NormalizeList(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(syms) < minCompare || len(syms) > maxCompare {
		return nil, fmt.Errorf("%s: %w: compare needs %d..%d distinct symbols", op, models.ErrInvalidInput, minCompare, maxCompare)
	}

	prompt := fmt.Sprintf(`Compare the stocks %s: valuation, growth, risks. `+
		`Return a JSON object {"comparison":"..."}.`, strings.Join(syms, ", "))
	var out models.Comparison
	if err := s.generateJSON(ctx, op, prompt, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Comparison) == "" {
		return nil, fmt.Errorf("%s: %w: empty comparison", op, models.ErrUpstream)
	}
	out.Symbols = syms
	return &out, nil
}

func (s *Service) prepare(raw string) (string, error) {
	if s.gen == nil {
		return "", models.ErrServiceDisabled
	}
	return symbol.Normalize(raw)
}

func (s *Service) generateJSON(ctx context.Context, op, prompt string, out any) error {
	text, err := s.gen.Generate(ctx, analystRole, prompt, true)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal([]byte(stripFence(text)), out); err != nil {
		s.log.Warn("model returned invalid json", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, models.ErrUpstream, err)
	}
	return nil
}

// stripFence убирает markdown-обёртку ```json ... ```, которую модель
// иногда добавляет вокруг JSON.
func stripFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimPrefix(t, "json")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

// normalizeRating приводит "STRONG_BUY", "strong-buy" или "Strong Buy."
// к виду из шкалы ratings.
func normalizeRating(raw string) (string, bool) {
	r := strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	r = strings.Join(strings.Fields(strings.Trim(strings.TrimSpace(r), ".!")), " ")
	for _, v := range ratings {
		if strings.EqualFold(r, v) {
			return v, true
		}
	}
	return "", false
}

func clamp(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(-1, math.Min(1, score))
}

func labelFor(score float64) string {
	switch {
	case score > 0.2:
		return "Positive"
	case score < -0.2:
		return "Negative"
	default:
		return "Neutral"
	}
}
