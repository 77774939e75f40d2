package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"stock_analyzer/internal/feature/prices/domain"
	"stock_analyzer/internal/feature/prices/domain/entity"
	"stock_analyzer/internal/feature/prices/usecase"
	"stock_analyzer/internal/platform/externalapi/yahoo/dto"
)

// YahooMarket is a MarketRepository implementation backed by the Yahoo
// Finance v8 chart API.
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// Compile-time check that YahooMarket implements MarketRepository.
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket creates a YahooMarket with the given configuration and HTTP client.
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// GetDailyHistory fetches daily OHLCV bars for symbol between start and end
// (inclusive) and returns them in ascending date order. Sessions for which
// Yahoo reports null quotes are skipped.
func (y *YahooMarket) GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	// period2 is exclusive; push it past the end date so the last session is included.
	q.Set("period2", strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "history")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// Yahoo rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stock-analyzer/1.0)")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoData, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSymbol, symbol)
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: yahoo http %d", domain.ErrNoData, res.StatusCode)
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrNoData, err)
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo: %s (%s)", domain.ErrNoData, body.Chart.Error.Description, body.Chart.Error.Code)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoData, symbol)
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]entity.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			quote.Close[i] == nil || quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil {
			continue // halted or partial session
		}
		var vol int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			vol = *quote.Volume[i]
		}
		day := time.Unix(ts, 0).UTC()
		bars = append(bars, entity.Bar{
			Symbol: symbol,
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: vol,
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoData, symbol)
	}

	// Yahoo usually returns ascending timestamps; sort anyway so callers can rely on it.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}
