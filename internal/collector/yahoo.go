package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/mewroo/market-history-service/internal/infrastructure/questdb/price"
)

// YahooFetcher implements Fetcher against the Yahoo Finance chart API.
type YahooFetcher struct {
	baseURL string
	client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(baseURL string, timeout time.Duration) *YahooFetcher {
	return &YahooFetcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the feed source label.
func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchBars fetches daily bars for one ticker in [start, end).
func (f *YahooFetcher) FetchBars(ctx context.Context, ticker, interval string, start, end time.Time) ([]*price.PriceTick, error) {
	u := fmt.Sprintf("%s/%s?interval=%s&period1=%d&period2=%d&events=div%%7Csplit",
		f.baseURL, url.PathEscape(ticker), interval, start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return []*price.PriceTick{}, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return []*price.PriceTick{}, nil
	}
	quote := result.Indicators.Quote[0]

	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]*price.PriceTick, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// null bars mark holidays and halts, skip them. The quote arrays
		// can also come back shorter than the timestamp array, so every
		// access is bounds-checked instead of trusting the feed.
		closePrice := at(quote.Close, i)
		if closePrice == nil {
			continue
		}
		bar := &price.PriceTick{
			Timestamp: time.Unix(ts, 0).UTC(),
			Ticker:    ticker,
			Interval:  interval,
			Open:      deref(at(quote.Open, i)),
			High:      deref(at(quote.High, i)),
			Low:       deref(at(quote.Low, i)),
			Close:     deref(closePrice),
			AdjClose:  deref(closePrice),
			Source:    f.Name(),
		}
		if v := at(quote.Volume, i); v != nil {
			bar.Volume = *v
		}
		if v := at(adjClose, i); v != nil {
			bar.AdjClose = *v
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })
	return bars, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func at[T any](vals []*T, i int) *T {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}
