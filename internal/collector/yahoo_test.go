package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const chartBody = `{
	"chart": {
		"result": [{
			"timestamp": [1704153600, 1704240000, 1704326400],
			"indicators": {
				"quote": [{
					"open":   [184.2, null, 182.1],
					"high":   [185.0, null, 183.4],
					"low":    [183.0, null, 181.9],
					"close":  [184.8, null, 182.6],
					"volume": [52000000, null, 48000000]
				}],
				"adjclose": [{
					"adjclose": [184.1, null, 181.9]
				}]
			}
		}],
		"error": null
	}
}`

func TestYahooFetcher_FetchBars(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(chartBody))
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, 5*time.Second)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	bars, err := f.FetchBars(context.Background(), "AAPL", "1d", start, end)
	assert.NoError(t, err)

	assert.Equal(t, "/AAPL", gotPath)
	assert.Contains(t, gotQuery, "interval=1d")
	assert.Contains(t, gotQuery, "period1=1704067200")

	// the null bar in the middle is a holiday, dropped
	assert.Len(t, bars, 2)
	assert.Equal(t, time.Unix(1704153600, 0).UTC(), bars[0].Timestamp)
	assert.Equal(t, 184.8, bars[0].Close)
	assert.Equal(t, 184.1, bars[0].AdjClose)
	assert.Equal(t, int64(52000000), bars[0].Volume)
	assert.Equal(t, "yahoo", bars[0].Source)
	assert.True(t, bars[0].Timestamp.Before(bars[1].Timestamp))
}

func TestYahooFetcher_FetchBars_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, 5*time.Second)
	_, err := f.FetchBars(context.Background(), "GONE", "1d", time.Now().AddDate(0, 0, -7), time.Now())
	assert.ErrorContains(t, err, "delisted")
}

func TestYahooFetcher_FetchBars_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, 5*time.Second)
	_, err := f.FetchBars(context.Background(), "AAPL", "1d", time.Now().AddDate(0, 0, -7), time.Now())
	assert.ErrorContains(t, err, "status 429")
}

func TestYahooFetcher_FetchBars_RaggedArrays(t *testing.T) {
	// quote arrays shorter than the timestamp array, as the feed sometimes
	// returns them mid-session
	const raggedBody = `{
		"chart": {
			"result": [{
				"timestamp": [1704153600, 1704240000, 1704326400],
				"indicators": {
					"quote": [{
						"open":   [184.2],
						"high":   [185.0, 186.1],
						"low":    [183.0, 184.0],
						"close":  [184.8, 185.2],
						"volume": [52000000]
					}],
					"adjclose": [{
						"adjclose": [184.1]
					}]
				}
			}],
			"error": null
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(raggedBody))
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, 5*time.Second)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	bars, err := f.FetchBars(context.Background(), "AAPL", "1d", start, end)
	assert.NoError(t, err)

	// the third bar has no close at all and is dropped; the second keeps
	// whatever fields the feed did deliver
	assert.Len(t, bars, 2)
	assert.Equal(t, 184.8, bars[0].Close)
	assert.Equal(t, 185.2, bars[1].Close)
	assert.Equal(t, 0.0, bars[1].Open)
	assert.Equal(t, int64(0), bars[1].Volume)
	assert.Equal(t, 185.2, bars[1].AdjClose)
}

func TestYahooFetcher_FetchBars_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, 5*time.Second)
	bars, err := f.FetchBars(context.Background(), "AAPL", "1d", time.Now().AddDate(0, 0, -7), time.Now())
	assert.NoError(t, err)
	assert.Empty(t, bars)
}
