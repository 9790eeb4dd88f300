// Package yahoo fetches daily ETF closes from the Yahoo Finance chart API.
//
// Unlike the Brazilian source the payload is already numeric: closes are
// price levels the core converts to returns. Tickers are renamed to their
// short display form (CSPX.L becomes CSPX) before the frame is built.
package yahoo

import (
	"fmt"
	"log"
	"net/url"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vbessa/weeklyperf"
	"github.com/vbessa/weeklyperf/date"
)

// DefaultTickers is the fixed ETF list of the report, ticker to short name.
func DefaultTickers() map[string]string {
	return map[string]string{
		"CSPX.L":  "CSPX",
		"IWDA.AS": "IWDA",
		"EIMI.L":  "EIMI",
		"AGGG.L":  "AGGG",
	}
}

// chartPayload is the relevant excerpt of the v8 chart response.
//
//	{"chart":{"result":[{"timestamp":[...],
//	  "indicators":{"quote":[{"close":[...]}]}}],"error":null}}
type chartPayload struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*decimal.Decimal `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// FetchCloses retrieves the daily closes of every ticker between from and to
// and joins them into one price frame. Tickers that fail to fetch are
// skipped with a warning: a partial frame is still a useful frame.
func FetchCloses(tickers map[string]string, from, to date.Date) (*weeklyperf.RawFrame, error) {
	series := make(map[string]map[date.Date]string)
	union := make(map[date.Date]bool)

	for ticker, short := range tickers {
		closes, err := fetchChart(ticker, from, to)
		if err != nil {
			log.Printf("skipping %s: %v", ticker, err)
			continue
		}
		series[short] = closes
		for d := range closes {
			union[d] = true
		}
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no ticker could be fetched")
	}

	dates := make([]date.Date, 0, len(union))
	for d := range union {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	frame := weeklyperf.NewRawFrame("yahoo", dates)
	shorts := make([]string, 0, len(series))
	for short := range series {
		shorts = append(shorts, short)
	}
	sort.Strings(shorts)
	for _, short := range shorts {
		values := make([]string, len(dates))
		for i, d := range dates {
			values[i] = series[short][d]
		}
		if err := frame.AddColumn(short, values); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// fetchChart returns the close per date of one ticker.
func fetchChart(ticker string, from, to date.Date) (map[date.Date]string, error) {
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		url.PathEscape(ticker), from.Unix(), to.Add(1).Unix())

	var payload chartPayload
	if err := jwget(newDailyCachingClient(), addr, &payload); err != nil {
		return nil, err
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart response for %s carries no result (error=%v)", ticker, payload.Chart.Error)
	}
	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart response for %s carries no quote", ticker)
	}

	closes := result.Indicators.Quote[0].Close
	out := make(map[date.Date]string, len(closes))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // halted or unsettled day
		}
		out[date.FromUnix(ts)] = closes[i].String()
	}
	return out, nil
}
