package harvest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// ErrNoQuote is returned when a provider has no price for an asset at or
// before the requested date.
var ErrNoQuote = errors.New("no quote available")

// Quote is a per-unit price observed on a trading day.
type Quote struct {
	Date  Date
	Price Money
}

// Fetcher resolves the latest quote for an asset at-or-before date. Cash
// never reaches a Fetcher; it is priced at 1 per unit locally.
type Fetcher func(asset Asset, date Date) (Quote, error)

// quoteLookback bounds how many calendar days before the requested date a
// provider is queried. A week covers any run of market holidays.
const quoteLookback = 7

// YahooFetcher fetches daily closes from the Yahoo Finance chart API, using
// a shared daily-expiring disk cache for responses.
func YahooFetcher() Fetcher {
	client := daily()
	return func(asset Asset, date Date) (Quote, error) {
		return yahooQuote(client, asset, date)
	}
}

func yahooQuote(client *http.Client, asset Asset, date Date) (Quote, error) {
	from := date.Add(-quoteLookback)
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		url.PathEscape(asset.Identifier), from.Unix(), date.Add(1).Unix())

	doc, err := jwget(client, addr)
	if err != nil {
		return Quote{}, fmt.Errorf("fetching quote for %s: %w", asset.Identifier, err)
	}

	timestamps, err := jsonpath.Get("$.chart.result[0].timestamp", doc)
	if err != nil {
		return Quote{}, fmt.Errorf("quote response for %s: %w", asset.Identifier, err)
	}
	closes, err := jsonpath.Get("$.chart.result[0].indicators.quote[0].close", doc)
	if err != nil {
		return Quote{}, fmt.Errorf("quote response for %s: %w", asset.Identifier, err)
	}
	days, ok := timestamps.([]interface{})
	if !ok {
		return Quote{}, fmt.Errorf("quote response for %s: unexpected timestamp shape", asset.Identifier)
	}
	prices, ok := closes.([]interface{})
	if !ok || len(prices) != len(days) {
		return Quote{}, fmt.Errorf("quote response for %s: unexpected close shape", asset.Identifier)
	}

	// Walk backwards for the latest close at-or-before the requested date.
	// Nulls mark days the market was open but the series has no close yet.
	for i := len(days) - 1; i >= 0; i-- {
		ts, ok := days[i].(json.Number)
		if !ok {
			continue
		}
		unix, err := ts.Int64()
		if err != nil {
			continue
		}
		day := NewDate(time.Unix(unix, 0).UTC().Date())
		if day.After(date) {
			continue
		}
		num, ok := prices[i].(json.Number)
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(num.String())
		if err != nil {
			continue
		}
		return Quote{Date: day, Price: M(price)}, nil
	}
	return Quote{}, fmt.Errorf("quote for %s at %s: %w", asset.Identifier, date, ErrNoQuote)
}

// LookupPrices resolves a quote for each asset as of date. Cash assets are
// priced at 1 without consulting the fetcher. Assets the fetcher cannot
// price are simply absent from the result; reconciliation reports them as
// incomplete holdings.
func LookupPrices(assets []Asset, date Date, fetch Fetcher) (map[Asset]Quote, error) {
	quotes := make(map[Asset]Quote, len(assets))
	for _, asset := range assets {
		if asset.Kind == CashAsset {
			quotes[asset] = Quote{Date: date, Price: M(1)}
			continue
		}
		q, err := fetch(asset, date)
		if err != nil {
			if errors.Is(err, ErrNoQuote) {
				continue
			}
			return nil, err
		}
		quotes[asset] = q
	}
	return quotes, nil
}

// PriceEvents converts quotes into SetPrice facts, ordered by asset
// identifier so the resulting log lines are deterministic.
func PriceEvents(quotes map[Asset]Quote) []Event {
	assets := make([]Asset, 0, len(quotes))
	for asset := range quotes {
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Identifier < assets[j].Identifier })

	events := make([]Event, 0, len(assets))
	for _, asset := range assets {
		q := quotes[asset]
		events = append(events, NewSetPrice(asset, q.Date, q.Price))
	}
	return events
}
