package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/heavyRainn/binance-crawler/internal/types"
)

// topCount is how many entries the lowest/highest sections show.
const topCount = 5

const separator = "----------------------------------------"

// Report is the computed summary over one sorted ticker list.
type Report struct {
	Tickers []types.Ticker
	Lowest  []types.Ticker
	Highest []types.Ticker
	Average decimal.Decimal
}

// Build computes the summary sections from tickers, which must already be
// sorted ascending by price. Lowest and Highest are slices into the input;
// Highest keeps its ascending order. Fails with ErrEmptyResult on an empty
// list, the average is undefined there.
func Build(tickers []types.Ticker) (*Report, error) {
	if len(tickers) == 0 {
		return nil, types.CrawlerError{
			Code:    types.ErrEmptyResult,
			Message: "No tickers survived the tradable filter",
		}
	}

	sum := decimal.Zero
	for _, t := range tickers {
		sum = sum.Add(t.Price)
	}

	n := min(topCount, len(tickers))
	return &Report{
		Tickers: tickers,
		Lowest:  tickers[:n],
		Highest: tickers[len(tickers)-n:],
		Average: sum.Div(decimal.NewFromInt(int64(len(tickers)))),
	}, nil
}

// WriteText renders the report as plain text to w.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	for _, t := range r.Tickers {
		fmt.Fprintln(&b, t)
	}
	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "Total tickers: %d\n", len(r.Tickers))
	fmt.Fprintf(&b, "Lowest %d prices:\n", len(r.Lowest))
	for _, t := range r.Lowest {
		fmt.Fprintln(&b, t)
	}
	fmt.Fprintf(&b, "Highest %d prices:\n", len(r.Highest))
	for _, t := range r.Highest {
		fmt.Fprintln(&b, t)
	}
	fmt.Fprintf(&b, "Average price: %s\n", r.Average)

	_, err := io.WriteString(w, b.String())
	return err
}

type tickerJSON struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

type summaryJSON struct {
	Count   int    `json:"count"`
	Average string `json:"average"`
}

type reportJSON struct {
	Tickers []tickerJSON `json:"tickers"`
	Lowest  []tickerJSON `json:"lowest"`
	Highest []tickerJSON `json:"highest"`
	Summary summaryJSON  `json:"summary"`
}

// WriteJSON renders the report as indented JSON to w, prices as decimal
// strings.
func (r *Report) WriteJSON(w io.Writer) error {
	out := reportJSON{
		Tickers: toJSON(r.Tickers),
		Lowest:  toJSON(r.Lowest),
		Highest: toJSON(r.Highest),
		Summary: summaryJSON{
			Count:   len(r.Tickers),
			Average: r.Average.String(),
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

func toJSON(tickers []types.Ticker) []tickerJSON {
	out := make([]tickerJSON, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, tickerJSON{
			Symbol: t.Symbol,
			Price:  t.Price.String(),
		})
	}
	return out
}
