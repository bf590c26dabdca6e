// Package exchange resolves conversion rates over a directed exchange-rate
// graph built once at initialization from the declared direct rates.
package exchange

import (
	"sort"

	"bank-ledger/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Rate is a declared direct exchange rate.
type Rate struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// Resolver answers rate and conversion queries.
//
// Construction stores every direct rate together with its reciprocal, then
// closes the graph by a single level of intermediate-currency composition
// (first matching intermediate in lexicographic order wins; no shortest-path
// search), and finally adds the reflexive rate 1 for every known currency.
// The rate table is read-only after construction.
type Resolver struct {
	rates map[string]map[string]decimal.Decimal
}

// NewResolver builds the resolver from the declared direct rates.
func NewResolver(direct []Rate) *Resolver {
	rates := make(map[string]map[string]decimal.Decimal)

	put := func(from, to string, rate decimal.Decimal) {
		if rates[from] == nil {
			rates[from] = make(map[string]decimal.Decimal)
		}
		if _, ok := rates[from][to]; !ok {
			rates[from][to] = rate
		}
	}

	for _, r := range direct {
		put(r.From, r.To, r.Rate)
		put(r.To, r.From, decimal.NewFromInt(1).Div(r.Rate))
	}

	currencies := make([]string, 0, len(rates))
	for c := range rates {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	// One hop of composition, no propagation beyond it.
	for _, from := range currencies {
		for _, to := range currencies {
			if from == to {
				continue
			}
			if _, ok := rates[from][to]; ok {
				continue
			}
			for _, via := range currencies {
				first, ok := rates[from][via]
				if !ok {
					continue
				}
				second, ok := rates[via][to]
				if !ok {
					continue
				}
				rates[from][to] = first.Mul(second)
				break
			}
		}
	}

	for _, c := range currencies {
		rates[c][c] = decimal.NewFromInt(1)
	}

	return &Resolver{rates: rates}
}

// Rate returns the resolved rate from one currency to another.
// A missing pair is a configuration error; callers must treat it as fatal.
func (r *Resolver) Rate(from, to string) (decimal.Decimal, error) {
	if m, ok := r.rates[from]; ok {
		if rate, ok := m[to]; ok {
			return rate, nil
		}
	}
	return decimal.Zero, apperror.ErrNoCurrencyPath(from, to)
}

// Convert returns amount multiplied by the resolved rate.
func (r *Resolver) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	rate, err := r.Rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

// Currencies returns the known currency set in lexicographic order.
func (r *Resolver) Currencies() []string {
	out := make([]string, 0, len(r.rates))
	for c := range r.rates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
