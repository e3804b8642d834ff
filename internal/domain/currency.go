package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a supported asset code. The set is closed: anything outside
// currencyInfo is rejected before query construction, and balance column
// names are resolved through the table below rather than built from request
// input.
type Currency string

const (
	BTC   Currency = "BTC"
	ETH   Currency = "ETH"
	USDT  Currency = "USDT"
	BNB   Currency = "BNB"
	XRP   Currency = "XRP"
	ADA   Currency = "ADA"
	DOGE  Currency = "DOGE"
	SOL   Currency = "SOL"
	DOT   Currency = "DOT"
	MATIC Currency = "MATIC"
	LINK  Currency = "LINK"
	UNI   Currency = "UNI"
	AVAX  Currency = "AVAX"
	LTC   Currency = "LTC"
	SHIB  Currency = "SHIB"
)

type currencyAttrs struct {
	column string // users table balance column
	scale  int32  // max fractional digits accepted in requests
	fee    string // default network fee, decimal literal
}

// Column names must stay `<code>_balance` (lower-cased) to interoperate with
// existing wallet data.
var currencyInfo = map[Currency]currencyAttrs{
	BTC:   {column: "btc_balance", scale: 8, fee: "0.0005"},
	ETH:   {column: "eth_balance", scale: 8, fee: "0.003"},
	USDT:  {column: "usdt_balance", scale: 6, fee: "1"},
	BNB:   {column: "bnb_balance", scale: 8, fee: "0.01"},
	XRP:   {column: "xrp_balance", scale: 6, fee: "0.25"},
	ADA:   {column: "ada_balance", scale: 6, fee: "1"},
	DOGE:  {column: "doge_balance", scale: 8, fee: "5"},
	SOL:   {column: "sol_balance", scale: 8, fee: "0.01"},
	DOT:   {column: "dot_balance", scale: 8, fee: "0.1"},
	MATIC: {column: "matic_balance", scale: 8, fee: "0.1"},
	LINK:  {column: "link_balance", scale: 8, fee: "0.3"},
	UNI:   {column: "uni_balance", scale: 8, fee: "0.5"},
	AVAX:  {column: "avax_balance", scale: 8, fee: "0.01"},
	LTC:   {column: "ltc_balance", scale: 8, fee: "0.001"},
	SHIB:  {column: "shib_balance", scale: 2, fee: "50000"},
}

// Currencies returns the supported set in a stable order.
func Currencies() []Currency {
	return []Currency{BTC, ETH, USDT, BNB, XRP, ADA, DOGE, SOL, DOT, MATIC, LINK, UNI, AVAX, LTC, SHIB}
}

// ParseCurrency normalizes casing and validates membership in the closed set.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := currencyInfo[c]; !ok {
		return "", ErrUnsupportedCurrency
	}
	return c, nil
}

// BalanceColumn returns the users table column holding this currency's
// balance.
func (c Currency) BalanceColumn() string {
	return currencyInfo[c].column
}

// Scale returns the maximum number of fractional digits accepted for
// amounts in this currency.
func (c Currency) Scale() int32 {
	return currencyInfo[c].scale
}

// FeeTable maps each currency to its fixed network fee. Fees are
// server-side constants, never taken from the request.
type FeeTable map[Currency]decimal.Decimal

// DefaultFees returns the built-in per-currency network fees.
func DefaultFees() FeeTable {
	fees := make(FeeTable, len(currencyInfo))
	for c, attrs := range currencyInfo {
		fees[c] = decimal.RequireFromString(attrs.fee)
	}
	return fees
}

// Fee returns the network fee for a currency, falling back to the built-in
// default when the table has no override.
func (t FeeTable) Fee(c Currency) decimal.Decimal {
	if fee, ok := t[c]; ok {
		return fee
	}
	return decimal.RequireFromString(currencyInfo[c].fee)
}
