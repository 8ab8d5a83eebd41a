package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rythem12/hlp-funding-fee/internal/hyperliquid"
)

// hoursPerYear extrapolates the hourly funding rate linearly, without
// compounding.
const hoursPerYear = 24 * 365

const timestampLayout = "2006-01-02 15:04"

// PriceDecimals maps a symbol to the number of decimals its price is
// rendered with. Symbols not listed use DefaultPriceDecimals.
var PriceDecimals = map[string]int{"BTC": 2}

// DefaultPriceDecimals applies to every symbol without an entry in
// PriceDecimals.
const DefaultPriceDecimals = 3

var coinEmoji = map[string]string{
	"BTC": "₿",
	"ETH": "⟠",
	"SOL": "◎",
}

// Emoji returns the display glyph for a symbol.
func Emoji(symbol string) string {
	if e, ok := coinEmoji[symbol]; ok {
		return e
	}
	return "🪙"
}

// MarketData is what the builder needs from the exchange client.
type MarketData interface {
	Fetch(ctx context.Context, symbol string) (hyperliquid.Quote, bool, error)
}

// Builder renders funding-rate reports for a subscription list.
type Builder struct {
	market MarketData
	log    *zap.Logger
	now    func() time.Time
}

// NewBuilder creates a report builder. now may be nil to use the wall clock.
func NewBuilder(market MarketData, log *zap.Logger, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{market: market, log: log, now: now}
}

// Build renders one report: a timestamp header followed by a block per
// symbol in alphabetical order. A failed or unknown symbol gets an inline
// note and never aborts the rest of the report.
func (b *Builder) Build(ctx context.Context, coins []string) string {
	sorted := append([]string(nil), coins...)
	sort.Strings(sorted)

	var sb strings.Builder
	sb.WriteString("🕒 " + b.now().Format(timestampLayout))

	for _, coin := range sorted {
		q, ok, err := b.market.Fetch(ctx, coin)
		switch {
		case err != nil:
			b.log.Warn("quote lookup failed", zap.String("coin", coin), zap.Error(err))
			fmt.Fprintf(&sb, "\n❌ %s: could not fetch data", coin)
		case !ok:
			fmt.Fprintf(&sb, "\n❌ %s: not found", coin)
		default:
			apr := q.FundingRatePercent * hoursPerYear
			fmt.Fprintf(&sb, "\n%s %s\nPrice: $%s\nFunding rate: %+.6f%%\nEst. APR: %+.2f%%",
				Emoji(coin), coin,
				FormatPrice(q.MarkPrice, priceDecimals(coin)),
				q.FundingRatePercent, apr)
		}
	}
	return sb.String()
}

func priceDecimals(symbol string) int {
	if d, ok := PriceDecimals[symbol]; ok {
		return d
	}
	return DefaultPriceDecimals
}
