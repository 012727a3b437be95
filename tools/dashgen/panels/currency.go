package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ConversionsRate returns a timeseries panel showing currency conversions
// per second.
func ConversionsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Conversions Rate").
		Description("Currency conversions per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`crosslist:currency_conversions:rate5m`, "conversions/s", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RateRefreshes returns a stat panel showing exchange rate refreshes in the
// past hour. A zero here with the HTTP backend enabled means rates are stale.
func RateRefreshes() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Rate Refreshes (1h)").
		Description("Exchange rate refreshes in the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(crosslist_currency_rate_refreshes_total{job="crosslist"}[1h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
