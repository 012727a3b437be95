package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "crosslist-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "crosslist-recording",
					Rules: []Rule{
						{
							Record: "crosslist:http_requests:rate5m",
							Expr:   `sum(rate(crosslist_http_requests_total[5m]))`,
						},
						{
							Record: "crosslist:http_errors:rate5m",
							Expr:   `sum(rate(crosslist_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "crosslist:ebay_api_calls:rate5m",
							Expr:   `sum(rate(crosslist_ebay_api_calls_total[5m]))`,
						},
						{
							Record: "crosslist:listings_registered:rate5m",
							Expr:   `rate(crosslist_listings_registered_total[5m])`,
						},
						{
							Record: "crosslist:listing_register_failures:rate5m",
							Expr:   `rate(crosslist_listing_register_failures_total[5m])`,
						},
						{
							Record: "crosslist:currency_conversions:rate5m",
							Expr:   `sum(rate(crosslist_currency_conversions_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
