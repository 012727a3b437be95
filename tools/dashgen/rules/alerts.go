package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// crosslist operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "crosslist-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "crosslist-alerts",
					Rules: []Rule{
						{
							Alert: "CrosslistDown",
							Expr:  `absent(up{job="crosslist"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Crosslist is down",
								"description": "The crosslist job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "CrosslistReadinessDown",
							Expr:  `crosslist_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Crosslist readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "CrosslistHighErrorRate",
							Expr:  `crosslist:http_errors:rate5m / crosslist:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on crosslist",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "CrosslistRegisterFailures",
							Expr:  `crosslist:listing_register_failures:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Listing registration failures detected",
								"description": "Listing registrations have been failing for more than 5 minutes.",
							},
						},
						{
							Alert: "CrosslistEbayQuotaHigh",
							Expr:  `crosslist_ebay_daily_usage > 4000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily usage is above 80% of the quota",
								"description": "Daily eBay API usage has exceeded 4000 calls (limit is 5000).",
							},
						},
						{
							Alert: "CrosslistEbayLimitReached",
							Expr:  `increase(crosslist_ebay_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily limit has been reached",
								"description": "The eBay Trading API daily quota has been exhausted. Registrations are rejected until reset.",
							},
						},
						{
							Alert: "CrosslistNotificationFailures",
							Expr:  `increase(crosslist_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more listing notifications (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
