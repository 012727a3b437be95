// Package validate checks generated dashboard definitions: every query
// expression must parse as PromQL and reference only known metric names.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	promqlparser "github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation findings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Dashboard validates all query expressions in the dashboard against the
// known metric set.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var result Result

	exprs, err := collectExprs(dash)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(exprs) == 0 {
		result.Warnings = append(result.Warnings, "dashboard contains no query expressions")
		return result
	}

	for _, expr := range exprs {
		checkExpr(expr, known, &result)
	}
	return result
}

// collectExprs walks the dashboard's JSON form and gathers every "expr"
// field. Going through JSON avoids coupling to the SDK's panel types.
func collectExprs(dash dashboard.Dashboard) ([]string, error) {
	data, err := json.Marshal(dash)
	if err != nil {
		return nil, fmt.Errorf("marshal dashboard: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal dashboard: %w", err)
	}

	var exprs []string
	walkExprs(doc, &exprs)
	return exprs, nil
}

func walkExprs(node any, exprs *[]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if key == "expr" {
				if s, ok := val.(string); ok && s != "" {
					*exprs = append(*exprs, s)
					continue
				}
			}
			walkExprs(val, exprs)
		}
	case []any:
		for _, item := range v {
			walkExprs(item, exprs)
		}
	}
}

func checkExpr(expr string, known map[string]bool, result *Result) {
	parsed, err := promqlparser.ParseExpr(expr)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid PromQL %q: %v", expr, err))
		return
	}

	promqlparser.Inspect(parsed, func(node promqlparser.Node, _ []promqlparser.Node) error {
		vs, ok := node.(*promqlparser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !known[vs.Name] && !known[baseMetricName(vs.Name)] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("unknown metric %q in expression %q", vs.Name, expr))
		}
		return nil
	})
}

// baseMetricName strips histogram series suffixes so expressions over
// _bucket, _sum, and _count series match the registered metric name.
func baseMetricName(name string) string {
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		base := strings.TrimSuffix(name, suffix)
		if base != name {
			return base
		}
	}
	return name
}
