package journal

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// FormatExecutionOrg renders one execution as an Org-mode heading with the
// structured facts in a PROPERTIES drawer.
func FormatExecutionOrg(e ExecutionRecord) string {
	heading := fmt.Sprintf("*** %s %d %s @ %.2f (%s)", strings.ToUpper(e.Operation), abs(e.SharesCount), e.Instrument, e.StockPrice, shortID(e.ExecutionID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":EXECUTION_ID: %s\n", e.ExecutionID))
	b.WriteString(fmt.Sprintf(":SESSION_ID: %s\n", e.SessionID))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", e.Time.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":COMMAND: %s\n", e.Command))
	b.WriteString(fmt.Sprintf(":SHARES: %d\n", e.SharesCount))
	b.WriteString(fmt.Sprintf(":STOCK_PRICE: %.2f\n", e.StockPrice))
	b.WriteString(fmt.Sprintf(":RISK_LINE: %.2f\n", e.RiskLine))
	b.WriteString(fmt.Sprintf(":NET_SHARES: %d\n", e.NetShares))
	b.WriteString(":END:\n")

	return b.String()
}

// FormatExecutionsOrg renders multiple executions separated by blank lines.
func FormatExecutionsOrg(execs []ExecutionRecord) string {
	var b strings.Builder
	for n, e := range execs {
		if n > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatExecutionOrg(e))
	}
	return b.String()
}

var sessionOrgFuncs = template.FuncMap{
	"rfc3339": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"short":   shortID,
}

var sessionOrgTmpl = template.Must(template.New("session").Funcs(sessionOrgFuncs).Parse(
	`** Session: {{ .Session.Instrument }} ({{ short .Session.SessionID }})
:PROPERTIES:
:SESSION_ID: {{ .Session.SessionID }}
:INSTRUMENT: {{ .Session.Instrument }}
:STARTED: {{ rfc3339 .Session.Started }}
:RISK_PER_TRADE: {{ printf "%.2f" .Session.RiskPerTrade }}
:EXECUTIONS: {{ len .Executions }}
:END:
{{ if .Executions }}
| # | Operation | Shares | Price | Risk line | Net |
|---+-----------+--------+-------+-----------+-----|
{{- range $n, $e := .Executions }}
| {{ $n }} | {{ $e.Operation }} | {{ $e.SharesCount }} | {{ printf "%.2f" $e.StockPrice }} | {{ printf "%.2f" $e.RiskLine }} | {{ $e.NetShares }} |
{{- end }}
{{ else }}
No executions.
{{ end }}`))

// FormatSessionOrg renders a session header and a table of its executions.
func FormatSessionOrg(s SessionRecord, execs []ExecutionRecord) (string, error) {
	var buf bytes.Buffer
	err := sessionOrgTmpl.Execute(&buf, struct {
		Session    SessionRecord
		Executions []ExecutionRecord
	}{s, execs})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// FormatSnapshotOrg renders the last derived state of a session as a
// PROPERTIES drawer under its own heading.
func FormatSnapshotOrg(s SnapshotRecord) string {
	bert := "N/A"
	if s.BERT != nil {
		bert = fmt.Sprintf("%.2f", *s.BERT)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("*** Snapshot after %s\n", s.Command))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TIME: %s\n", s.Time.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":NET_SHARES: %d\n", s.NetShares))
	b.WriteString(fmt.Sprintf(":STOCK_PRICE: %.2f\n", s.StockPrice))
	b.WriteString(fmt.Sprintf(":AVG_PRICE: %.2f\n", s.AveragePrice))
	b.WriteString(fmt.Sprintf(":REALIZED_PL: %.2f\n", s.RealizedPL))
	b.WriteString(fmt.Sprintf(":UNREALIZED_PL: %.2f\n", s.UnrealizedPL))
	b.WriteString(fmt.Sprintf(":BERT: %s\n", bert))
	b.WriteString(fmt.Sprintf(":STOPS_PERCENT: %d\n", s.StopsPercent))
	b.WriteString(fmt.Sprintf(":TARGETS_PERCENT: %d\n", s.TargetsPercent))
	b.WriteString(":END:\n")
	return b.String()
}
