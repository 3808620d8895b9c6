package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockScout/internal/model"
)

// FormatSubject builds the email subject line from the report contents.
func FormatSubject(report *model.ScanReport) string {
	var parts []string
	if n := len(report.Drops); n > 0 {
		parts = append(parts, fmt.Sprintf("%d Drops", n))
	}
	if n := len(report.Rsi); n > 0 {
		parts = append(parts, fmt.Sprintf("%d RSI Signals", n))
	}
	if n := len(report.Crosses); n > 0 {
		parts = append(parts, fmt.Sprintf("%d Crossovers", n))
	}
	if len(parts) == 0 {
		return "StockScout: No Signals Today"
	}
	return "StockScout Alert: " + strings.Join(parts, ", ")
}

// FormatReport renders the full HTML report: signal tables, per-symbol
// headlines, and the AI narrative when present.
func FormatReport(report *model.ScanReport, newsMap map[string][]model.StockNews, aiHTML string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<h2>Daily Stock Screen | %s</h2>\n", report.RunAt.Format("2006-01-02")))

	if len(report.Drops) > 0 {
		b.WriteString("<h3>Price Drops</h3>\n")
		b.WriteString(`<table border="1" cellpadding="5" cellspacing="0" style="border-collapse: collapse;">` + "\n")
		b.WriteString("<thead><tr style=\"background-color: #f2f2f2;\"><th>Symbol</th><th>Current</th><th>Reference</th><th>Drop %</th><th>Ref Date</th></tr></thead>\n<tbody>\n")
		for _, d := range report.Drops {
			b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.2f</td><td>%.2f</td><td style=\"color: red;\">%.2f%%</td><td>%s</td></tr>\n",
				html.EscapeString(d.Symbol), d.CurrentPrice, d.ReferencePrice, d.DropPercentage, d.ReferenceDate.Format("2006-01-02")))
		}
		b.WriteString("</tbody></table>\n")
	}

	if len(report.Rsi) > 0 {
		b.WriteString("<h3>RSI Extremes</h3>\n")
		b.WriteString(`<table border="1" cellpadding="5" cellspacing="0" style="border-collapse: collapse;">` + "\n")
		b.WriteString("<thead><tr style=\"background-color: #f2f2f2;\"><th>Symbol</th><th>RSI(14)</th><th>Price</th><th>Trend</th></tr></thead>\n<tbody>\n")
		for _, r := range report.Rsi {
			b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.1f</td><td>%.2f</td><td>%s</td></tr>\n",
				html.EscapeString(r.Symbol), r.RSI, r.CurrentPrice, r.Trend))
		}
		b.WriteString("</tbody></table>\n")
	}

	if len(report.Crosses) > 0 {
		b.WriteString("<h3>Moving-Average Crossovers</h3>\n")
		b.WriteString(`<table border="1" cellpadding="5" cellspacing="0" style="border-collapse: collapse;">` + "\n")
		b.WriteString("<thead><tr style=\"background-color: #f2f2f2;\"><th>Symbol</th><th>MA50</th><th>MA200</th><th>Price</th><th>Event</th></tr></thead>\n<tbody>\n")
		for _, c := range report.Crosses {
			b.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%.2f</td><td>%.2f</td><td>%.2f</td><td>%s</td></tr>\n",
				html.EscapeString(c.Symbol), c.MA50, c.MA200, c.CurrentPrice, c.Trend))
		}
		b.WriteString("</tbody></table>\n")
	}

	if aiHTML != "" {
		b.WriteString("<h3>AI Analysis</h3>\n")
		b.WriteString(aiHTML)
		b.WriteString("\n")
	}

	if len(newsMap) > 0 {
		b.WriteString("<h3>Headlines</h3>\n")
		for _, symbol := range report.Symbols() {
			items := newsMap[symbol]
			if len(items) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("<b>%s</b><ul>\n", html.EscapeString(symbol)))
			for _, it := range items {
				b.WriteString(fmt.Sprintf("<li><a href=\"%s\">%s</a> | %s %s</li>\n",
					it.Link, html.EscapeString(it.Title), html.EscapeString(it.Publisher), html.EscapeString(it.Time)))
			}
			b.WriteString("</ul>\n")
		}
	}

	return b.String()
}
