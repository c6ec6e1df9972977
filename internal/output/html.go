package output

import (
	"fmt"
	"html"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// HTMLFormatter produces a self-contained HTML report with an interactive
// net-worth fan chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

func (h HTMLFormatter) Format(report *Report) ([]byte, error) {
	labels := make([]int, report.Summary.HorizonYears+1)
	for i := range labels {
		labels[i] = i
	}
	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return nil, err
	}
	nominalJSON, err := fanDatasets(report, false)
	if err != nil {
		return nil, err
	}
	realJSON, err := fanDatasets(report, true)
	if err != nil {
		return nil, err
	}

	s := report.Summary
	cur := report.Results.Currency
	page := fmt.Sprintf(htmlPage,
		s.NumSimulations,
		s.HorizonYears,
		s.Seed,
		cur.Format(s.FinalNetWorth.P50),
		cur.Format(s.FinalNetWorthReal.P50),
		fmt.Sprintf("%.1f%%", s.InsolvencyRate*100),
		messageRows(report),
		time.Now().Format("2006-01-02 15:04"),
		labelsJSON,
		nominalJSON,
		labelsJSON,
		realJSON,
	)
	return []byte(page), nil
}

// fanDatasets builds the Chart.js dataset list for one view: P10..P90 with
// the area between adjacent bands shaded.
func fanDatasets(report *Report, deflated bool) ([]byte, error) {
	bands := report.BandsNominal
	if deflated {
		bands = report.BandsReal
	}
	datasets := make([]map[string]any, 0, len(bands))
	for i, b := range bands {
		ds := map[string]any{
			"label":           fmt.Sprintf("P%g", b.Percentile),
			"data":            b.Values,
			"borderColor":     "rgba(52, 152, 219, 0.9)",
			"backgroundColor": "rgba(52, 152, 219, 0.12)",
			"borderWidth":     1,
			"pointRadius":     0,
		}
		if b.Percentile == 50 {
			ds["borderColor"] = "rgba(44, 62, 80, 1)"
			ds["borderWidth"] = 2
		}
		if i > 0 {
			ds["fill"] = "-1"
		}
		datasets = append(datasets, ds)
	}
	return json.Marshal(datasets)
}

// messageRows renders run diagnostics as table rows.
func messageRows(report *Report) string {
	msgs := report.Results.Messages
	if len(msgs) == 0 {
		return `<tr><td colspan="3">No warnings raised.</td></tr>`
	}
	var b strings.Builder
	for _, m := range msgs {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>%s</td></tr>\n",
			html.EscapeString(string(m.Level)), m.Year, html.EscapeString(m.Text))
	}
	return b.String()
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Net Worth Simulation Report</title>
    <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            margin: 0;
            padding: 20px;
            background: #eef2f5;
        }
        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: white;
            border-radius: 12px;
            box-shadow: 0 10px 25px rgba(0,0,0,0.08);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #2c3e50 0%%, #3498db 100%%);
            color: white;
            padding: 28px;
        }
        .header h1 { margin: 0 0 6px 0; }
        .header p { margin: 0; opacity: 0.85; }
        .content { padding: 28px; }
        .cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 16px;
            margin-bottom: 28px;
        }
        .card {
            background: #f7f9fb;
            border: 1px solid #e3e8ee;
            border-radius: 10px;
            padding: 16px;
        }
        .card .value { font-size: 1.4em; font-weight: 600; color: #2c3e50; }
        .card .label { font-size: 0.85em; color: #6b7a8c; margin-top: 4px; }
        .chart-block { margin-bottom: 32px; }
        table { width: 100%%; border-collapse: collapse; margin-top: 8px; }
        th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #e3e8ee; }
        th { color: #6b7a8c; font-weight: 600; font-size: 0.85em; }
        .footer { padding: 16px 28px; color: #6b7a8c; font-size: 0.85em; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Net Worth Simulation Report</h1>
            <p>%d paths over %d years &middot; seed %d</p>
        </div>
        <div class="content">
            <div class="cards">
                <div class="card">
                    <div class="value">%s</div>
                    <div class="label">Median final net worth (nominal)</div>
                </div>
                <div class="card">
                    <div class="value">%s</div>
                    <div class="label">Median final net worth (real)</div>
                </div>
                <div class="card">
                    <div class="value">%s</div>
                    <div class="label">Paths with negative liquid wealth</div>
                </div>
            </div>

            <div class="chart-block">
                <h3>Net worth over time (nominal)</h3>
                <canvas id="nominalChart"></canvas>
            </div>
            <div class="chart-block">
                <h3>Net worth over time (constant starting-year money)</h3>
                <canvas id="realChart"></canvas>
            </div>

            <h3>Messages</h3>
            <table>
                <thead><tr><th>Level</th><th>Year</th><th>Detail</th></tr></thead>
                <tbody>
                %s
                </tbody>
            </table>
        </div>
        <div class="footer">Generated on %s</div>
    </div>

    <script>
        Chart.defaults.font.family = "'Segoe UI', Tahoma, Geneva, Verdana, sans-serif";
        Chart.defaults.color = '#2c3e50';

        const fanOptions = {
            responsive: true,
            animation: { duration: 0 },
            plugins: { legend: { position: 'bottom' } },
            scales: {
                x: { title: { display: true, text: 'Year' } },
                y: { title: { display: true, text: 'Net worth' } }
            }
        };

        new Chart(document.getElementById('nominalChart').getContext('2d'), {
            type: 'line',
            data: { labels: %s, datasets: %s },
            options: fanOptions
        });
        new Chart(document.getElementById('realChart').getContext('2d'), {
            type: 'line',
            data: { labels: %s, datasets: %s },
            options: fanOptions
        });
    </script>
</body>
</html>
`
