package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/cohorting"
	"github.com/vfg2006/cohort-roas-api/internal/usecases/dashboard"
	"github.com/vfg2006/cohort-roas-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

// execute roda o comando raiz; as flags persistem entre chamadas, então cada teste informa todas
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append(args, "--no-color", "--log-level", "error"))

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, sub := range []string{"summary", "heatmap", "export", "snapshots"} {
		assert.Contains(t, out, sub)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, out string, err error)
	}{
		{
			name: "Todos os canais",
			args: []string{"summary", "--seed", "42", "--channel", "All Channels", "--country", "All Countries", "--device", "All Devices", "--period", "Day 7"},
			validate: func(t *testing.T, out string, err error) {
				require.NoError(t, err)
				assert.Contains(t, out, "All Channels · All Countries · All Devices · Day 7")
				assert.Contains(t, out, "Paid Media")
				assert.Contains(t, out, "Traffic Affiliates")
				assert.Contains(t, out, "Latest Week Performance (Day 7)")
				assert.NotContains(t, out, "\x1b[")
			},
		},
		{
			name: "Canal selecionado marcado",
			args: []string{"summary", "--seed", "42", "--channel", "Sports Cappers", "--country", "Brazil", "--device", "Mobile", "--period", "Day 30"},
			validate: func(t *testing.T, out string, err error) {
				require.NoError(t, err)
				assert.Contains(t, out, "Sports Cappers · Brazil · Mobile · Day 30")

				var marked []string
				for _, line := range strings.Split(out, "\n") {
					if strings.HasPrefix(strings.TrimSpace(line), "*") {
						marked = append(marked, line)
					}
				}
				require.Len(t, marked, 1)
				assert.Contains(t, marked[0], "Sports Cappers")
			},
		},
		{
			name: "Período inválido",
			args: []string{"summary", "--seed", "42", "--channel", "All Channels", "--country", "All Countries", "--device", "All Devices", "--period", "Day 14"},
			validate: func(t *testing.T, out string, err error) {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown horizon label")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			tt.validate(t, out, err)
		})
	}
}

func TestHeatmap(t *testing.T) {
	out, err := execute(t, "heatmap", "--seed", "42", "--period", "Day 90")
	require.NoError(t, err)

	assert.Contains(t, out, "Cohort Performance Matrix - Day 90")
	assert.Contains(t, out, "Week 12")
	assert.Contains(t, out, "Week 5")
	assert.NotContains(t, out, "Week 4 ")
	assert.Contains(t, out, "Gambling")
}

func TestExport(t *testing.T) {
	t.Run("Série é reprodutível com a mesma semente", func(t *testing.T) {
		first, err := execute(t, "export", "--seed", "7", "--format", "json", "--content", "series", "--period", "Day 7")
		require.NoError(t, err)
		second, err := execute(t, "export", "--seed", "7", "--format", "json", "--content", "series", "--period", "Day 7")
		require.NoError(t, err)

		assert.Equal(t, first, second)

		var series []map[string]any
		require.NoError(t, json.Unmarshal([]byte(first), &series))
		assert.Len(t, series, cohorting.WeekCount)
	})

	t.Run("Modelo do dashboard", func(t *testing.T) {
		out, err := execute(t, "export", "--seed", "7", "--format", "json", "--content", "view", "--period", "Day 180")
		require.NoError(t, err)

		var view dashboard.View
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, "Day 180", view.Filters.Period)
		assert.Len(t, view.Heatmap.Rows, dashboard.HeatmapWeeks)
	})

	t.Run("Formato não suportado", func(t *testing.T) {
		_, err := execute(t, "export", "--seed", "7", "--format", "csv", "--content", "view", "--period", "Day 7")
		assert.ErrorContains(t, err, "formato não suportado")
	})
}

func TestColorTrend(t *testing.T) {
	previous := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = previous })

	assert.Equal(t, "—", colorTrend("—", false))
	assert.Contains(t, colorTrend("+3.2%", true), "\x1b[32m")
	assert.Contains(t, colorTrend("-1.0%", false), "\x1b[31m")
}

func TestTable_Render(t *testing.T) {
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })

	tbl := newTable("Channel", "Trend")
	tbl.add(cell{text: "Paid Media"}, cell{text: "—"})
	tbl.add(cell{text: "Sports Cappers"}, cell{text: "+1.0%"})

	buf := new(bytes.Buffer)
	require.NoError(t, tbl.render(buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "  Paid Media      —", lines[1])
	assert.Equal(t, "  Sports Cappers  +1.0%", lines[2])
}
