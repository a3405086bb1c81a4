package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/drushti-surkar/hashgait-demo/internal/store"
)

// DashboardHandler renders a chart of the user's enrolled pattern confidence
// scores over time.
type DashboardHandler struct {
	log   *zap.Logger
	store store.PatternStore
}

func NewDashboardHandler(log *zap.Logger, s store.PatternStore) *DashboardHandler {
	return &DashboardHandler{log: log, store: s}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	userID := currentUsername(c)

	records, err := h.store.ListByUser(c, userID)
	if err != nil {
		h.log.Error("Failed to load patterns for dashboard", zap.String("user", userID), zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Pattern Confidence Over Time",
			Subtitle: userID,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(records))
	for _, r := range records {
		when := time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339)
		items = append(items, opts.LineData{Value: []interface{}{when, r.ConfidenceScore}})
	}

	line.AddSeries("Confidence", items).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render dashboard chart", zap.Error(err))
	}
}
