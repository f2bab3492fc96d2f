// Package charts renders spending charts as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Veraticus/cashheal/internal/budget"
	"github.com/Veraticus/cashheal/internal/common"
	"github.com/Veraticus/cashheal/internal/i18n"
	"github.com/Veraticus/cashheal/internal/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = fmt.Errorf("%w: no data to chart", common.ErrNotFound)

// Generator renders charts labelled in one currency and language.
type Generator struct {
	translator *i18n.Translator
	currency   string
}

// NewGenerator creates a Generator.
func NewGenerator(currency string, translator *i18n.Translator) *Generator {
	return &Generator{currency: currency, translator: translator}
}

func background() chart.Style {
	return chart.Style{
		Padding: chart.Box{
			Top:    50,
			Left:   50,
			Right:  50,
			Bottom: 50,
		},
		FillColor: chart.ColorWhite,
	}
}

// CategoryPie renders each category's share of total spend.
// Categories with no spend are left out.
func (g *Generator) CategoryPie(categories []model.Category) ([]byte, error) {
	values := make([]chart.Value, 0, len(categories))
	for _, c := range categories {
		if !c.Amount.IsPositive() {
			continue
		}
		v := chart.Value{
			Label: fmt.Sprintf("%s %s: %s", c.Emoji, c.Label, i18n.FormatCurrency(c.Amount, g.currency)),
			Value: c.Amount.InexactFloat64(),
		}
		if hex := strings.TrimPrefix(c.Color, "#"); hex != "" {
			v.Style = chart.Style{FillColor: drawing.ColorFromHex(hex)}
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	pie := chart.PieChart{
		Title:      g.translator.T("categories.title"),
		Width:      1000,
		Height:     600,
		Values:     values,
		Background: background(),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// PeriodBars renders spent amounts for each period, red when over target.
func (g *Generator) PeriodBars(progress []budget.PeriodProgress) ([]byte, error) {
	if len(progress) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(progress))
	anySpend := false
	for _, p := range progress {
		color := drawing.ColorFromHex("10b981")
		if p.Over {
			color = chart.ColorRed
		}
		if p.Spent.IsPositive() {
			anySpend = true
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%s / %s)", g.translator.T("period."+string(p.Period)),
				i18n.FormatCurrency(p.Spent, g.currency), i18n.FormatCurrency(p.Target, g.currency)),
			Value: p.Spent.InexactFloat64(),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}
	if !anySpend {
		return nil, ErrNoData
	}

	graph := chart.BarChart{
		Title:      g.translator.T("status.spent"),
		Width:      1000,
		Height:     500,
		BarWidth:   120,
		Bars:       bars,
		Background: background(),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render period chart: %w", err)
	}
	return buffer.Bytes(), nil
}
