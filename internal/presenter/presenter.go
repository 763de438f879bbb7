// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/wneessen/go-moonphase"

	"github.com/wneessen/weathercard/internal/moment"
	"github.com/wneessen/weathercard/internal/weather"
)

// CardContext is the data a card template is executed with.
type CardContext struct {
	Location        string
	Description     string
	Temperature     int
	WindSpeed       float64
	RainPossibility float64
	Comfortability  string
	ObservationTime time.Time
	IsLoading       bool

	WeatherCode   int
	Category      string
	CategoryLabel string
	Moment        string
	Theme         string
	SunriseTime   time.Time
	SunsetTime    time.Time
	MoonPhase     string
	MoonPhaseIcon string
}

type Presenter struct {
	card *template.Template
}

// New parses the card template.
func New(cardTpl string) (*Presenter, error) {
	p := new(Presenter)
	tpl, err := template.New("card").Funcs(p.templateFuncMap()).Parse(cardTpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse card template: %w", err)
	}
	p.card = tpl
	return p, nil
}

func (p *Presenter) BuildContext(vm weather.ViewModel, mom moment.Moment, now time.Time) CardContext {
	category := vm.Category()
	phase := moonphase.New(now).PhaseName()
	return CardContext{
		Location:        vm.Location,
		Description:     vm.Description,
		Temperature:     int(math.Round(vm.Temperature)),
		WindSpeed:       vm.WindSpeed,
		RainPossibility: vm.RainPossibility,
		Comfortability:  vm.Comfortability,
		ObservationTime: vm.ObservationTime,
		IsLoading:       vm.IsLoading,
		WeatherCode:     vm.WeatherCode,
		Category:        category.String(),
		CategoryLabel:   CategoryLabel[category],
		Moment:          mom.Period.String(),
		Theme:           mom.Period.Theme(),
		SunriseTime:     mom.Sunrise,
		SunsetTime:      mom.Sunset,
		MoonPhase:       phase,
		MoonPhaseIcon:   MoonPhaseIcon[phase],
	}
}

// Render executes the card template and writes it framed to w.
func (p *Presenter) Render(w io.Writer, ctx CardContext) error {
	buf := bytes.NewBuffer(nil)
	if err := p.card.Execute(buf, ctx); err != nil {
		return fmt.Errorf("failed to render card template: %w", err)
	}
	_, err := io.WriteString(w, frame(buf.String()))
	return err
}

// frame draws a box around text. Widths are measured in terminal cells so that lines
// with wide characters line up.
func frame(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}

	var sb strings.Builder
	border := strings.Repeat("─", width+2)
	sb.WriteString("┌" + border + "┐\n")
	for _, line := range lines {
		sb.WriteString("│ ")
		sb.WriteString(runewidth.FillRight(line, width))
		sb.WriteString(" │\n")
	}
	sb.WriteString("└" + border + "┘\n")
	return sb.String()
}
