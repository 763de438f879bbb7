// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/weathercard/internal/config"
	"github.com/wneessen/weathercard/internal/moment"
	"github.com/wneessen/weathercard/internal/weather"
)

var (
	cst       = time.FixedZone("CST", 8*3600)
	testModel = weather.ViewModel{
		Location:        "臺北",
		Description:     "午後短暫雷陣雨",
		WindSpeed:       1.1,
		Temperature:     22.5,
		RainPossibility: 48.3,
		ObservationTime: time.Date(2021, 4, 10, 22, 0, 0, 0, cst),
		Comfortability:  "舒適",
		WeatherCode:     16,
	}
	testMoment = moment.Moment{
		Period:  moment.Night,
		Station: "臺北市",
		Sunrise: time.Date(2021, 4, 10, 5, 37, 0, 0, cst),
		Sunset:  time.Date(2021, 4, 10, 18, 15, 0, 0, cst),
	}
)

func TestNew(t *testing.T) {
	t.Run("default template parses", func(t *testing.T) {
		if _, err := New(config.DefaultCardTpl); err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
	})
	t.Run("invalid template fails", func(t *testing.T) {
		_, err := New("{{")
		if err == nil {
			t.Fatal("expected presenter creation to fail")
		}
		if !strings.Contains(err.Error(), "failed to parse card template") {
			t.Errorf("unexpected error: %s", err)
		}
	})
}

func TestPresenter_BuildContext(t *testing.T) {
	p, err := New(config.DefaultCardTpl)
	if err != nil {
		t.Fatalf("failed to create presenter: %s", err)
	}
	ctx := p.BuildContext(testModel, testMoment, time.Date(2021, 4, 10, 22, 5, 0, 0, cst))
	if ctx.Temperature != 23 {
		t.Errorf("expected rounded temperature to be 23, got %d", ctx.Temperature)
	}
	if ctx.Category != "thunderstorm" {
		t.Errorf("expected category to be thunderstorm, got %s", ctx.Category)
	}
	if ctx.CategoryLabel != "雷雨" {
		t.Errorf("expected category label to be 雷雨, got %s", ctx.CategoryLabel)
	}
	if ctx.Moment != "night" || ctx.Theme != "dark" {
		t.Errorf("expected night moment with dark theme, got %s/%s", ctx.Moment, ctx.Theme)
	}
	if ctx.MoonPhase == "" {
		t.Error("expected moon phase to be set")
	}
	if ctx.MoonPhaseIcon != MoonPhaseIcon[ctx.MoonPhase] {
		t.Errorf("expected moon phase icon for %q, got %q", ctx.MoonPhase, ctx.MoonPhaseIcon)
	}
}

func TestPresenter_Render(t *testing.T) {
	t.Run("default card renders all fields", func(t *testing.T) {
		p, err := New(config.DefaultCardTpl)
		if err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
		buf := bytes.NewBuffer(nil)
		if err = p.Render(buf, p.BuildContext(testModel, testMoment, time.Now())); err != nil {
			t.Fatalf("failed to render card: %s", err)
		}
		for _, want := range []string{"臺北", "午後短暫雷陣雨", "23°C", "雷雨", "1.1 m/s", "48%", "舒適", "22:00"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected card to contain %q, got:\n%s", want, buf.String())
			}
		}
		if strings.Contains(buf.String(), "…") {
			t.Error("expected loaded card not to show the loading marker")
		}
	})
	t.Run("card frame lines up with wide characters", func(t *testing.T) {
		p, err := New("{{.Location}}\nab\n{{.Description}}")
		if err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
		buf := bytes.NewBuffer(nil)
		if err = p.Render(buf, p.BuildContext(testModel, testMoment, time.Now())); err != nil {
			t.Fatalf("failed to render card: %s", err)
		}
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 5 {
			t.Fatalf("expected 5 lines, got %d", len(lines))
		}
		width := runewidth.StringWidth(lines[0])
		for _, line := range lines[1:] {
			if runewidth.StringWidth(line) != width {
				t.Errorf("expected line %q to be %d cells wide, got %d", line, width,
					runewidth.StringWidth(line))
			}
		}
	})
	t.Run("loading card shows marker and placeholder time", func(t *testing.T) {
		p, err := New(config.DefaultCardTpl)
		if err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
		buf := bytes.NewBuffer(nil)
		if err = p.Render(buf, p.BuildContext(weather.NewViewModel(), testMoment, time.Now())); err != nil {
			t.Fatalf("failed to render card: %s", err)
		}
		if !strings.Contains(buf.String(), "…") {
			t.Errorf("expected loading marker, got:\n%s", buf.String())
		}
		if !strings.Contains(buf.String(), "--:--") {
			t.Errorf("expected placeholder time, got:\n%s", buf.String())
		}
	})
	t.Run("failing template execution returns error", func(t *testing.T) {
		p, err := New("{{.DoesNotExist}}")
		if err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
		if err = p.Render(bytes.NewBuffer(nil), CardContext{}); err == nil {
			t.Fatal("expected rendering to fail")
		}
	})
}
