// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":  p.timeFormat,
		"floatFormat": p.floatFormat,
		"lc":          strings.ToLower,
		"uc":          strings.ToUpper,
	}
}

func (p *Presenter) timeFormat(val time.Time, fmt string) string {
	if val.IsZero() {
		return "--:--"
	}
	return val.Format(fmt)
}

func (p *Presenter) floatFormat(val float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, val)
}
