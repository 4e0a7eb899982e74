// Package moneda formats peso amounts the way the register displays them.
package moneda

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// Formatear renders a whole-peso amount with Chilean digit grouping, e.g. "$5.990".
func Formatear(monto int64) string {
	if monto < 0 {
		return "-$" + printer.Sprintf("%d", -monto)
	}
	return "$" + printer.Sprintf("%d", monto)
}
