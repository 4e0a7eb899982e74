package carrito

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Busqueda is the cashier's search input split into quantity and term.
type Busqueda struct {
	Cantidad decimal.Decimal `json:"cantidad"`
	Termino  string          `json:"termino"`
}

// "3*pan", "2,5 * arroz", "0.75*queso"
var patronCantidad = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*\*\s*(.+)`)

var uno = decimal.NewFromInt(1)

// ParseBusqueda recognizes an optional "<cantidad>*" prefix. Comma and dot are
// both accepted as decimal separator. Without a usable prefix the quantity is 1
// and the whole input is the term.
func ParseBusqueda(raw string) Busqueda {
	q := strings.ToLower(strings.TrimSpace(raw))
	if m := patronCantidad.FindStringSubmatch(q); m != nil {
		cantidad, err := decimal.NewFromString(strings.Replace(m[1], ",", ".", 1))
		if err == nil && cantidad.IsPositive() {
			return Busqueda{Cantidad: cantidad, Termino: strings.TrimSpace(m[2])}
		}
	}
	return Busqueda{Cantidad: uno, Termino: q}
}

// RedondearDecena rounds x to the nearest multiple of ten pesos, halves away
// from zero.
func RedondearDecena(x decimal.Decimal) int64 {
	return x.Round(-1).IntPart()
}
