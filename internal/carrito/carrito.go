// Package carrito holds the in-memory cart of the sale being built at the
// register. It knows nothing about storage: the service layer resolves products
// before adding them and persists the sale after a successful payment check.
package carrito

import (
	"strings"

	"negocioapp/internal/apperror"

	"github.com/shopspring/decimal"
)

// Estado of a cart session.
type Estado string

const (
	EstadoVacio         Estado = "vacio"
	EstadoConstruyendo  Estado = "construyendo"
	EstadoPendientePago Estado = "pendiente_pago"
)

// Articulo is the catalog data a line needs; it is copied into the line so
// later catalog edits do not change a cart already being built.
type Articulo struct {
	ID           int64
	Nombre       string
	Precio       int64
	SufijoPrecio string
}

// Linea is one cart entry. Provisional lines have a negative ProductoID.
type Linea struct {
	ProductoID   int64           `json:"producto_id"`
	Nombre       string          `json:"nombre"`
	Precio       int64           `json:"precio"`
	SufijoPrecio string          `json:"sufijo_precio,omitempty"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	Provisional  bool            `json:"provisional"`
}

// Importe is cantidad × precio without rounding.
func (l Linea) Importe() decimal.Decimal {
	return l.Cantidad.Mul(decimal.NewFromInt(l.Precio))
}

// Subtotal is the line amount rounded to the nearest ten.
func (l Linea) Subtotal() int64 {
	return RedondearDecena(l.Importe())
}

// Cobro is the outcome of a successful payment check.
type Cobro struct {
	Total  int64 `json:"total"`
	Pago   int64 `json:"pago"`
	Vuelto int64 `json:"vuelto"`
}

type Carrito struct {
	lineas []Linea
	estado Estado
	// last synthetic id handed to a provisional line
	ultimoProvisional int64
}

func Nuevo() *Carrito {
	return &Carrito{estado: EstadoVacio}
}

func (c *Carrito) Estado() Estado { return c.estado }

// Lineas returns a copy of the lines in insertion order.
func (c *Carrito) Lineas() []Linea {
	out := make([]Linea, len(c.lineas))
	copy(out, c.lineas)
	return out
}

func (c *Carrito) Vacio() bool { return len(c.lineas) == 0 }

// Agregar adds cantidad of a catalog product. An existing line accumulates.
func (c *Carrito) Agregar(a Articulo, cantidad decimal.Decimal) error {
	if err := c.editable(); err != nil {
		return err
	}
	if a.ID <= 0 {
		return apperror.Validation("producto inválido")
	}
	if a.Precio < 0 {
		return apperror.Validation("el precio no puede ser negativo")
	}
	if !cantidad.IsPositive() {
		return apperror.Validation("la cantidad debe ser mayor a cero")
	}
	if i := c.indice(a.ID); i >= 0 {
		c.lineas[i].Cantidad = c.lineas[i].Cantidad.Add(cantidad)
		return nil
	}
	c.lineas = append(c.lineas, Linea{
		ProductoID:   a.ID,
		Nombre:       a.Nombre,
		Precio:       a.Precio,
		SufijoPrecio: a.SufijoPrecio,
		Cantidad:     cantidad,
	})
	c.sincronizarEstado()
	return nil
}

// AgregarProvisional registers an item that is not in the catalog.
func (c *Carrito) AgregarProvisional(nombre string, precio int64, cantidad decimal.Decimal) (Linea, error) {
	if err := c.editable(); err != nil {
		return Linea{}, err
	}
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return Linea{}, apperror.Validation("el nombre del producto provisional es requerido")
	}
	if precio < 0 {
		return Linea{}, apperror.Validation("el precio no puede ser negativo")
	}
	if !cantidad.IsPositive() {
		return Linea{}, apperror.Validation("la cantidad debe ser mayor a cero")
	}
	c.ultimoProvisional--
	l := Linea{
		ProductoID:  c.ultimoProvisional,
		Nombre:      nombre,
		Precio:      precio,
		Cantidad:    cantidad,
		Provisional: true,
	}
	c.lineas = append(c.lineas, l)
	c.sincronizarEstado()
	return l, nil
}

// Ajustar adds delta units to a line. A line that reaches zero or less is removed.
func (c *Carrito) Ajustar(productoID int64, delta int64) error {
	if err := c.editable(); err != nil {
		return err
	}
	if delta == 0 {
		return apperror.Validation("el ajuste debe ser distinto de cero")
	}
	i := c.indice(productoID)
	if i < 0 {
		return apperror.NotFound("el producto %d no está en el carrito", productoID)
	}
	nueva := c.lineas[i].Cantidad.Add(decimal.NewFromInt(delta))
	if !nueva.IsPositive() {
		c.quitar(i)
		return nil
	}
	c.lineas[i].Cantidad = nueva
	return nil
}

func (c *Carrito) Quitar(productoID int64) error {
	if err := c.editable(); err != nil {
		return err
	}
	i := c.indice(productoID)
	if i < 0 {
		return apperror.NotFound("el producto %d no está en el carrito", productoID)
	}
	c.quitar(i)
	return nil
}

// Total sums the per-line subtotals, each already rounded to the nearest ten.
func (c *Carrito) Total() int64 {
	var total int64
	for _, l := range c.lineas {
		total += l.Subtotal()
	}
	return total
}

// IniciarCobro moves the cart to pendiente_pago. Lines are frozen until the
// payment is confirmed or cancelled.
func (c *Carrito) IniciarCobro() error {
	if c.Vacio() {
		return apperror.Validation("el carrito está vacío")
	}
	c.estado = EstadoPendientePago
	return nil
}

func (c *Carrito) CancelarCobro() error {
	if c.estado != EstadoPendientePago {
		return apperror.Conflict("no hay un cobro en curso")
	}
	c.estado = EstadoConstruyendo
	return nil
}

// ValidarPago checks the tendered amount against the total. A nil pago means
// the exact total was received. It never mutates the cart.
func (c *Carrito) ValidarPago(pago *int64) (Cobro, error) {
	if c.Vacio() {
		return Cobro{}, apperror.Validation("el carrito está vacío")
	}
	total := c.Total()
	recibido := total
	if pago != nil {
		if *pago < total {
			return Cobro{}, apperror.Validation("el pago (%d) es menor al total de la venta (%d)", *pago, total)
		}
		recibido = *pago
	}
	return Cobro{Total: total, Pago: recibido, Vuelto: recibido - total}, nil
}

// Vaciar clears the cart after a committed sale or a discarded session.
func (c *Carrito) Vaciar() {
	c.lineas = nil
	c.estado = EstadoVacio
}

func (c *Carrito) editable() error {
	if c.estado == EstadoPendientePago {
		return apperror.Conflict("hay un cobro en curso; cancélelo para modificar el carrito")
	}
	return nil
}

func (c *Carrito) indice(productoID int64) int {
	for i, l := range c.lineas {
		if l.ProductoID == productoID {
			return i
		}
	}
	return -1
}

func (c *Carrito) quitar(i int) {
	c.lineas = append(c.lineas[:i], c.lineas[i+1:]...)
	c.sincronizarEstado()
}

func (c *Carrito) sincronizarEstado() {
	switch {
	case len(c.lineas) == 0:
		c.estado = EstadoVacio
	case c.estado == EstadoVacio:
		c.estado = EstadoConstruyendo
	}
}
