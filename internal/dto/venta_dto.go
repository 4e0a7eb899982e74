package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Filter ─────────────────────────────────────────────────────────────────

// RangoFilter is bound from the query string of range endpoints. Both days
// are calendar days in the shop's timezone and both are inclusive.
type RangoFilter struct {
	Desde string `form:"desde" validate:"required,datetime=2006-01-02"`
	Hasta string `form:"hasta" validate:"required,datetime=2006-01-02"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemVentaRequest is a line of a manually registered sale. With ProductoID
// the name and price come from the catalog unless Precio overrides the price;
// without it Nombre and Precio are required.
type ItemVentaRequest struct {
	ProductoID *int64          `json:"producto_id" validate:"omitempty,gt=0"`
	Nombre     *string         `json:"nombre"      validate:"omitempty,max=120"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required,gt=0"`
	Precio     *int64          `json:"precio"      validate:"omitempty,min=0"`
}

type RegistrarVentaRequest struct {
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	MetodoPago *string            `json:"metodo_pago" validate:"omitempty,max=30"`
}

type ActualizarVentaRequest struct {
	MetodoPago *string `json:"metodo_pago" validate:"omitempty,max=30"`
}

type ActualizarItemRequest struct {
	Nombre   *string          `json:"nombre"   validate:"omitempty,max=120"`
	Cantidad *decimal.Decimal `json:"cantidad" validate:"omitempty,gt=0"`
	Precio   *int64           `json:"precio"   validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaItemResponse struct {
	ID             int64           `json:"id"`
	VentaID        int64           `json:"venta_id"`
	ProductoID     *int64          `json:"producto_id"`
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Precio         int64           `json:"precio"`
	Subtotal       int64           `json:"subtotal"`
}

type VentaResponse struct {
	ID         int64               `json:"id"`
	Total      int64               `json:"total"`
	TotalTexto string              `json:"total_texto"`
	MetodoPago *string             `json:"metodo_pago"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []VentaItemResponse `json:"items"`
}
