package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// BusquedaRequest carries the raw search box text, e.g. "3*pan".
type BusquedaRequest struct {
	Texto string `json:"texto" validate:"required,max=200"`
}

type AgregarLineaRequest struct {
	ProductoID int64            `json:"producto_id" validate:"required,gt=0"`
	Cantidad   *decimal.Decimal `json:"cantidad"    validate:"omitempty,gt=0"`
}

type ProvisionalRequest struct {
	Nombre   string           `json:"nombre"   validate:"required,max=120"`
	Precio   int64            `json:"precio"   validate:"min=0"`
	Cantidad *decimal.Decimal `json:"cantidad" validate:"omitempty,gt=0"`
}

type AjustarLineaRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

// CobroRequest confirms the payment. Without Pago the exact total is assumed.
type CobroRequest struct {
	Pago       *int64  `json:"pago"        validate:"omitempty,min=0"`
	MetodoPago *string `json:"metodo_pago" validate:"omitempty,max=30"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LineaResponse struct {
	ProductoID   int64           `json:"producto_id"`
	Nombre       string          `json:"nombre"`
	Precio       int64           `json:"precio"`
	SufijoPrecio string          `json:"sufijo_precio,omitempty"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	Provisional  bool            `json:"provisional"`
	Subtotal     int64           `json:"subtotal"`
}

type CarritoResponse struct {
	ID         string          `json:"id"`
	Estado     string          `json:"estado"`
	Lineas     []LineaResponse `json:"lineas"`
	Total      int64           `json:"total"`
	TotalTexto string          `json:"total_texto"`
}

// BusquedaResponse reports how the term resolved. Carrito is set only when a
// single product matched and was added.
type BusquedaResponse struct {
	Cantidad   decimal.Decimal    `json:"cantidad"`
	Termino    string             `json:"termino"`
	Resolucion ResolucionResponse `json:"resolucion"`
	Carrito    *CarritoResponse   `json:"carrito,omitempty"`
}

type CobroResponse struct {
	Venta       VentaResponse `json:"venta"`
	Total       int64         `json:"total"`
	Pago        int64         `json:"pago"`
	Vuelto      int64         `json:"vuelto"`
	VueltoTexto string        `json:"vuelto_texto"`
}
