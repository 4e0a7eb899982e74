package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductoRanking aggregates the sold lines of one product. ProductoID is nil
// for provisional or deleted products, which are grouped by name.
type ProductoRanking struct {
	ProductoID *int64          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Ingreso    int64           `json:"ingreso"`
}

type EstadisticasResponse struct {
	Ingresos       int64             `json:"ingresos"`
	CantidadVentas int               `json:"cantidad_ventas"`
	Promedio       decimal.Decimal   `json:"promedio"`
	VentaMayor     int64             `json:"venta_mayor"`
	MasVendidos    []ProductoRanking `json:"mas_vendidos"`
	MayorIngreso   []ProductoRanking `json:"mayor_ingreso"`
}

type ReporteVentasResponse struct {
	Desde        string               `json:"desde"`
	Hasta        string               `json:"hasta"`
	DesdeUTC     time.Time            `json:"desde_utc"`
	HastaUTC     time.Time            `json:"hasta_utc"`
	Ventas       []VentaResponse      `json:"ventas"`
	Estadisticas EstadisticasResponse `json:"estadisticas"`
}

type RespaldoRequest struct {
	// Ruta of the backup file relative to BACKUP_DIR; empty means a
	// timestamped file there.
	Ruta string `json:"ruta" validate:"omitempty,max=500"`
}

type RespaldoResponse struct {
	Ruta string `json:"ruta"`
}
