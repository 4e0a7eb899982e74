package service

import (
	"context"
	"io"
	"sort"
	"strconv"
	"time"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"
	"negocioapp/internal/infra"
	"negocioapp/internal/model"
	"negocioapp/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	formatoDia = "2006-01-02"
	// topProductos is the length of each product ranking.
	topProductos = 5
)

// RangoDia turns two calendar days of loc into the inclusive UTC range
// [desde 00:00:00.000, hasta 23:59:59.999]. Daylight-saving transitions are
// honoured: a day that starts at 01:00 because midnight was skipped starts at
// 01:00, and a 25-hour day keeps its repeated hour.
func RangoDia(desde, hasta string, loc *time.Location) (time.Time, time.Time, error) {
	// Parsed in UTC: a local midnight that does not exist would otherwise
	// normalise to the previous calendar day.
	d, err := time.Parse(formatoDia, desde)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("fecha desde inválida %q: use AAAA-MM-DD", desde)
	}
	h, err := time.Parse(formatoDia, hasta)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("fecha hasta inválida %q: use AAAA-MM-DD", hasta)
	}
	if h.Before(d) {
		return time.Time{}, time.Time{}, apperror.Validation("la fecha hasta (%s) es anterior a desde (%s)", hasta, desde)
	}
	inicio := inicioDia(d.Year(), d.Month(), d.Day(), loc)
	fin := inicioDia(h.Year(), h.Month(), h.Day()+1, loc).Add(-time.Millisecond)
	return inicio.UTC(), fin.UTC(), nil
}

// inicioDia returns the first instant of the local day. When midnight falls
// in a daylight-saving gap, time.Date may resolve it with either offset; the
// day then starts at the transition.
func inicioDia(y int, m time.Month, d int, loc *time.Location) time.Time {
	y, m, d = time.Date(y, m, d, 12, 0, 0, 0, loc).Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	switch {
	case t.Day() != d:
		// midnight resolved to an instant before the gap, on the previous day
		_, fin := t.ZoneBounds()
		return fin
	case t.Hour() != 0 || t.Minute() != 0:
		inicio, _ := t.ZoneBounds()
		return inicio
	}
	return t
}

// CalcularEstadisticas aggregates the sales of a report. Products are grouped
// by id; provisional and deleted products are grouped by name.
func CalcularEstadisticas(ventas []model.Venta) dto.EstadisticasResponse {
	est := dto.EstadisticasResponse{
		CantidadVentas: len(ventas),
		Promedio:       decimal.Zero,
		MasVendidos:    []dto.ProductoRanking{},
		MayorIngreso:   []dto.ProductoRanking{},
	}
	if len(ventas) == 0 {
		return est
	}

	porProducto := make(map[string]*dto.ProductoRanking)
	var orden []string
	for i, v := range ventas {
		est.Ingresos += v.Total
		if i == 0 || v.Total > est.VentaMayor {
			est.VentaMayor = v.Total
		}
		for _, it := range v.Items {
			clave := "n:" + it.NombreProducto
			if it.ProductoID != nil {
				clave = "p:" + strconv.FormatInt(*it.ProductoID, 10)
			}
			r, ok := porProducto[clave]
			if !ok {
				r = &dto.ProductoRanking{ProductoID: it.ProductoID, Nombre: it.NombreProducto, Cantidad: decimal.Zero}
				porProducto[clave] = r
				orden = append(orden, clave)
			}
			r.Cantidad = r.Cantidad.Add(it.Cantidad)
			r.Ingreso += it.Subtotal
		}
	}
	est.Promedio = decimal.NewFromInt(est.Ingresos).
		Div(decimal.NewFromInt(int64(len(ventas)))).
		Round(2)

	filas := make([]dto.ProductoRanking, 0, len(orden))
	for _, k := range orden {
		filas = append(filas, *porProducto[k])
	}

	porCantidad := append([]dto.ProductoRanking(nil), filas...)
	sort.SliceStable(porCantidad, func(i, j int) bool {
		if c := porCantidad[i].Cantidad.Cmp(porCantidad[j].Cantidad); c != 0 {
			return c > 0
		}
		return porCantidad[i].Nombre < porCantidad[j].Nombre
	})
	porIngreso := append([]dto.ProductoRanking(nil), filas...)
	sort.SliceStable(porIngreso, func(i, j int) bool {
		if porIngreso[i].Ingreso != porIngreso[j].Ingreso {
			return porIngreso[i].Ingreso > porIngreso[j].Ingreso
		}
		return porIngreso[i].Nombre < porIngreso[j].Nombre
	})
	est.MasVendidos = primeros(porCantidad, topProductos)
	est.MayorIngreso = primeros(porIngreso, topProductos)
	return est
}

func primeros(filas []dto.ProductoRanking, n int) []dto.ProductoRanking {
	if len(filas) > n {
		return filas[:n]
	}
	return filas
}

// ReporteService builds the sales report for a range of local calendar days.
type ReporteService interface {
	Generar(ctx context.Context, filtro dto.RangoFilter) (*dto.ReporteVentasResponse, error)
	EscribirPDF(ctx context.Context, w io.Writer, filtro dto.RangoFilter) error
	EscribirTicket(ctx context.Context, w io.Writer, ventaID int64) error
}

type reporteService struct {
	ventaRepo repository.VentaRepository
	loc       *time.Location
	negocio   string
}

func NewReporteService(ventaRepo repository.VentaRepository, loc *time.Location, negocio string) ReporteService {
	return &reporteService{ventaRepo: ventaRepo, loc: loc, negocio: negocio}
}

func (s *reporteService) Generar(ctx context.Context, filtro dto.RangoFilter) (*dto.ReporteVentasResponse, error) {
	desde, hasta, err := RangoDia(filtro.Desde, filtro.Hasta, s.loc)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListRango(ctx, desde, hasta)
	if err != nil {
		return nil, storeErr("consultar ventas del reporte", err)
	}
	resp := &dto.ReporteVentasResponse{
		Desde:        filtro.Desde,
		Hasta:        filtro.Hasta,
		DesdeUTC:     desde,
		HastaUTC:     hasta,
		Ventas:       make([]dto.VentaResponse, 0, len(ventas)),
		Estadisticas: CalcularEstadisticas(ventas),
	}
	for i := range ventas {
		resp.Ventas = append(resp.Ventas, *ventaToResponse(&ventas[i]))
	}
	return resp, nil
}

func (s *reporteService) EscribirPDF(ctx context.Context, w io.Writer, filtro dto.RangoFilter) error {
	rep, err := s.Generar(ctx, filtro)
	if err != nil {
		return err
	}
	return storeErr("generar PDF", infra.WriteReporteVentasPDF(w, s.negocio, *rep, s.loc))
}

func (s *reporteService) EscribirTicket(ctx context.Context, w io.Writer, ventaID int64) error {
	v, err := s.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return noEncontrado("obtener venta", err, "venta %d no encontrada", ventaID)
	}
	return storeErr("generar ticket", infra.WriteTicketPDF(w, s.negocio, *ventaToResponse(v), s.loc))
}
