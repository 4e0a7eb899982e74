package infra

// pdf.go: PDF rendering using go-pdf/fpdf.
//   - Ticket: receipt-sized copy of one sale (items, quantities, subtotals, total)
//   - Sales report: the day-range report with summary figures, top products
//     and the list of sales
//
// Core fonts are cp1252; text goes through the UTF-8 translator so accents
// and "ñ" print correctly.

import (
	"fmt"
	"io"
	"time"

	"negocioapp/internal/dto"
	"negocioapp/internal/moneda"

	"github.com/go-pdf/fpdf"
)

// WriteTicketPDF renders a receipt for one sale. Times are shown in loc.
func WriteTicketPDF(w io.Writer, negocio string, venta dto.VentaResponse, loc *time.Location) error {
	// 80mm thermal roll; height grows with the number of items
	alto := 60 + float64(len(venta.Items))*5
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 80, Ht: alto},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, tr(negocio), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 4, tr(fmt.Sprintf("Venta N° %d", venta.ID)), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 4, venta.CreatedAt.In(loc).Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // product name
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range venta.Items {
		pdf.CellFormat(col1, 5, tr(truncar(item.NombreProducto, 24)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "x"+item.Cantidad.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, moneda.Formatear(item.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, moneda.Formatear(venta.Total), "", 1, "R", false, 0, "")
	if venta.MetodoPago != nil {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(contentW, 4, tr("Pago: "+*venta.MetodoPago), "", 1, "L", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("¡Gracias por su compra!"), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: ticket: %w", err)
	}
	return nil
}

// WriteReporteVentasPDF renders the sales report on A4 pages.
func WriteReporteVentasPDF(w io.Writer, negocio string, rep dto.ReporteVentasResponse, loc *time.Location) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Página %d/{nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(contentW, 8, tr(negocio), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	periodo := rep.Desde
	if rep.Hasta != rep.Desde {
		periodo = rep.Desde + " al " + rep.Hasta
	}
	pdf.CellFormat(contentW, 6, tr("Reporte de ventas: "+periodo), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Summary ──────────────────────────────────────────────────────────────
	est := rep.Estadisticas
	resumen := [][2]string{
		{"Ingresos", moneda.Formatear(est.Ingresos)},
		{"Cantidad de ventas", fmt.Sprintf("%d", est.CantidadVentas)},
		{"Venta promedio", "$" + est.Promedio.StringFixed(2)},
		{"Venta mayor", moneda.Formatear(est.VentaMayor)},
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range resumen {
		pdf.CellFormat(contentW*0.4, 6, tr(r[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.3, 6, r[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)

	rankingPDF(pdf, tr, contentW, "Más vendidos (cantidad)", est.MasVendidos)
	rankingPDF(pdf, tr, contentW, "Mayor ingreso", est.MayorIngreso)

	// ── Sales ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 7, "Ventas", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW*0.15, 6, tr("N°"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.30, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 6, "Items", "B", 0, "C", false, 0, "")
	pdf.CellFormat(contentW*0.20, 6, "Pago", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.20, 6, "Total", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, v := range rep.Ventas {
		metodo := "-"
		if v.MetodoPago != nil {
			metodo = *v.MetodoPago
		}
		pdf.CellFormat(contentW*0.15, 5, fmt.Sprintf("%d", v.ID), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.30, 5, v.CreatedAt.In(loc).Format("02/01/2006 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 5, fmt.Sprintf("%d", len(v.Items)), "", 0, "C", false, 0, "")
		pdf.CellFormat(contentW*0.20, 5, tr(truncar(metodo, 16)), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.20, 5, moneda.Formatear(v.Total), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: reporte: %w", err)
	}
	return nil
}

func rankingPDF(pdf *fpdf.Fpdf, tr func(string) string, contentW float64, titulo string, filas []dto.ProductoRanking) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 7, tr(titulo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW*0.55, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.20, 6, "Cantidad", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.25, 6, "Ingreso", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, f := range filas {
		pdf.CellFormat(contentW*0.55, 5, tr(truncar(f.Nombre, 50)), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.20, 5, f.Cantidad.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5, moneda.Formatear(f.Ingreso), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

// truncar cuts s to n runes.
func truncar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
