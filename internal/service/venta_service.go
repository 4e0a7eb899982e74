package service

import (
	"context"
	"strings"
	"time"

	"negocioapp/internal/apperror"
	"negocioapp/internal/carrito"
	"negocioapp/internal/dto"
	"negocioapp/internal/model"
	"negocioapp/internal/moneda"
	"negocioapp/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	// RegistrarDesdeCarrito posts the lines of a paid cart as one sale.
	RegistrarDesdeCarrito(ctx context.Context, lineas []carrito.Linea, metodoPago *string) (*dto.VentaResponse, error)
	// Registrar posts a sale entered by hand from the sales tab.
	Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*dto.VentaResponse, error)
	// Listar returns the sales created in [desde, hasta], both inclusive.
	Listar(ctx context.Context, desde, hasta time.Time) ([]dto.VentaResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id int64) error

	// Item edits recompute the sale total in the same transaction. They never
	// touch catalog rows.
	AgregarItem(ctx context.Context, ventaID int64, req dto.ItemVentaRequest) (*dto.VentaResponse, error)
	ActualizarItem(ctx context.Context, itemID int64, req dto.ActualizarItemRequest) (*dto.VentaResponse, error)
	EliminarItem(ctx context.Context, itemID int64) (*dto.VentaResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
}

func NewVentaService(repo repository.VentaRepository, productoRepo repository.ProductoRepository) VentaService {
	return &ventaService{repo: repo, productoRepo: productoRepo}
}

// lineaVenta is a resolved line ready to be stored.
type lineaVenta struct {
	productoID *int64
	nombre     string
	precio     int64
	cantidad   decimal.Decimal
}

// subtotalItem is cantidad × precio rounded to the whole peso.
func subtotalItem(cantidad decimal.Decimal, precio int64) int64 {
	return cantidad.Mul(decimal.NewFromInt(precio)).Round(0).IntPart()
}

// totalVenta sums each line rounded to the nearest ten, the same rule the
// cart uses.
func totalVenta(items []model.VentaItem) int64 {
	var total int64
	for _, it := range items {
		total += carrito.RedondearDecena(it.Cantidad.Mul(decimal.NewFromInt(it.Precio)))
	}
	return total
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Full ACID transaction:
//   1. Re-check every catalog product inside the tx
//   2. Create venta + items with total = Σ line rounded to ten
//   3. COMMIT, or roll everything back on the first failure

func (s *ventaService) RegistrarDesdeCarrito(ctx context.Context, lineas []carrito.Linea, metodoPago *string) (*dto.VentaResponse, error) {
	if len(lineas) == 0 {
		return nil, apperror.Validation("el carrito está vacío")
	}
	var venta model.Venta
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		productos := s.productoRepo.WithTx(tx)
		resueltas := make([]lineaVenta, 0, len(lineas))
		for _, l := range lineas {
			lv := lineaVenta{nombre: l.Nombre, precio: l.Precio, cantidad: l.Cantidad}
			if !l.Provisional {
				if _, err := productos.FindByID(ctx, l.ProductoID); err != nil {
					return noEncontrado("verificar producto", err,
						"el producto %s ya no existe en el catálogo; quítelo del carrito", l.Nombre)
				}
				id := l.ProductoID
				lv.productoID = &id
			}
			resueltas = append(resueltas, lv)
		}
		var err error
		venta, err = s.crearVenta(ctx, tx, resueltas, metodoPago)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("venta_id", venta.ID).Int64("total", venta.Total).Int("items", len(venta.Items)).Msg("venta registrada")
	return ventaToResponse(&venta), nil
}

func (s *ventaService) Registrar(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperror.Validation("la venta debe tener al menos un ítem")
	}
	var venta model.Venta
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		resueltas := make([]lineaVenta, 0, len(req.Items))
		for _, item := range req.Items {
			lv, err := s.resolverItem(ctx, tx, item)
			if err != nil {
				return err
			}
			resueltas = append(resueltas, lv)
		}
		var err error
		venta, err = s.crearVenta(ctx, tx, resueltas, req.MetodoPago)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("venta_id", venta.ID).Int64("total", venta.Total).Msg("venta manual registrada")
	return ventaToResponse(&venta), nil
}

// resolverItem fills name and price of a manual item from the catalog when it
// references a product.
func (s *ventaService) resolverItem(ctx context.Context, tx *gorm.DB, item dto.ItemVentaRequest) (lineaVenta, error) {
	if !item.Cantidad.IsPositive() {
		return lineaVenta{}, apperror.Validation("la cantidad debe ser mayor a cero")
	}
	if item.Precio != nil && *item.Precio < 0 {
		return lineaVenta{}, apperror.Validation("el precio no puede ser negativo")
	}
	lv := lineaVenta{cantidad: item.Cantidad}
	if item.ProductoID != nil {
		p, err := s.productoRepo.WithTx(tx).FindByID(ctx, *item.ProductoID)
		if err != nil {
			return lineaVenta{}, noEncontrado("obtener producto", err, "producto %d no encontrado", *item.ProductoID)
		}
		id := p.ID
		lv.productoID = &id
		lv.nombre = p.Nombre
		lv.precio = p.Precio
		if item.Nombre != nil && strings.TrimSpace(*item.Nombre) != "" {
			lv.nombre = strings.TrimSpace(*item.Nombre)
		}
		if item.Precio != nil {
			lv.precio = *item.Precio
		}
		return lv, nil
	}
	if item.Nombre == nil || strings.TrimSpace(*item.Nombre) == "" || item.Precio == nil {
		return lineaVenta{}, apperror.Validation("un ítem sin producto requiere nombre y precio")
	}
	lv.nombre = strings.TrimSpace(*item.Nombre)
	lv.precio = *item.Precio
	return lv, nil
}

func (s *ventaService) crearVenta(ctx context.Context, tx *gorm.DB, lineas []lineaVenta, metodoPago *string) (model.Venta, error) {
	venta := model.Venta{MetodoPago: metodoOpcional(metodoPago)}
	for _, l := range lineas {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     l.productoID,
			NombreProducto: l.nombre,
			Cantidad:       l.cantidad,
			Precio:         l.precio,
			Subtotal:       subtotalItem(l.cantidad, l.precio),
		})
	}
	venta.Total = totalVenta(venta.Items)
	if err := s.repo.WithTx(tx).Create(ctx, &venta); err != nil {
		return model.Venta{}, storeErr("registrar venta", err)
	}
	return venta, nil
}

func metodoOpcional(m *string) *string {
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(*m)
	if v == "" {
		return nil
	}
	return &v
}

// ── Consulta y mantenimiento ─────────────────────────────────────────────────

func (s *ventaService) ObtenerPorID(ctx context.Context, id int64) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado("obtener venta", err, "venta %d no encontrada", id)
	}
	return ventaToResponse(v), nil
}

func (s *ventaService) Listar(ctx context.Context, desde, hasta time.Time) ([]dto.VentaResponse, error) {
	if hasta.Before(desde) {
		return nil, apperror.Validation("el rango de fechas es inválido")
	}
	ventas, err := s.repo.ListRango(ctx, desde, hasta)
	if err != nil {
		return nil, storeErr("listar ventas", err)
	}
	out := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		out = append(out, *ventaToResponse(&ventas[i]))
	}
	return out, nil
}

func (s *ventaService) Actualizar(ctx context.Context, id int64, req dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, noEncontrado("obtener venta", err, "venta %d no encontrada", id)
	}
	if err := s.repo.UpdateMetodoPago(ctx, id, metodoOpcional(req.MetodoPago)); err != nil {
		return nil, storeErr("actualizar venta", err)
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *ventaService) Eliminar(ctx context.Context, id int64) error {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			return noEncontrado("obtener venta", err, "venta %d no encontrada", id)
		}
		return storeErr("eliminar venta", repo.Delete(ctx, id))
	})
	if err == nil {
		log.Info().Int64("venta_id", id).Msg("venta eliminada")
	}
	return err
}

func (s *ventaService) AgregarItem(ctx context.Context, ventaID int64, req dto.ItemVentaRequest) (*dto.VentaResponse, error) {
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, ventaID); err != nil {
			return noEncontrado("obtener venta", err, "venta %d no encontrada", ventaID)
		}
		lv, err := s.resolverItem(ctx, tx, req)
		if err != nil {
			return err
		}
		it := &model.VentaItem{
			VentaID:        ventaID,
			ProductoID:     lv.productoID,
			NombreProducto: lv.nombre,
			Cantidad:       lv.cantidad,
			Precio:         lv.precio,
			Subtotal:       subtotalItem(lv.cantidad, lv.precio),
		}
		if err := repo.CreateItem(ctx, it); err != nil {
			return storeErr("agregar ítem", err)
		}
		return recalcularTotal(ctx, repo, ventaID)
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, ventaID)
}

func (s *ventaService) ActualizarItem(ctx context.Context, itemID int64, req dto.ActualizarItemRequest) (*dto.VentaResponse, error) {
	var ventaID int64
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		it, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			return noEncontrado("obtener ítem", err, "ítem %d no encontrado", itemID)
		}
		if req.Nombre != nil {
			nombre := strings.TrimSpace(*req.Nombre)
			if nombre == "" {
				return apperror.Validation("el nombre del ítem es requerido")
			}
			it.NombreProducto = nombre
		}
		if req.Cantidad != nil {
			if !req.Cantidad.IsPositive() {
				return apperror.Validation("la cantidad debe ser mayor a cero")
			}
			it.Cantidad = *req.Cantidad
		}
		if req.Precio != nil {
			if *req.Precio < 0 {
				return apperror.Validation("el precio no puede ser negativo")
			}
			it.Precio = *req.Precio
		}
		it.Subtotal = subtotalItem(it.Cantidad, it.Precio)
		if err := repo.UpdateItem(ctx, it); err != nil {
			return storeErr("actualizar ítem", err)
		}
		ventaID = it.VentaID
		return recalcularTotal(ctx, repo, ventaID)
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, ventaID)
}

func (s *ventaService) EliminarItem(ctx context.Context, itemID int64) (*dto.VentaResponse, error) {
	var ventaID int64
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		it, err := repo.FindItemByID(ctx, itemID)
		if err != nil {
			return noEncontrado("obtener ítem", err, "ítem %d no encontrado", itemID)
		}
		ventaID = it.VentaID
		if err := repo.DeleteItem(ctx, itemID); err != nil {
			return storeErr("eliminar ítem", err)
		}
		return recalcularTotal(ctx, repo, ventaID)
	})
	if err != nil {
		return nil, err
	}
	return s.ObtenerPorID(ctx, ventaID)
}

// recalcularTotal must run on a repository bound to the item edit's tx.
func recalcularTotal(ctx context.Context, repo repository.VentaRepository, ventaID int64) error {
	items, err := repo.ListItems(ctx, ventaID)
	if err != nil {
		return storeErr("recalcular total", err)
	}
	return storeErr("recalcular total", repo.UpdateTotal(ctx, ventaID, totalVenta(items)))
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.VentaItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, dto.VentaItemResponse{
			ID:             it.ID,
			VentaID:        it.VentaID,
			ProductoID:     it.ProductoID,
			NombreProducto: it.NombreProducto,
			Cantidad:       it.Cantidad,
			Precio:         it.Precio,
			Subtotal:       it.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:         v.ID,
		Total:      v.Total,
		TotalTexto: moneda.Formatear(v.Total),
		MetodoPago: v.MetodoPago,
		CreatedAt:  v.CreatedAt.UTC(),
		Items:      items,
	}
}

