package service

import (
	"context"
	"sync"

	"negocioapp/internal/apperror"
	"negocioapp/internal/carrito"
	"negocioapp/internal/dto"
	"negocioapp/internal/moneda"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CarritoService keeps the open carts of the register in memory, keyed by a
// session id, and turns a paid cart into a posted sale.
type CarritoService interface {
	Crear(ctx context.Context) dto.CarritoResponse
	Obtener(ctx context.Context, id string) (*dto.CarritoResponse, error)
	Descartar(ctx context.Context, id string) error

	// Buscar parses "3*pan" style input and adds the product when the term
	// resolves to exactly one. Otherwise it only reports the resolution.
	Buscar(ctx context.Context, id string, req dto.BusquedaRequest) (*dto.BusquedaResponse, error)
	AgregarProducto(ctx context.Context, id string, req dto.AgregarLineaRequest) (*dto.CarritoResponse, error)
	AgregarProvisional(ctx context.Context, id string, req dto.ProvisionalRequest) (*dto.CarritoResponse, error)
	AgregarPorAtajo(ctx context.Context, id string, tecla string) (*dto.CarritoResponse, error)
	Ajustar(ctx context.Context, id string, productoID int64, req dto.AjustarLineaRequest) (*dto.CarritoResponse, error)
	Quitar(ctx context.Context, id string, productoID int64) (*dto.CarritoResponse, error)

	IniciarCobro(ctx context.Context, id string) (*dto.CarritoResponse, error)
	CancelarCobro(ctx context.Context, id string) (*dto.CarritoResponse, error)
	// Cobrar checks the payment, posts the sale and clears the cart. On any
	// failure the cart is left exactly as it was.
	Cobrar(ctx context.Context, id string, req dto.CobroRequest) (*dto.CobroResponse, error)
}

type carritoService struct {
	productos ProductoService
	ventas    VentaService

	mu       sync.Mutex
	sesiones map[uuid.UUID]*carrito.Carrito
}

func NewCarritoService(productos ProductoService, ventas VentaService) CarritoService {
	return &carritoService{
		productos: productos,
		ventas:    ventas,
		sesiones:  make(map[uuid.UUID]*carrito.Carrito),
	}
}

func carritoToResponse(id uuid.UUID, c *carrito.Carrito) *dto.CarritoResponse {
	lineas := c.Lineas()
	resp := &dto.CarritoResponse{
		ID:     id.String(),
		Estado: string(c.Estado()),
		Lineas: make([]dto.LineaResponse, 0, len(lineas)),
	}
	for _, l := range lineas {
		resp.Lineas = append(resp.Lineas, dto.LineaResponse{
			ProductoID:   l.ProductoID,
			Nombre:       l.Nombre,
			Precio:       l.Precio,
			SufijoPrecio: l.SufijoPrecio,
			Cantidad:     l.Cantidad,
			Provisional:  l.Provisional,
			Subtotal:     l.Subtotal(),
		})
	}
	resp.Total = c.Total()
	resp.TotalTexto = moneda.Formatear(resp.Total)
	return resp
}

func articulo(p *dto.ProductoResponse) carrito.Articulo {
	return carrito.Articulo{ID: p.ID, Nombre: p.Nombre, Precio: p.Precio, SufijoPrecio: p.SufijoPrecio}
}

func cantidadOUno(c *decimal.Decimal) decimal.Decimal {
	if c == nil {
		return decimal.NewFromInt(1)
	}
	return *c
}

// sesion must be called with s.mu held.
func (s *carritoService) sesion(id string) (uuid.UUID, *carrito.Carrito, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, nil, apperror.Validation("id de carrito inválido")
	}
	c, ok := s.sesiones[uid]
	if !ok {
		return uuid.Nil, nil, apperror.NotFound("carrito %s no encontrado", id)
	}
	return uid, c, nil
}

// editar runs fn on the cart under the lock and returns its new state.
func (s *carritoService) editar(id string, fn func(c *carrito.Carrito) error) (*dto.CarritoResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, c, err := s.sesion(id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	return carritoToResponse(uid, c), nil
}

func (s *carritoService) Crear(ctx context.Context) dto.CarritoResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	c := carrito.Nuevo()
	s.sesiones[id] = c
	return *carritoToResponse(id, c)
}

func (s *carritoService) Obtener(ctx context.Context, id string) (*dto.CarritoResponse, error) {
	return s.editar(id, func(*carrito.Carrito) error { return nil })
}

func (s *carritoService) Descartar(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, _, err := s.sesion(id)
	if err != nil {
		return err
	}
	delete(s.sesiones, uid)
	return nil
}

func (s *carritoService) Buscar(ctx context.Context, id string, req dto.BusquedaRequest) (*dto.BusquedaResponse, error) {
	b := carrito.ParseBusqueda(req.Texto)
	if b.Termino == "" {
		return nil, apperror.Validation("ingrese un término de búsqueda")
	}
	res, err := s.productos.ResolverTermino(ctx, b.Termino)
	if err != nil {
		return nil, err
	}
	resp := &dto.BusquedaResponse{Cantidad: b.Cantidad, Termino: b.Termino, Resolucion: res}
	if res.Tipo != dto.ResolucionExacta {
		// still validate the session so a stale id is reported
		if _, err := s.editar(id, func(*carrito.Carrito) error { return nil }); err != nil {
			return nil, err
		}
		return resp, nil
	}
	cart, err := s.editar(id, func(c *carrito.Carrito) error {
		return c.Agregar(articulo(res.Producto), b.Cantidad)
	})
	if err != nil {
		return nil, err
	}
	resp.Carrito = cart
	return resp, nil
}

func (s *carritoService) AgregarProducto(ctx context.Context, id string, req dto.AgregarLineaRequest) (*dto.CarritoResponse, error) {
	p, err := s.productos.ObtenerPorID(ctx, req.ProductoID)
	if err != nil {
		return nil, err
	}
	return s.editar(id, func(c *carrito.Carrito) error {
		return c.Agregar(articulo(p), cantidadOUno(req.Cantidad))
	})
}

func (s *carritoService) AgregarProvisional(ctx context.Context, id string, req dto.ProvisionalRequest) (*dto.CarritoResponse, error) {
	return s.editar(id, func(c *carrito.Carrito) error {
		_, err := c.AgregarProvisional(req.Nombre, req.Precio, cantidadOUno(req.Cantidad))
		return err
	})
}

func (s *carritoService) AgregarPorAtajo(ctx context.Context, id string, tecla string) (*dto.CarritoResponse, error) {
	p, err := s.productos.ObtenerPorAtajo(ctx, tecla)
	if err != nil {
		return nil, err
	}
	return s.editar(id, func(c *carrito.Carrito) error {
		return c.Agregar(articulo(p), decimal.NewFromInt(1))
	})
}

func (s *carritoService) Ajustar(ctx context.Context, id string, productoID int64, req dto.AjustarLineaRequest) (*dto.CarritoResponse, error) {
	return s.editar(id, func(c *carrito.Carrito) error {
		return c.Ajustar(productoID, req.Delta)
	})
}

func (s *carritoService) Quitar(ctx context.Context, id string, productoID int64) (*dto.CarritoResponse, error) {
	return s.editar(id, func(c *carrito.Carrito) error {
		return c.Quitar(productoID)
	})
}

func (s *carritoService) IniciarCobro(ctx context.Context, id string) (*dto.CarritoResponse, error) {
	return s.editar(id, func(c *carrito.Carrito) error { return c.IniciarCobro() })
}

func (s *carritoService) CancelarCobro(ctx context.Context, id string) (*dto.CarritoResponse, error) {
	return s.editar(id, func(c *carrito.Carrito) error { return c.CancelarCobro() })
}

func (s *carritoService) Cobrar(ctx context.Context, id string, req dto.CobroRequest) (*dto.CobroResponse, error) {
	// The lock is held while the sale is posted so the same cart cannot be
	// charged twice.
	s.mu.Lock()
	defer s.mu.Unlock()

	_, c, err := s.sesion(id)
	if err != nil {
		return nil, err
	}
	cobro, err := c.ValidarPago(req.Pago)
	if err != nil {
		return nil, err
	}
	venta, err := s.ventas.RegistrarDesdeCarrito(ctx, c.Lineas(), req.MetodoPago)
	if err != nil {
		return nil, err
	}
	c.Vaciar()
	log.Info().Str("carrito", id).Int64("venta_id", venta.ID).
		Int64("total", cobro.Total).Int64("vuelto", cobro.Vuelto).Msg("cobro confirmado")
	return &dto.CobroResponse{
		Venta:       *venta,
		Total:       cobro.Total,
		Pago:        cobro.Pago,
		Vuelto:      cobro.Vuelto,
		VueltoTexto: moneda.Formatear(cobro.Vuelto),
	}, nil
}
