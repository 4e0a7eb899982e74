package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"negocioapp/internal/apperror"
	"negocioapp/internal/repository"

	"gorm.io/gorm"
)

// ReglasCatalogo holds the uniqueness checks shared by the catalog services.
// Every check is meant to run inside the write transaction, before the write:
// bind it with WithTx.
type ReglasCatalogo struct {
	productos        repository.ProductoRepository
	codigosBarras    repository.CodigoBarrasRepository
	codigosProveedor repository.CodigoProveedorRepository
}

func NewReglasCatalogo(
	productos repository.ProductoRepository,
	codigosBarras repository.CodigoBarrasRepository,
	codigosProveedor repository.CodigoProveedorRepository,
) *ReglasCatalogo {
	return &ReglasCatalogo{
		productos:        productos,
		codigosBarras:    codigosBarras,
		codigosProveedor: codigosProveedor,
	}
}

func (r *ReglasCatalogo) WithTx(tx *gorm.DB) *ReglasCatalogo {
	return &ReglasCatalogo{
		productos:        r.productos.WithTx(tx),
		codigosBarras:    r.codigosBarras.WithTx(tx),
		codigosProveedor: r.codigosProveedor.WithTx(tx),
	}
}

// NormalizarCodigoBarras is the stored form of a barcode. Scanners and the
// search box may differ in case, so codes are kept upper-case.
func NormalizarCodigoBarras(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}

// VerificarCodigoBarras checks that codigo can be assigned to productoID.
// It reports yaAsignado when the code already belongs to that same product,
// and a Conflict naming the owner when it belongs to another one.
func (r *ReglasCatalogo) VerificarCodigoBarras(ctx context.Context, productoID int64, codigo string) (yaAsignado bool, err error) {
	codigo = NormalizarCodigoBarras(codigo)
	if codigo == "" {
		return false, apperror.Validation("el código de barras es requerido")
	}
	existente, err := r.codigosBarras.FindByCodigo(ctx, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeErr("verificar código de barras", err)
	}
	if existente.ProductoID == productoID {
		return true, nil
	}
	return false, apperror.Conflict("el código de barras %s ya está asignado al producto %s",
		codigo, r.nombreProducto(ctx, existente.ProductoID))
}

var patronAtajo = regexp.MustCompile(`^F([1-9]|1[0-2])$`)

// NormalizarAtajo upper-cases and validates a function-key label. An empty
// input yields nil, meaning "no shortcut".
func NormalizarAtajo(atajo *string) (*string, error) {
	if atajo == nil {
		return nil, nil
	}
	a := strings.ToUpper(strings.TrimSpace(*atajo))
	if a == "" {
		return nil, nil
	}
	if !patronAtajo.MatchString(a) {
		return nil, apperror.Validation("atajo inválido %q: use F1 a F12", *atajo)
	}
	return &a, nil
}

// VerificarAtajo fails with a Conflict when atajo is held by a product other
// than productoID. productoID 0 means a product not yet created.
func (r *ReglasCatalogo) VerificarAtajo(ctx context.Context, productoID int64, atajo string) error {
	titular, err := r.productos.FindByAtajo(ctx, atajo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return storeErr("verificar atajo", err)
	}
	if titular.ID == productoID {
		return nil
	}
	return apperror.Conflict("el atajo %s ya está asignado al producto %s", atajo, titular.Nombre)
}

// VerificarNombreProducto fails when another product already uses nombre.
func (r *ReglasCatalogo) VerificarNombreProducto(ctx context.Context, productoID int64, nombre string) error {
	existente, err := r.productos.FindByNombre(ctx, nombre)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return storeErr("verificar nombre de producto", err)
	}
	if existente.ID == productoID {
		return nil
	}
	return apperror.Conflict("ya existe un producto llamado %s", nombre)
}

// VerificarCodigoProveedor fails when the supplier already uses codigo for a
// row other than excluirID (0 on create).
func (r *ReglasCatalogo) VerificarCodigoProveedor(ctx context.Context, excluirID, proveedorID int64, codigo string) error {
	existente, err := r.codigosProveedor.FindByProveedorCodigo(ctx, proveedorID, codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return storeErr("verificar código de proveedor", err)
	}
	if existente.ID == excluirID {
		return nil
	}
	return apperror.Conflict("el código %s de este proveedor ya está asignado al producto %s",
		codigo, r.nombreProducto(ctx, existente.ProductoID))
}

// nombreProducto is best effort: the conflict is reported even when the name
// cannot be read.
func (r *ReglasCatalogo) nombreProducto(ctx context.Context, id int64) string {
	p, err := r.productos.FindByID(ctx, id)
	if err != nil {
		return "#" + strconv.FormatInt(id, 10)
	}
	return p.Nombre
}
