package repository

import (
	"context"
	"strings"

	"negocioapp/internal/dto"
	"negocioapp/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id int64) (*model.Producto, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Producto, error)
	FindByAtajo(ctx context.Context, atajo string) (*model.Producto, error)
	FindByBarcode(ctx context.Context, codigo string) (*model.Producto, error)
	FindByCodigoProveedor(ctx context.Context, codigo string) ([]model.Producto, error)
	// BuscarPorNombre matches a case-insensitive substring of the name.
	BuscarPorNombre(ctx context.Context, fragmento string) ([]model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	ListAccesoRapido(ctx context.Context) ([]model.Producto, error)
	ListConCodigos(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id int64) error

	// ActualizarPrecioGrupo sets precio on every member of the group and
	// returns the number of products touched.
	ActualizarPrecioGrupo(ctx context.Context, grupoID, precio int64) (int64, error)
	DesvincularCategoria(ctx context.Context, categoriaID int64) error
	DesvincularGrupo(ctx context.Context, grupoID int64) error
	DesvincularUnidad(ctx context.Context, unidadID int64) error

	// WithTx returns a repository bound to tx. Inside a transaction every
	// call must go through the bound copy.
	WithTx(tx *gorm.DB) ProductoRepository
	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

const nombreContiene = `LOWER(nombre) LIKE ? ESCAPE '\'`

var escaparLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// patronContiene is a case-insensitive substring pattern; % and _ typed by
// the cashier are matched literally.
func patronContiene(s string) string {
	return "%" + escaparLike.Replace(strings.ToLower(s)) + "%"
}

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) WithTx(tx *gorm.DB) ProductoRepository { return &productoRepo{db: tx} }

func (r *productoRepo) DB() *gorm.DB { return r.db }

// base preloads what the cart and the UI need to render a product.
func (r *productoRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Preload("Unidad")
}

// Create inserts p. A caller-chosen id is allowed; on postgres the id
// sequence is then moved past it so later inserts do not collide.
func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	explicito := p.ID != 0
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(p).Error; err != nil {
		return err
	}
	if explicito && db.Dialector.Name() == "postgres" {
		return db.Exec(`SELECT setval(pg_get_serial_sequence('productos', 'id'), (SELECT MAX(id) FROM productos))`).Error
	}
	return nil
}

func (r *productoRepo) FindByID(ctx context.Context, id int64) (*model.Producto, error) {
	var p model.Producto
	err := r.base(ctx).Preload("CodigosBarras").First(&p, "productos.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var p model.Producto
	if err := r.base(ctx).Where("nombre = ?", nombre).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByAtajo(ctx context.Context, atajo string) (*model.Producto, error) {
	var p model.Producto
	if err := r.base(ctx).Where("atajo = ?", atajo).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByBarcode(ctx context.Context, codigo string) (*model.Producto, error) {
	var p model.Producto
	err := r.base(ctx).
		Joins("JOIN codigos_barras cb ON cb.producto_id = productos.id").
		Where("cb.codigo = ?", codigo).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) FindByCodigoProveedor(ctx context.Context, codigo string) ([]model.Producto, error) {
	var productos []model.Producto
	sub := r.db.Model(&model.CodigoProveedor{}).Select("producto_id").Where("codigo = ?", codigo)
	err := r.base(ctx).Where("id IN (?)", sub).Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) BuscarPorNombre(ctx context.Context, fragmento string) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.base(ctx).
		Where(nombreContiene, patronContiene(fragmento)).
		Order("nombre ASC").
		Find(&productos).Error
	return productos, err
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.base(ctx)
	if filter.Nombre != "" {
		q = q.Where(nombreContiene, patronContiene(filter.Nombre))
	}
	if filter.CategoriaID != nil {
		q = q.Where("categoria_id = ?", *filter.CategoriaID)
	}
	if filter.GrupoID != nil {
		q = q.Where("grupo_id = ?", *filter.GrupoID)
	}
	err := q.Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ListAccesoRapido(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.base(ctx).Where("acceso_rapido = ?", true).Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) ListConCodigos(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.base(ctx).Preload("CodigosBarras").Order("id ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, id).Error
}

func (r *productoRepo) ActualizarPrecioGrupo(ctx context.Context, grupoID, precio int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("grupo_id = ?", grupoID).
		Update("precio", precio)
	return res.RowsAffected, res.Error
}

func (r *productoRepo) DesvincularCategoria(ctx context.Context, categoriaID int64) error {
	return r.desvincular(ctx, "categoria_id", categoriaID)
}

func (r *productoRepo) DesvincularGrupo(ctx context.Context, grupoID int64) error {
	return r.desvincular(ctx, "grupo_id", grupoID)
}

func (r *productoRepo) DesvincularUnidad(ctx context.Context, unidadID int64) error {
	return r.desvincular(ctx, "unidad_id", unidadID)
}

// desvincular nulls a reference column; columna is never user input.
func (r *productoRepo) desvincular(ctx context.Context, columna string, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where(columna+" = ?", id).
		Update(columna, nil).Error
}
