package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"negocioapp/internal/config"
	"negocioapp/internal/dto"
	"negocioapp/internal/infra"
	"negocioapp/internal/moneda"
	"negocioapp/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

type api struct {
	t   *testing.T
	r   *gin.Engine
	cfg *config.Config
}

func nuevaAPI(t *testing.T) *api {
	t.Helper()
	db, err := infra.NewDatabase("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	cfg := &config.Config{
		Env:           "test",
		CORSOrigin:    "*",
		Timezone:      "America/Santiago",
		BackupDir:     t.TempDir(),
		NombreNegocio: "Almacén Test",
	}
	return &api{t: t, r: router.New(cfg, db), cfg: cfg}
}

func (a *api) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func TestHealth(t *testing.T) {
	a := nuevaAPI(t)
	w := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	body := decode[map[string]any](t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "sqlite", body["driver"])
}

func TestProductos_ValidationAndConflicts(t *testing.T) {
	a := nuevaAPI(t)

	w := a.do(http.MethodPost, "/v1/productos", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/v1/productos", map[string]any{"precio": 100})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "required", decode[errorBody](t, w).Fields["nombre"])

	w = a.do(http.MethodPost, "/v1/productos", map[string]any{"nombre": "Pan amasado", "precio": 1990, "codigos_barras": []string{"111"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pan := decode[dto.ProductoResponse](t, w)
	assert.Equal(t, moneda.Formatear(1990), pan.PrecioTexto)

	w = a.do(http.MethodPost, "/v1/productos", map[string]any{"nombre": "Leche", "precio": 1090, "codigos_barras": []string{"111"}})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decode[errorBody](t, w).Detail, "Pan amasado")

	w = a.do(http.MethodPost, "/v1/codigos-barras", map[string]any{"producto_id": pan.ID, "codigo": "111"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.CodigoBarrasResponse](t, w).YaAsignado)

	w = a.do(http.MethodGet, "/v1/codigos-barras", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.CodigoBarrasResponse](t, w), 1)

	w = a.do(http.MethodGet, "/v1/productos/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/v1/productos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/v1/productos/buscar?q=111", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ResolucionExacta, decode[dto.ResolucionResponse](t, w).Tipo)
}

func TestGrupos_PriceCascadeOverHTTP(t *testing.T) {
	a := nuevaAPI(t)
	w := a.do(http.MethodPost, "/v1/grupos", map[string]any{"nombre": "Bebidas", "precio": 1800})
	require.Equal(t, http.StatusCreated, w.Code)
	g := decode[dto.GrupoResponse](t, w)

	w = a.do(http.MethodPost, "/v1/productos", map[string]any{"nombre": "Cola", "grupo_id": g.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	cola := decode[dto.ProductoResponse](t, w)

	w = a.do(http.MethodPut, "/v1/grupos/"+itoa(g.ID), map[string]any{"nombre": "Bebidas", "precio": 2000})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/v1/productos/"+itoa(cola.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2000), decode[dto.ProductoResponse](t, w).Precio)
}

func TestCarrito_FlujoDeCobro(t *testing.T) {
	a := nuevaAPI(t)
	w := a.do(http.MethodPost, "/v1/productos", map[string]any{"nombre": "Pan amasado", "precio": 1990})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(http.MethodPost, "/v1/carritos", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	cart := decode[dto.CarritoResponse](t, w)
	base := "/v1/carritos/" + cart.ID

	w = a.do(http.MethodPost, base+"/busqueda", map[string]any{"texto": "2*pan"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[dto.BusquedaResponse](t, w)
	require.NotNil(t, res.Carrito)
	assert.Equal(t, int64(3980), res.Carrito.Total)

	w = a.do(http.MethodPost, base+"/lineas/provisional", map[string]any{"nombre": "Bolsa", "precio": 150})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4130), decode[dto.CarritoResponse](t, w).Total)

	w = a.do(http.MethodDelete, base+"/lineas/-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3980), decode[dto.CarritoResponse](t, w).Total)

	w = a.do(http.MethodPost, base+"/cobro/iniciar", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodPost, base+"/lineas/provisional", map[string]any{"nombre": "Bolsa", "precio": 150})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, base+"/cobro", map[string]any{"pago": 1000})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(http.MethodPost, base+"/cobro", map[string]any{"pago": 5000, "metodo_pago": "efectivo"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cobro := decode[dto.CobroResponse](t, w)
	assert.Equal(t, int64(1020), cobro.Vuelto)
	assert.Equal(t, moneda.Formatear(1020), cobro.VueltoTexto)

	hoy := time.Now().In(a.cfg.Location()).Format("2006-01-02")
	w = a.do(http.MethodGet, "/v1/ventas?desde="+hoy+"&hasta="+hoy, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.VentaResponse](t, w), 1)

	w = a.do(http.MethodGet, "/v1/reportes/ventas?desde="+hoy+"&hasta="+hoy, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rep := decode[dto.ReporteVentasResponse](t, w)
	assert.Equal(t, int64(3980), rep.Estadisticas.Ingresos)

	w = a.do(http.MethodGet, "/v1/reportes/ventas/pdf?desde="+hoy+"&hasta="+hoy, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = a.do(http.MethodGet, "/v1/ventas/"+itoa(cobro.Venta.ID)+"/ticket", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestVentas_RangoInvalido(t *testing.T) {
	a := nuevaAPI(t)
	w := a.do(http.MethodGet, "/v1/ventas?desde=2024-13-01&hasta=2024-01-01", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(http.MethodGet, "/v1/ventas?desde=2024-02-01&hasta=2024-01-01", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = a.do(http.MethodGet, "/v1/ventas", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRespaldo(t *testing.T) {
	a := nuevaAPI(t)
	w := a.do(http.MethodPost, "/v1/respaldos", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.FileExists(t, decode[dto.RespaldoResponse](t, w).Ruta)
}

func TestCORSPreflight(t *testing.T) {
	a := nuevaAPI(t)
	w := a.do(http.MethodOptions, "/v1/productos", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
