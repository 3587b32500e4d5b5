package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/crm-dashboard-api/internal/application/analytics"
	appauth "github.com/jhoicas/crm-dashboard-api/internal/application/auth"
	"github.com/jhoicas/crm-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/crm-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/csvio"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/localfile"
	"github.com/jhoicas/crm-dashboard-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/crm-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/crm-dashboard-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: aplicación completa con stores reales en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app    *fiber.App
	store  *memory.CustomerStore
	prefUC *usecase.PreferenceUseCase
}

// buildAPI monta la API completa sobre stores en memoria y ajustes en un
// archivo temporal. Si loadPrefs es false, el Preference Store queda sin
// cargar (para probar el gate de guardado).
func buildAPI(t *testing.T, loadPrefs bool) *testAPI {
	t.Helper()

	store := memory.NewCustomerStore()
	for _, c := range []*entity.Customer{
		{ID: "c3", Name: "María Ruiz", Email: "maria@acme.com", Phone: "302", Tags: []string{"Partner"}, LastContacted: "1/20/2026"},
		{ID: "c2", Name: "Andrés Pérez", Email: "andres@globex.io", Phone: "301", Tags: []string{"Customer"}, LastContacted: "3/1/2026"},
		{ID: "c1", Name: "Laura Gómez", Email: "laura@acme.com", Phone: "300", Tags: []string{"Lead"}, LastContacted: "3/15/2026"},
	} {
		require.NoError(t, store.Create(c))
	}

	settings := localfile.NewSettingsStore(filepath.Join(t.TempDir(), "settings.json"))
	prefUC := usecase.NewPreferenceUseCase(settings)
	if loadPrefs {
		require.NoError(t, prefUC.Load(t.Context()))
	}

	customerUC := usecase.NewCustomerUseCase(store, csvio.Codec{})
	dashboardUC := appanalytics.NewDashboardUseCase(store, nil)

	authUC := appauth.NewAuthUseCase(memory.NewUserRepository(), appauth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	require.NoError(t, authUC.EnsureAdmin("admin@local", "admin", "Admin"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:   customerUC,
		PreferenceUC: prefUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		Metrics:      metrics.New("test"),
		JWTSecret:    testJWTSecret,
		AppName:      "crm-dashboard-test",
	})
	return &testAPI{app: app, store: store, prefUC: prefUC}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y RBAC sobre las rutas reales
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ListadoRequiereToken(t *testing.T) {
	api := buildAPI(t, true)
	resp := api.do(t, http.MethodGet, "/api/customers", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// El login del admin provisionado devuelve un token utilizable.
func TestRouter_LoginYUso(t *testing.T) {
	api := buildAPI(t, true)

	resp := api.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "admin@local", "password": "admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	decodeJSON(t, resp, &login)
	require.NotEmpty(t, login.Token)

	resp2 := api.do(t, http.MethodGet, "/api/customers", "Bearer "+login.Token, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

// Un viewer puede leer pero no mutar.
func TestRouter_ViewerSoloLectura(t *testing.T) {
	api := buildAPI(t, true)
	viewer := tokenForRole(t, entity.RoleViewer)

	resp := api.do(t, http.MethodGet, "/api/customers", viewer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/customers", viewer,
		map[string]any{"name": "X", "email": "x@y.co", "phone": "1"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodDelete, "/api/customers/c1", viewer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Customers
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CrearYListar(t *testing.T) {
	api := buildAPI(t, true)
	admin := tokenForRole(t, entity.RoleAdmin)

	resp := api.do(t, http.MethodPost, "/api/customers", admin,
		map[string]any{"name": "Nuevo", "email": "nuevo@x.co", "phone": "310", "tags": []string{"VIP"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.ID)

	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
		Page struct {
			Total int `json:"total"`
		} `json:"page"`
	}
	resp = api.do(t, http.MethodGet, "/api/customers", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &list)
	assert.Equal(t, 4, list.Page.Total)
	assert.Equal(t, created.ID, list.Items[0].ID, "el alta entra al frente")
}

func TestRouter_CrearInvalidoRetorna400(t *testing.T) {
	api := buildAPI(t, true)
	resp := api.do(t, http.MethodPost, "/api/customers", tokenForRole(t, entity.RoleAdmin),
		map[string]any{"name": "", "email": "x@y.co", "phone": "1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Editar un id inexistente responde 204 (no-op silencioso), no 404.
func TestRouter_EditarInexistenteEs204(t *testing.T) {
	api := buildAPI(t, true)
	resp := api.do(t, http.MethodPut, "/api/customers/no-existe", tokenForRole(t, entity.RoleAdmin),
		map[string]any{"name": "X", "email": "x@y.co", "phone": "1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// Las rutas fijas de selección no son capturadas por /customers/:id.
func TestRouter_SeleccionNoChocaConParametroId(t *testing.T) {
	api := buildAPI(t, true)
	admin := tokenForRole(t, entity.RoleAdmin)

	resp := api.do(t, http.MethodPut, "/api/customers/selection", admin,
		map[string]any{"ids": []string{"c1", "fantasma"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sel struct {
		IDs []string `json:"ids"`
	}
	decodeJSON(t, resp, &sel)
	assert.Equal(t, []string{"c1"}, sel.IDs, "los ids desconocidos se descartan")

	resp = api.do(t, http.MethodGet, "/api/customers/selection", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &sel)
	assert.Equal(t, []string{"c1"}, sel.IDs)
}

func TestRouter_ExportSinSeleccionRetorna422(t *testing.T) {
	api := buildAPI(t, true)
	resp := api.do(t, http.MethodGet, "/api/customers/export", tokenForRole(t, entity.RoleAdmin), nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRouter_ExportConSeleccion(t *testing.T) {
	api := buildAPI(t, true)
	admin := tokenForRole(t, entity.RoleAdmin)

	resp := api.do(t, http.MethodPut, "/api/customers/selection", admin,
		map[string]any{"ids": []string{"c1", "c3"}})
	resp.Body.Close()

	resp = api.do(t, http.MethodGet, "/api/customers/export", admin, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "customers-")
}

// Import multipart: el lote entra al frente y responde 201 con el conteo.
func TestRouter_ImportCSV(t *testing.T) {
	api := buildAPI(t, true)
	admin := tokenForRole(t, entity.RoleAdmin)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "contactos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("Full Name,Email\nCarlos Vega,carlos@nuevo.com\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/customers/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", admin)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Imported int `json:"imported"`
	}
	decodeJSON(t, resp, &out)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, "Carlos Vega", api.store.List()[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_DashboardSummary(t *testing.T) {
	api := buildAPI(t, true)
	resp := api.do(t, http.MethodGet, "/api/dashboard/summary", tokenForRole(t, entity.RoleViewer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Total    int `json:"total"`
		Leads    int `json:"leads"`
		Partners int `json:"partners"`
	}
	decodeJSON(t, resp, &out)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 1, out.Leads)
	assert.Equal(t, 1, out.Partners)
}

// ──────────────────────────────────────────────────────────────────────────────
// Preferences
// ──────────────────────────────────────────────────────────────────────────────

// Guardar antes de la carga inicial responde 409 NOT_LOADED.
func TestRouter_PreferenciasSinCargarRetorna409(t *testing.T) {
	api := buildAPI(t, false)
	resp := api.do(t, http.MethodPut, "/api/preferences", tokenForRole(t, entity.RoleViewer),
		entity.DefaultPreferences())
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_ReorderYToggle(t *testing.T) {
	api := buildAPI(t, true)
	token := tokenForRole(t, entity.RoleViewer)

	resp := api.do(t, http.MethodPost, "/api/preferences/widgets/reorder", token,
		map[string]int{"from": 0, "to": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prefs entity.Preferences
	decodeJSON(t, resp, &prefs)
	assert.Equal(t, []string{"line", "bar", "stats", "pie"}, prefs.WidgetOrder)

	resp = api.do(t, http.MethodPost, "/api/preferences/widgets/line/size", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &prefs)
	assert.Equal(t, entity.WidgetSizeFull, prefs.WidgetSizes["line"], "line parte en half")
}

func TestRouter_Tema(t *testing.T) {
	api := buildAPI(t, true)
	token := tokenForRole(t, entity.RoleViewer)

	resp := api.do(t, http.MethodPut, "/api/preferences/theme", token,
		map[string]string{"theme": "dark"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Theme string `json:"theme"`
	}
	decodeJSON(t, resp, &out)
	assert.Equal(t, "dark", out.Theme)

	resp = api.do(t, http.MethodPut, "/api/preferences/theme", token,
		map[string]string{"theme": "sepia"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
