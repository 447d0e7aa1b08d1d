package http_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/invorya-insights/internal/interfaces/http"
)

func flashOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	c := cookie(resp, apphttp.FlashCookie)
	require.NotNil(t, c, "debe dejar cookie flash")
	v, err := url.QueryUnescape(c.Value)
	require.NoError(t, err)
	return v
}

// ── Dashboard ──

func TestDashboard_RenderizaPagina(t *testing.T) {
	resp, body := do(t, buildApp(t, withCompany(), defaultStubs()), http.MethodGet, "/insights", authed(t))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<h1>Acme</h1>")
	assert.Contains(t, body, "/api/companies/"+testCompanyID+"/sales-trends")
}

func TestDashboard_SinEmpresaRedirigeASetup(t *testing.T) {
	resp, _ := do(t, buildApp(t, withoutCompany(), defaultStubs()), http.MethodGet, "/insights", authed(t))

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, setupURL, resp.Header.Get("Location"))
	assert.Equal(t, "error|Company not found. Please set up your company first.", flashOf(t, resp))
}

func TestDashboard_MuestraYConsumeFlash(t *testing.T) {
	resp, body := do(t, buildApp(t, withCompany(), defaultStubs()), http.MethodGet, "/insights", authed(t), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.FlashCookie, Value: url.QueryEscape("warning|Heads up")})
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `class="flash flash-warning"`)
	assert.Contains(t, body, "Heads up")
	c := cookie(resp, apphttp.FlashCookie)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
}

func TestDashboard_SinSesionRedirigeALogin(t *testing.T) {
	resp, _ := do(t, buildApp(t, withCompany(), defaultStubs()), http.MethodGet, "/insights")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), loginURL+"?next=")
}

// ── Top sellers ──

func TestTopSellers_Fragmento(t *testing.T) {
	svc := defaultStubs()
	resp, body := do(t, buildApp(t, withCompany(), svc), http.MethodGet, "/insights/top-sellers", authed(t), ajax)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Camisa")
	assert.Contains(t, body, "1,200")
	assert.Contains(t, body, "$1,234.50")
	assert.Contains(t, body, "770001")
	assert.Contains(t, body, "<td>7</td>")
	assert.Contains(t, body, "Sep 15, 2026 to Oct 15, 2026")
	assert.Equal(t, testCompanyID, svc.gotCompanyID)
}

func TestTopSellers_SinEmpresa(t *testing.T) {
	t.Run("AJAX recibe 403 con fragmento", func(t *testing.T) {
		svc := defaultStubs()
		resp, body := do(t, buildApp(t, withoutCompany(), svc), http.MethodGet, "/insights/top-sellers", authed(t), ajax)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Contains(t, body, "Company not found. Please set up your company.")
		assert.Zero(t, svc.calls)
	})
	t.Run("navegación directa redirige", func(t *testing.T) {
		resp, _ := do(t, buildApp(t, withoutCompany(), defaultStubs()), http.MethodGet, "/insights/top-sellers", authed(t))
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, setupURL, resp.Header.Get("Location"))
		assert.Equal(t, "error|Company not found. Please set up your company first.", flashOf(t, resp))
	})
}

// ── Atención ──

func TestAttention_AJAXFiltraPorQuery(t *testing.T) {
	svc := defaultStubs()
	resp, body := do(t, buildApp(t, withCompany(), svc), http.MethodGet, "/insights/attention?q=bo", authed(t), ajax)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bo", svc.gotQuery)
	assert.Contains(t, body, "Bota")
	assert.Contains(t, body, "Running Low")
}

func TestAttention_NavegacionDirectaRedirigeConInfo(t *testing.T) {
	svc := defaultStubs()
	resp, _ := do(t, buildApp(t, withCompany(), svc), http.MethodGet, "/insights/attention", authed(t))

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, dashboardURL, resp.Header.Get("Location"))
	assert.Equal(t, "info|Items needing attention are typically viewed within the dashboard modal.", flashOf(t, resp))
	assert.Zero(t, svc.calls)
}

// ── Tendencia de utilidad ──

func TestProfitTrends_PaginaOFragmento(t *testing.T) {
	app := buildApp(t, withCompany(), defaultStubs())

	resp, page := do(t, app, http.MethodGet, "/insights/profit-trends", authed(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "Sep 2026")

	resp, frag := do(t, app, http.MethodGet, "/insights/profit-trends", authed(t), ajax)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, frag, "<!DOCTYPE html>")
	assert.Contains(t, frag, "$30.00")
}

func TestProfitTrends_SinEmpresaRedirigeAunConAJAX(t *testing.T) {
	resp, _ := do(t, buildApp(t, withoutCompany(), defaultStubs()), http.MethodGet, "/insights/profit-trends", authed(t), ajax)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, setupURL, resp.Header.Get("Location"))
}

// ── Inventario valorizado ──

func TestInventoryValue_SoloAJAX(t *testing.T) {
	svc := defaultStubs()
	app := buildApp(t, withCompany(), svc)

	resp, _ := do(t, app, http.MethodGet, "/insights/inventory-value", authed(t))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, dashboardURL, resp.Header.Get("Location"))
	assert.Equal(t, "warning|This page is intended to be loaded via AJAX.", flashOf(t, resp))
	assert.Zero(t, svc.calls)

	resp, body := do(t, app, http.MethodGet, "/insights/inventory-value", authed(t), ajax)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "$500.00")
	assert.Contains(t, body, "Uncategorized")
	assert.Contains(t, body, "No Supplier")
}

func TestInventoryValue_SinEmpresaRedirigeAlDashboard(t *testing.T) {
	resp, _ := do(t, buildApp(t, withoutCompany(), defaultStubs()), http.MethodGet, "/insights/inventory-value", authed(t), ajax)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, dashboardURL, resp.Header.Get("Location"))
}

func TestInventoryValuePDF_Descarga(t *testing.T) {
	svc := defaultStubs()
	resp, body := do(t, buildApp(t, withCompany(), svc), http.MethodGet, "/insights/inventory-value.pdf", authed(t))

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory-value-2026-10-15.pdf")
	assert.Contains(t, body, "%PDF")
	assert.Equal(t, testCompanyID, svc.gotCompanyID)
}

// ── Modales ──

func TestHistoricalTrends_PreseleccionaMetricas(t *testing.T) {
	svc := defaultStubs()
	resp, body := do(t, buildApp(t, withCompany(), svc), http.MethodGet, "/insights/historical-trends?current_metrics=cogs,bogus", authed(t), ajax)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cogs,bogus", svc.gotMetrics)
	assert.Contains(t, body, `value="cogs" checked`)
	assert.NotContains(t, body, `value="revenue" checked`)
	assert.Contains(t, body, "/api/companies/"+testCompanyID+"/sales-trends/all")
}

func TestGraphCustomization_ListaMetricasYPeriodos(t *testing.T) {
	resp, body := do(t, buildApp(t, withCompany(), defaultStubs()), http.MethodGet, "/insights/graph-customization", authed(t), ajax)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, v := range []string{"sales", "profit", "gross_profit_margin", "num_orders", "week", "month", "quarter", "year", "all"} {
		assert.Contains(t, body, `value="`+v+`"`)
	}
}
