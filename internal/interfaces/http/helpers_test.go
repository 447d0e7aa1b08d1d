package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/internal/application/tenant"
	"github.com/jhoicas/invorya-insights/internal/domain"
	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/infrastructure/observability"
	apphttp "github.com/jhoicas/invorya-insights/internal/interfaces/http"
	"github.com/jhoicas/invorya-insights/pkg/logger"
	pkgjwt "github.com/jhoicas/invorya-insights/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testCompanyID  = "00000000-0000-0000-0000-000000000002"
	otherCompanyID = "00000000-0000-0000-0000-000000000009"
	testIssuer     = "invorya-insights-test"
	testExpMin     = 60

	setupURL     = "/accounts/company-setup"
	dashboardURL = "/insights"
	loginURL     = "/login"
)

type stubResolver struct {
	res tenant.Resolution
	err error
}

func (s stubResolver) Resolve(_ context.Context, userID string) (tenant.Resolution, error) {
	if userID == "" {
		return tenant.Resolution{}, nil
	}
	return s.res, s.err
}

func withCompany() tenant.Resolution {
	return tenant.Resolution{
		Company:    &entity.Company{ID: testCompanyID, Name: "Acme"},
		Profile:    &entity.UserProfile{ID: testUserID, CompanyID: testCompanyID},
		HasCompany: true,
	}
}

func withoutCompany() tenant.Resolution {
	return tenant.Resolution{Profile: &entity.UserProfile{ID: testUserID}}
}

// stubServices implementa todos los servicios que consumen los handlers.
type stubServices struct {
	calls int

	kpis      *dto.KPISnapshotDTO
	top       *dto.TopSellersDTO
	attention *dto.AttentionListDTO
	valuation *dto.InventoryValuationDTO
	profit    *dto.ProfitTrendDTO
	trendsErr error
	failWith  error

	gotCompanyID string
	gotQuery     string
	gotMetrics   string

	login    *dto.LoginResponse
	loginErr error
}

func (s *stubServices) GetKPIs(_ context.Context, companyID string) (*dto.KPISnapshotDTO, error) {
	s.calls++
	s.gotCompanyID = companyID
	return s.kpis, s.failWith
}

func (s *stubServices) GetGraph(_ context.Context, companyID string, req dto.GraphRequest) (*dto.GraphDataDTO, error) {
	s.calls++
	s.gotCompanyID = companyID
	req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &dto.GraphDataDTO{Labels: []string{"Oct 2026"}, Data: []float64{12.5}, MetricLabel: "Sales", TitleSuffix: "for 2026", MetricType: "currency"}, nil
}

func (s *stubServices) GetProfitTrend(_ context.Context, companyID string) (*dto.ProfitTrendDTO, error) {
	s.calls++
	s.gotCompanyID = companyID
	return s.profit, s.failWith
}

func (s *stubServices) GetRecentTrends(_ context.Context, _, companyID, raw string) (*dto.SalesTrendsDTO, error) {
	s.calls++
	s.gotCompanyID, s.gotMetrics = companyID, raw
	if s.trendsErr != nil {
		return nil, s.trendsErr
	}
	return &dto.SalesTrendsDTO{
		Data: []dto.TrendRowDTO{{
			Period: "Oct 2026",
			Keys:   []string{"quantity_sold", "revenue"},
			Values: map[string]any{"quantity_sold": int64(3), "revenue": 10.5},
		}},
		MetricsOrder: []string{"quantity_sold", "revenue"},
	}, nil
}

func (s *stubServices) GetFullTrends(ctx context.Context, userID, companyID, raw string) (*dto.SalesTrendsDTO, error) {
	return s.GetRecentTrends(ctx, userID, companyID, raw)
}

func (s *stubServices) TrendModal(raw string) dto.TrendModalDTO {
	s.gotMetrics = raw
	return dto.TrendModalDTO{
		CurrentMetrics: []string{"cogs"},
		Options: []dto.TrendMetricOptionDTO{
			{Name: "Revenue", Key: "revenue"},
			{Name: "COGS", Key: "cogs", Selected: true},
		},
	}
}

func (s *stubServices) GetTopSellers(_ context.Context, companyID string) (*dto.TopSellersDTO, error) {
	s.calls++
	s.gotCompanyID = companyID
	return s.top, s.failWith
}

func (s *stubServices) GetAttention(_ context.Context, companyID, query string) (*dto.AttentionListDTO, error) {
	s.calls++
	s.gotCompanyID, s.gotQuery = companyID, query
	return s.attention, s.failWith
}

func (s *stubServices) GetInventoryValuation(_ context.Context, companyID string) (*dto.InventoryValuationDTO, error) {
	s.calls++
	s.gotCompanyID = companyID
	return s.valuation, s.failWith
}

func (s *stubServices) ValuationPDF(_ context.Context, company *entity.Company) ([]byte, string, error) {
	s.calls++
	if company == nil {
		return nil, "", domain.ErrCompanyNotFound
	}
	s.gotCompanyID = company.ID
	return []byte("%PDF-1.3 stub"), "inventory-value-2026-10-15.pdf", s.failWith
}

func (s *stubServices) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	s.calls++
	return s.login, s.loginErr
}

func defaultStubs() *stubServices {
	return &stubServices{
		kpis: &dto.KPISnapshotDTO{TotalSales: 100, TotalProfit: 30, TotalOrders: 1, GrossProfitMargin: 40},
		top: &dto.TopSellersDTO{
			StartDate: time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
			Items: []dto.TopSellerDTO{
				{ProductID: "p1", ProductName: "Camisa", Barcode: "770001", Stock: 7, QuantitySold: 1200, Revenue: decimal.RequireFromString("1234.5"), Profit: decimal.RequireFromString("400")},
			},
		},
		attention: &dto.AttentionListDTO{Items: []dto.AttentionItemDTO{
			{ProductID: "p2", Name: "Bota", Stock: 1, LowStockThreshold: 5, Price: decimal.NewFromInt(50), Tag: "Running Low", Priority: 1},
		}},
		valuation: &dto.InventoryValuationDTO{
			RetailValue: decimal.NewFromInt(500),
			CostValue:   decimal.NewFromInt(300),
			ByCategory:  []dto.ValuationGroupDTO{{Name: "Uncategorized", RetailValue: decimal.NewFromInt(500), CostValue: decimal.NewFromInt(300)}},
			BySupplier:  []dto.ValuationGroupDTO{{Name: "No Supplier", RetailValue: decimal.NewFromInt(500), CostValue: decimal.NewFromInt(300)}},
		},
		profit: &dto.ProfitTrendDTO{Labels: []string{"Sep 2026"}, Profit: []float64{30}, Revenue: []float64{100}, COGS: []float64{60}},
	}
}

// buildApp arma la app completa (NewApp + Router) con servicios stub.
func buildApp(t *testing.T, res tenant.Resolution, svc *stubServices) *fiber.App {
	t.Helper()
	log := logger.Nop()
	metrics := observability.NewMetrics()
	app := apphttp.NewApp("insights-test", log, metrics)
	apphttp.Router(app, apphttp.RouterDeps{
		Resolver:  stubResolver{res: res},
		Auth:      svc,
		Dashboard: svc,
		Graph:     svc,
		Trends:    svc,
		Stock:     svc,
		Report:    svc,
		JWTSecret: testJWTSecret,
		LoginURL:  loginURL,
		URLs:      apphttp.PageURLs{CompanySetup: setupURL, Dashboard: dashboardURL},
		Metrics:   metrics,
		Log:       log,
	})
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "ana@acme.test", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

type reqOpt func(*http.Request)

func ajax(r *http.Request) { r.Header.Set("X-Requested-With", "XMLHttpRequest") }

func authed(t *testing.T) reqOpt {
	h := bearer(t)
	return func(r *http.Request) { r.Header.Set("Authorization", h) }
}

func do(t *testing.T, app *fiber.App, method, target string, opts ...reqOpt) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, o := range opts {
		o(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
