package analytics_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invorya-insights/internal/domain/entity"
	"github.com/jhoicas/invorya-insights/internal/domain/insights"
	"github.com/jhoicas/invorya-insights/internal/domain/repository"
)

var errBoom = errors.New("db caída")

// fakeStore repositorio en memoria que respeta el filtro por empresa y el estado 'paid'.
type fakeStore struct {
	companies []entity.Company
	users     []entity.UserProfile
	employees map[string][]string // company -> users
	products  []entity.Product
	orders    []entity.Order
	items     []entity.OrderItem
	metrics   []entity.MonthlyMetric

	calls  atomic.Int64
	failOn string
}

var (
	_ repository.AnalyticsRepository     = (*fakeStore)(nil)
	_ repository.ProductRepository       = (*fakeStore)(nil)
	_ repository.MonthlyMetricRepository = (*fakeStore)(nil)
)

func newStore() *fakeStore {
	return &fakeStore{employees: map[string][]string{}}
}

func (s *fakeStore) hit(op string) error {
	s.calls.Add(1)
	if s.failOn == op {
		return errBoom
	}
	return nil
}

func (s *fakeStore) addSale(id, companyID, productID string, at time.Time, qty int64, price, cogs, net string) {
	s.orders = append(s.orders, entity.Order{ID: id, CompanyID: companyID, Status: entity.OrderStatusPaid, OrderDate: at})
	s.items = append(s.items, entity.OrderItem{
		ID: id + "-1", OrderID: id, ProductID: productID, Quantity: qty,
		Price: decimal.RequireFromString(price), COGS: decimal.RequireFromString(cogs), NetProfit: decimal.RequireFromString(net),
	})
}

func (s *fakeStore) product(id string) *entity.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}

type paidLine struct {
	order entity.Order
	item  entity.OrderItem
}

func (s *fakeStore) paidLines(companyID string) []paidLine {
	var out []paidLine
	for _, o := range s.orders {
		if o.CompanyID != companyID || o.Status != entity.OrderStatusPaid {
			continue
		}
		for _, it := range s.items {
			if it.OrderID == o.ID {
				out = append(out, paidLine{o, it})
			}
		}
	}
	return out
}

func (s *fakeStore) paidOrders(companyID string) []entity.Order {
	var out []entity.Order
	for _, o := range s.orders {
		if o.CompanyID == companyID && o.Status == entity.OrderStatusPaid {
			out = append(out, o)
		}
	}
	return out
}

func (s *fakeStore) soldSince(companyID string, since time.Time) map[string]bool {
	sold := map[string]bool{}
	for _, l := range s.paidLines(companyID) {
		if !l.order.OrderDate.Before(since) {
			sold[l.item.ProductID] = true
		}
	}
	return sold
}

// ── AnalyticsRepository ───────────────────────────────────────────────────────

func (s *fakeStore) GetSalesTotals(_ context.Context, companyID string) (repository.SalesTotals, error) {
	if err := s.hit("GetSalesTotals"); err != nil {
		return repository.SalesTotals{}, err
	}
	var t repository.SalesTotals
	for _, l := range s.paidLines(companyID) {
		t.Revenue = t.Revenue.Add(l.item.Price.Mul(decimal.NewFromInt(l.item.Quantity)))
		t.NetProfit = t.NetProfit.Add(l.item.NetProfit)
		t.COGS = t.COGS.Add(l.item.COGS)
	}
	return t, nil
}

func (s *fakeStore) CountPaidOrders(_ context.Context, companyID string) (int64, error) {
	if err := s.hit("CountPaidOrders"); err != nil {
		return 0, err
	}
	return int64(len(s.paidOrders(companyID))), nil
}

func (s *fakeStore) CountProductsSoldSince(_ context.Context, companyID string, since time.Time) (int64, error) {
	if err := s.hit("CountProductsSoldSince"); err != nil {
		return 0, err
	}
	return int64(len(s.soldSince(companyID, since))), nil
}

func (s *fakeStore) GetTopSellers(_ context.Context, companyID string, from, to time.Time, limit int) ([]repository.TopSellerResult, error) {
	if err := s.hit("GetTopSellers"); err != nil {
		return nil, err
	}
	acc := map[string]*repository.TopSellerResult{}
	for _, l := range s.paidLines(companyID) {
		if l.order.OrderDate.Before(from) || l.order.OrderDate.After(to) {
			continue
		}
		p := s.product(l.item.ProductID)
		r, ok := acc[p.ID]
		if !ok {
			r = &repository.TopSellerResult{ProductID: p.ID, ProductName: p.Name, Barcode: p.Barcode, Stock: p.Stock}
			acc[p.ID] = r
		}
		q := decimal.NewFromInt(l.item.Quantity)
		r.QuantitySold += l.item.Quantity
		r.Revenue = r.Revenue.Add(q.Mul(l.item.Price))
		r.Profit = r.Profit.Add(q.Mul(l.item.Price.Sub(p.Cost)))
	}
	out := []repository.TopSellerResult{}
	for _, r := range acc {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) FirstPaidSaleDate(ctx context.Context, companyID string) (*time.Time, error) {
	first, _, err := s.GetSaleDateRange(ctx, companyID)
	return first, err
}

func (s *fakeStore) GetSaleDateRange(_ context.Context, companyID string) (first, last *time.Time, err error) {
	if err := s.hit("GetSaleDateRange"); err != nil {
		return nil, nil, err
	}
	for _, o := range s.paidOrders(companyID) {
		d := o.OrderDate
		if first == nil || d.Before(*first) {
			first = &d
		}
		if last == nil || d.After(*last) {
			d2 := o.OrderDate
			last = &d2
		}
	}
	return first, last, nil
}

func (s *fakeStore) GetDailySales(_ context.Context, companyID string, from time.Time, tz string) ([]insights.DailyPoint, error) {
	if err := s.hit("GetDailySales"); err != nil {
		return nil, err
	}
	loc, _ := time.LoadLocation(tz)
	byDay := map[string]*insights.DailyPoint{}
	for _, o := range s.paidOrders(companyID) {
		if o.OrderDate.Before(from) {
			continue
		}
		day := insights.Truncate(o.OrderDate.In(loc), insights.Day)
		p, ok := byDay[insights.BucketKey(day)]
		if !ok {
			p = &insights.DailyPoint{Day: day}
			byDay[insights.BucketKey(day)] = p
		}
		p.Orders++
		for _, it := range s.items {
			if it.OrderID != o.ID {
				continue
			}
			q := decimal.NewFromInt(it.Quantity)
			p.Revenue = p.Revenue.Add(q.Mul(it.Price))
			if prod := s.product(it.ProductID); prod != nil {
				p.COGS = p.COGS.Add(q.Mul(prod.Cost))
			}
		}
	}
	out := make([]insights.DailyPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (s *fakeStore) GetMonthlySales(_ context.Context, companyID string, from time.Time, tz string) ([]repository.MonthlySalesResult, error) {
	if err := s.hit("GetMonthlySales"); err != nil {
		return nil, err
	}
	loc, _ := time.LoadLocation(tz)
	byMonth := map[string]*repository.MonthlySalesResult{}
	for _, l := range s.paidLines(companyID) {
		if l.order.OrderDate.Before(from) {
			continue
		}
		m := insights.Truncate(l.order.OrderDate.In(loc), insights.Month)
		r, ok := byMonth[insights.BucketKey(m)]
		if !ok {
			r = &repository.MonthlySalesResult{Month: m}
			byMonth[insights.BucketKey(m)] = r
		}
		r.Revenue = r.Revenue.Add(decimal.NewFromInt(l.item.Quantity).Mul(l.item.Price))
		r.NetProfit = r.NetProfit.Add(l.item.NetProfit)
		r.COGS = r.COGS.Add(l.item.COGS)
		r.QuantitySold += l.item.Quantity
	}
	out := make([]repository.MonthlySalesResult, 0, len(byMonth))
	for _, r := range byMonth {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out, nil
}

// ── ProductRepository ─────────────────────────────────────────────────────────

func (s *fakeStore) companyProducts(companyID string) []entity.Product {
	var out []entity.Product
	for _, p := range s.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out
}

func (s *fakeStore) GetInventoryValue(_ context.Context, companyID string) (decimal.Decimal, error) {
	if err := s.hit("GetInventoryValue"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range s.companyProducts(companyID) {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
	}
	return total, nil
}

func (s *fakeStore) CountAttention(_ context.Context, companyID string, soldSince time.Time) (repository.AttentionCounts, error) {
	if err := s.hit("CountAttention"); err != nil {
		return repository.AttentionCounts{}, err
	}
	sold := s.soldSince(companyID, soldSince)
	var c repository.AttentionCounts
	for _, p := range s.companyProducts(companyID) {
		switch {
		case p.Stock <= p.LowStockThreshold:
			c.LowStock++
		case !sold[p.ID]:
			c.NotSellingOnly++
		}
	}
	return c, nil
}

func (s *fakeStore) ListAttentionCandidates(_ context.Context, companyID string, soldSince time.Time, query string) ([]insights.AttentionProduct, error) {
	if err := s.hit("ListAttentionCandidates"); err != nil {
		return nil, err
	}
	sold := s.soldSince(companyID, soldSince)
	q := strings.ToLower(strings.TrimSpace(query))
	var out []insights.AttentionProduct
	for _, p := range s.companyProducts(companyID) {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Barcode), q) {
			continue
		}
		low := p.Stock <= p.LowStockThreshold
		notSelling := p.Stock > 0 && !sold[p.ID]
		if !low && !notSelling {
			continue
		}
		out = append(out, insights.AttentionProduct{
			ProductID: p.ID, Name: p.Name, Barcode: p.Barcode, Stock: p.Stock,
			LowStockThreshold: p.LowStockThreshold, Price: p.Price, LowStock: low, NotSelling: notSelling,
		})
	}
	return out, nil
}

func (s *fakeStore) GetInventoryValuation(_ context.Context, companyID string) (repository.InventoryValuation, error) {
	if err := s.hit("GetInventoryValuation"); err != nil {
		return repository.InventoryValuation{}, err
	}
	v := repository.InventoryValuation{}
	cats, sups := map[string]*repository.ValuationGroup{}, map[string]*repository.ValuationGroup{}
	add := func(m map[string]*repository.ValuationGroup, name string, retail, cost decimal.Decimal) {
		g, ok := m[name]
		if !ok {
			g = &repository.ValuationGroup{Name: name}
			m[name] = g
		}
		g.RetailValue = g.RetailValue.Add(retail)
		g.CostValue = g.CostValue.Add(cost)
	}
	for _, p := range s.companyProducts(companyID) {
		if p.Stock <= 0 || !p.Price.IsPositive() {
			continue
		}
		q := decimal.NewFromInt(p.Stock)
		retail, cost := q.Mul(p.Price), q.Mul(p.Cost)
		v.RetailValue = v.RetailValue.Add(retail)
		v.CostValue = v.CostValue.Add(cost)
		cat, sup := p.CategoryID, p.SupplierID
		if cat == "" {
			cat = "Uncategorized"
		}
		if sup == "" {
			sup = "No Supplier"
		}
		add(cats, cat, retail, cost)
		add(sups, sup, retail, cost)
	}
	v.ByCategory, v.BySupplier = sortedGroups(cats), sortedGroups(sups)
	return v, nil
}

func sortedGroups(m map[string]*repository.ValuationGroup) []repository.ValuationGroup {
	out := make([]repository.ValuationGroup, 0, len(m))
	for _, g := range m {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ── MonthlyMetricRepository ───────────────────────────────────────────────────

func (s *fakeStore) ListByCompany(_ context.Context, companyID string) ([]entity.MonthlyMetric, error) {
	if err := s.hit("ListByCompany"); err != nil {
		return nil, err
	}
	var out []entity.MonthlyMetric
	for _, m := range s.metrics {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (s *fakeStore) First(ctx context.Context, companyID string) (*entity.MonthlyMetric, error) {
	rows, err := s.ListByCompany(ctx, companyID)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (s *fakeStore) ListSince(ctx context.Context, companyID string, from time.Time) ([]entity.MonthlyMetric, error) {
	rows, err := s.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	var out []entity.MonthlyMetric
	for _, m := range rows {
		if m.Year > from.Year() || (m.Year == from.Year() && m.Month >= int(from.Month())) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeStore) ReplaceForCompany(_ context.Context, companyID string, rows []entity.MonthlyMetric) error {
	if err := s.hit("ReplaceForCompany"); err != nil {
		return err
	}
	kept := s.metrics[:0]
	for _, m := range s.metrics {
		if m.CompanyID != companyID {
			kept = append(kept, m)
		}
	}
	s.metrics = append(kept, rows...)
	return nil
}

// RunRollup sin transacción real: los tests verifican el resultado, no el aislamiento.
func (s *fakeStore) RunRollup(ctx context.Context, fn func(repository.AnalyticsRepository, repository.MonthlyMetricRepository) error) error {
	return fn(s, s)
}

// ── Company / User ────────────────────────────────────────────────────────────

type fakeCompanies struct{ s *fakeStore }

func (f fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	for i := range f.s.companies {
		if f.s.companies[i].ID == id {
			c := f.s.companies[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f fakeCompanies) ListActiveIDs(context.Context) ([]string, error) {
	var ids []string
	for _, c := range f.s.companies {
		if c.Status == "active" {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	for i := range f.s.users {
		if f.s.users[i].ID == id {
			u := f.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*entity.UserProfile, error) {
	for i := range f.s.users {
		if strings.EqualFold(f.s.users[i].Email, email) {
			u := f.s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f fakeUsers) IsEmployee(_ context.Context, companyID, userID string) (bool, error) {
	for _, u := range f.s.employees[companyID] {
		if u == userID {
			return true, nil
		}
	}
	for _, u := range f.s.users {
		if u.ID == userID && u.CompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }
