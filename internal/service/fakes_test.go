package service

import (
	"context"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory doubles for the repository interfaces so service logic can be
// exercised without postgres.

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeActivityRepo struct {
	entries []model.ActivityLog
}

func (f *fakeActivityRepo) Log(_ context.Context, entry *model.ActivityLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) List(_ context.Context, _, _ int, _ string) ([]model.ActivityLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

type fakePartnerRepo struct {
	partners []model.Partner
}

func (f *fakePartnerRepo) Create(_ context.Context, partner *model.Partner) error {
	if partner.ID == uuid.Nil {
		partner.ID = uuid.New()
	}
	f.partners = append(f.partners, *partner)
	return nil
}

func (f *fakePartnerRepo) Update(_ context.Context, partner *model.Partner) error {
	for i := range f.partners {
		if f.partners[i].ID == partner.ID {
			f.partners[i] = *partner
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePartnerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Partner, error) {
	for i := range f.partners {
		if f.partners[i].ID == id {
			p := f.partners[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePartnerRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Partner, error) {
	return f.FindByID(ctx, id)
}

func (f *fakePartnerRepo) List(_ context.Context, _, _ int, _ bool) ([]model.Partner, int64, error) {
	return f.partners, int64(len(f.partners)), nil
}

func (f *fakePartnerRepo) ListActive(_ context.Context) ([]model.Partner, error) {
	var active []model.Partner
	for _, p := range f.partners {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakePartnerRepo) ActiveShareSum(_ context.Context, excludeID *uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range f.partners {
		if !p.IsActive {
			continue
		}
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		sum = sum.Add(p.ProfitSharePercentage)
	}
	return sum, nil
}

func (f *fakePartnerRepo) HasDistributions(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

type fakeDistributionRepo struct {
	rows map[uuid.UUID]model.ProfitDistribution
}

func newFakeDistributionRepo() *fakeDistributionRepo {
	return &fakeDistributionRepo{rows: make(map[uuid.UUID]model.ProfitDistribution)}
}

func (f *fakeDistributionRepo) Create(_ context.Context, dist *model.ProfitDistribution) error {
	if dist.ID == uuid.Nil {
		dist.ID = uuid.New()
	}
	f.rows[dist.ID] = *dist
	return nil
}

func (f *fakeDistributionRepo) Update(_ context.Context, dist *model.ProfitDistribution) error {
	f.rows[dist.ID] = *dist
	return nil
}

func (f *fakeDistributionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProfitDistribution, error) {
	if row, ok := f.rows[id]; ok {
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDistributionRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ProfitDistribution, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeDistributionRepo) List(_ context.Context, _, _ int, _ *uuid.UUID, _ string) ([]model.ProfitDistribution, int64, error) {
	var rows []model.ProfitDistribution
	for _, row := range f.rows {
		rows = append(rows, row)
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeDistributionRepo) ExistsOverlapping(_ context.Context, partnerID uuid.UUID, start, end time.Time) (bool, error) {
	for _, row := range f.rows {
		if row.PartnerID == partnerID && !row.StartDate.After(end) && !row.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDistributionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

type fakeProfitService struct {
	summary ProfitSummary
}

func (f *fakeProfitService) PeriodSummary(_ context.Context, start, end time.Time) (ProfitSummary, error) {
	s := f.summary
	s.StartDate = start
	s.EndDate = end
	return s, nil
}

func (f *fakeProfitService) MonthlySummary(_ context.Context, _, _ int) (ProfitSummary, error) {
	return f.summary, nil
}

func (f *fakeProfitService) Trend(_ context.Context, _ int) ([]MonthlySummary, error) {
	return nil, nil
}

func (f *fakeProfitService) YearToDate(_ context.Context, _ int, _ time.Time) (ProfitSummary, error) {
	return f.summary, nil
}

func (f *fakeProfitService) ExportProfitLoss(_ context.Context, _ int) ([]byte, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	orders    []model.Order
	items     []model.OrderItem
	delivered repository.PeriodTotals
}

func (f *fakeOrderRepo) Create(_ context.Context, order *model.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) CreateItem(_ context.Context, item *model.OrderItem) error {
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *model.Order) error {
	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i] = *order
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeOrderRepo) List(_ context.Context, _, _ int, _ *uuid.UUID, _ string) ([]model.Order, int64, error) {
	return f.orders, int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) DeliveredTotals(_ context.Context, _, _ time.Time) (repository.PeriodTotals, error) {
	return f.delivered, nil
}

type fakeCostRepo struct {
	approved decimal.Decimal
}

func (f *fakeCostRepo) Create(_ context.Context, cost *model.OperationalCost) error {
	if cost.ID == uuid.Nil {
		cost.ID = uuid.New()
	}
	return nil
}

func (f *fakeCostRepo) Update(_ context.Context, _ *model.OperationalCost) error {
	return nil
}

func (f *fakeCostRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.OperationalCost, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCostRepo) List(_ context.Context, _, _ int, _ string, _, _ int) ([]model.OperationalCost, int64, error) {
	return nil, 0, nil
}

func (f *fakeCostRepo) ApprovedTotal(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return f.approved, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]model.Product
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]model.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *model.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			found := p
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) List(_ context.Context, _, _ int, _, _ string) ([]model.Product, int64, error) {
	all, err := f.ListAll(context.Background())
	return all, int64(len(all)), err
}

func (f *fakeProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	var all []model.Product
	for _, p := range f.products {
		all = append(all, p)
	}
	return all, nil
}

func (f *fakeProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	p, ok := f.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity = stock
	f.products[id] = p
	return nil
}

func (f *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeProductRepo) CreateReview(_ context.Context, _ *model.Review) error {
	return nil
}

func (f *fakeProductRepo) ListReviews(_ context.Context, _ uuid.UUID, _, _ int) ([]model.Review, int64, error) {
	return nil, 0, nil
}

type fakeCartRepo struct {
	items []model.CartItem
}

func (f *fakeCartRepo) Upsert(_ context.Context, item *model.CartItem) error {
	for i := range f.items {
		if f.items[i].UserID == item.UserID && f.items[i].ProductID == item.ProductID {
			f.items[i] = *item
			return nil
		}
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeCartRepo) FindByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*model.CartItem, error) {
	for i := range f.items {
		if f.items[i].UserID == userID && f.items[i].ProductID == productID {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	for _, item := range f.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeCartRepo) DeleteItem(_ context.Context, userID, productID uuid.UUID) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.UserID != userID || item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeCartRepo) ClearByUser(_ context.Context, userID uuid.UUID) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

type fakeLedgerRepo struct {
	entries []model.LedgerEntry
}

func (f *fakeLedgerRepo) Create(_ context.Context, entry *model.LedgerEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeLedgerRepo) List(_ context.Context, _, _ int, _, _ string, _, _ *time.Time) ([]model.LedgerEntry, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeLedgerRepo) OrderTotals(_ context.Context, _, _ time.Time) (repository.LedgerTotals, error) {
	return repository.LedgerTotals{}, nil
}

func (f *fakeLedgerRepo) MarkReconciled(_ context.Context, _ []uuid.UUID, _ uuid.UUID, _ time.Time) (int64, error) {
	return 0, nil
}
