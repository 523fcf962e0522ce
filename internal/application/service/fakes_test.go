package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/enum"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/pkg/pagination"
	"gorm.io/gorm"
)

// In-memory repository fakes used across the service tests.

func tenantCtx(tenantID uuid.UUID) context.Context {
	return infraRepo.WithTenant(context.Background(), tenantID)
}

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*entity.Tenant
}

func newFakeTenantRepo(tenants ...*entity.Tenant) *fakeTenantRepo {
	r := &fakeTenantRepo{tenants: make(map[uuid.UUID]*entity.Tenant)}
	for _, t := range tenants {
		r.tenants[t.ID] = t
	}
	return r
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	return r.tenants[id], nil
}

func (r *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error {
	r.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.TenantSettings) error {
	if t, ok := r.tenants[id]; ok {
		t.Settings = settings
	}
	return nil
}

func (r *fakeTenantRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	t, _ := r.GetBySlug(ctx, slug)
	return t != nil, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	out := make([]entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func newFakeServiceRepo(services ...*entity.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{services: make(map[uuid.UUID]*entity.Service)}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *fakeServiceRepo) Create(ctx context.Context, service *entity.Service) error {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	return r.services[id], nil
}

func (r *fakeServiceRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error) {
	out := make([]entity.Service, 0, len(ids))
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if s, ok := r.services[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) Update(ctx context.Context, service *entity.Service) error {
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) List(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.Service, int64, error) {
	out := make([]entity.Service, 0, len(r.services))
	for _, s := range r.services {
		if activeOnly && !s.Active {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo(bookings ...*entity.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.bookings[id], nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeBookingRepo) List(ctx context.Context, params *pagination.PaginationParams, status string) ([]entity.Booking, int64, error) {
	out := make([]entity.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if status != "" && b.Status != status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

// fakeTransactionRepo optionally fails the first createFailures creates
// with gorm.ErrDuplicatedKey to exercise the number-collision retry.
// Like the real repository, a booking-backed create settles the booking
// as part of the same write: a booking that is not confirmed anymore, or
// that another transaction already claimed, fails the whole create with
// ErrBookingSettled.
type fakeTransactionRepo struct {
	transactions   map[uuid.UUID]*entity.SalesTransaction
	bookings       *fakeBookingRepo
	createFailures int
	createCalls    int
}

func newFakeTransactionRepo(bookings *fakeBookingRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: make(map[uuid.UUID]*entity.SalesTransaction),
		bookings:     bookings,
	}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.SalesTransaction) error {
	r.createCalls++
	if r.createFailures > 0 {
		r.createFailures--
		return gorm.ErrDuplicatedKey
	}
	if transaction.BookingID != nil {
		for _, t := range r.transactions {
			if t.BookingID != nil && *t.BookingID == *transaction.BookingID {
				return repository.ErrBookingSettled
			}
		}
		booking := r.bookings.bookings[*transaction.BookingID]
		if booking == nil || booking.Status != entity.BookingStatusConfirmed {
			return repository.ErrBookingSettled
		}
		booking.Status = entity.BookingStatusSettled
	}
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	r.transactions[transaction.ID] = transaction
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.SalesTransaction, error) {
	return r.transactions[id], nil
}

func (r *fakeTransactionRepo) GetByNumber(ctx context.Context, number string) (*entity.SalesTransaction, error) {
	for _, t := range r.transactions {
		if t.TransactionNumber == number {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) List(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.SalesTransaction, int64, error) {
	out := make([]entity.SalesTransaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

type fakeSequenceRepo struct {
	values map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{values: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(ctx context.Context, tenantID uuid.UUID, scope string) (int64, error) {
	key := tenantID.String() + "/" + scope
	r.values[key]++
	return r.values[key], nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo(invoices ...*entity.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
	for _, inv := range invoices {
		r.invoices[inv.ID] = inv
	}
	return r
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	for _, existing := range r.invoices {
		if existing.TenantID == invoice.TenantID && existing.TransactionID == invoice.TransactionID {
			return gorm.ErrDuplicatedKey
		}
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	r.invoices[invoice.ID] = invoice
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.invoices[id], nil
}

func (r *fakeInvoiceRepo) GetByTransactionID(ctx context.Context, transactionID uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.TransactionID == transactionID {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus, paidDate *time.Time) error {
	if inv, ok := r.invoices[id]; ok {
		inv.Status = status
		if paidDate != nil {
			inv.PaidDate = paidDate
			inv.TotalPaid = inv.GrandTotal
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	out := make([]entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ListByIssueDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	out := make([]entity.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if inv.IssueDate.Before(start) || !inv.IssueDate.Before(end) {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	var flipped int64
	for _, inv := range r.invoices {
		if inv.Status == enum.InvoiceStatusSent && inv.DueDate.Before(now) {
			inv.Status = enum.InvoiceStatusOverdue
			flipped++
		}
	}
	return flipped, nil
}

func (r *fakeInvoiceRepo) MarkOverdueAll(ctx context.Context, now time.Time) (int64, error) {
	return r.MarkOverdue(ctx, now)
}
