package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/storefront/commerce-api/internal/core/domain"
)

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAudit) Record(ev domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *stubAudit) actions() []domain.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuditAction, len(a.events))
	for i, ev := range a.events {
		out[i] = ev.Action
	}
	return out
}

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) CreateWithPaymentProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrConflict
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = r.nextID
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Email != "" {
		u.Email = patch.Email
	}
	if patch.Password != "" {
		u.PasswordHash = patch.Password
	}
	if patch.FirstName != "" {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		u.LastName = patch.LastName
	}
	if patch.PhoneNumber != "" {
		u.PhoneNumber = patch.PhoneNumber
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id int64, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

type stubResetRepo struct {
	codes  []*domain.ResetCode
	nextID int64
	hashes map[int64]string
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{hashes: make(map[int64]string)}
}

func (r *stubResetRepo) Create(_ context.Context, code *domain.ResetCode) error {
	r.nextID++
	c := *code
	c.ID = r.nextID
	r.codes = append(r.codes, &c)
	return nil
}

func (r *stubResetRepo) MarkValidated(_ context.Context, code string) (*domain.ResetCode, error) {
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].Code == code {
			r.codes[i].Validated = true
			c := *r.codes[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCodeNotFound
}

func (r *stubResetRepo) LatestForUser(_ context.Context, userID int64) (*domain.ResetCode, error) {
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].UserID == userID {
			c := *r.codes[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCodeNotFound
}

func (r *stubResetRepo) ConsumeWithPassword(_ context.Context, codeID, userID int64, hash string) error {
	for i, c := range r.codes {
		if c.ID == codeID {
			r.codes = append(r.codes[:i], r.codes[i+1:]...)
			r.hashes[userID] = hash
			return nil
		}
	}
	return domain.ErrCodeNotFound
}

type stubNotifier struct {
	sent map[string]string
	err  error
}

func (n *stubNotifier) SendResetCode(_ context.Context, email, code string) error {
	if n.err != nil {
		return n.err
	}
	if n.sent == nil {
		n.sent = make(map[string]string)
	}
	n.sent[email] = code
	return nil
}

type stubCatalogRepo struct {
	products      []domain.Product
	loads         int
	inventoryErr  error
	productErr    error
	inventoryRows int
	lastQuery     domain.CatalogQuery
	filterTotal   int64
}

func (r *stubCatalogRepo) FindProduct(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubCatalogRepo) SearchByName(_ context.Context, _ string) ([]domain.Product, error) {
	return r.products, nil
}

func (r *stubCatalogRepo) BestSellers(_ context.Context, limit int) ([]domain.Product, error) {
	r.loads++
	if len(r.products) > limit {
		return r.products[:limit], nil
	}
	return r.products, nil
}

func (r *stubCatalogRepo) NewArrivals(_ context.Context, limit int) ([]domain.Product, error) {
	r.loads++
	out := append([]domain.Product(nil), r.products...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubCatalogRepo) Filter(_ context.Context, q domain.CatalogQuery) ([]domain.Product, int64, error) {
	r.lastQuery = q
	return nil, r.filterTotal, nil
}

func (r *stubCatalogRepo) CreateInventory(_ context.Context, _ domain.NewProductInput) (int64, error) {
	if r.inventoryErr != nil {
		return 0, r.inventoryErr
	}
	r.inventoryRows++
	return int64(r.inventoryRows), nil
}

func (r *stubCatalogRepo) CreateProduct(_ context.Context, in domain.NewProductInput, inventoryID int64) (*domain.Product, error) {
	if r.productErr != nil {
		return nil, r.productErr
	}
	p := domain.Product{
		ID:              int64(len(r.products) + 1),
		Name:            in.Name,
		SecondaryImages: in.SecondaryImages,
		Inventory:       domain.Inventory{ID: inventoryID, Price: in.Price},
	}
	r.products = append(r.products, p)
	return &p, nil
}

type stubCache struct {
	entries     map[string][]domain.Product
	invalidated []string
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]domain.Product)}
}

func (c *stubCache) Get(_ context.Context, key string) ([]domain.Product, bool, error) {
	p, ok := c.entries[key]
	return p, ok, nil
}

func (c *stubCache) Set(_ context.Context, key string, products []domain.Product, _ time.Duration) error {
	c.entries[key] = products
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

type stubCartRepo struct {
	carts map[int64]*domain.Cart
}

func (r *stubCartRepo) FindByUser(_ context.Context, userID int64) (*domain.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *stubCartRepo) AddItem(_ context.Context, userID, productID int64, quantity int) error {
	if r.carts == nil {
		r.carts = make(map[int64]*domain.Cart)
	}
	c, ok := r.carts[userID]
	if !ok {
		c = &domain.Cart{ID: int64(len(r.carts) + 1), UserID: userID}
		r.carts[userID] = c
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}
	c.Items = append(c.Items, domain.CartItem{ID: int64(len(c.Items) + 1), Product: domain.Product{ID: productID}, Quantity: quantity})
	return nil
}
