package service

import (
	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the persistence contracts closely
// enough for service-level tests: the receipt fake checks stock before
// writing anything, like the real transaction does.

type fakeProductRepo struct {
	products  map[uuid.UUID]*model.Product
	createErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (f *fakeProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeProductRepo) Create(product *model.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(product)
	return nil
}

func (f *fakeProductRepo) FindAll() ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindByBarcode(barcode string) (*model.Product, error) {
	for _, p := range f.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) FindByMedicineID(medicineID string) (*model.Product, error) {
	for _, p := range f.products {
		if p.MedicineID == medicineID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) Update(product *model.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) CountByCategory(categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (f *fakeCategoryRepo) add(name string) *model.Category {
	c := &model.Category{Name: name}
	c.ID = uuid.New()
	f.categories[c.ID] = c
	return c
}

func (f *fakeCategoryRepo) Create(category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) FindByName(name string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) Update(category *model.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

type fakeReceiptRepo struct {
	receipts map[uuid.UUID]*model.Receipt
	stock    map[uuid.UUID]int
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{
		receipts: make(map[uuid.UUID]*model.Receipt),
		stock:    make(map[uuid.UUID]int),
	}
}

func (f *fakeReceiptRepo) CreateWithItems(receipt *model.Receipt, items []model.ReceiptItem) error {
	// All-or-nothing: verify every line before mutating anything.
	for _, item := range items {
		available, ok := f.stock[item.ProductID]
		if !ok {
			return repository.ErrProductNotFound
		}
		if available < item.Quantity {
			return repository.ErrInsufficientStock
		}
	}

	receipt.ID = uuid.New()
	for i := range items {
		items[i].ReceiptID = receipt.ID
		f.stock[items[i].ProductID] -= items[i].Quantity
	}
	receipt.Items = items
	f.receipts[receipt.ID] = receipt
	return nil
}

func (f *fakeReceiptRepo) DeleteWithItems(id uuid.UUID) error {
	if _, ok := f.receipts[id]; !ok {
		return repository.ErrReceiptNotFound
	}
	delete(f.receipts, id)
	return nil
}

func (f *fakeReceiptRepo) FindAll() ([]model.Receipt, error) {
	var out []model.Receipt
	for _, r := range f.receipts {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReceiptRepo) FindByID(id uuid.UUID) (*model.Receipt, error) {
	r, ok := f.receipts[id]
	if !ok {
		return nil, repository.ErrReceiptNotFound
	}
	return r, nil
}

func (f *fakeReceiptRepo) SalesReport() ([]repository.SalesReportRow, error) {
	return nil, nil
}

func (f *fakeReceiptRepo) InventoryStats() (*repository.InventoryStats, error) {
	return &repository.InventoryStats{}, nil
}

type fakeUserRepo struct {
	users     map[uuid.UUID]*model.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) add(u *model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error {
	u, ok := f.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	return nil
}

type fakeRoleRepo struct {
	roles []model.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	roles := make([]model.Role, len(model.DefaultRoles))
	copy(roles, model.DefaultRoles)
	for i := range roles {
		roles[i].ID = uint(i + 1)
	}
	return &fakeRoleRepo{roles: roles}
}

func (f *fakeRoleRepo) FindAll() ([]model.Role, error) {
	return f.roles, nil
}

func (f *fakeRoleRepo) FindByCode(code string) (*model.Role, error) {
	for i := range f.roles {
		if f.roles[i].Code == code {
			return &f.roles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) SeedDefaults() error {
	return nil
}
