package test

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	stored.ID = s.Next
	stored.Active = true
	stored.CreatedAt = time.Now()
	s.Next++
	s.ByEmail[stored.Email] = &stored
	s.ByID[stored.ID] = &stored
	return &stored, nil
}

func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Name = name
	user.Phone = phone
	return nil
}

func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *UserRepositoryStub) SetActive(ctx context.Context, id int64, active bool) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Active = active
	return nil
}

func (s *UserRepositoryStub) SetOAuthProvider(ctx context.Context, id int64, provider string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.OAuthProvider = &provider
	return nil
}

func (s *UserRepositoryStub) SetEmployeeGroup(ctx context.Context, id int64, groupID *int64) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.EmployeeGroupID = groupID
	if groupID != nil {
		user.GroupID = model.GroupEmployee
	} else {
		user.GroupID = model.GroupCustomer
	}
	return nil
}

func (s *UserRepositoryStub) ListByGroup(ctx context.Context, group model.Group, limit, offset int) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.User
	for _, user := range s.ByID {
		if user.GroupID == group {
			result = append(result, *user)
		}
	}
	return result, nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64
	Err      error
}

func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *product
	stored.ID = s.Next
	s.Next++
	s.Products[stored.ID] = &stored
	return &stored, nil
}

func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[product.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *product
	s.Products[product.ID] = &stored
	return nil
}

func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Product
	for _, product := range s.Products {
		if filter.OnlyActive && !product.Active {
			continue
		}
		if filter.CategoryID != nil && product.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, *product)
	}
	return result, nil
}

func (s *ProductRepositoryStub) SetActive(ctx context.Context, id int64, active bool) error {
	if product, ok := s.Products[id]; ok {
		product.Active = active
		return nil
	}
	return domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) DecrementStock(ctx context.Context, id int64, quantity int) error {
	product, ok := s.Products[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if product.Stock < quantity {
		return domainErrors.ErrInsufficientStock
	}
	product.Stock -= quantity
	return nil
}

// CategoryRepositoryStub stores categories in-memory for tests.
type CategoryRepositoryStub struct {
	Categories map[int64]*model.Category
	Next       int64
	Err        error
}

func NewCategoryRepositoryStub() *CategoryRepositoryStub {
	return &CategoryRepositoryStub{Categories: make(map[int64]*model.Category), Next: 1}
}

func (s *CategoryRepositoryStub) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *category
	stored.ID = s.Next
	s.Next++
	s.Categories[stored.ID] = &stored
	return &stored, nil
}

func (s *CategoryRepositoryStub) Update(ctx context.Context, category *model.Category) error {
	if _, ok := s.Categories[category.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *category
	s.Categories[category.ID] = &stored
	return nil
}

func (s *CategoryRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Categories[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Categories, id)
	return nil
}

func (s *CategoryRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if category, ok := s.Categories[id]; ok {
		copied := *category
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Category
	for _, category := range s.Categories {
		result = append(result, *category)
	}
	return result, nil
}

// CartRepositoryStub keeps one active cart per user.
type CartRepositoryStub struct {
	Carts    map[int64]*model.Cart
	NextItem int64
	Err      error
}

func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Carts: make(map[int64]*model.Cart), NextItem: 1}
}

func (s *CartRepositoryStub) GetActive(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if cart, ok := s.Carts[userID]; ok {
		copied := *cart
		copied.Items = append([]model.CartItem(nil), cart.Items...)
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CartRepositoryStub) AddItem(ctx context.Context, userID int64, item model.CartItem) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	cart, ok := s.Carts[userID]
	if !ok {
		cart = &model.Cart{ID: userID, UserID: userID}
		s.Carts[userID] = cart
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].UnitPrice = item.UnitPrice
			return s.GetActive(ctx, userID)
		}
	}
	item.ID = s.NextItem
	item.CartID = cart.ID
	s.NextItem++
	cart.Items = append(cart.Items, item)
	return s.GetActive(ctx, userID)
}

func (s *CartRepositoryStub) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	cart, ok := s.Carts[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *CartRepositoryStub) RemoveItem(ctx context.Context, userID, itemID int64) error {
	cart, ok := s.Carts[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *CartRepositoryStub) Clear(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	delete(s.Carts, userID)
	return nil
}

// AddressRepositoryStub stores addresses in-memory for tests.
type AddressRepositoryStub struct {
	Addresses map[int64]*model.Address
	Next      int64
	Err       error
}

func NewAddressRepositoryStub() *AddressRepositoryStub {
	return &AddressRepositoryStub{Addresses: make(map[int64]*model.Address), Next: 1}
}

func (s *AddressRepositoryStub) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *address
	stored.ID = s.Next
	s.Next++
	s.Addresses[stored.ID] = &stored
	return &stored, nil
}

func (s *AddressRepositoryStub) Update(ctx context.Context, address *model.Address) error {
	existing, ok := s.Addresses[address.ID]
	if !ok || existing.UserID != address.UserID {
		return domainErrors.ErrNotFound
	}
	stored := *address
	s.Addresses[address.ID] = &stored
	return nil
}

func (s *AddressRepositoryStub) Delete(ctx context.Context, userID, id int64) error {
	existing, ok := s.Addresses[id]
	if !ok || existing.UserID != userID {
		return domainErrors.ErrNotFound
	}
	delete(s.Addresses, id)
	return nil
}

func (s *AddressRepositoryStub) GetByID(ctx context.Context, userID, id int64) (*model.Address, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if address, ok := s.Addresses[id]; ok && address.UserID == userID {
		copied := *address
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	var result []model.Address
	for _, address := range s.Addresses {
		if address.UserID == userID {
			result = append(result, *address)
		}
	}
	return result, nil
}

// OrderRepositoryStub stores orders in-memory and records status history.
type OrderRepositoryStub struct {
	Orders map[int64]*model.Order
	Next   int64
	Err    error

	CreateFn             func(context.Context, *model.Order) (*model.Order, error)
	SelectPendingBatchFn func(context.Context, time.Time, int) ([]model.Order, error)
}

func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *order
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	s.Next++
	stored.History = append(stored.History, model.StatusChange{
		OrderID:   stored.ID,
		To:        stored.Status,
		CreatedAt: stored.CreatedAt,
	})
	s.Orders[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (s *OrderRepositoryStub) GetForUser(ctx context.Context, userID, id int64) (*model.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var result []model.Order
	for _, order := range s.Orders {
		if order.UserID == userID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	var result []model.Order
	for _, order := range s.Orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		result = append(result, *order)
	}
	return result, nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, actor, note string) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.History = append(order.History, model.StatusChange{
		OrderID: id,
		From:    order.Status,
		To:      status,
		Actor:   actor,
		Note:    note,
	})
	from := order.Status
	order.Status = status
	if status == model.OrderStatusDelivered && from != model.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}
	return nil
}

func (s *OrderRepositoryStub) SetTracking(ctx context.Context, id int64, carrier, code string) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Carrier = &carrier
	order.TrackingCode = &code
	return nil
}

func (s *OrderRepositoryStub) SetPreference(ctx context.Context, id int64, preferenceID, initPoint string) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PreferenceID = &preferenceID
	order.InitPoint = &initPoint
	return nil
}

func (s *OrderRepositoryStub) SetPaymentID(ctx context.Context, id int64, paymentID int64) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PaymentID = &paymentID
	return nil
}

func (s *OrderRepositoryStub) RequestRefund(ctx context.Context, id int64, reason string, at time.Time) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.RefundStatus = model.RefundStatusRequested
	order.RefundReason = &reason
	order.RefundRequestedAt = &at
	return nil
}

func (s *OrderRepositoryStub) ResolveRefund(ctx context.Context, id int64, status model.RefundStatus, at time.Time) error {
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.RefundStatus = status
	order.RefundProcessedAt = &at
	return nil
}

func (s *OrderRepositoryStub) SelectPendingBatch(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	if s.SelectPendingBatchFn != nil {
		return s.SelectPendingBatchFn(ctx, cutoff, limit)
	}
	var result []model.Order
	for _, order := range s.Orders {
		if order.Status == model.OrderStatusPending && order.CreatedAt.Before(cutoff) {
			result = append(result, *order)
		}
	}
	return result, nil
}

// GroupRepositoryStub stores employee groups in-memory for tests.
type GroupRepositoryStub struct {
	GroupsByID map[int64]*model.EmployeeGroup
	Next       int64
	Err        error
}

func NewGroupRepositoryStub() *GroupRepositoryStub {
	return &GroupRepositoryStub{GroupsByID: make(map[int64]*model.EmployeeGroup), Next: 1}
}

func (s *GroupRepositoryStub) Create(ctx context.Context, group *model.EmployeeGroup) (*model.EmployeeGroup, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *group
	stored.ID = s.Next
	s.Next++
	s.GroupsByID[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (s *GroupRepositoryStub) Update(ctx context.Context, group *model.EmployeeGroup) error {
	if _, ok := s.GroupsByID[group.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *group
	s.GroupsByID[group.ID] = &stored
	return nil
}

func (s *GroupRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.GroupsByID[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.GroupsByID, id)
	return nil
}

func (s *GroupRepositoryStub) GetByID(ctx context.Context, id int64) (*model.EmployeeGroup, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if group, ok := s.GroupsByID[id]; ok {
		copied := *group
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *GroupRepositoryStub) List(ctx context.Context) ([]model.EmployeeGroup, error) {
	var result []model.EmployeeGroup
	for _, group := range s.GroupsByID {
		result = append(result, *group)
	}
	return result, nil
}

// AccessLogRepositoryStub appends entries to a slice.
type AccessLogRepositoryStub struct {
	Entries []model.AccessLogEntry
	Err     error
}

func (s *AccessLogRepositoryStub) Append(ctx context.Context, entry *model.AccessLogEntry) error {
	if s.Err != nil {
		return s.Err
	}
	stored := *entry
	stored.ID = int64(len(s.Entries) + 1)
	s.Entries = append(s.Entries, stored)
	return nil
}

func (s *AccessLogRepositoryStub) List(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLogEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.AccessLogEntry
	for _, entry := range s.Entries {
		if filter.EmployeeID != nil && entry.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Module != nil && entry.Module != *filter.Module {
			continue
		}
		result = append(result, entry)
	}
	return result, nil
}

var (
	_ repository.UserRepository      = (*UserRepositoryStub)(nil)
	_ repository.ProductRepository   = (*ProductRepositoryStub)(nil)
	_ repository.CategoryRepository  = (*CategoryRepositoryStub)(nil)
	_ repository.CartRepository      = (*CartRepositoryStub)(nil)
	_ repository.AddressRepository   = (*AddressRepositoryStub)(nil)
	_ repository.OrderRepository     = (*OrderRepositoryStub)(nil)
	_ repository.GroupRepository     = (*GroupRepositoryStub)(nil)
	_ repository.AccessLogRepository = (*AccessLogRepositoryStub)(nil)
)
