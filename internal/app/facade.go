package app

import (
	"context"
	"time"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
	pkgAuth "github.com/memoriza/memoriza/internal/pkg/auth"
	"github.com/memoriza/memoriza/internal/usecase"
)

// StoreFacade aggregates the store use cases behind a single surface for
// the HTTP layer and the background reconciler.
type StoreFacade struct {
	auth      *usecase.AuthUseCase
	catalog   *usecase.CatalogUseCase
	cart      *usecase.CartUseCase
	addresses *usecase.AddressUseCase
	shipping  *usecase.ShippingUseCase
	orders    *usecase.OrderUseCase
	payments  *usecase.PaymentUseCase
	staff     *usecase.StaffUseCase
}

func NewStoreFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	addresses *usecase.AddressUseCase,
	shipping *usecase.ShippingUseCase,
	orders *usecase.OrderUseCase,
	payments *usecase.PaymentUseCase,
	staff *usecase.StaffUseCase,
) *StoreFacade {
	return &StoreFacade{
		auth:      auth,
		catalog:   catalog,
		cart:      cart,
		addresses: addresses,
		shipping:  shipping,
		orders:    orders,
		payments:  payments,
		staff:     staff,
	}
}

// --- identity ---

func (f *StoreFacade) Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, phone, password)
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StoreFacade) OAuthURL(state string) string {
	return f.auth.OAuthURL(state)
}

func (f *StoreFacade) OAuthCallback(ctx context.Context, code string) (*model.User, string, error) {
	return f.auth.OAuthCallback(ctx, code)
}

func (f *StoreFacade) ParseToken(token string) (*pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StoreFacade) UpdateProfile(ctx context.Context, userID int64, name, phone string) error {
	return f.auth.UpdateProfile(ctx, userID, name, phone)
}

func (f *StoreFacade) ChangePassword(ctx context.Context, userID int64, current, updated string) error {
	return f.auth.ChangePassword(ctx, userID, current, updated)
}

func (f *StoreFacade) DeactivateAccount(ctx context.Context, userID int64) error {
	return f.auth.Deactivate(ctx, userID)
}

// --- catalog ---

func (f *StoreFacade) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return f.catalog.ListProducts(ctx, filter)
}

func (f *StoreFacade) AllProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return f.catalog.ListAllProducts(ctx, filter)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.GetProduct(ctx, id)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.CreateProduct(ctx, product)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, product *model.Product) error {
	return f.catalog.UpdateProduct(ctx, product)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.DeleteProduct(ctx, id)
}

func (f *StoreFacade) SetProductActive(ctx context.Context, id int64, active bool) error {
	return f.catalog.SetProductActive(ctx, id, active)
}

func (f *StoreFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.ListCategories(ctx)
}

func (f *StoreFacade) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, category)
}

func (f *StoreFacade) UpdateCategory(ctx context.Context, category *model.Category) error {
	return f.catalog.UpdateCategory(ctx, category)
}

func (f *StoreFacade) DeleteCategory(ctx context.Context, id int64) error {
	return f.catalog.DeleteCategory(ctx, id)
}

// --- cart ---

func (f *StoreFacade) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	return f.cart.Get(ctx, userID)
}

func (f *StoreFacade) AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	return f.cart.AddItem(ctx, userID, productID, quantity)
}

func (f *StoreFacade) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	return f.cart.UpdateItemQuantity(ctx, userID, itemID, quantity)
}

func (f *StoreFacade) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	return f.cart.RemoveItem(ctx, userID, itemID)
}

func (f *StoreFacade) ClearCart(ctx context.Context, userID int64) error {
	return f.cart.Clear(ctx, userID)
}

// --- addresses ---

func (f *StoreFacade) CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	return f.addresses.Create(ctx, address)
}

func (f *StoreFacade) UpdateAddress(ctx context.Context, address *model.Address) error {
	return f.addresses.Update(ctx, address)
}

func (f *StoreFacade) DeleteAddress(ctx context.Context, userID, id int64) error {
	return f.addresses.Delete(ctx, userID, id)
}

func (f *StoreFacade) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	return f.addresses.List(ctx, userID)
}

// --- shipping ---

func (f *StoreFacade) ShippingQuote(zipCode string, weightGrams int, subtotal float64) (*model.ShippingQuote, error) {
	return f.shipping.Quote(zipCode, weightGrams, subtotal)
}

// --- orders ---

func (f *StoreFacade) Checkout(ctx context.Context, userID, addressID int64) (*model.CheckoutResult, error) {
	return f.orders.Checkout(ctx, userID, addressID)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *StoreFacade) RequestRefund(ctx context.Context, userID, orderID int64, reason string) error {
	return f.orders.RequestRefund(ctx, userID, orderID, reason)
}

func (f *StoreFacade) AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *StoreFacade) AnyOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.GetAny(ctx, orderID)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID int64, to model.OrderStatus, actor, note, carrier, trackingCode string) error {
	return f.orders.UpdateStatus(ctx, orderID, to, actor, note, carrier, trackingCode)
}

func (f *StoreFacade) ApproveRefund(ctx context.Context, orderID int64, actor string) error {
	return f.orders.ApproveRefund(ctx, orderID, actor)
}

func (f *StoreFacade) RejectRefund(ctx context.Context, orderID int64, actor, note string) error {
	return f.orders.RejectRefund(ctx, orderID, actor, note)
}

// --- payments ---

func (f *StoreFacade) ProcessPaymentWebhook(ctx context.Context, payload payment.WebhookPayload) {
	f.payments.ProcessWebhook(ctx, payload)
}

func (f *StoreFacade) PendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return f.payments.PendingForReconciliation(ctx, olderThan, limit)
}

func (f *StoreFacade) ReconcileOrder(ctx context.Context, order model.Order) error {
	return f.payments.Reconcile(ctx, order)
}

// --- back office ---

func (f *StoreFacade) CreateGroup(ctx context.Context, group *model.EmployeeGroup) (*model.EmployeeGroup, error) {
	return f.staff.CreateGroup(ctx, group)
}

func (f *StoreFacade) UpdateGroup(ctx context.Context, group *model.EmployeeGroup) error {
	return f.staff.UpdateGroup(ctx, group)
}

func (f *StoreFacade) DeleteGroup(ctx context.Context, id int64) error {
	return f.staff.DeleteGroup(ctx, id)
}

func (f *StoreFacade) Group(ctx context.Context, id int64) (*model.EmployeeGroup, error) {
	return f.staff.GetGroup(ctx, id)
}

func (f *StoreFacade) Groups(ctx context.Context) ([]model.EmployeeGroup, error) {
	return f.staff.ListGroups(ctx)
}

func (f *StoreFacade) AssignEmployee(ctx context.Context, userID, groupID int64) error {
	return f.staff.AssignEmployee(ctx, userID, groupID)
}

func (f *StoreFacade) RevokeEmployee(ctx context.Context, userID int64) error {
	return f.staff.RevokeEmployee(ctx, userID)
}

func (f *StoreFacade) Employees(ctx context.Context, limit, offset int) ([]model.User, error) {
	return f.staff.ListEmployees(ctx, limit, offset)
}

func (f *StoreFacade) Customers(ctx context.Context, limit, offset int) ([]model.User, error) {
	return f.staff.ListCustomers(ctx, limit, offset)
}

func (f *StoreFacade) Allowed(ctx context.Context, identity *pkgAuth.Identity, module model.BackOfficeModule, action model.PermissionAction) (bool, error) {
	return f.staff.Allowed(ctx, identity, module, action)
}

func (f *StoreFacade) RecordAccess(ctx context.Context, entry *model.AccessLogEntry) error {
	return f.staff.RecordAccess(ctx, entry)
}

func (f *StoreFacade) AccessLog(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLogEntry, error) {
	return f.staff.ListAccessLog(ctx, filter)
}
