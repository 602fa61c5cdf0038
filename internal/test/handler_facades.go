package test

import (
	"context"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
	pkgAuth "github.com/memoriza/memoriza/internal/pkg/auth"
)

// TokenParserStub resolves every token to a fixed identity.
type TokenParserStub struct {
	Identity *pkgAuth.Identity
	Err      error
}

func (s TokenParserStub) ParseToken(string) (*pkgAuth.Identity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Identity != nil {
		return s.Identity, nil
	}
	return &pkgAuth.Identity{UserID: 1, GroupID: model.GroupCustomer}, nil
}

// AccessControllerStub answers permission checks and captures log entries.
type AccessControllerStub struct {
	AllowedFn func(context.Context, *pkgAuth.Identity, model.BackOfficeModule, model.PermissionAction) (bool, error)
	RecordFn  func(context.Context, *model.AccessLogEntry) error
}

func (s AccessControllerStub) Allowed(ctx context.Context, identity *pkgAuth.Identity, module model.BackOfficeModule, action model.PermissionAction) (bool, error) {
	if s.AllowedFn != nil {
		return s.AllowedFn(ctx, identity, module, action)
	}
	return true, nil
}

func (s AccessControllerStub) RecordAccess(ctx context.Context, entry *model.AccessLogEntry) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, entry)
	}
	return nil
}

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn      func(context.Context, string, string, string, string) (*model.User, string, error)
	AuthenticateFn  func(context.Context, string, string) (*model.User, string, error)
	OAuthURLFn      func(string) string
	OAuthCallbackFn func(context.Context, string) (*model.User, string, error)
}

func (s AuthFacadeStub) Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, phone, password)
	}
	return &model.User{ID: 1, Name: name, Email: email, GroupID: model.GroupCustomer, Active: true}, "session-token", nil
}

func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, GroupID: model.GroupCustomer, Active: true}, "session-token", nil
}

func (s AuthFacadeStub) OAuthURL(state string) string {
	if s.OAuthURLFn != nil {
		return s.OAuthURLFn(state)
	}
	return "https://provider.example/auth?state=" + state
}

func (s AuthFacadeStub) OAuthCallback(ctx context.Context, code string) (*model.User, string, error) {
	if s.OAuthCallbackFn != nil {
		return s.OAuthCallbackFn(ctx, code)
	}
	return &model.User{ID: 1, Email: "oauth@example.com", GroupID: model.GroupCustomer, Active: true}, "session-token", nil
}

// AccountFacadeStub simulates the authenticated user's account operations.
type AccountFacadeStub struct {
	ProfileFn        func(context.Context, int64) (*model.User, error)
	UpdateProfileFn  func(context.Context, int64, string, string) error
	ChangePasswordFn func(context.Context, int64, string, string) error
	DeactivateFn     func(context.Context, int64) error
}

func (s AccountFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Name: "Ana", Email: "ana@example.com", GroupID: model.GroupCustomer, Active: true}, nil
}

func (s AccountFacadeStub) UpdateProfile(ctx context.Context, userID int64, name, phone string) error {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, name, phone)
	}
	return nil
}

func (s AccountFacadeStub) ChangePassword(ctx context.Context, userID int64, current, updated string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, userID, current, updated)
	}
	return nil
}

func (s AccountFacadeStub) DeactivateAccount(ctx context.Context, userID int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, userID)
	}
	return nil
}

// CatalogFacadeStub serves canned storefront data.
type CatalogFacadeStub struct {
	ProductsFn   func(context.Context, model.ProductFilter) ([]model.Product, error)
	ProductFn    func(context.Context, int64) (*model.Product, error)
	CategoriesFn func(context.Context) ([]model.Category, error)
}

func (s CatalogFacadeStub) Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{{ID: 1, Name: "Quadro", Price: 100, Active: true}}, nil
}

func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Quadro", Price: 100, Active: true}, nil
}

func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: 1, Name: "Quadros", Slug: "quadros"}}, nil
}

// CartFacadeStub simulates cart operations.
type CartFacadeStub struct {
	CartFn       func(context.Context, int64) (*model.Cart, error)
	AddItemFn    func(context.Context, int64, int64, int) (*model.Cart, error)
	UpdateItemFn func(context.Context, int64, int64, int) error
	RemoveItemFn func(context.Context, int64, int64) error
	ClearFn      func(context.Context, int64) error
}

func (s CartFacadeStub) Cart(ctx context.Context, userID int64) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{ID: userID, UserID: userID}, nil
}

func (s CartFacadeStub) AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error) {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, userID, productID, quantity)
	}
	return &model.Cart{ID: userID, UserID: userID, Items: []model.CartItem{
		{ID: 1, ProductID: productID, ProductName: "Quadro", UnitPrice: 100, Quantity: quantity},
	}}, nil
}

func (s CartFacadeStub) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(ctx, userID, itemID, quantity)
	}
	return nil
}

func (s CartFacadeStub) RemoveCartItem(ctx context.Context, userID, itemID int64) error {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(ctx, userID, itemID)
	}
	return nil
}

func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return nil
}

// AddressFacadeStub simulates address book operations.
type AddressFacadeStub struct {
	AddressesFn func(context.Context, int64) ([]model.Address, error)
	CreateFn    func(context.Context, *model.Address) (*model.Address, error)
	UpdateFn    func(context.Context, *model.Address) error
	DeleteFn    func(context.Context, int64, int64) error
}

func (s AddressFacadeStub) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	if s.AddressesFn != nil {
		return s.AddressesFn(ctx, userID)
	}
	return []model.Address{{ID: 1, UserID: userID, Street: "Rua A", City: "Rio de Janeiro", State: "RJ", ZipCode: "20040020"}}, nil
}

func (s AddressFacadeStub) CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, address)
	}
	created := *address
	created.ID = 1
	return &created, nil
}

func (s AddressFacadeStub) UpdateAddress(ctx context.Context, address *model.Address) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, address)
	}
	return nil
}

func (s AddressFacadeStub) DeleteAddress(ctx context.Context, userID, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, userID, id)
	}
	return nil
}

// ShippingFacadeStub returns a fixed freight quote unless overridden.
type ShippingFacadeStub struct {
	QuoteFn func(string, int, float64) (*model.ShippingQuote, error)
}

func (s ShippingFacadeStub) ShippingQuote(zipCode string, weightGrams int, subtotal float64) (*model.ShippingQuote, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(zipCode, weightGrams, subtotal)
	}
	return &model.ShippingQuote{Amount: 15, Carrier: "correios", DeliveryDays: 5}, nil
}

// OrderFacadeStub simulates customer order operations.
type OrderFacadeStub struct {
	CheckoutFn      func(context.Context, int64, int64) (*model.CheckoutResult, error)
	OrdersFn        func(context.Context, int64) ([]model.Order, error)
	OrderFn         func(context.Context, int64, int64) (*model.Order, error)
	RequestRefundFn func(context.Context, int64, int64, string) error
}

func (s OrderFacadeStub) Checkout(ctx context.Context, userID, addressID int64) (*model.CheckoutResult, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, addressID)
	}
	return &model.CheckoutResult{
		Order:     &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending, Total: 145},
		InitPoint: "https://pay.example/pref-1",
	}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Status: model.OrderStatusPending}}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

func (s OrderFacadeStub) RequestRefund(ctx context.Context, userID, orderID int64, reason string) error {
	if s.RequestRefundFn != nil {
		return s.RequestRefundFn(ctx, userID, orderID, reason)
	}
	return nil
}

// WebhookFacadeStub records received gateway payloads.
type WebhookFacadeStub struct {
	ProcessFn func(context.Context, payment.WebhookPayload)
}

func (s WebhookFacadeStub) ProcessPaymentWebhook(ctx context.Context, payload payment.WebhookPayload) {
	if s.ProcessFn != nil {
		s.ProcessFn(ctx, payload)
	}
}

// AdminCatalogFacadeStub simulates back-office catalog management.
type AdminCatalogFacadeStub struct {
	AllProductsFn      func(context.Context, model.ProductFilter) ([]model.Product, error)
	ProductFn          func(context.Context, int64) (*model.Product, error)
	CreateProductFn    func(context.Context, *model.Product) (*model.Product, error)
	UpdateProductFn    func(context.Context, *model.Product) error
	DeleteProductFn    func(context.Context, int64) error
	SetProductActiveFn func(context.Context, int64, bool) error
	CategoriesFn       func(context.Context) ([]model.Category, error)
	CreateCategoryFn   func(context.Context, *model.Category) (*model.Category, error)
	UpdateCategoryFn   func(context.Context, *model.Category) error
	DeleteCategoryFn   func(context.Context, int64) error
}

func (s AdminCatalogFacadeStub) AllProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if s.AllProductsFn != nil {
		return s.AllProductsFn(ctx, filter)
	}
	return []model.Product{{ID: 1, Name: "Quadro", Price: 100, Active: true}}, nil
}

func (s AdminCatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Quadro", Price: 100, Active: true}, nil
}

func (s AdminCatalogFacadeStub) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateProductFn != nil {
		return s.CreateProductFn(ctx, product)
	}
	created := *product
	created.ID = 1
	return &created, nil
}

func (s AdminCatalogFacadeStub) UpdateProduct(ctx context.Context, product *model.Product) error {
	if s.UpdateProductFn != nil {
		return s.UpdateProductFn(ctx, product)
	}
	return nil
}

func (s AdminCatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteProductFn != nil {
		return s.DeleteProductFn(ctx, id)
	}
	return nil
}

func (s AdminCatalogFacadeStub) SetProductActive(ctx context.Context, id int64, active bool) error {
	if s.SetProductActiveFn != nil {
		return s.SetProductActiveFn(ctx, id, active)
	}
	return nil
}

func (s AdminCatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: 1, Name: "Quadros", Slug: "quadros"}}, nil
}

func (s AdminCatalogFacadeStub) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, category)
	}
	created := *category
	created.ID = 1
	return &created, nil
}

func (s AdminCatalogFacadeStub) UpdateCategory(ctx context.Context, category *model.Category) error {
	if s.UpdateCategoryFn != nil {
		return s.UpdateCategoryFn(ctx, category)
	}
	return nil
}

func (s AdminCatalogFacadeStub) DeleteCategory(ctx context.Context, id int64) error {
	if s.DeleteCategoryFn != nil {
		return s.DeleteCategoryFn(ctx, id)
	}
	return nil
}

// AdminOrderFacadeStub simulates back-office order management.
type AdminOrderFacadeStub struct {
	AllOrdersFn     func(context.Context, repository.OrderFilter) ([]model.Order, error)
	AnyOrderFn      func(context.Context, int64) (*model.Order, error)
	UpdateStatusFn  func(context.Context, int64, model.OrderStatus, string, string, string, string) error
	ApproveRefundFn func(context.Context, int64, string) error
	RejectRefundFn  func(context.Context, int64, string, string) error
}

func (s AdminOrderFacadeStub) AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, filter)
	}
	return []model.Order{{ID: 1, Status: model.OrderStatusPending}}, nil
}

func (s AdminOrderFacadeStub) AnyOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.AnyOrderFn != nil {
		return s.AnyOrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPending}, nil
}

func (s AdminOrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, to model.OrderStatus, actor, note, carrier, trackingCode string) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, to, actor, note, carrier, trackingCode)
	}
	return nil
}

func (s AdminOrderFacadeStub) ApproveRefund(ctx context.Context, orderID int64, actor string) error {
	if s.ApproveRefundFn != nil {
		return s.ApproveRefundFn(ctx, orderID, actor)
	}
	return nil
}

func (s AdminOrderFacadeStub) RejectRefund(ctx context.Context, orderID int64, actor, note string) error {
	if s.RejectRefundFn != nil {
		return s.RejectRefundFn(ctx, orderID, actor, note)
	}
	return nil
}

// StaffFacadeStub simulates group and employee management.
type StaffFacadeStub struct {
	CreateGroupFn    func(context.Context, *model.EmployeeGroup) (*model.EmployeeGroup, error)
	UpdateGroupFn    func(context.Context, *model.EmployeeGroup) error
	DeleteGroupFn    func(context.Context, int64) error
	GroupFn          func(context.Context, int64) (*model.EmployeeGroup, error)
	GroupsFn         func(context.Context) ([]model.EmployeeGroup, error)
	AssignEmployeeFn func(context.Context, int64, int64) error
	RevokeEmployeeFn func(context.Context, int64) error
	EmployeesFn      func(context.Context, int, int) ([]model.User, error)
	CustomersFn      func(context.Context, int, int) ([]model.User, error)
	AccessLogFn      func(context.Context, model.AccessLogFilter) ([]model.AccessLogEntry, error)
}

func (s StaffFacadeStub) CreateGroup(ctx context.Context, group *model.EmployeeGroup) (*model.EmployeeGroup, error) {
	if s.CreateGroupFn != nil {
		return s.CreateGroupFn(ctx, group)
	}
	created := *group
	created.ID = 1
	return &created, nil
}

func (s StaffFacadeStub) UpdateGroup(ctx context.Context, group *model.EmployeeGroup) error {
	if s.UpdateGroupFn != nil {
		return s.UpdateGroupFn(ctx, group)
	}
	return nil
}

func (s StaffFacadeStub) DeleteGroup(ctx context.Context, id int64) error {
	if s.DeleteGroupFn != nil {
		return s.DeleteGroupFn(ctx, id)
	}
	return nil
}

func (s StaffFacadeStub) Group(ctx context.Context, id int64) (*model.EmployeeGroup, error) {
	if s.GroupFn != nil {
		return s.GroupFn(ctx, id)
	}
	return &model.EmployeeGroup{ID: id, Name: "Atendimento"}, nil
}

func (s StaffFacadeStub) Groups(ctx context.Context) ([]model.EmployeeGroup, error) {
	if s.GroupsFn != nil {
		return s.GroupsFn(ctx)
	}
	return []model.EmployeeGroup{{ID: 1, Name: "Atendimento"}}, nil
}

func (s StaffFacadeStub) AssignEmployee(ctx context.Context, userID, groupID int64) error {
	if s.AssignEmployeeFn != nil {
		return s.AssignEmployeeFn(ctx, userID, groupID)
	}
	return nil
}

func (s StaffFacadeStub) RevokeEmployee(ctx context.Context, userID int64) error {
	if s.RevokeEmployeeFn != nil {
		return s.RevokeEmployeeFn(ctx, userID)
	}
	return nil
}

func (s StaffFacadeStub) Employees(ctx context.Context, limit, offset int) ([]model.User, error) {
	if s.EmployeesFn != nil {
		return s.EmployeesFn(ctx, limit, offset)
	}
	return []model.User{{ID: 2, Name: "Funcionario", GroupID: model.GroupEmployee}}, nil
}

func (s StaffFacadeStub) Customers(ctx context.Context, limit, offset int) ([]model.User, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx, limit, offset)
	}
	return []model.User{{ID: 3, Name: "Cliente", GroupID: model.GroupCustomer}}, nil
}

func (s StaffFacadeStub) AccessLog(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLogEntry, error) {
	if s.AccessLogFn != nil {
		return s.AccessLogFn(ctx, filter)
	}
	return []model.AccessLogEntry{{ID: 1, EmployeeID: 2, Module: model.ModuleOrders, Action: "view"}}, nil
}

// StoreFacadeStub aggregates every handler stub behind a single facade.
type StoreFacadeStub struct {
	AuthFacadeStub
	AccountFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	AddressFacadeStub
	ShippingFacadeStub
	OrderFacadeStub
	WebhookFacadeStub
	AdminCatalogFacadeStub
	AdminOrderFacadeStub
	StaffFacadeStub
	TokenParserStub
	AccessControllerStub
}

// Product and Categories exist on both the storefront and back-office
// stubs; the storefront one answers for the aggregate.
func (s StoreFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	return s.CatalogFacadeStub.Product(ctx, id)
}

func (s StoreFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	return s.CatalogFacadeStub.Categories(ctx)
}
