package handlers

import (
	"context"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
	"github.com/memoriza/memoriza/internal/server/http/middleware"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	OAuthURL(state string) string
	OAuthCallback(ctx context.Context, code string) (*model.User, string, error)
}

// AccountFacade covers the authenticated user's own account.
type AccountFacade interface {
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, phone string) error
	ChangePassword(ctx context.Context, userID int64, current, updated string) error
	DeactivateAccount(ctx context.Context, userID int64) error
}

// CatalogFacade exposes the public catalog.
type CatalogFacade interface {
	Products(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// CartFacade exposes cart operations.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) (*model.Cart, error)
	AddCartItem(ctx context.Context, userID, productID int64, quantity int) (*model.Cart, error)
	UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveCartItem(ctx context.Context, userID, itemID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

// AddressFacade exposes delivery address management.
type AddressFacade interface {
	Addresses(ctx context.Context, userID int64) ([]model.Address, error)
	CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error)
	UpdateAddress(ctx context.Context, address *model.Address) error
	DeleteAddress(ctx context.Context, userID, id int64) error
}

// ShippingFacade exposes freight estimation.
type ShippingFacade interface {
	ShippingQuote(zipCode string, weightGrams int, subtotal float64) (*model.ShippingQuote, error)
}

// OrderFacade exposes customer-side order operations.
type OrderFacade interface {
	Checkout(ctx context.Context, userID, addressID int64) (*model.CheckoutResult, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	RequestRefund(ctx context.Context, userID, orderID int64, reason string) error
}

// WebhookFacade handles asynchronous gateway notifications.
type WebhookFacade interface {
	ProcessPaymentWebhook(ctx context.Context, payload payment.WebhookPayload)
}

// AdminCatalogFacade exposes back-office catalog management.
type AdminCatalogFacade interface {
	AllProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	SetProductActive(ctx context.Context, id int64, active bool) error
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// AdminOrderFacade exposes back-office order management.
type AdminOrderFacade interface {
	AllOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	AnyOrder(ctx context.Context, orderID int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, to model.OrderStatus, actor, note, carrier, trackingCode string) error
	ApproveRefund(ctx context.Context, orderID int64, actor string) error
	RejectRefund(ctx context.Context, orderID int64, actor, note string) error
}

// StoreFacade aggregates the full set of operations used across handlers
// and routing middleware.
type StoreFacade interface {
	AuthFacade
	AccountFacade
	CatalogFacade
	CartFacade
	AddressFacade
	ShippingFacade
	OrderFacade
	WebhookFacade
	AdminCatalogFacade
	AdminOrderFacade
	StaffFacade
	middleware.TokenParser
	middleware.AccessController
}

// StaffFacade exposes employee, group and audit-log management.
type StaffFacade interface {
	CreateGroup(ctx context.Context, group *model.EmployeeGroup) (*model.EmployeeGroup, error)
	UpdateGroup(ctx context.Context, group *model.EmployeeGroup) error
	DeleteGroup(ctx context.Context, id int64) error
	Group(ctx context.Context, id int64) (*model.EmployeeGroup, error)
	Groups(ctx context.Context) ([]model.EmployeeGroup, error)
	AssignEmployee(ctx context.Context, userID, groupID int64) error
	RevokeEmployee(ctx context.Context, userID int64) error
	Employees(ctx context.Context, limit, offset int) ([]model.User, error)
	Customers(ctx context.Context, limit, offset int) ([]model.User, error)
	AccessLog(ctx context.Context, filter model.AccessLogFilter) ([]model.AccessLogEntry, error)
}
