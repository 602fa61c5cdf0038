package usecase

import (
	"strings"
	"time"

	"go.uber.org/fx"

	"github.com/memoriza/memoriza/internal/adapter/payment"
	"github.com/memoriza/memoriza/internal/config"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewCartUseCase,
	NewAddressUseCase,
	newShippingUseCase,
	newOrderUseCase,
	NewPaymentUseCase,
	NewStaffUseCase,
)

func newShippingUseCase(cfg *config.Config) *ShippingUseCase {
	return NewShippingUseCase(cfg.FreeShippingThreshold)
}

func newOrderUseCase(
	cfg *config.Config,
	orders repository.OrderRepository,
	carts repository.CartRepository,
	addresses repository.AddressRepository,
	products repository.ProductRepository,
	shipping *ShippingUseCase,
	gateway payment.Client,
) *OrderUseCase {
	webhookURL := strings.TrimRight(cfg.PublicBaseURL, "/") + "/api/payments/webhook"
	window := cfg.RefundWindow
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	return NewOrderUseCase(orders, carts, addresses, products, shipping, gateway, webhookURL, window)
}
