package order

import (
	"database/sql"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"ordersvc/internal/catalog"
	"ordersvc/internal/config"
	"ordersvc/internal/order/controller"
	"ordersvc/internal/order/repository"
	"ordersvc/internal/order/service"
	"ordersvc/internal/payment"
)

func NewModule(db *sql.DB, nc *nats.Conn, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	catalogClient := catalog.NewClient(nc, cfg.NATS.RequestTimeout)
	paymentClient := payment.NewClient(nc, cfg.NATS.RequestTimeout)

	orderSvc := service.NewOrderService(
		orderRepo,
		catalogClient,
		paymentClient,
		cfg.Payment.Currency,
		logger,
	)

	return controller.NewOrderController(orderSvc, logger)
}
