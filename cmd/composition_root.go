package cmd

import (
	"log/slog"

	"willowcommerce/internal/adapters/out/labelapi"
	"willowcommerce/internal/adapters/out/messaging"
	"willowcommerce/internal/adapters/out/postgres"
	"willowcommerce/internal/core/application/usecases/commands"
	"willowcommerce/internal/core/application/usecases/queries"
	"willowcommerce/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	labelService ports.LabelService
	publisher    ports.EventPublisher
	logger       *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	labelService, err := labelapi.NewClient(
		config.LabelServiceURL,
		config.LabelServiceToken,
		config.LabelServiceTimeout,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	var publisher ports.EventPublisher
	if config.KafkaHost != "" {
		publisher = messaging.NewProducer([]string{config.KafkaHost}, config.KafkaOrderChangedTopic)
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		labelService: labelService,
		publisher:    publisher,
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) CreateOrderActionCommandHandler() commands.OrderActionCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewOrderActionCommandHandler(f, c.labelService, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSyncDeliveredOrdersCommandHandler() commands.SyncDeliveredOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSyncDeliveredOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLabelQueryHandler() queries.GetLabelQueryHandler {
	return queries.NewGetLabelQueryHandler(c.gormDB)
}

// Close releases resources held by outbound adapters.
func (c *CompositionRoot) Close() error {
	if producer, ok := c.publisher.(*messaging.Producer); ok {
		return producer.Close()
	}
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
