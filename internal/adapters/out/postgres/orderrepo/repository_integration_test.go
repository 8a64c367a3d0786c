package orderrepo_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"willowcommerce/internal/adapters/out/postgres/orderrepo"
	"willowcommerce/internal/core/domain/model/order"
	"willowcommerce/internal/core/ports"
	"willowcommerce/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite exercises the GORM order repository
// against a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db)
}

// SetupTest ensures clean database state before each test.
func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) seedOrder(orderID int64, status order.Status, orderDate time.Time, deliversAt *time.Time) {
	dto := orderrepo.OrderDTO{
		TenantID:   "u1",
		OrderID:    orderID,
		Status:     string(status),
		OrderDate:  orderDate,
		Quantity:   1,
		TotalPrice: 25.00,
	}
	if deliversAt != nil {
		dto.DeliversAt = sql.NullTime{Time: *deliversAt, Valid: true}
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet() {
	ctx := context.Background()
	deliversAt := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	suite.seedOrder(42, order.Delivered, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), &deliversAt)

	retrieved, err := suite.repo.Get(ctx, "u1", 42)

	suite.Require().NoError(err)
	suite.Equal("u1", retrieved.TenantID())
	suite.Equal(int64(42), retrieved.ID())
	suite.Equal(order.Delivered, retrieved.Status())
	suite.Require().NotNil(retrieved.DeliversAt())
	suite.Equal(deliversAt, retrieved.DeliversAt().UTC())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repo.Get(ctx, "u1", 999)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_TenantIsolation() {
	ctx := context.Background()
	suite.seedOrder(42, order.Placed, time.Now().UTC(), nil)

	_, err := suite.repo.Get(ctx, "other-tenant", 42)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	suite.seedOrder(42, order.Placed, time.Now().UTC(), nil)

	err := suite.repo.UpdateStatus(ctx, "u1", 42, order.Placed, order.Cancelled)

	suite.Require().NoError(err)
	retrieved, err := suite.repo.Get(ctx, "u1", 42)
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_Conflict() {
	ctx := context.Background()
	suite.seedOrder(42, order.Cancelled, time.Now().UTC(), nil)

	err := suite.repo.UpdateStatus(ctx, "u1", 42, order.Placed, order.Cancelled)

	suite.Require().Error(err)
	suite.ErrorIs(err, ports.ErrConcurrentConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_NotFound() {
	ctx := context.Background()

	err := suite.repo.UpdateStatus(ctx, "u1", 999, order.Placed, order.Cancelled)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUpdateStatus_ConcurrentRequests verifies that when two requests race on
// the same expected status, exactly one wins and the other observes a conflict.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_ConcurrentRequests() {
	ctx := context.Background()
	suite.seedOrder(42, order.Placed, time.Now().UTC(), nil)

	results := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = suite.repo.UpdateStatus(ctx, "u1", 42, order.Placed, order.Cancelled)
		}(i)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			suite.ErrorIs(err, ports.ErrConcurrentConflict)
			conflicted++
		}
	}

	suite.Equal(1, succeeded, "exactly one update should win")
	suite.Equal(1, conflicted, "exactly one update should conflict")

	retrieved, err := suite.repo.Get(ctx, "u1", 42)
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate() {
	ctx := context.Background()
	suite.seedOrder(42, order.Shipped, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil)

	retrieved, err := suite.repo.Get(ctx, "u1", 42)
	suite.Require().NoError(err)

	err = suite.repo.UpdateStatus(ctx, "u1", 42, order.Shipped, order.Delivered)
	suite.Require().NoError(err)

	err = retrieved.MarkDelivered(time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, retrieved)
	suite.Require().NoError(err)

	updated, err := suite.repo.Get(ctx, "u1", 42)
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, updated.Status())
	suite.Require().NotNil(updated.DeliversAt())
	suite.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), updated.DeliversAt().UTC())
}

// TestUpdate_DoesNotWriteStatus pins the repository contract that status only
// moves through the conditional UpdateStatus path. Without this, an
// out-of-date aggregate saved by the delivery sweep could overwrite a
// transition a customer action committed in between.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_DoesNotWriteStatus() {
	ctx := context.Background()
	suite.seedOrder(42, order.Shipped, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), nil)

	retrieved, err := suite.repo.Get(ctx, "u1", 42)
	suite.Require().NoError(err)

	err = retrieved.MarkDelivered(time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, retrieved)
	suite.Require().NoError(err)

	updated, err := suite.repo.Get(ctx, "u1", 42)
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, updated.Status(), "Update must leave status untouched")
	suite.Require().NotNil(updated.DeliversAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllShippedOrderedBefore() {
	ctx := context.Background()
	now := time.Now().UTC()
	suite.seedOrder(1, order.Shipped, now.AddDate(0, 0, -10), nil)
	suite.seedOrder(2, order.Shipped, now.AddDate(0, 0, -2), nil)
	suite.seedOrder(3, order.Delivered, now.AddDate(0, 0, -10), nil)
	suite.seedOrder(4, order.Placed, now.AddDate(0, 0, -10), nil)

	due, err := suite.repo.GetAllShippedOrderedBefore(ctx, now.AddDate(0, 0, -7))

	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(int64(1), due[0].ID())
	suite.Equal(order.Shipped, due[0].Status())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
