package labelrepo_test

import (
	"context"
	"testing"
	"time"

	"willowcommerce/internal/adapters/out/postgres/labelrepo"
	"willowcommerce/internal/core/domain/model/kernel"
	"willowcommerce/internal/core/domain/model/label"
	"willowcommerce/internal/core/ports"
	"willowcommerce/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LabelRepositoryIntegrationTestSuite exercises the GORM label repository
// against a real PostgreSQL database, including the unique-key behavior the
// idempotency mechanism depends on.
type LabelRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *labelrepo.GormLabelRepository
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *LabelRepositoryIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&labelrepo.LabelDTO{})
	suite.Require().NoError(err)

	suite.repo = labelrepo.NewGormLabelRepository(db)
}

// SetupTest ensures clean database state before each test.
func (suite *LabelRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE labels").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *LabelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func createTestLabel(suite *LabelRepositoryIntegrationTestSuite, idempotencyKey string) *label.Label {
	l, err := label.NewLabel(kernel.NewUUID(), "u1", 42, label.KindReturn,
		[]byte("%PDF-1.4 test label"), time.Now().UTC(), idempotencyKey)
	suite.Require().NoError(err)
	return l
}

func (suite *LabelRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	l := createTestLabel(suite, "")

	err := suite.repo.Add(ctx, l)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, "u1", l.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(l.ID()))
	suite.Equal(int64(42), retrieved.OrderID())
	suite.Equal(label.KindReturn, retrieved.Kind())
	suite.Equal([]byte("%PDF-1.4 test label"), retrieved.Document())
	suite.Empty(retrieved.IdempotencyKey())
}

func (suite *LabelRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repo.Get(ctx, "u1", kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *LabelRepositoryIntegrationTestSuite) TestGet_TenantIsolation() {
	ctx := context.Background()
	l := createTestLabel(suite, "")
	suite.Require().NoError(suite.repo.Add(ctx, l))

	_, err := suite.repo.Get(ctx, "other-tenant", l.ID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *LabelRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	ctx := context.Background()
	l := createTestLabel(suite, "")
	suite.Require().NoError(suite.repo.Add(ctx, l))

	err := suite.repo.Add(ctx, l)

	suite.Require().Error(err)
	suite.ErrorIs(err, ports.ErrDuplicateLabel)
}

func (suite *LabelRepositoryIntegrationTestSuite) TestAdd_DuplicateIdempotencyKey() {
	ctx := context.Background()
	first := createTestLabel(suite, "key-1")
	suite.Require().NoError(suite.repo.Add(ctx, first))

	second := createTestLabel(suite, "key-1")
	err := suite.repo.Add(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, ports.ErrDuplicateLabel)
}

func (suite *LabelRepositoryIntegrationTestSuite) TestAdd_SameKeyDifferentTenants() {
	ctx := context.Background()
	first := createTestLabel(suite, "key-1")
	suite.Require().NoError(suite.repo.Add(ctx, first))

	other, err := label.NewLabel(kernel.NewUUID(), "u2", 7, label.KindReplacement,
		[]byte("%PDF-1.4 other tenant"), time.Now().UTC(), "key-1")
	suite.Require().NoError(err)

	err = suite.repo.Add(ctx, other)
	suite.Require().NoError(err, "idempotency keys are scoped per tenant")
}

func (suite *LabelRepositoryIntegrationTestSuite) TestAdd_MultipleLabelsWithoutKeys() {
	ctx := context.Background()

	err := suite.repo.Add(ctx, createTestLabel(suite, ""))
	suite.Require().NoError(err)

	err = suite.repo.Add(ctx, createTestLabel(suite, ""))
	suite.Require().NoError(err, "null idempotency keys should not collide")
}

func (suite *LabelRepositoryIntegrationTestSuite) TestFindByIdempotencyKey() {
	ctx := context.Background()
	l := createTestLabel(suite, "key-1")
	suite.Require().NoError(suite.repo.Add(ctx, l))

	retrieved, err := suite.repo.FindByIdempotencyKey(ctx, "u1", "key-1")

	suite.Require().NoError(err)
	suite.True(retrieved.ID().IsEqual(l.ID()))
	suite.Equal("key-1", retrieved.IdempotencyKey())
}

func (suite *LabelRepositoryIntegrationTestSuite) TestFindByIdempotencyKey_NotFound() {
	ctx := context.Background()

	_, err := suite.repo.FindByIdempotencyKey(ctx, "u1", "unused-key")

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestLabelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LabelRepositoryIntegrationTestSuite))
}
