package storage

import (
	"context"
	"path/filepath"
	"testing"

	"budgetbuddy/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite exercises the SQLite repository against a fresh
// migrated database per test.
type RepositoryTestSuite struct {
	suite.Suite
	repo *Repository
	ctx  context.Context
}

func (suite *RepositoryTestSuite) SetupTest() {
	dbPath := filepath.Join(suite.T().TempDir(), "test.db")
	repo, err := NewRepository(dbPath)
	require.NoError(suite.T(), err, "failed to create test repository")
	suite.repo = repo
	suite.ctx = context.Background()
}

func (suite *RepositoryTestSuite) TearDownTest() {
	if suite.repo != nil {
		suite.repo.Close()
	}
}

func (suite *RepositoryTestSuite) TestCreateUser() {
	u, err := suite.repo.CreateUser(suite.ctx, "Alex", "Alex@Example.com", "hash")
	require.NoError(suite.T(), err)

	assert.NotEmpty(suite.T(), u.ID)
	assert.Equal(suite.T(), "alex@example.com", u.Email, "email is stored lowercased")

	got, err := suite.repo.GetUserByEmail(suite.ctx, "alex@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), u.ID, got.ID)
	assert.Equal(suite.T(), "hash", got.PasswordHash)
}

func (suite *RepositoryTestSuite) TestCreateUserDuplicateEmail() {
	_, err := suite.repo.CreateUser(suite.ctx, "Alex", "alex@example.com", "hash")
	require.NoError(suite.T(), err)

	_, err = suite.repo.CreateUser(suite.ctx, "Other", "alex@example.com", "hash2")
	assert.ErrorIs(suite.T(), err, ErrDuplicateEmail)
}

func (suite *RepositoryTestSuite) TestGetUserNotFound() {
	_, err := suite.repo.GetUserByEmail(suite.ctx, "nobody@example.com")
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.repo.GetUserByID(suite.ctx, "no-such-id")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *RepositoryTestSuite) TestNewUserGetsDefaultCategories() {
	u, err := suite.repo.CreateUser(suite.ctx, "Alex", "alex@example.com", "hash")
	require.NoError(suite.T(), err)

	categories, err := suite.repo.ListCategories(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), core.DefaultCategories, categories)
}

func (suite *RepositoryTestSuite) TestAddAndRemoveCategory() {
	u, err := suite.repo.CreateUser(suite.ctx, "Alex", "alex@example.com", "hash")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.repo.AddCategory(suite.ctx, u.ID, "Travel"))
	// Adding the same name twice is a no-op.
	require.NoError(suite.T(), suite.repo.AddCategory(suite.ctx, u.ID, "Travel"))

	categories, err := suite.repo.ListCategories(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), categories, "Travel")
	assert.Len(suite.T(), categories, len(core.DefaultCategories)+1)

	require.NoError(suite.T(), suite.repo.RemoveCategory(suite.ctx, u.ID, "Travel"))
	categories, err = suite.repo.ListCategories(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.NotContains(suite.T(), categories, "Travel")
}

func (suite *RepositoryTestSuite) TestAddCategoryRejectsBlank() {
	err := suite.repo.AddCategory(suite.ctx, "u1", "   ")
	assert.ErrorIs(suite.T(), err, core.ErrEmptyCategory)
}

func (suite *RepositoryTestSuite) TestSaveAndLoadExpenses() {
	u, err := suite.repo.CreateUser(suite.ctx, "Alex", "alex@example.com", "hash")
	require.NoError(suite.T(), err)

	records := []core.Expense{
		{
			ID: "2", UserID: u.ID, Amount: core.Money{Cents: 3000},
			Description: "Gas", Category: "Transport", Date: core.NewDate(2025, 4, 12),
		},
		{
			ID: "1", UserID: u.ID, Amount: core.Money{Cents: 4550},
			Description: "Groceries", Category: "Food", Date: core.NewDate(2025, 4, 10),
		},
	}

	require.NoError(suite.T(), suite.repo.Save(suite.ctx, u.ID, records))

	loaded, err := suite.repo.Load(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), records, loaded, "stored order and fields survive the round trip")
}

func (suite *RepositoryTestSuite) TestSaveReplacesWholesale() {
	u, err := suite.repo.CreateUser(suite.ctx, "Alex", "alex@example.com", "hash")
	require.NoError(suite.T(), err)

	first := []core.Expense{{
		ID: "1", UserID: u.ID, Amount: core.Money{Cents: 100},
		Description: "old", Category: "Food", Date: core.NewDate(2025, 4, 1),
	}}
	require.NoError(suite.T(), suite.repo.Save(suite.ctx, u.ID, first))

	second := []core.Expense{{
		ID: "2", UserID: u.ID, Amount: core.Money{Cents: 200},
		Description: "new", Category: "Food", Date: core.NewDate(2025, 4, 2),
	}}
	require.NoError(suite.T(), suite.repo.Save(suite.ctx, u.ID, second))

	loaded, err := suite.repo.Load(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), second, loaded)
}

func (suite *RepositoryTestSuite) TestSaveEmptyClearsRecords() {
	u, err := suite.repo.CreateUser(suite.ctx, "Alex", "alex@example.com", "hash")
	require.NoError(suite.T(), err)

	records := []core.Expense{{
		ID: "1", UserID: u.ID, Amount: core.Money{Cents: 100},
		Description: "gone soon", Category: "Food", Date: core.NewDate(2025, 4, 1),
	}}
	require.NoError(suite.T(), suite.repo.Save(suite.ctx, u.ID, records))
	require.NoError(suite.T(), suite.repo.Save(suite.ctx, u.ID, nil))

	loaded, err := suite.repo.Load(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), loaded)
}

func (suite *RepositoryTestSuite) TestLoadUnknownUserIsEmpty() {
	loaded, err := suite.repo.Load(suite.ctx, "never-seen")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), loaded)
}

func (suite *RepositoryTestSuite) TestExpensesAreIsolatedPerUser() {
	alice, err := suite.repo.CreateUser(suite.ctx, "Alice", "alice@example.com", "hash")
	require.NoError(suite.T(), err)
	bob, err := suite.repo.CreateUser(suite.ctx, "Bob", "bob@example.com", "hash")
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.repo.Save(suite.ctx, alice.ID, []core.Expense{{
		ID: "1", UserID: alice.ID, Amount: core.Money{Cents: 100},
		Description: "alice only", Category: "Food", Date: core.NewDate(2025, 4, 1),
	}}))

	loaded, err := suite.repo.Load(suite.ctx, bob.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), loaded)
}

func (suite *RepositoryTestSuite) TestEnsureDemoUser() {
	u, err := suite.repo.EnsureDemoUser(suite.ctx, "demo-hash")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), DemoEmail, u.Email)

	records, err := suite.repo.Load(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), records, 5)

	var total int64
	for _, e := range records {
		total += e.Amount.Cents
	}
	assert.Equal(suite.T(), int64(30154), total, "demo records sum to $301.54")

	// Calling again must not duplicate the account or its records.
	again, err := suite.repo.EnsureDemoUser(suite.ctx, "demo-hash")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), u.ID, again.ID)

	records, err = suite.repo.Load(suite.ctx, u.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 5)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
