package services

import (
	"errors"
	"testing"

	"gcore-rewards-backend/internal/chain/chaintest"
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	walletA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	walletB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	walletC = "0xcccccccccccccccccccccccccccccccccccccccc"
)

type testEnv struct {
	db           *gorm.DB
	gateway      *chaintest.Gateway
	users        *UserService
	distribution *DistributionService
	redemptions  *RedemptionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return newTestEnvOn(t, testutil.NewTestDB(t))
}

func newTestEnvOn(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()

	gw := chaintest.New()
	users := NewUserService(db, nil)

	return &testEnv{
		db:           db,
		gateway:      gw,
		users:        users,
		distribution: NewDistributionService(db, users, gw, zap.NewNop()),
		redemptions:  NewRedemptionService(db, gw, zap.NewNop()),
	}
}

func (e *testEnv) createUser(t *testing.T, wallet string, mutate ...func(*models.User)) *models.User {
	t.Helper()
	u := &models.User{WalletAddress: wallet, Role: models.RoleUser, Status: models.UserStatusApproved}
	for _, fn := range mutate {
		fn(u)
	}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createReward(t *testing.T, cost, stock int64) *models.Reward {
	t.Helper()
	r := &models.Reward{Name: "Hoodie", Cost: cost, Stock: stock, Category: "merch", IsActive: true}
	require.NoError(t, e.db.Create(r).Error)
	return r
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func (e *testEnv) stock(t *testing.T, rewardID string) int64 {
	t.Helper()
	var r models.Reward
	require.NoError(t, e.db.First(&r, "id = ?", rewardID).Error)
	return r.Stock
}

var errDiskFull = errors.New("disk full")

// failCreates makes inserts into table fail until the returned func is called.
func failCreates(t *testing.T, db *gorm.DB, table string) (restore func()) {
	t.Helper()
	name := "test:fail_create_" + table
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, failHook(table)))
	return once(t, func() { _ = db.Callback().Create().Remove(name) })
}

// failUpdates makes updates of table fail until the returned func is called.
func failUpdates(t *testing.T, db *gorm.DB, table string) (restore func()) {
	t.Helper()
	name := "test:fail_update_" + table
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register(name, failHook(table)))
	return once(t, func() { _ = db.Callback().Update().Remove(name) })
}

func failHook(table string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errDiskFull)
		}
	}
}

func once(t *testing.T, fn func()) func() {
	done := false
	run := func() {
		if !done {
			done = true
			fn()
		}
	}
	t.Cleanup(run)
	return run
}
