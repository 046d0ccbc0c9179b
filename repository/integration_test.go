package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BerniceZTT/sales_tracker/models"
)

// openTestStore 需要设置 MONGO_TEST_URI，每个测试使用独立数据库
func openTestStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	dbName := fmt.Sprintf("sales_tracker_test_%d", time.Now().UnixNano())
	store, err := InitMongoDB(ctx, uri, dbName)
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(ctx))

	t.Cleanup(func() {
		_ = store.DB().Drop(context.Background())
		store.CloseMongoDB(context.Background())
	})
	return store
}

func TestProfileRepositoryUniqueEmail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	repo := NewProfileRepository(store.DB())

	now := time.Now().UTC().Truncate(time.Millisecond)
	first := &models.Profile{Email: "Sales@Example.com ", PasswordHash: "x", Role: models.UserRoleSales, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "sales@example.com", first.Email)

	dup := &models.Profile{Email: "sales@example.com", PasswordHash: "y", Role: models.UserRoleSales}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "SALES@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	require.NoError(t, repo.UpdateFullName(ctx, first.ID, "Budi"))
	got, err = repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.FullName)

	count, err := repo.CountByRole(ctx, models.UserRoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepositoryRevoke(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	repo := NewSessionRepository(store.DB())

	now := time.Now().UTC().Truncate(time.Millisecond)
	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, repo.Create(ctx, &models.Session{
			SessionID: id, UserID: "u1", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
		}))
	}

	require.NoError(t, repo.Revoke(ctx, "s1", now))
	s1, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, s1.Active(now))

	require.NoError(t, repo.RevokeOthers(ctx, "u1", "s2", now))
	s2, err := repo.Get(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, s2.Active(now))
	s3, err := repo.Get(ctx, "s3")
	require.NoError(t, err)
	assert.False(t, s3.Active(now))
}

func TestProjectRepositoriesListAndLatestUpdate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	customers := NewCustomerRepository(store.DB())
	projects := NewProjectRepository(store.DB())
	updates := NewProjectUpdateRepository(store.DB())

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	customer := &models.Customer{Name: "PT Nusantara", Sector: models.SectorMining, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, customers.Create(ctx, customer))

	older := &models.Project{NoQuote: "Q-1", ProjectName: "Old", CustomerID: customer.ID, Value: 10,
		ProgressType: models.ProgressWin, Prospect: models.ProspectHot, CreatedAt: base, UpdatedAt: base}
	newer := &models.Project{NoQuote: "Q-2", ProjectName: "New", CustomerID: customer.ID, Value: 20,
		ProgressType: models.ProgressTender, Prospect: models.ProspectNormal, CreatedAt: base.Add(time.Hour), UpdatedAt: base}
	require.NoError(t, projects.Create(ctx, older))
	require.NoError(t, projects.Create(ctx, newer))

	all, err := projects.List(ctx, ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Q-2", all[0].NoQuote)

	wins, err := projects.List(ctx, ProjectFilter{ProgressType: models.ProgressWin})
	require.NoError(t, err)
	require.Len(t, wins, 1)
	assert.Equal(t, "Q-1", wins[0].NoQuote)

	count, err := projects.CountByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	names, err := customers.Names(ctx, []primitive.ObjectID{customer.ID})
	require.NoError(t, err)
	assert.Equal(t, "PT Nusantara", names[customer.ID])

	require.NoError(t, updates.Create(ctx, &models.ProjectUpdate{ProjectID: older.ID, UpdateText: "first", CreatedAt: base}))
	require.NoError(t, updates.Create(ctx, &models.ProjectUpdate{ProjectID: older.ID, UpdateText: "second", CreatedAt: base.Add(time.Minute)}))

	latest, err := updates.LatestByProjects(ctx, []primitive.ObjectID{older.ID, newer.ID})
	require.NoError(t, err)
	assert.Equal(t, "second", latest[older.ID].UpdateText)
	_, ok := latest[newer.ID]
	assert.False(t, ok)

	list, err := updates.ListByProject(ctx, older.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].UpdateText)

	require.NoError(t, updates.DeleteByProject(ctx, older.ID))
	list, err = updates.ListByProject(ctx, older.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCustomerPICRepository(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	pics := NewCustomerPICRepository(store.DB())

	customerID := primitive.NewObjectID()
	pic := &models.CustomerPIC{CustomerID: customerID, NamaPIC: "Sari", Email: "sari@example.com"}
	require.NoError(t, pics.Create(ctx, pic))

	pic.Jabatan = "Procurement"
	require.NoError(t, pics.Update(ctx, pic))

	other := *pic
	other.CustomerID = primitive.NewObjectID()
	assert.ErrorIs(t, pics.Update(ctx, &other), ErrNotFound)

	list, err := pics.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Procurement", list[0].Jabatan)

	require.NoError(t, pics.DeleteByCustomer(ctx, customerID))
	list, err = pics.ListByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
