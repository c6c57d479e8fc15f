package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"food-ordering-api/apperrors"
	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory sqlite database for t.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := config.OpenDB(config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	db := newTestDB(t)
	return New(db, zap.NewNop()), db
}

func mustUser(t *testing.T, repo *Repository, username string, role models.Role) *models.User {
	t.Helper()
	email := username + "@example.com"
	u, err := repo.CreateUser(context.Background(), models.NewUser{
		Username:     username,
		PasswordHash: "$2a$10$hash",
		Email:        &email,
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func dishInput(name string) models.DishInput {
	return models.DishInput{
		Name:        name,
		Portion:     300,
		Price:       99,
		Description: name + " of the day",
		ImageURL:    "https://cdn.example.com/" + strings.ToLower(name) + ".png",
	}
}

func mustDish(t *testing.T, repo *Repository, name string) *models.Dish {
	t.Helper()
	d, err := repo.CreateDish(context.Background(), dishInput(name))
	require.NoError(t, err)
	return d
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestUsers(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created := mustUser(t, repo, "jane", models.RoleUser)
	assert.NotZero(t, created.ID)

	byName, err := repo.FindUserByUsername(ctx, "jane")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := repo.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "jane", byID.Username)

	missing, err := repo.FindUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.FindUserByID(ctx, 4242)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateUser_DuplicateUsernameIsConflict(t *testing.T) {
	repo, db := newTestRepo(t)
	mustUser(t, repo, "jane", models.RoleUser)

	_, err := repo.CreateUser(context.Background(), models.NewUser{
		Username: "jane", PasswordHash: "x", Role: models.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.EqualValues(t, 1, countRows(t, db, &models.User{}))
}

func TestCreateUser_Validation(t *testing.T) {
	repo, db := newTestRepo(t)
	_, err := repo.CreateUser(context.Background(), models.NewUser{
		Username: strings.Repeat("x", 33), PasswordHash: "x", Role: models.RoleUser,
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.EqualValues(t, 0, countRows(t, db, &models.User{}))
}

func TestDishes_CRUD(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	soup := mustDish(t, repo, "Soup")
	mustDish(t, repo, "Salad")

	menu, err := repo.GetMenu(ctx)
	require.NoError(t, err)
	require.Len(t, menu, 2)
	assert.Equal(t, "Soup", menu[0].Name)

	found, err := repo.FindDishByName(ctx, "Salad")
	require.NoError(t, err)
	require.NotNil(t, found)

	in := dishInput("Soup")
	in.Price = 150
	updated, err := repo.UpdateDishByID(ctx, soup.ID, in)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 150, updated.Price)

	none, err := repo.UpdateDishByID(ctx, 999, in)
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, repo.DeleteDishByID(ctx, soup.ID))
	gone, err := repo.FindDishByID(ctx, soup.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.NoError(t, repo.DeleteDishByID(ctx, soup.ID))
}

func TestCreateDish_NegativePriceNeverReachesStorage(t *testing.T) {
	repo, db := newTestRepo(t)

	calls := 0
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:count_creates", func(*gorm.DB) {
		calls++
	}))

	in := dishInput("Soup")
	in.Price = -1
	_, err := repo.CreateDish(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Zero(t, calls)
}

func TestCreateDish_DuplicateNameIsConflict(t *testing.T) {
	repo, _ := newTestRepo(t)
	mustDish(t, repo, "Soup")

	_, err := repo.CreateDish(context.Background(), dishInput("Soup"))
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestGetMenu_InvalidRowIsServerError(t *testing.T) {
	repo, db := newTestRepo(t)
	require.NoError(t, db.Exec(
		`INSERT INTO dishes (name, portion, price, description, imageurl) VALUES (?, ?, ?, ?, ?)`,
		"Broken", 1, 1, "desc", "not a url",
	).Error)

	_, err := repo.GetMenu(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindServer, apperrors.KindOf(err))

	_, err = repo.FindDishByName(context.Background(), "Broken")
	assert.Equal(t, apperrors.KindServer, apperrors.KindOf(err))
}

func orderInput(userID uint, items map[uint]int) models.CreateOrderInput {
	return models.CreateOrderInput{
		UserID:  userID,
		Items:   items,
		Name:    "Jane",
		Address: "1 Main St",
		Phone:   "+1234567890",
	}
}

func TestCreateOrder(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "jane", models.RoleUser)
	a := mustDish(t, repo, "Soup")
	b := mustDish(t, repo, "Salad")

	order, err := repo.CreateOrder(ctx, orderInput(user.ID, map[uint]int{a.ID: 2, b.ID: 1}))
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusProcessing, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Items, 2)
	assert.Equal(t, a.ID, order.Items[0].DishID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, b.ID, order.Items[1].DishID)
	assert.Equal(t, 1, order.Items[1].Quantity)

	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 2, countRows(t, db, &models.OrderItem{}))

	reloaded, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, order.Items, reloaded.Items)
	assert.Equal(t, "+1234567890", reloaded.Phone)
}

func TestCreateOrder_RollsBackWhenItemInsertFails(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "jane", models.RoleUser)
	a := mustDish(t, repo, "Soup")
	b := mustDish(t, repo, "Salad")

	itemInserts := 0
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_second_item", func(tx *gorm.DB) {
		if tx.Statement.Table != "order_items" {
			return
		}
		itemInserts++
		if itemInserts == 2 {
			_ = tx.AddError(errors.New("disk on fire"))
		}
	}))

	order, err := repo.CreateOrder(ctx, orderInput(user.ID, map[uint]int{a.ID: 2, b.ID: 1}))
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Equal(t, apperrors.KindServer, apperrors.KindOf(err))
	assert.Equal(t, 2, itemInserts)

	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}))
}

func TestCreateOrder_UnknownDishRollsBack(t *testing.T) {
	repo, db := newTestRepo(t)
	user := mustUser(t, repo, "jane", models.RoleUser)
	a := mustDish(t, repo, "Soup")

	_, err := repo.CreateOrder(context.Background(), orderInput(user.ID, map[uint]int{a.ID: 1, 9999: 1}))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindServer, apperrors.KindOf(err))
	assert.EqualValues(t, 0, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.OrderItem{}))
}

func TestCreateOrder_ValidatesBeforeStorage(t *testing.T) {
	repo, db := newTestRepo(t)
	user := mustUser(t, repo, "jane", models.RoleUser)

	calls := 0
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:count_creates", func(*gorm.DB) {
		calls++
	}))

	bad := []models.CreateOrderInput{
		orderInput(user.ID, map[uint]int{}),
		orderInput(user.ID, map[uint]int{1: 0}),
		func() models.CreateOrderInput { in := orderInput(user.ID, map[uint]int{1: 1}); in.Phone = "12"; return in }(),
		func() models.CreateOrderInput { in := orderInput(user.ID, map[uint]int{1: 1}); in.Address = ""; return in }(),
	}
	for _, in := range bad {
		_, err := repo.CreateOrder(context.Background(), in)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
	assert.Zero(t, calls)
}

func TestFindOrders(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	jane := mustUser(t, repo, "jane", models.RoleUser)
	john := mustUser(t, repo, "john", models.RoleUser)
	soup := mustDish(t, repo, "Soup")

	_, err := repo.CreateOrder(ctx, orderInput(jane.ID, map[uint]int{soup.ID: 1}))
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, orderInput(jane.ID, map[uint]int{soup.ID: 3}))
	require.NoError(t, err)
	_, err = repo.CreateOrder(ctx, orderInput(john.ID, map[uint]int{soup.ID: 2}))
	require.NoError(t, err)

	all, err := repo.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	janes, err := repo.FindOrdersByUserID(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, janes, 2)
	assert.Equal(t, 3, janes[1].Items[0].Quantity)

	none, err := repo.FindOrdersByUserID(ctx, 777)
	require.NoError(t, err)
	assert.Empty(t, none)

	missing, err := repo.FindOrderByID(ctx, 777)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateOrderStatusByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()
	user := mustUser(t, repo, "jane", models.RoleUser)
	soup := mustDish(t, repo, "Soup")
	order, err := repo.CreateOrder(ctx, orderInput(user.ID, map[uint]int{soup.ID: 1}))
	require.NoError(t, err)

	updated, err := repo.UpdateOrderStatusByID(ctx, order.ID, models.StatusDelivered)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusDelivered, updated.Status)
	assert.Len(t, updated.Items, 1)

	// no ordering is enforced between statuses
	updated, err = repo.UpdateOrderStatusByID(ctx, order.ID, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)

	history, err := repo.FindStatusHistory(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusProcessing, history[0].FromStatus)
	assert.Equal(t, models.StatusDelivered, history[0].ToStatus)
	assert.Equal(t, models.StatusDelivered, history[1].FromStatus)
}

func TestUpdateOrderStatusByID_MissingOrder(t *testing.T) {
	repo, _ := newTestRepo(t)

	order, err := repo.UpdateOrderStatusByID(context.Background(), 12345, models.StatusDelivered)
	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestUpdateOrderStatusByID_InvalidStatus(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.UpdateOrderStatusByID(context.Background(), 12345, "pending")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSeed_IsIdempotent(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()
	users := []models.NewUser{
		{Username: "admin", PasswordHash: "h", Role: models.RoleAdmin},
		{Username: "jane", PasswordHash: "h", Role: models.RoleUser},
	}
	dishes := []models.DishInput{dishInput("Soup"), dishInput("Salad")}

	res, err := repo.Seed(ctx, users, dishes)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Users: 2, Dishes: 2}, res)

	res, err = repo.Seed(ctx, users, dishes)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, res)
	assert.EqualValues(t, 2, countRows(t, db, &models.User{}))
	assert.EqualValues(t, 2, countRows(t, db, &models.Dish{}))
}

func TestSeed_RejectsInvalidRecord(t *testing.T) {
	repo, db := newTestRepo(t)
	bad := dishInput("Soup")
	bad.Portion = 0

	_, err := repo.Seed(context.Background(), nil, []models.DishInput{dishInput("Salad"), bad})
	require.Error(t, err)
	assert.EqualValues(t, 0, countRows(t, db, &models.Dish{}))
}
