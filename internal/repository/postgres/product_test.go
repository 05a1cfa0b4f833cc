package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pesokrava/storefront/internal/domain"
)

var productColumns = []string{
	"id", "name", "description", "price", "original_price", "rating", "reviews", "image",
	"colors", "sizes", "category", "is_new", "is_limited", "is_bestseller", "stock",
}

func setupRepo(t *testing.T) (*ProductRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewProductRepository(sqlx.NewDb(db, "sqlmock"))
	return repo, mock, func() { _ = db.Close() }
}

func TestProductRepository_ListAll(t *testing.T) {
	repo, mock, closeDB := setupRepo(t)
	defer closeDB()

	rows := sqlmock.NewRows(productColumns).
		AddRow("str-001", "CYBER HOODIE GHOST", "hoodie", "299.00", "399.00", "4.8", 127, "h.jpg",
			"{Black,\"Dark Purple\"}", "{S,M}", "streetwear", true, false, true, 45).
		AddRow("acc-002", "TECH BACKPACK MATRIX", "", "299.00", nil, "4.8", 89, "b.jpg",
			"{Black}", "{\"One Size\"}", "accessories", true, false, false, 0)

	mock.ExpectQuery("SELECT id, name, description, price, original_price").
		WillReturnRows(rows)

	products, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "str-001", products[0].ID)
	assert.Equal(t, 299.0, products[0].Price)
	require.NotNil(t, products[0].OriginalPrice)
	assert.Equal(t, 399.0, *products[0].OriginalPrice)
	assert.Equal(t, []string{"Black", "Dark Purple"}, products[0].Colors)
	assert.Equal(t, domain.CategoryStreetwear, products[0].Category)
	assert.True(t, products[0].IsBestseller)

	assert.Nil(t, products[1].OriginalPrice)
	assert.Equal(t, []string{"One Size"}, products[1].Sizes)
	assert.Equal(t, 0, products[1].Stock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListAll_Error(t *testing.T) {
	repo, mock, closeDB := setupRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT id, name").WillReturnError(errors.New("connection reset"))

	products, err := repo.ListAll(context.Background())

	assert.Error(t, err)
	assert.Nil(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Count(t *testing.T) {
	repo, mock, closeDB := setupRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	count, err := repo.Count(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 11, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ReplaceAll(t *testing.T) {
	repo, mock, closeDB := setupRepo(t)
	defer closeDB()

	original := 129.0
	products := []domain.Product{
		{ID: "a", Name: "A", Price: 99, OriginalPrice: &original, Colors: []string{"Black"}, Sizes: []string{"M"}, Category: domain.CategoryDrops, Stock: 3},
		{ID: "b", Name: "B", Price: 10, Colors: []string{"Red"}, Sizes: []string{"S"}, Category: domain.CategoryAccessories},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("INSERT INTO products").
		WithArgs("a", 0, "A", "", 99.0, sqlmock.AnyArg(), 0.0, 0, "", sqlmock.AnyArg(), sqlmock.AnyArg(),
			"drops", false, false, false, 3, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO products").
		WithArgs("b", 1, "B", "", 10.0, sqlmock.AnyArg(), 0.0, 0, "", sqlmock.AnyArg(), sqlmock.AnyArg(),
			"accessories", false, false, false, 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceAll(context.Background(), products)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ReplaceAll_RollsBack(t *testing.T) {
	repo, mock, closeDB := setupRepo(t)
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM products").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO products").WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), []domain.Product{{ID: "a", Colors: []string{"x"}, Sizes: []string{"y"}}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert product a")
	assert.NoError(t, mock.ExpectationsWereMet())
}
