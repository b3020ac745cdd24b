package reconcile

import (
	"os"
	"testing"
	"time"

	"github.com/flaboy/aira-checkout/pkg/models"
	"github.com/flaboy/aira-checkout/pkg/orders"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestExportOrders(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping db integration test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.PaymentRecord{}))

	order := &models.Order{
		UserID:          "user-1",
		Status:          models.OrderStatusPending,
		TotalAmount:     decimal.RequireFromString("99.99"),
		OrderNumber:     orders.NewOrderNumber(),
		PaymentIntentID: "pi_export_" + orders.NewOrderNumber(),
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.PaymentRecord{
		OrderID:         order.ID,
		GatewayIntentID: order.PaymentIntentID,
		Status:          "succeeded",
		Amount:          decimal.RequireFromString("99.99"),
		Currency:        "usd",
	}).Error)

	file, err := ExportOrders(db, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	rows, err := file.GetRows("Orders")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, orderHeaders, rows[0])
	assert.GreaterOrEqual(t, len(rows), 2)

	paymentRows, err := file.GetRows("Payments")
	require.NoError(t, err)
	assert.Equal(t, paymentHeaders, paymentRows[0])
}
