package orders

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/flaboy/aira-checkout/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 需要真实MySQL的集成测试，TEST_DB_DSN未设置时跳过
func openTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set; skipping db integration test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.PaymentRecord{}))
	return db
}

func testOrderGraph(intentID string) (*models.Order, []models.OrderItem, *models.PaymentRecord) {
	shipping, _ := json.Marshal(map[string]string{"street": "1 Main St", "country": "US"})

	order := &models.Order{
		UserID:          "user-1",
		Status:          models.OrderStatusPending,
		TotalAmount:     decimal.RequireFromString("99.99"),
		ShippingAddress: shipping,
		OrderNumber:     NewOrderNumber(),
		PaymentIntentID: intentID,
	}
	items := []models.OrderItem{
		{ProductID: "p1", ProductName: "Widget", Quantity: 1, Price: decimal.RequireFromString("49.99")},
		{ProductID: "p2", ProductName: "Gadget", Quantity: 2, Price: decimal.RequireFromString("25.00")},
	}
	payment := &models.PaymentRecord{
		GatewayIntentID: intentID,
		Status:          "succeeded",
		Amount:          decimal.RequireFromString("99.99"),
		Currency:        "usd",
	}
	return order, items, payment
}

func TestPersistIdempotentOnIntentID(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	intentID := fmt.Sprintf("pi_it_%s", NewOrderNumber())

	order, items, payment := testOrderGraph(intentID)
	firstID, err := store.Persist(order, items, payment)
	require.NoError(t, err)
	require.NotZero(t, firstID)

	// 重复的持久化调用（如网络重试）不得产生第二行订单
	retryOrder, retryItems, retryPayment := testOrderGraph(intentID)
	secondID, err := store.Persist(retryOrder, retryItems, retryPayment)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Where("payment_intent_id = ?", intentID).Count(&orderCount).Error)
	assert.Equal(t, int64(1), orderCount)

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", firstID).Count(&itemCount).Error)
	assert.Equal(t, int64(2), itemCount)

	var paymentCount int64
	require.NoError(t, db.Model(&models.PaymentRecord{}).Where("order_id = ?", firstID).Count(&paymentCount).Error)
	assert.Equal(t, int64(1), paymentCount)
}

func TestPersistWritesOrderFirst(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	intentID := fmt.Sprintf("pi_it_%s", NewOrderNumber())
	order, items, payment := testOrderGraph(intentID)

	orderID, err := store.Persist(order, items, payment)
	require.NoError(t, err)

	var persistedItems []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", orderID).Find(&persistedItems).Error)
	for _, item := range persistedItems {
		assert.Equal(t, orderID, item.OrderID)
	}

	var persistedPayment models.PaymentRecord
	require.NoError(t, db.Where("order_id = ?", orderID).First(&persistedPayment).Error)
	assert.Equal(t, intentID, persistedPayment.GatewayIntentID)
	assert.Equal(t, "usd", persistedPayment.Currency)
}
