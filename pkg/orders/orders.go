package orders

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/flaboy/aira-checkout/pkg/database"
	"github.com/flaboy/aira-checkout/pkg/hashid"
	"github.com/flaboy/aira-checkout/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var HashIDTypeOrder = hashid.NewType("or-", "checkout-order", 6)

// EncodeOrderID 编码数据库ID为对外订单HashID
func EncodeOrderID(id uint) string {
	return hashid.Encode(HashIDTypeOrder, id)
}

// DecodeOrderHashID 解码订单HashID获取数据库ID
func DecodeOrderHashID(hashID string) (uint, error) {
	return hashid.Decode(HashIDTypeOrder, hashID)
}

// PartialPersistError 订单行已写入但明细或支付记录写入失败
// 此时款项已被网关捕获，必须与普通持久化失败区分开
type PartialPersistError struct {
	OrderID  uint
	IntentID string
	Err      error
}

func (e *PartialPersistError) Error() string {
	return fmt.Sprintf("order %d persisted partially (payment intent %s): %v", e.OrderID, e.IntentID, e.Err)
}

func (e *PartialPersistError) Unwrap() error {
	return e.Err
}

// Store 订单图持久化适配器
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) database() *gorm.DB {
	if s.db != nil {
		return s.db
	}
	return database.Database()
}

// Persist 持久化订单、订单明细和支付记录，按此顺序写入
// 订单创建以payment_intent_id为幂等键：重复的持久化调用不会产生第二行订单，
// 而是读回已有订单并补齐缺失的明细/支付记录
func (s *Store) Persist(order *models.Order, items []models.OrderItem, payment *models.PaymentRecord) (uint, error) {
	db := s.database()

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_intent_id"}},
		DoNothing: true,
	}).Create(order)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to create order: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// 同一支付意向的订单已存在，复用原有订单行
		var existing models.Order
		if err := db.Where("payment_intent_id = ?", order.PaymentIntentID).First(&existing).Error; err != nil {
			return 0, fmt.Errorf("failed to load existing order: %w", err)
		}
		*order = existing
		slog.Info("[Orders] Reusing existing order for payment intent",
			"orderId", existing.ID, "paymentIntentId", existing.PaymentIntentID)
	}

	// 明细和支付记录引用已持久化的订单ID，绝不在订单落库前写入
	if err := s.persistItems(db, order, items); err != nil {
		return order.ID, &PartialPersistError{OrderID: order.ID, IntentID: order.PaymentIntentID, Err: err}
	}

	if err := s.persistPayment(db, order, payment); err != nil {
		return order.ID, &PartialPersistError{OrderID: order.ID, IntentID: order.PaymentIntentID, Err: err}
	}

	return order.ID, nil
}

// persistItems 写入订单明细。重试时已存在的明细不再重复写入
func (s *Store) persistItems(db *gorm.DB, order *models.Order, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing order items: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}
	return nil
}

// persistPayment 写入支付记录。重试时已存在的记录不再重复写入
func (s *Store) persistPayment(db *gorm.DB, order *models.Order, payment *models.PaymentRecord) error {
	var count int64
	if err := db.Model(&models.PaymentRecord{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing payment record: %w", err)
	}
	if count > 0 {
		return nil
	}

	payment.OrderID = order.ID
	if err := db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment record: %w", err)
	}
	return nil
}

// NewOrderNumber 生成对外订单号，如 ORD-LR5K2M8A-483920
func NewOrderNumber() string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("ORD-%s-%06d", timestamp, rand.Intn(1000000))
}
