package reconcile

import (
	"fmt"
	"time"

	"github.com/flaboy/aira-checkout/pkg/models"
	"github.com/flaboy/aira-checkout/pkg/orders"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var orderHeaders = []string{"Order ID", "Order Number", "User ID", "Status", "Total Amount", "Payment Intent ID", "Created At"}
var paymentHeaders = []string{"Payment ID", "Order ID", "Gateway Intent ID", "Status", "Amount", "Currency", "Completed At"}

// ExportOrders 导出订单与支付记录到xlsx工作簿，供财务对账
// 部分持久化的订单（有订单行但缺支付记录）靠这份报表跟进
func ExportOrders(db *gorm.DB, since time.Time) (*excelize.File, error) {
	var orderRows []models.Order
	if err := db.Where("created_at >= ?", since).Order("id").Find(&orderRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	var paymentRows []models.PaymentRecord
	if err := db.Where("created_at >= ?", since).Order("id").Find(&paymentRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load payment records: %w", err)
	}

	file := excelize.NewFile()

	if err := writeOrdersSheet(file, orderRows); err != nil {
		return nil, err
	}
	if err := writePaymentsSheet(file, paymentRows); err != nil {
		return nil, err
	}

	// 删除excelize默认创建的空表
	file.DeleteSheet("Sheet1")

	return file, nil
}

func writeOrdersSheet(file *excelize.File, orderRows []models.Order) error {
	const sheet = "Orders"
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create orders sheet: %w", err)
	}

	if err := writeRow(file, sheet, 1, orderHeaders); err != nil {
		return err
	}

	for i, order := range orderRows {
		row := []string{
			orders.EncodeOrderID(order.ID),
			order.OrderNumber,
			order.UserID,
			cast.ToString(order.Status),
			order.TotalAmount.StringFixed(2),
			order.PaymentIntentID,
			order.CreatedAt.Format(time.RFC3339),
		}
		if err := writeRow(file, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writePaymentsSheet(file *excelize.File, paymentRows []models.PaymentRecord) error {
	const sheet = "Payments"
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create payments sheet: %w", err)
	}

	if err := writeRow(file, sheet, 1, paymentHeaders); err != nil {
		return err
	}

	for i, payment := range paymentRows {
		completedAt := ""
		if payment.CompletedAt != nil {
			completedAt = payment.CompletedAt.Format(time.RFC3339)
		}
		row := []string{
			cast.ToString(payment.ID),
			cast.ToString(payment.OrderID),
			payment.GatewayIntentID,
			payment.Status,
			payment.Amount.StringFixed(2),
			payment.Currency,
			completedAt,
		}
		if err := writeRow(file, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(file *excelize.File, sheet string, rowIndex int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	if err := file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", rowIndex, sheet, err)
	}
	return nil
}
