package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/bdutucu/Optical-Store-Database/database"
)

// OutstandingReport lists transactions that still carry a balance
// GET /reports/outstanding
func OutstandingReport(c *fiber.Ctx) error {
	db := database.GetDB()

	var rows []struct {
		TransactionID    uint            `json:"transaction_id"`
		TransactionType  string          `json:"transaction_type"`
		CreatedAt        time.Time       `json:"created_at"`
		TotalAmount      decimal.Decimal `json:"total_amount"`
		RemainingBalance decimal.Decimal `json:"remaining_balance"`
		CustomerName     string          `json:"customer_name"`
	}

	err := db.Raw(`
		SELECT t.transaction_id, t.transaction_type, t.created_at,
		       t.total_amount, t.remaining_balance,
		       c.first_name || ' ' || c.last_name AS customer_name
		FROM transactions t
		JOIN customers c ON t.customer_id = c.customer_id
		WHERE t.remaining_balance > 0
		ORDER BY t.created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return err
	}

	outstanding := decimal.Zero
	for _, row := range rows {
		outstanding = outstanding.Add(row.RemainingBalance)
	}

	return c.JSON(fiber.Map{
		"transactions":      rows,
		"count":             len(rows),
		"total_outstanding": outstanding,
	})
}

// RevenueReport summarizes billed and collected amounts over a period
// GET /reports/revenue?from=YYYY-MM-DD&to=YYYY-MM-DD
func RevenueReport(c *fiber.Ctx) error {
	db := database.GetDB()

	from := time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local)
	to := time.Now()

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	var collected struct {
		TotalCollected decimal.Decimal `json:"total_collected"`
		PaymentCount   int64           `json:"payment_count"`
	}
	err := db.Raw(`
		SELECT COALESCE(SUM(amount_paid), 0) AS total_collected,
		       COUNT(*) AS payment_count
		FROM payments
		WHERE paid_at BETWEEN ? AND ?
	`, from, to).Scan(&collected).Error
	if err != nil {
		return err
	}

	var billed []struct {
		TransactionType string          `json:"transaction_type"`
		TotalBilled     decimal.Decimal `json:"total_billed"`
		Count           int64           `json:"count"`
	}
	err = db.Raw(`
		SELECT transaction_type,
		       COALESCE(SUM(total_amount), 0) AS total_billed,
		       COUNT(*) AS count
		FROM transactions
		WHERE created_at BETWEEN ? AND ?
		GROUP BY transaction_type
		ORDER BY transaction_type
	`, from, to).Scan(&billed).Error
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"from":            from.Format("2006-01-02"),
		"to":              to.Format("2006-01-02"),
		"total_collected": collected.TotalCollected,
		"payment_count":   collected.PaymentCount,
		"billed_by_type":  billed,
	})
}
