package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdutucu/Optical-Store-Database/models"
)

func TestListTransactionsFilters(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	l := New(db)

	other := models.Customer{
		NationalID:          "98765432109",
		FirstName:           "Can",
		LastName:            "Öztürk",
		RegisteredByStaffID: f.staff.StaffID,
	}
	require.NoError(t, db.Create(&other).Error)

	sale, err := l.OpenSale(f.customer.CustomerID, f.staff.StaffID)
	require.NoError(t, err)
	repair, err := l.OpenRepair(other.CustomerID, f.staff.StaffID, "hinge", dec("80.00"), nil)
	require.NoError(t, err)

	all, err := l.ListTransactions(TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCustomer, err := l.ListTransactions(TransactionFilter{CustomerID: &f.customer.CustomerID})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, sale.TransactionID, byCustomer[0].TransactionID)

	repairType := models.TransactionRepair
	byType, err := l.ListTransactions(TransactionFilter{Type: &repairType})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, repair.TransactionID, byType[0].TransactionID)

	future := time.Now().Add(time.Hour)
	none, err := l.ListTransactions(TransactionFilter{From: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPayments(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	l := New(db)

	tx, err := l.OpenSale(f.customer.CustomerID, f.staff.StaffID)
	require.NoError(t, err)
	_, err = l.AddItem(tx.TransactionID, f.frame.ProductID, 2, nil)
	require.NoError(t, err)

	_, err = l.Pay(tx.TransactionID, dec("40.00"), CashPayment(f.staff.FullName()))
	require.NoError(t, err)
	_, err = l.Pay(tx.TransactionID, dec("30.00"), CardPayment(f.customer.FullName()))
	require.NoError(t, err)

	payments, err := l.ListPayments(tx.TransactionID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	_, err = l.ListPayments(9999)
	assert.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestOutstanding(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	l := New(db)

	paid, err := l.OpenSale(f.customer.CustomerID, f.staff.StaffID)
	require.NoError(t, err)
	_, err = l.AddItem(paid.TransactionID, f.frame.ProductID, 1, nil)
	require.NoError(t, err)
	_, err = l.Pay(paid.TransactionID, dec("60.00"), CashPayment(f.staff.FullName()))
	require.NoError(t, err)

	owing, err := l.OpenRepair(f.customer.CustomerID, f.staff.StaffID, "hinge", dec("80.00"), nil)
	require.NoError(t, err)

	outstanding, err := l.Outstanding()
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	assert.Equal(t, owing.TransactionID, outstanding[0].TransactionID)
	assertAmount(t, "80.00", outstanding[0].RemainingBalance)
}
