package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"stellar-delivery-api/config"
	"stellar-delivery-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentMirrorsOrderTotal(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "pay-store@example.com")
	_, _, reqToken := createRequester(t, "pay-req@example.com")

	product := createProduct(t, store.ID, "Bento", 650)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 2)})

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	require.Equal(t, 650*2+models.DeliveryFee, order.TotalAmount)

	w := doJSON(t, r, http.MethodPost, "/payments", map[string]interface{}{
		"order_id": orderID,
		"method":   "credit_card",
	}, reqToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	payment := decodeBody(t, w)["payment"].(map[string]interface{})
	assert.EqualValues(t, order.TotalAmount, payment["amount"])
	assert.Equal(t, string(models.PaymentPending), payment["status"])

	// Readable back through the order
	w = doJSON(t, r, http.MethodGet, "/orders/"+itoa(orderID)+"/payment", nil, reqToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fetched := decodeBody(t, w)["payment"].(map[string]interface{})
	assert.EqualValues(t, order.TotalAmount, fetched["amount"])
}

func TestCreatePaymentDuplicateRejected(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "dup-pay-store@example.com")
	_, _, reqToken := createRequester(t, "dup-pay-req@example.com")

	product := createProduct(t, store.ID, "Bento", 650)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})

	body := map[string]interface{}{"order_id": orderID, "method": "credit_card"}
	require.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/payments", body, reqToken).Code)

	w := doJSON(t, r, http.MethodPost, "/payments", body, reqToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCreatePaymentForeignOrderRejected(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "foreign-pay-store@example.com")
	_, _, tokenA := createRequester(t, "foreign-pay-a@example.com")
	_, _, tokenB := createRequester(t, "foreign-pay-b@example.com")

	product := createProduct(t, store.ID, "Bento", 650)
	orderID := placeOrder(t, r, tokenA, store.ID, []map[string]interface{}{line(product.ID, 1)})

	w := doJSON(t, r, http.MethodPost, "/payments", map[string]interface{}{
		"order_id": orderID,
		"method":   "cash",
	}, tokenB)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStoreSalesListingTotals(t *testing.T) {
	r := newTestServer(t)
	_, store, token := createStore(t, "sales-store@example.com")

	for _, amount := range []int{1200, 800} {
		require.NoError(t, config.DB.Create(&models.Sale{
			StoreID:    store.ID,
			OrderID:    uint(amount), // distinct per row
			Amount:     amount,
			RecordedOn: time.Now(),
		}).Error)
	}
	// Another store's sale must not leak in
	require.NoError(t, config.DB.Create(&models.Sale{
		StoreID: store.ID + 1, OrderID: 99, Amount: 9999, RecordedOn: time.Now(),
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/stores/my/sales", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["count"])
	assert.EqualValues(t, 2000, body["total"])
}

func TestPayoutCreateAndListing(t *testing.T) {
	r := newTestServer(t)
	delivererUser, deliverer, delivererToken := createDeliverer(t, "payout-del@example.com")
	adminUser := createUser(t, "payout-admin@example.com", models.RoleAdmin)
	adminToken := tokenFor(t, &adminUser)

	payload := map[string]interface{}{
		"deliverer_id": deliverer.ID,
		"amount":       3500,
		"period_start": "2026-08-01T00:00:00Z",
		"period_end":   "2026-08-31T00:00:00Z",
	}

	// Deliverers cannot create payouts themselves
	w := doJSON(t, r, http.MethodPost, "/admin/payouts", payload, delivererToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/payouts", payload, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/delivery/payouts", nil, delivererToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
	payout := body["payouts"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 3500, payout["amount"])
	assert.Equal(t, "pending", payout["status"])

	var notifCount int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", delivererUser.ID, "payout_created").
		Count(&notifCount)
	assert.EqualValues(t, 1, notifCount)
}
