package handlers_test

import (
	"net/http"
	"sync"
	"testing"

	"stellar-delivery-api/config"
	"stellar-delivery-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobsShowsOnlyUnassignedReadyOrders(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "jobs-store@example.com")
	_, _, reqToken := createRequester(t, "jobs-req@example.com")
	_, deliverer, delivererToken := createDeliverer(t, "jobs-del@example.com")

	product := createProduct(t, store.ID, "Item", 400)
	readyID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, readyID, models.OrderReadyForPickup)

	pendingID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})

	takenID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, takenID, models.OrderReadyForPickup)
	require.NoError(t, config.DB.Create(&models.Delivery{
		OrderID: takenID, DelivererID: deliverer.ID, Status: models.DeliveryAssigned,
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/delivery/jobs", nil, delivererToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
	jobs := body["jobs"].([]interface{})
	job := jobs[0].(map[string]interface{})
	assert.EqualValues(t, readyID, job["order_id"])
	assert.EqualValues(t, models.JobReward, job["reward"])
	assert.Equal(t, "Test Store", job["store_name"])
	_ = pendingID
}

func TestAcceptJob(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "accept-store@example.com")
	_, _, reqToken := createRequester(t, "accept-req@example.com")
	_, deliverer, delivererToken := createDeliverer(t, "accept-del@example.com")

	product := createProduct(t, store.ID, "Item", 400)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, orderID, models.OrderReadyForPickup)

	w := doJSON(t, r, http.MethodPost, "/delivery/jobs/"+itoa(orderID)+"/accept", nil, delivererToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.OrderDelivering, order.Status)

	var delivery models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&delivery).Error)
	assert.Equal(t, deliverer.ID, delivery.DelivererID)
	assert.Equal(t, models.DeliveryAssigned, delivery.Status)

	var profile models.DelivererProfile
	require.NoError(t, config.DB.First(&profile, deliverer.ID).Error)
	assert.Equal(t, models.WorkBusy, profile.WorkStatus)
}

func TestAcceptJobAlreadyTaken(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "taken-store@example.com")
	_, _, reqToken := createRequester(t, "taken-req@example.com")
	_, _, tokenA := createDeliverer(t, "taken-del-a@example.com")
	_, _, tokenB := createDeliverer(t, "taken-del-b@example.com")

	product := createProduct(t, store.ID, "Item", 400)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, orderID, models.OrderReadyForPickup)

	path := "/delivery/jobs/" + itoa(orderID) + "/accept"
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, path, nil, tokenA).Code)

	// The order is already delivering, so the second accept fails the
	// transition pre-check.
	w := doJSON(t, r, http.MethodPost, path, nil, tokenB)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	config.DB.Model(&models.Delivery{}).Where("order_id = ?", orderID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAcceptJobNotReady(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "notready-store@example.com")
	_, _, reqToken := createRequester(t, "notready-req@example.com")
	_, _, delivererToken := createDeliverer(t, "notready-del@example.com")

	product := createProduct(t, store.ID, "Item", 400)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})

	w := doJSON(t, r, http.MethodPost, "/delivery/jobs/"+itoa(orderID)+"/accept", nil, delivererToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

// Two concurrent acceptances of the same job must yield exactly one
// assignment.
func TestAcceptJobConcurrent(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "race-store@example.com")
	_, _, reqToken := createRequester(t, "race-req@example.com")
	_, _, tokenA := createDeliverer(t, "race-del-a@example.com")
	_, _, tokenB := createDeliverer(t, "race-del-b@example.com")

	product := createProduct(t, store.ID, "Item", 400)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, orderID, models.OrderReadyForPickup)

	path := "/delivery/jobs/" + itoa(orderID) + "/accept"
	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i, token := range []string{tokenA, tokenB} {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			codes[i] = doJSON(t, r, http.MethodPost, path, nil, token).Code
		}(i, token)
	}
	wg.Wait()

	successes := 0
	for _, code := range codes {
		if code == http.StatusOK {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "codes: %v", codes)

	var count int64
	config.DB.Model(&models.Delivery{}).Where("order_id = ?", orderID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestDeliveryStatusRejectsSkippedState(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "skip-store@example.com")
	_, _, reqToken := createRequester(t, "skip-req@example.com")
	_, _, delivererToken := createDeliverer(t, "skip-del@example.com")

	product := createProduct(t, store.ID, "Item", 400)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, orderID, models.OrderReadyForPickup)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/delivery/jobs/"+itoa(orderID)+"/accept", nil, delivererToken).Code)

	var delivery models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&delivery).Error)

	// assigned -> completed skips two states
	w := doJSON(t, r, http.MethodPut, "/delivery/"+itoa(delivery.ID)+"/status",
		map[string]string{"status": "completed"}, delivererToken)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeliveryCompletionCascades(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "cascade-store@example.com")
	requesterUser, _, reqToken := createRequester(t, "cascade-req@example.com")
	_, delivererProfile, delivererToken := createDeliverer(t, "cascade-del@example.com")

	product := createProduct(t, store.ID, "Item", 700)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, orderID, models.OrderReadyForPickup)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/delivery/jobs/"+itoa(orderID)+"/accept", nil, delivererToken).Code)

	var delivery models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&delivery).Error)
	statusPath := "/delivery/" + itoa(delivery.ID) + "/status"

	for _, status := range []string{"picked_up", "delivering", "completed"} {
		w := doJSON(t, r, http.MethodPut, statusPath, map[string]string{"status": status}, delivererToken)
		require.Equal(t, http.StatusOK, w.Code, "status %s: %s", status, w.Body.String())
	}

	var order models.Order
	require.NoError(t, config.DB.First(&order, orderID).Error)
	assert.Equal(t, models.OrderCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)

	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&delivery).Error)
	assert.Equal(t, models.DeliveryCompleted, delivery.Status)
	require.NotNil(t, delivery.PickupTime)
	require.NotNil(t, delivery.DeliveredAt)

	var profile models.DelivererProfile
	require.NoError(t, config.DB.First(&profile, delivererProfile.ID).Error)
	assert.Equal(t, models.WorkOnline, profile.WorkStatus)

	var sale models.Sale
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&sale).Error)
	assert.Equal(t, order.Subtotal, sale.Amount)
	assert.Equal(t, store.ID, sale.StoreID)

	var notifCount int64
	config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", requesterUser.ID, "delivery_completed").
		Count(&notifCount)
	assert.EqualValues(t, 1, notifCount)
}

func TestLocationUpdatesAppendHistory(t *testing.T) {
	r := newTestServer(t)
	_, store, _ := createStore(t, "loc-store@example.com")
	_, _, reqToken := createRequester(t, "loc-req@example.com")
	_, _, delivererToken := createDeliverer(t, "loc-del@example.com")

	product := createProduct(t, store.ID, "Item", 400)
	orderID := placeOrder(t, r, reqToken, store.ID, []map[string]interface{}{line(product.ID, 1)})
	setOrderStatus(t, orderID, models.OrderReadyForPickup)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/delivery/jobs/"+itoa(orderID)+"/accept", nil, delivererToken).Code)

	var delivery models.Delivery
	require.NoError(t, config.DB.Where("order_id = ?", orderID).First(&delivery).Error)
	locPath := "/delivery/" + itoa(delivery.ID) + "/location"

	for _, pos := range [][2]float64{{35.658, 139.701}, {35.659, 139.702}} {
		w := doJSON(t, r, http.MethodPut, locPath,
			map[string]float64{"latitude": pos[0], "longitude": pos[1]}, delivererToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var locations []models.DeliveryLocation
	require.NoError(t, config.DB.Where("delivery_id = ?", delivery.ID).
		Order("id asc").Find(&locations).Error)
	require.Len(t, locations, 2)
	assert.Equal(t, 35.659, locations[1].Latitude)

	require.NoError(t, config.DB.First(&delivery, delivery.ID).Error)
	require.NotNil(t, delivery.CurrentLat)
	assert.Equal(t, 35.659, *delivery.CurrentLat)
}
