package handlers_test

import (
	"net/http"
	"testing"

	"stellar-delivery-api/config"
	"stellar-delivery-api/handlers"
	"stellar-delivery-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFlow(t *testing.T) {
	r := newTestServer(t)
	user, _, token := createRequester(t, "notif@example.com")

	for i := 0; i < 3; i++ {
		handlers.Notify(user.ID, "お知らせ", "test", "test", nil)
	}

	w := doJSON(t, r, http.MethodGet, "/notifications/unread/count", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decodeBody(t, w)["unread_count"])

	// Mark one read
	var first models.Notification
	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&first).Error)
	w = doJSON(t, r, http.MethodPut, "/notifications/"+itoa(first.ID)+"/read", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/notifications/unread/count", nil, token)
	assert.EqualValues(t, 2, decodeBody(t, w)["unread_count"])

	// Mark all read
	w = doJSON(t, r, http.MethodPut, "/notifications/read-all", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/notifications/unread/count", nil, token)
	assert.EqualValues(t, 0, decodeBody(t, w)["unread_count"])
}

func TestNotificationsScopedToUser(t *testing.T) {
	r := newTestServer(t)
	userA, _, _ := createRequester(t, "na@example.com")
	_, _, tokenB := createRequester(t, "nb@example.com")

	handlers.Notify(userA.ID, "private", "for A only", "test", nil)

	w := doJSON(t, r, http.MethodGet, "/notifications", nil, tokenB)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["count"])

	var notif models.Notification
	require.NoError(t, config.DB.Where("user_id = ?", userA.ID).First(&notif).Error)
	w = doJSON(t, r, http.MethodPut, "/notifications/"+itoa(notif.ID)+"/read", nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationListPagination(t *testing.T) {
	r := newTestServer(t)
	user, _, token := createRequester(t, "page@example.com")

	for i := 0; i < 5; i++ {
		handlers.Notify(user.ID, "n", "msg", "test", nil)
	}

	w := doJSON(t, r, http.MethodGet, "/notifications?skip=0&limit=2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decodeBody(t, w)["count"])

	w = doJSON(t, r, http.MethodGet, "/notifications?skip=4&limit=2", nil, token)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])
}

func TestCreateNotificationAdminOnly(t *testing.T) {
	r := newTestServer(t)
	target, _, targetToken := createRequester(t, "target@example.com")
	adminUser := createUser(t, "admin@example.com", models.RoleAdmin)
	adminToken := tokenFor(t, &adminUser)

	payload := map[string]interface{}{
		"user_id": target.ID,
		"title":   "メンテナンスのお知らせ",
		"message": "明日の午前2時からメンテナンスを行います",
		"type":    "system",
	}

	w := doJSON(t, r, http.MethodPost, "/notifications", payload, targetToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/notifications", payload, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/notifications/unread/count", nil, targetToken)
	assert.EqualValues(t, 1, decodeBody(t, w)["unread_count"])
}
