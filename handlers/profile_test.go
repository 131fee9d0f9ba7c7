package handlers_test

import (
	"net/http"
	"testing"

	"stellar-delivery-api/config"
	"stellar-delivery-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartialUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	r := newTestServer(t)
	_, profile, token := createRequester(t, "partial@example.com")

	w := doJSON(t, r, http.MethodPut, "/profile/requester",
		map[string]string{"phone_number": "090-1234-5678"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.RequesterProfile
	require.NoError(t, config.DB.First(&updated, profile.ID).Error)
	assert.Equal(t, "090-1234-5678", updated.PhoneNumber)
	assert.Equal(t, "Test Requester", updated.Name)
}

func addAddress(t *testing.T, r *gin.Engine, token, label string, isDefault bool) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/profile/requester/addresses", map[string]interface{}{
		"label":         label,
		"postal_code":   "150-0002",
		"address_line1": "1-2-3 Shibuya",
		"is_default":    isDefault,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	address := body["address"].(map[string]interface{})
	return uint(address["id"].(float64))
}

func defaultCount(t *testing.T, requesterID uint) int64 {
	t.Helper()
	var count int64
	config.DB.Model(&models.RequesterAddress{}).
		Where("requester_id = ? AND is_default = ?", requesterID, true).
		Count(&count)
	return count
}

func TestAddDefaultAddressClearsSiblings(t *testing.T) {
	r := newTestServer(t)
	_, profile, token := createRequester(t, "addr@example.com")

	first := addAddress(t, r, token, "home", true)
	second := addAddress(t, r, token, "office", true)

	assert.EqualValues(t, 1, defaultCount(t, profile.ID))

	var address models.RequesterAddress
	require.NoError(t, config.DB.Where("requester_id = ? AND is_default = ?", profile.ID, true).
		First(&address).Error)
	assert.Equal(t, second, address.ID)

	var updated models.RequesterProfile
	require.NoError(t, config.DB.First(&updated, profile.ID).Error)
	require.NotNil(t, updated.DefaultAddressID)
	assert.Equal(t, second, *updated.DefaultAddressID)
	_ = first
}

func TestSetDefaultAddressEndpoint(t *testing.T) {
	r := newTestServer(t)
	_, profile, token := createRequester(t, "setdefault@example.com")

	first := addAddress(t, r, token, "home", true)
	second := addAddress(t, r, token, "office", false)

	w := doJSON(t, r, http.MethodPut, "/profile/requester/addresses/"+itoa(second)+"/default", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.EqualValues(t, 1, defaultCount(t, profile.ID))

	var old models.RequesterAddress
	require.NoError(t, config.DB.First(&old, first).Error)
	assert.False(t, old.IsDefault)

	var current models.RequesterAddress
	require.NoError(t, config.DB.First(&current, second).Error)
	assert.True(t, current.IsDefault)
}

func TestDeleteAddress(t *testing.T) {
	r := newTestServer(t)
	_, profile, token := createRequester(t, "deladdr@example.com")

	id := addAddress(t, r, token, "home", true)

	w := doJSON(t, r, http.MethodDelete, "/profile/requester/addresses/"+itoa(id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	config.DB.Model(&models.RequesterAddress{}).Where("requester_id = ?", profile.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	var updated models.RequesterProfile
	require.NoError(t, config.DB.First(&updated, profile.ID).Error)
	assert.Nil(t, updated.DefaultAddressID)
}

func TestAddressesScopedToOwner(t *testing.T) {
	r := newTestServer(t)
	_, _, tokenA := createRequester(t, "owner-a@example.com")
	_, _, tokenB := createRequester(t, "owner-b@example.com")

	id := addAddress(t, r, tokenA, "home", true)

	w := doJSON(t, r, http.MethodDelete, "/profile/requester/addresses/"+itoa(id), nil, tokenB)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDelivererBankingUpdate(t *testing.T) {
	r := newTestServer(t)
	_, profile, token := createDeliverer(t, "bank@example.com")

	w := doJSON(t, r, http.MethodPut, "/profile/deliverer/banking", map[string]string{
		"bank_name":           "みずほ銀行",
		"bank_branch":         "渋谷支店",
		"bank_account_type":   "普通",
		"bank_account_number": "1234567",
		"bank_account_holder": "ヤマダ タロウ",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.DelivererProfile
	require.NoError(t, config.DB.First(&updated, profile.ID).Error)
	assert.Equal(t, "みずほ銀行", updated.BankName)
	assert.Equal(t, "1234567", updated.BankAccountNumber)
}

func TestDelivererWorkStatusValidation(t *testing.T) {
	r := newTestServer(t)
	_, _, token := createDeliverer(t, "ws@example.com")

	w := doJSON(t, r, http.MethodPut, "/profile/deliverer",
		map[string]string{"work_status": "sleeping"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/profile/deliverer",
		map[string]string{"work_status": "online"}, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileRoleScoping(t *testing.T) {
	r := newTestServer(t)
	_, _, storeToken := createStore(t, "scope-store@example.com")

	w := doJSON(t, r, http.MethodGet, "/profile/requester", nil, storeToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
