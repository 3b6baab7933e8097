package controller

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lensfolio/printshop-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acrylicCard = `version: 1
product_types:
  - name: Acrylic
    display_order: 9
    max_sub_option_levels: 0
    categories:
      - name: Acrylic Prints
        display_order: 9
    products:
      - category: Acrylic Prints
        sizes:
          - { size: 8x10, cost: "14.00" }
          - { size: 16x20, cost: "31.50" }
`

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAdminController_Login(t *testing.T) {
	env := setupControllerTest(t, nil)

	w, resp := env.do(t, http.MethodPost, "/api/v1/admin/login", map[string]interface{}{
		"username": testAdminUser,
		"password": testAdminPassword,
	}, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["token"])
	assert.NotEmpty(t, resp["expires_at"])

	w, resp = env.do(t, http.MethodPost, "/api/v1/admin/login", map[string]interface{}{
		"username": testAdminUser,
		"password": "guess-guess-guess",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", resp["code"])

	w, _ = env.do(t, http.MethodPost, "/api/v1/admin/login", map[string]interface{}{"username": testAdminUser}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminController_Logout(t *testing.T) {
	env := setupControllerTest(t, nil)

	w, _ := env.do(t, http.MethodPost, "/api/v1/admin/logout", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, http.MethodPost, "/api/v1/admin/logout", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminController_AuditAndDedupe(t *testing.T) {
	env := setupControllerTest(t, nil)

	keep := env.createMetal(t, "12x16", "5.92")
	// a duplicate row slipped in behind the service
	dup := model.Product{
		Name:          "Metal 12x16 (dup)",
		CategoryID:    env.metalPrints.ID,
		ProductTypeID: env.metal.ID,
		Width:         12,
		Height:        16,
		CostPrice:     decimal.RequireFromString("5.92"),
		Active:        true,
	}
	require.NoError(t, env.db.Create(&dup).Error)
	// and a canvas row missing its mounting
	broken := model.Product{
		Name:          "Canvas 8x10",
		CategoryID:    env.canvasPrints.ID,
		ProductTypeID: env.canvas.ID,
		Width:         8,
		Height:        10,
		CostPrice:     decimal.RequireFromString("12.00"),
		Active:        true,
	}
	require.NoError(t, env.db.Create(&broken).Error)

	w, resp := env.do(t, http.MethodGet, "/api/v1/admin/catalog/audit", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp["count"])
	violation := resp["violations"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(broken.ID), violation["product_id"])

	w, resp = env.do(t, http.MethodPost, "/api/v1/admin/catalog/dedupe", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, resp["removed"])

	w, _ = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", keep.ID), nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", dup.ID), nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminController_Import_Upload(t *testing.T) {
	env := setupControllerTest(t, nil)

	body, contentType := multipartBody(t, "acrylic.yaml", acrylicCard)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	w, resp := env.doRequest(t, req)
	require.Equal(t, http.StatusOK, w.Code, resp)

	report := resp["report"].(map[string]interface{})
	// type, category and two products
	assert.Equal(t, 4.0, report["created"])

	_, resp = env.do(t, http.MethodGet, "/api/v1/product-types", nil, false)
	assert.Len(t, resp["product_types"], 3)
}

func TestAdminController_Import_Rejects(t *testing.T) {
	env := setupControllerTest(t, nil)

	body, contentType := multipartBody(t, "prices.csv", "size,cost\n8x10,1.00\n")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	w, resp := env.doRequest(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UPLOAD_INVALID_FILE_TYPE", resp["code"])

	body, contentType = multipartBody(t, "broken.yaml", "product_types: [")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	w, resp = env.doRequest(t, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "file", resp["field"])
}
