package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverController_Resolve(t *testing.T) {
	env := setupControllerTest(t, nil)

	env.createCanvas(t, "12x16", "18.00", 1)
	env.createCanvas(t, "16x20", "20.00", 1)

	w, resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/resolve?product_type_id=%d", env.canvas.ID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	res := resp["resolution"].(map[string]interface{})
	assert.Equal(t, "type_selected", res["state"])
	assert.Equal(t, 1.0, res["next_level"])
	assert.Len(t, res["sub_options"], 3)

	w, resp = env.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/resolve?product_type_id=%d&sub_option_1_id=%d", env.canvas.ID, env.mounts[1].ID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	res = resp["resolution"].(map[string]interface{})
	assert.Equal(t, "sizes_listed", res["state"])
	assert.Len(t, res["products"], 2)
	assert.Equal(t, 50.0, res["markup_percentage"])

	w, resp = env.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/resolve?product_type_id=%d&sub_option_1_id=%d", env.metal.ID, env.mounts[1].ID), nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CATALOG_SUB_OPTION_MISMATCH", resp["code"])
}

func TestProductTypeController(t *testing.T) {
	env := setupControllerTest(t, nil)

	w, resp := env.do(t, http.MethodGet, "/api/v1/product-types", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	types := resp["product_types"].([]interface{})
	require.Len(t, types, 2)
	assert.Equal(t, "Canvas", types[0].(map[string]interface{})["name"])

	w, resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/product-types/%d/sub-options/1", env.canvas.ID), nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	options := resp["sub_options"].([]interface{})
	require.Len(t, options, 3)
	assert.Equal(t, `0.75"`, options[0].(map[string]interface{})["value"])

	w, _ = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/product-types/%d/sub-options/3", env.canvas.ID), nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/product-types/%d/sub-options/first", env.canvas.ID), nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/v1/product-types/999/sub-options/1", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
