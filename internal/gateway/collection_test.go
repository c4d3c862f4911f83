package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAddress struct {
	Street   string `json:"street"`
	Nickname string `json:"nickname"`
}

func addressResource(t *testing.T, handler http.HandlerFunc) *Resource[testAddress] {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, StaticToken("tok"), 0)
	return NewResource[testAddress](client, "/customers/%s/addresses", "/addresses/%s")
}

func TestResourceListDecodesFlatPayload(t *testing.T) {
	res := addressResource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/c-1/addresses", r.URL.Path)
		fmt.Fprint(w, `{"success": true, "data": [
			{"id": "a-1", "order": 0, "is_default": true, "street": "Rua A", "nickname": "Casa"},
			{"id": "a-2", "order": 1, "is_default": false, "street": "Rua B", "nickname": "Trabalho"}
		]}`)
	})

	items, err := res.List(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "a-1", items[0].ID)
	assert.True(t, items[0].IsDefault)
	assert.Equal(t, "Rua A", items[0].Payload.Street)
	assert.Equal(t, 1, items[1].Order)
	assert.Equal(t, "Trabalho", items[1].Payload.Nickname)
}

func TestResourceListEmptyIsNotAnError(t *testing.T) {
	res := addressResource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success": true, "data": []}`)
	})

	items, err := res.List(context.Background(), "c-1")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestResourceListMissingOwnerIsNotFound(t *testing.T) {
	res := addressResource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success": false, "error": {"code": "CUS_404", "message": "customer not found"}}`)
	})

	_, err := res.List(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestResourceCreateSendsPayloadAndDefaultFlag(t *testing.T) {
	res := addressResource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/customers/c-1/addresses", r.URL.Path)

		var body struct {
			Payload   testAddress `json:"payload"`
			IsDefault bool        `json:"is_default"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Rua A", body.Payload.Street)
		assert.True(t, body.IsDefault)

		fmt.Fprint(w, `{"success": true, "data":
			{"id": "a-9", "order": 0, "is_default": true, "street": "Rua A", "nickname": "Casa"}}`)
	})

	item, err := res.Create(context.Background(), "c-1", testAddress{Street: "Rua A", Nickname: "Casa"}, true)
	require.NoError(t, err)
	assert.Equal(t, "a-9", item.ID)
	assert.True(t, item.IsDefault)
}

func TestResourceSetDefaultHitsItemPath(t *testing.T) {
	var gotPath, gotMethod string
	res := addressResource(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		fmt.Fprint(w, `{"success": true}`)
	})

	require.NoError(t, res.SetDefault(context.Background(), "a-2"))
	assert.Equal(t, "/addresses/a-2/set-default", gotPath)
	assert.Equal(t, http.MethodPut, gotMethod)
}

func TestResourceRemove(t *testing.T) {
	res := addressResource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/addresses/a-2", r.URL.Path)
		fmt.Fprint(w, `{"success": true}`)
	})

	assert.NoError(t, res.Remove(context.Background(), "a-2"))
}
