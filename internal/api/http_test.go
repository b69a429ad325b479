package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Login_DecodesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/login", r.URL.Path)

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "jane@example.com", in["email"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","name":"Jane","email":"jane@example.com","token":"tok-1"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	u, err := c.Login(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.Equal(t, "tok-1", u.Token)
}

func TestHTTPClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, func() string { return "tok-xyz" })
	_, err := c.ListMine(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestHTTPClient_MapsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid email or password"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	_, err := c.Login(context.Background(), "jane@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.NotErrorIs(t, err, ErrTokenExpired)
}

func TestHTTPClient_MapsTokenExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, func() string { return "stale" })
	_, err := c.GetProfile(context.Background())
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestHTTPClient_MapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	_, err := c.GetProduct(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPClient_MapsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"already reviewed"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	err := c.SubmitReview(context.Background(), "p1", 5, "great")
	var re *RequestError
	require.ErrorAs(t, err, &re)
	require.Equal(t, http.StatusBadRequest, re.Status)
	require.Equal(t, "already reviewed", re.Message)
}

func TestHTTPClient_UnreachableIsUnavailable(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", nil)
	_, err := c.ListProducts(context.Background(), "", 1)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_ListProducts_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "phone", r.URL.Query().Get("keyword"))
		require.Equal(t, "2", r.URL.Query().Get("pageNumber"))
		_, _ = w.Write([]byte(`{"products":[{"_id":"p1","name":"Phone","price":199.99}],"page":2,"pages":5}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	page, err := c.ListProducts(context.Background(), "phone", 2)
	require.NoError(t, err)
	require.Equal(t, 2, page.Page)
	require.Equal(t, 5, page.Pages)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Phone", page.Items[0].Name)
}
