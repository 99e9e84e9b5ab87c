package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/cart-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewHTTPClient(srv.URL, 2*time.Second)
	require.NoError(t, err)
	return client
}

func TestHTTPClient_GetStock(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"amount":5}`))
	})

	stock, err := client.GetStock(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Stock{ProductID: 3, Amount: 5}, stock)
}

func TestHTTPClient_GetProduct(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/1", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":1,"title":"Tênis de Caminhada","price":179.9,"image":"https://cdn/1.jpg"}`))
	})

	product, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: 1, Title: "Tênis de Caminhada", Price: 179.9, Image: "https://cdn/1.jpg"}, product)
}

func TestHTTPClient_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.GetStock(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = client.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestHTTPClient_ServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetStock(context.Background(), 1)
	require.ErrorContains(t, err, "unexpected status 500")
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestHTTPClient_InvalidJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"amount":`))
	})

	_, err := client.GetStock(context.Background(), 1)
	require.ErrorContains(t, err, "decode")
}

func TestHTTPClient_BasePathPrefix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stock/2", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":2,"amount":1}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL+"/api", time.Second)
	require.NoError(t, err)

	stock, err := client.GetStock(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, stock.Amount)
}

func TestHTTPClient_CollapsesConcurrentLookups(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"id":1,"amount":4}`))
	})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stock, err := client.GetStock(context.Background(), 1)
			assert.NoError(t, err)
			assert.Equal(t, 4, stock.Amount)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, hits.Load(), int32(5))
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestHTTPClient_CallerCancelDoesNotFailOthers(t *testing.T) {
	var hits atomic.Int32
	started := make(chan struct{}, 5)
	release := make(chan struct{})
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		started <- struct{}{}
		<-release
		_, _ = w.Write([]byte(`{"id":1,"amount":4}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := client.GetStock(ctx, 1)
		firstErr <- err
	}()
	<-started

	secondErr := make(chan error, 1)
	go func() {
		stock, err := client.GetStock(context.Background(), 1)
		if err == nil && stock.Amount != 4 {
			err = assert.AnError
		}
		secondErr <- err
	}()
	time.Sleep(50 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	assert.NoError(t, <-secondErr)
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPClient("localhost-without-scheme", time.Second)
	assert.Error(t, err)
}
