package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/product"
)

func newRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type panicRepo struct {
	*fakeRepo
}

func (panicRepo) List(ctx context.Context) ([]product.Product, error) {
	panic("list exploded")
}
