package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/swaggest/swgui/v5emb"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/services/product-service-go/internal/middleware"
)

const (
	apiPrefix    = "/api"
	productsPath = "/products"
	idPattern    = "/{id:[0-9]+}"

	docsPath    = "/docs"
	openAPIPath = "/api-docs/openapi.json"
)

// route is one row of the static product route table. The same table
// registers handlers and generates the OpenAPI document.
type route struct {
	method      string
	path        string // relative to /api/products; "" is the collection
	operationID string
	summary     string
	body        bool
	status      int
	handle      func(*Handler, http.ResponseWriter, *http.Request)
}

var productRoutes = []route{
	{http.MethodGet, "", "getAllProducts", "List all products ordered by name", false, http.StatusOK, (*Handler).ListProducts},
	{http.MethodPost, "", "insertProduct", "Add a product", true, http.StatusCreated, (*Handler).CreateProduct},
	{http.MethodGet, idPattern, "getSingleProduct", "Get one product by id", false, http.StatusOK, (*Handler).GetProduct},
	{http.MethodPut, idPattern, "updateProduct", "Replace all writable fields of a product", true, http.StatusOK, (*Handler).UpdateProduct},
	{http.MethodDelete, idPattern, "deleteProduct", "Delete a product", false, http.StatusNoContent, (*Handler).DeleteProduct},
}

type RouterOptions struct {
	Logger           *zap.Logger
	CORSAllowOrigins []string
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSAllowOrigins))

	r.Get("/health", h.Health)

	spec := mustOpenAPIJSON()
	r.Get(openAPIPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(spec)
	})
	ui := v5emb.New("ProdigiCrud API", openAPIPath, docsPath+"/")
	r.Handle(docsPath, http.RedirectHandler(docsPath+"/", http.StatusMovedPermanently))
	r.Handle(docsPath+"/*", ui)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(chimw.StripSlashes)

		r.Get("/ping", h.Ping)
		r.Route(productsPath, func(r chi.Router) {
			for _, rt := range productRoutes {
				pattern := rt.path
				if pattern == "" {
					pattern = "/"
				}
				r.Method(rt.method, pattern, bind(h, rt.handle))
			}
		})
	})

	return r
}

func bind(h *Handler, fn func(*Handler, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(h, w, r)
	}
}
