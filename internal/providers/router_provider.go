package providers

import (
	"leadsdesk/internal/structures"
	"net/http"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Put(url string, handler http.Handler)
	Route(url string, handlers map[string]http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.Route(url, map[string]http.Handler{http.MethodGet: handler})
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.Route(url, map[string]http.Handler{http.MethodPost: handler})
}

func (rp *RouterProvider) Put(url string, handler http.Handler) {
	rp.Route(url, map[string]http.Handler{http.MethodPut: handler})
}

// Route registers several method handlers on one url. ServeMux panics on
// duplicate patterns, so a url must be registered exactly once.
func (rp *RouterProvider) Route(url string, handlers map[string]http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandler(handlers),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
