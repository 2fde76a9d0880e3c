package internal

import (
	"leadsdesk/internal/controllers"
	"leadsdesk/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, hoursController *controllers.HoursController, tokenController *controllers.TokenController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Route("/storage", map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(apiController.GetSlot),
		http.MethodPut:    http.HandlerFunc(apiController.PutSlot),
		http.MethodDelete: http.HandlerFunc(apiController.DeleteSlot),
	})
	routers.Get("/storage/watch", http.HandlerFunc(apiController.WatchSlot))
	routers.Route("/viewed", map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(apiController.GetViewed),
		http.MethodPost: http.HandlerFunc(apiController.MarkViewed),
	})
	routers.Post("/unread", http.HandlerFunc(apiController.Unread))

	routers.Get("/hours", http.HandlerFunc(hoursController.BusinessHours))
	routers.Post("/hours/open", http.HandlerFunc(hoursController.IsOpen))
	routers.Route("/delay", map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(hoursController.Decompose),
		http.MethodPost: http.HandlerFunc(hoursController.Compose),
	})

	routers.Post("/tokens/status", http.HandlerFunc(tokenController.Status))
	routers.Post("/tokens/alert", http.HandlerFunc(tokenController.AckAlert))
	return routers
}
