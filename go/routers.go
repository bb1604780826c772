/*
 * Travel Orders API
 *
 * Corporate travel order requests with an admin approval workflow.
 *
 * API version: 1.0.0
 */

package travelordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Access is the authorization level a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Access selects the middleware chain placed in front of HandlerFunc.
	Access Access
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		chain := append(handleFunctions.Auth.chain(route.Access), route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers and middleware served by the router.
type ApiHandleFunctions struct {
	// Auth resolves bearer tokens and enforces the admin gate.
	Auth AuthMiddleware
	// Routes for the AuthAPI part of the API
	AuthAPI AuthAPI
	// Routes for the TravelOrderAPI part of the API
	TravelOrderAPI TravelOrderAPI
	// Routes for the UserAPI part of the API
	UserAPI UserAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Register", http.MethodPost, "/api/register", handleFunctions.AuthAPI.Register, Public},
		{"Login", http.MethodPost, "/api/login", handleFunctions.AuthAPI.Login, Public},
		{"Logout", http.MethodPost, "/api/logout", handleFunctions.AuthAPI.Logout, Authenticated},
		{"Refresh", http.MethodPost, "/api/refresh", handleFunctions.AuthAPI.Refresh, Authenticated},
		{"Me", http.MethodGet, "/api/me", handleFunctions.AuthAPI.Me, Authenticated},
		{"CreateTravelOrder", http.MethodPost, "/api/travel-orders", handleFunctions.TravelOrderAPI.CreateTravelOrder, Authenticated},
		{"ListTravelOrders", http.MethodGet, "/api/travel-orders", handleFunctions.TravelOrderAPI.ListTravelOrders, Authenticated},
		{"GetTravelOrder", http.MethodGet, "/api/travel-orders/:id", handleFunctions.TravelOrderAPI.GetTravelOrder, Authenticated},
		{"UpdateTravelOrderStatus", http.MethodPatch, "/api/travel-orders/:id/status", handleFunctions.TravelOrderAPI.UpdateTravelOrderStatus, Admin},
		{"PromoteToAdmin", http.MethodPost, "/api/users/promote-to-admin", handleFunctions.UserAPI.PromoteToAdmin, Admin},
	}
}
