// Package adoptionserver is the gin HTTP transport of the pet adoption API.
package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
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
}

// ApiHandleFunctions groups the handlers of every API surface.
type ApiHandleFunctions struct {
	// Routes for the PetAPI part of the API
	PetAPI PetAPI
	// Routes for the TagAPI part of the API
	TagAPI TagAPI
}

// NewRouter returns a new gin engine with every route registered behind the given middleware.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers the API and operational routes on an existing engine.
// Middleware must already be attached to the engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	router.NoRoute(func(c *gin.Context) {
		respondProblem(c, errNoRoute)
	})
	return router
}

// DefaultHandleFunc is the default handler for unimplemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"SearchPets",
			http.MethodGet,
			"/api/pets/search",
			handleFunctions.PetAPI.SearchPets,
		},
		{
			"CreateListing",
			http.MethodPost,
			"/api/pets",
			handleFunctions.PetAPI.CreateListing,
		},
		{
			"GetListing",
			http.MethodGet,
			"/api/pets/:petId",
			handleFunctions.PetAPI.GetListing,
		},
		{
			"AdoptListing",
			http.MethodPost,
			"/api/pets/:petId/adopt",
			handleFunctions.PetAPI.AdoptListing,
		},
		{
			"ListTags",
			http.MethodGet,
			"/api/tags",
			handleFunctions.TagAPI.ListTags,
		},
		{
			"Healthz",
			http.MethodGet,
			"/healthz",
			Healthz,
		},
		{
			"Metrics",
			http.MethodGet,
			"/metrics",
			gin.WrapH(promhttp.Handler()),
		},
	}
}
