package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/royalsilk/storefront/internal/api/metrics"
)

// Route is the symbolic name selecting which handler processes a request.
type Route string

const (
	RouteIndex          Route = "index"
	RouteSearch         Route = "search"
	RouteUserRegister   Route = "user_register"
	RouteProcessNewUser Route = "process_new_user_details"
	RouteUserLogin      Route = "user_login"
	RouteProcessLogin   Route = "process_login"
	RouteUserLogout     Route = "user_logout"
	RouteListUsers      Route = "list_users"
	RouteProducts       Route = "products"
	RouteProduct        Route = "product"
	RouteCart           Route = "cart"

	// Legacy route names kept on the allow-list for old links. Neither has a
	// mapped handler; both dispatch to the index handler.
	RouteCryptoDetails Route = "display-crypto-details"
	RouteLandingPage   Route = "landing-page"
)

var allowedRoutes = map[Route]struct{}{
	RouteIndex:          {},
	RouteSearch:         {},
	RouteUserRegister:   {},
	RouteProcessNewUser: {},
	RouteUserLogin:      {},
	RouteProcessLogin:   {},
	RouteUserLogout:     {},
	RouteListUsers:      {},
	RouteProducts:       {},
	RouteProduct:        {},
	RouteCart:           {},
	RouteCryptoDetails:  {},
	RouteLandingPage:    {},
}

// ValidRoute reports whether name is on the route allow-list.
func ValidRoute(name string) bool {
	_, ok := allowedRoutes[Route(name)]
	return ok
}

// ResolveRoute reads the route parameter — POST form value first, query
// string second, default "index" — and validates it against the allow-list.
// A value outside the list is never surfaced as an error: it is replaced by
// the default route before dispatch, and fellBack reports the substitution.
func ResolveRoute(c echo.Context) (route Route, fellBack bool) {
	name := c.Request().PostFormValue("route")
	if name == "" {
		name = c.QueryParam("route")
	}
	if name == "" {
		return RouteIndex, false
	}
	if !ValidRoute(name) {
		return RouteIndex, true
	}
	return Route(name), false
}

// Dispatcher is the front controller: a total mapping from validated routes
// to handlers, with the index handler as the residual default.
type Dispatcher struct {
	table map[Route]echo.HandlerFunc
	index echo.HandlerFunc
	log   zerolog.Logger
}

// NewDispatcher builds a Dispatcher over the given route table. The table
// must contain an index entry; it doubles as the default for allow-listed
// routes with no handler of their own.
func NewDispatcher(table map[Route]echo.HandlerFunc, log zerolog.Logger) *Dispatcher {
	index, ok := table[RouteIndex]
	if !ok {
		panic("api: dispatch table missing index handler")
	}
	return &Dispatcher{table: table, index: index, log: log}
}

// Dispatch resolves the request's route and invokes its handler.
func (d *Dispatcher) Dispatch(c echo.Context) error {
	route, fellBack := ResolveRoute(c)
	if fellBack {
		metrics.RouteFallbacksTotal.Inc()
		d.log.Debug().Msg("invalid route replaced by default")
	}

	h, ok := d.table[route]
	if !ok {
		route = RouteIndex
		h = d.index
	}

	metrics.DispatchesTotal.WithLabelValues(string(route)).Inc()
	return h(c)
}
