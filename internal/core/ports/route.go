package ports

import "context"

type routeKey struct{}

// WithRoute tags ctx with the route template being served.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// RouteFrom returns the route set by WithRoute, or "".
func RouteFrom(ctx context.Context) string {
	route, _ := ctx.Value(routeKey{}).(string)
	return route
}
