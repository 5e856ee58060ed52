package session

import "context"

// Navigator performs a forced navigation, such as sending the browser to
// the login screen.
type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}

type contextKey string

const (
	providerContextKey  contextKey = "session_provider"
	navigatorContextKey contextKey = "session_navigator"
)

func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerContextKey, p)
}

func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerContextKey).(*Provider)
	return p, ok && p != nil
}

func WithNavigator(ctx context.Context, n Navigator) context.Context {
	return context.WithValue(ctx, navigatorContextKey, n)
}

func NavigatorFromContext(ctx context.Context) (Navigator, bool) {
	n, ok := ctx.Value(navigatorContextKey).(Navigator)
	return n, ok && n != nil
}
