package database

import "context"

type sqlDebugKey struct{}

// WithSQLDebug marks ctx so that queries issued with it are logged at info level
func WithSQLDebug(ctx context.Context) context.Context {
	return context.WithValue(ctx, sqlDebugKey{}, true)
}

// SQLDebugEnabled reports whether ctx was marked by WithSQLDebug
func SQLDebugEnabled(ctx context.Context) bool {
	on, _ := ctx.Value(sqlDebugKey{}).(bool)
	return on
}
