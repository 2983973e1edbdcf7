package main

import (
	"context"

	"github.com/vytor/stageboard/internal/app"
)

type appKey struct{}

func withApp(ctx context.Context, a *app.App) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, appKey{}, a)
}

func appFrom(ctx context.Context) *app.App {
	if ctx == nil {
		return nil
	}
	a, _ := ctx.Value(appKey{}).(*app.App)
	return a
}
