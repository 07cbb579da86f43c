// Package web provides a small layer on top of gin so that application
// handlers can return errors and work with a request-scoped context.
package web

import (
	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements.
type Handler func(c *Context) error

// Middleware is a function designed to run some code before and/or after
// another Handler.
type Middleware func(Handler) Handler

// App is the entrypoint into our application. It wraps the gin engine and
// converts error-returning handlers into gin handlers.
type App struct {
	*gin.Engine
	mw []Middleware
}

func NewApp(mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	return &App{
		Engine: engine,
		mw:     mw,
	}
}

// wrapMiddleware wraps the handler with the given middleware, first to last.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}

	return handler
}

func (a *App) handle(method string, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(c *gin.Context) {
		ctx := NewContext(c)

		if err := handler(ctx); err != nil {
			// The handler gave up on responding. Nothing sensible left
			// to do with the request.
			_ = ctx.RespondError(err)
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.handle("GET", path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.handle("POST", path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.handle("PUT", path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.handle("PATCH", path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.handle("DELETE", path, handler, mw...)
}
