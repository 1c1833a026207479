package echoapi

import (
	"sync"

	"github.com/labstack/echo/v4"
)

// lockMiddleware serialises access to the School: write handlers run alone, read handlers run together.
func lockMiddleware(mu *sync.RWMutex, write bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if write {
				mu.Lock()
				defer mu.Unlock()
			} else {
				mu.RLock()
				defer mu.RUnlock()
			}
			return next(ctx)
		}
	}
}
