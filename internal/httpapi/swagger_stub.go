//go:build !swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
)

// MountSwagger serves nothing unless lingod is built with -tags=swagger.
func MountSwagger(r chi.Router) {}
