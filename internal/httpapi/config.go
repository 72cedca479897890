package httpapi

import (
	"net/http"

	"github.com/go-chi/cors"
)

const defaultMaxBodyBytes int64 = 1 << 20

// maxBodyBytes caps JSON request bodies.
var maxBodyBytes = defaultMaxBodyBytes

// SetMaxBodyBytes sets the JSON body cap. n <= 0 restores the 1 MiB default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		n = defaultMaxBodyBytes
	}
	maxBodyBytes = n
}

// corsOptions is the opt-in cross-origin policy for browser clients.
type corsOptions struct {
	enabled bool
	origins []string
	methods []string
	headers []string
}

var corsPolicy corsOptions

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	defaultCORSHeaders = []string{"Accept", "Content-Type", "X-Request-Id", "X-Log-Level"}
)

// SetCORSOptions configures the CORS middleware installed by NewMux. Empty
// lists mean any origin and the methods and headers the API uses.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsPolicy = corsOptions{
		enabled: enabled,
		origins: orDefault(origins, []string{"*"}),
		methods: orDefault(methods, defaultCORSMethods),
		headers: orDefault(headers, defaultCORSHeaders),
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		v = def
	}
	return append([]string(nil), v...)
}

// middleware returns nil when CORS is disabled.
func (o corsOptions) middleware() func(http.Handler) http.Handler {
	if !o.enabled {
		return nil
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: o.origins,
		AllowedMethods: o.methods,
		AllowedHeaders: o.headers,
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
