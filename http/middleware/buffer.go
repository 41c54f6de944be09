package middleware

import (
	"net/http"

	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/buffer"
)

// Buffer holds back what handlers write until they return,
// so an exception raised midway can discard the partial response.
//
// The depth of the buffer stack when the request began is recorded
// under rest.BufferLevelAttr, unless an outer middleware already did so.
func Buffer() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, s := buffer.NewContext(r.Context())
			ctx, attrs := rest.NewAttributesContext(ctx)
			if !attrs.Has(rest.BufferLevelAttr) {
				attrs.Set(rest.BufferLevelAttr, s.Depth())
			}

			bw := buffer.NewWriter(w, s)
			defer bw.Close()

			h.ServeHTTP(bw, r.WithContext(ctx))
		})
	}
}
