package interfaces

import "context"

// -----------------------------------------------------------------------------
// ITransport defines the request/response contract against the brokerage
// service. The protocol layer never opens sockets itself; it only builds
// query strings and form bodies and consumes raw response bytes.
// -----------------------------------------------------------------------------

type ITransport interface {

	// -----------------------------------------------------------------------------

	// Get issues a GET against path. rawQuery is already URL-encoded; the
	// transport must append it verbatim. Returns the raw response body.
	Get(ctx context.Context, path, rawQuery string) ([]byte, error)

	// -----------------------------------------------------------------------------

	// PostForm issues a POST with a url-encoded form body. rawQuery follows
	// the same rules as Get.
	PostForm(ctx context.Context, path, rawQuery string, form map[string]string) ([]byte, error)
}
