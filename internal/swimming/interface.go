package swimming

import "context"

// SearchClient defines the interface for querying the results portal.
// This allows for mock implementations to be used in tests.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]Person, error)
}
