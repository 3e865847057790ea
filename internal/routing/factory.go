// server/internal/routing/factory.go
package routing

import (
	"fmt"
	"strings"

	"pharma-alert-api-server/internal/directory"
)

// New builds a routing strategy by name. The selector is only
// meaningful for "targeted" and is ignored by "broadcast".
func New(kind string, sel directory.Selector) (Strategy, error) {
	switch strings.ToLower(kind) {
	case "broadcast":
		return Broadcast{}, nil
	case "targeted":
		return Targeted{Selector: sel}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (valid types: %s)", kind, strings.Join(Available(), ", "))
	}
}

// Available lists the registered strategy names.
func Available() []string {
	return []string{"broadcast", "targeted"}
}
