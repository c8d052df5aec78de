package sink

import (
	"encoding/json"

	"github.com/mlehnert/placard/pkg/layout"
)

// RenderJSON renders the layout document as indented JSON.
func RenderJSON(l layout.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}
