// Package layout models a set of compositor outputs: identity,
// reconciliation against a saved set, and rendering into
// configuration commands.
package layout

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrIncompatible reports a live output with no counterpart in the
// saved layout. A merge never silently skips unmatched outputs.
var ErrIncompatible = errors.New("incompatible layout")

// defaultTransform is assumed when an output reports no rotation.
const defaultTransform = "normal"

// identitySeparator joins identity strings in the fingerprint input.
// Chosen to be unlikely to appear in make/model/serial fields.
const identitySeparator = "+++"

// Rect is an output's position and size on the global canvas.
type Rect struct {
	X      uint32 `json:"x"`
	Y      uint32 `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// Output is one display as reported by the compositor. Make, model,
// and serial form its hardware identity; the compositor-assigned name
// is not part of identity and may change across reconnects.
type Output struct {
	Name      string `json:"name"`
	Make      string `json:"make"`
	Model     string `json:"model"`
	Serial    string `json:"serial"`
	Transform string `json:"transform,omitempty"`
	Rect      Rect   `json:"rect"`
	Active    bool   `json:"active"`
}

// Identity returns the stable hardware identity string of an output.
func (o Output) Identity() string {
	return o.Make + "|" + o.Model + "|" + o.Serial
}

// Command renders the configuration command for an output.
func (o Output) Command() string {
	if !o.Active {
		return fmt.Sprintf("output %s disable", o.Name)
	}
	transform := o.Transform
	if transform == "" {
		transform = defaultTransform
	}
	return fmt.Sprintf("output %s enable res %dx%d pos %d %d transform %s",
		o.Name, o.Rect.Width, o.Rect.Height, o.Rect.X, o.Rect.Y, transform)
}

// Layout is the set of outputs attached at one point in time, in
// compositor report order.
type Layout struct {
	Outputs []Output
}

// FromJSON decodes a compositor GET_OUTPUTS reply into a layout.
func FromJSON(data []byte) (Layout, error) {
	var outputs []Output
	if err := json.Unmarshal(data, &outputs); err != nil {
		return Layout{}, fmt.Errorf("decode outputs: %w", err)
	}
	return Layout{Outputs: outputs}, nil
}

// Fingerprint returns the lowercase hex SHA-256 digest of the sorted
// identity strings. Sorting makes the digest insensitive to report
// order; geometry, transform, active state, and names do not
// contribute, so the fingerprint identifies the attached hardware
// set and nothing else.
func (l Layout) Fingerprint() string {
	ids := make([]string, len(l.Outputs))
	for i, o := range l.Outputs {
		ids[i] = o.Identity()
	}
	sort.Strings(ids)
	digest := sha256.Sum256([]byte(strings.Join(ids, identitySeparator)))
	return fmt.Sprintf("%x", digest)
}

// Merge overlays a saved layout onto the live one. Each live output
// takes the rect, transform, and active state of the saved output
// with the same hardware identity, keeping its live name. Every live
// output must have a saved counterpart; otherwise the layouts are
// incompatible and the merge fails.
func (l Layout) Merge(saved Layout) (Layout, error) {
	byIdentity := make(map[string]Output, len(saved.Outputs))
	for _, o := range saved.Outputs {
		byIdentity[o.Identity()] = o
	}

	merged := make([]Output, len(l.Outputs))
	for i, live := range l.Outputs {
		stored, ok := byIdentity[live.Identity()]
		if !ok {
			return Layout{}, fmt.Errorf("%w: no saved settings for %s", ErrIncompatible, live.Identity())
		}
		live.Rect = stored.Rect
		live.Transform = stored.Transform
		live.Active = stored.Active
		merged[i] = live
	}
	return Layout{Outputs: merged}, nil
}

// Commands renders one configuration command per output, in report
// order. A single-output layout is always enabled regardless of its
// active flag, so applying a saved layout can never leave the user
// with no display at all.
func (l Layout) Commands() []string {
	commands := make([]string, len(l.Outputs))
	for i, o := range l.Outputs {
		if len(l.Outputs) == 1 {
			o.Active = true
		}
		commands[i] = o.Command()
	}
	return commands
}

// String renders the layout as its command list, one per line.
func (l Layout) String() string {
	return strings.Join(l.Commands(), "\n")
}
