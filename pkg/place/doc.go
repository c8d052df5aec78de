// Package place implements incremental rectangle placement on a canvas.
//
// The engine places content boxes one at a time. Each box arrives with a
// preferred position and a fixed size; if it collides with a previously
// committed box it is nudged straight down past the collider, flush against
// its bottom edge plus padding. Placement is a single forward scan over the
// commit history, not a constraint solver: the outcome depends on call order,
// which matches how content is authored top to bottom and keeps every move
// explainable.
//
// # Usage
//
// Create a Placer and feed it boxes:
//
//	p, err := place.New(0.1)
//	if err != nil {
//	    return err
//	}
//	title, _ := p.Place("Title", 0, 0, 3, 1)
//	body, _ := p.Place("Body", 0, 0.5, 3, 1)  // collides, lands at y=1.1
//
// Committed boxes are never moved by later calls. A Placer is not safe for
// concurrent use; run one layout pass per Placer, or guard calls externally.
//
// # Resolution rule
//
// The scan does not re-test earlier boxes after a displacement within the
// same call. A box pushed past one neighbor can, in principle, land on a
// later-indexed neighbor and not be re-checked against it. This is a known
// property of the greedy single-pass rule, kept deliberately: a fixed-point
// loop would trade the O(n) per-call bound and the predictability of moves
// for a stronger guarantee nothing has asked for yet.
package place
