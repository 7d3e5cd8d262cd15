// Package gesture implements the rule-based gesture classification and
// temporal stabilization engine. A per-frame stream of validated hand
// landmark frames goes in; a debounced, majority-confirmed stream of
// labeled gesture events comes out.
package gesture

// Label identifies a recognized hand pose.
type Label string

const (
	// LabelFist is a closed hand with no fingers extended.
	LabelFist Label = "fist"
	// LabelOpenPalm is an open hand with all five fingers extended.
	LabelOpenPalm Label = "open_palm"
	// LabelThumbsUp is a fist with the thumb extended upward.
	LabelThumbsUp Label = "thumbs_up"
	// LabelPointing is a fist with only the index finger extended.
	LabelPointing Label = "pointing"
	// LabelPeace is index and middle fingers extended.
	LabelPeace Label = "peace"
	// LabelOkSign is thumb and index tips pinched into a ring.
	LabelOkSign Label = "ok_sign"
	// LabelRockOn is index and pinky fingers extended.
	LabelRockOn Label = "rock_on"
	// LabelUnknown is any configuration the classifier will not name.
	// It is never emitted as an event; it only resets stabilization.
	LabelUnknown Label = "unknown"
)

// Known reports whether the label is a concrete, emittable gesture.
func (l Label) Known() bool {
	switch l {
	case LabelFist, LabelOpenPalm, LabelThumbsUp, LabelPointing,
		LabelPeace, LabelOkSign, LabelRockOn:
		return true
	}
	return false
}
