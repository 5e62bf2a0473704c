package sampler

import "fmt"

// State is the adaptive loop state.
type State int

const (
	// StateGrowing means the committed result is still below the target.
	StateGrowing State = iota
	// StateSatisfied means the committed result reached the target.
	StateSatisfied
	// StateOvershot means the last attempt exceeded the target and was
	// discarded in favor of the previous result.
	StateOvershot
)

func (s State) String() string {
	switch s {
	case StateGrowing:
		return "growing"
	case StateSatisfied:
		return "satisfied"
	case StateOvershot:
		return "overshot"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further lookups follow.
func (s State) Terminal() bool { return s != StateGrowing }

// transition returns the state after a lookup returning count stars and
// whether that lookup's result replaces the committed one. The first lookup
// is always committed; later ones are committed only when they do not exceed
// minCount.
func transition(first bool, count, minCount int) (State, bool) {
	if !first && count > minCount {
		return StateOvershot, false
	}
	if count >= minCount {
		return StateSatisfied, true
	}
	return StateGrowing, true
}
