package obj

// transitionPhase orders the steps of a level change.
type transitionPhase int

const (
	phaseIdle transitionPhase = iota
	phaseFadeOut
	phaseFadeIn
)

// Transition manages a fade-to-black, level load, fade-from-black sequence.
type Transition struct {
	Target string
	// Duration is the length of each fade in ticks.
	Duration int
	// OnLoad runs once the screen is fully black.
	OnLoad func(target string)

	phase  transitionPhase
	frames int
}

func NewTransition(duration int) *Transition {
	if duration < 1 {
		duration = 1
	}
	return &Transition{Duration: duration}
}

func (t *Transition) Active() bool { return t.phase != phaseIdle }

// Enter starts a transition to target. It is ignored while one is running.
func (t *Transition) Enter(target string) {
	if t.Active() {
		return
	}
	t.phase = phaseFadeOut
	t.frames = 0
	t.Target = target
}

// Update advances the transition by one tick and reports whether the caller
// should skip normal world updates.
func (t *Transition) Update() bool {
	if !t.Active() {
		return false
	}
	t.frames++
	switch t.phase {
	case phaseFadeOut:
		if t.frames >= t.Duration {
			if t.OnLoad != nil {
				t.OnLoad(t.Target)
			}
			t.phase = phaseFadeIn
			t.frames = 0
		}
	case phaseFadeIn:
		if t.frames >= t.Duration {
			t.phase = phaseIdle
			t.frames = 0
			t.Target = ""
		}
	}
	return true
}

// Alpha is the opacity of the black overlay, from 0 to 1.
func (t *Transition) Alpha() float64 {
	switch t.phase {
	case phaseFadeOut:
		return min(float64(t.frames)/float64(t.Duration), 1)
	case phaseFadeIn:
		return max(1-float64(t.frames)/float64(t.Duration), 0)
	default:
		return 0
	}
}
