package input

// Timing is the repeat cadence of one button: Delay ticks after the press
// trigger comes the second trigger, then one every Interval+1 ticks.
type Timing struct {
	Delay    int
	Interval int
}

// GameTimings apply while a piece is under control.
var GameTimings = [ButtonCount]Timing{
	Left:  {Delay: 13, Interval: 4},
	Right: {Delay: 13, Interval: 4},
	Pause: {Delay: 18, Interval: 4},
	Down:  {Delay: 0, Interval: 2},
	A:     {Delay: 18, Interval: 12},
	B:     {Delay: 18, Interval: 12},
}

// MenuTimings slow Down so it can walk the menu.
var MenuTimings = func() [ButtonCount]Timing {
	t := GameTimings
	t[Down] = Timing{Delay: 18, Interval: 4}
	return t
}()

// Repeater derives per-tick triggers from held buttons.
type Repeater struct {
	timings    [ButtonCount]Timing
	held       [ButtonCount]bool
	suppressed [ButtonCount]bool
	timers     [ButtonCount]int
}

func NewRepeater() *Repeater {
	return &Repeater{timings: GameTimings}
}

// SetMenu switches between the menu and game timings.
func (r *Repeater) SetMenu(menu bool) {
	if menu {
		r.timings = MenuTimings
	} else {
		r.timings = GameTimings
	}
}

// Update consumes one tick of held state and returns the buttons that
// trigger on this tick.
func (r *Repeater) Update(s State) State {
	var triggered State
	for i := range ButtonCount {
		if !s[i] {
			r.held[i] = false
			r.suppressed[i] = false
			r.timers[i] = 0
			continue
		}
		if r.suppressed[i] {
			continue
		}

		t := r.timings[i]
		if !r.held[i] {
			r.held[i] = true
			r.timers[i] = t.Delay
		}

		switch {
		case r.timers[i] == t.Delay:
			triggered[i] = true
			r.timers[i]--
		case r.timers[i] > 0:
			r.timers[i]--
		default:
			r.timers[i] = t.Interval
			triggered[i] = true
		}
	}
	return triggered
}

// Charge zeroes b's timer so a held b triggers again on the next tick.
func (r *Repeater) Charge(b Button) {
	if r.held[b] {
		r.timers[b] = 0
	}
}

// Release drops b until it is let go and pressed again.
func (r *Repeater) Release(b Button) {
	if r.held[b] {
		r.suppressed[b] = true
	}
	r.held[b] = false
	r.timers[b] = 0
}

// Held reports whether b is down and not released.
func (r *Repeater) Held(b Button) bool {
	return r.held[b]
}
