package game

// Phase is the dialogue state.
type Phase int

const (
	PhaseInactive Phase = iota
	PhaseTyping
	PhaseAwaitingContinue
	PhaseCelebrating
)

func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhaseAwaitingContinue:
		return "awaiting-continue"
	case PhaseCelebrating:
		return "celebrating"
	default:
		return "inactive"
	}
}

// ContinueResult says what a continue input did.
type ContinueResult int

const (
	ContinueIgnored ContinueResult = iota
	ContinueSkipped
	ContinueDismissed
	ContinueCelebrate
)

// Dialogue is the narrative state machine:
//
//	Inactive -> Typing -> AwaitingContinue -> Inactive
//	AwaitingContinue -> Celebrating (closing beat, every coin collected)
//
// The beat and revealed text are only meaningful while Typing or
// AwaitingContinue; every transition goes through a method so the two
// cannot drift apart.
type Dialogue struct {
	phase    Phase
	beat     int
	entry    Beat
	body     []rune
	revealed int
	closing  bool
}

// Open starts typing beat index i. It is a no-op once celebrating.
func (d *Dialogue) Open(i int, entry Beat, closing bool) {
	if d.phase == PhaseCelebrating {
		return
	}
	d.beat = i
	d.entry = entry
	d.body = []rune(entry.Body)
	d.revealed = 0
	d.closing = closing
	d.phase = PhaseTyping
	if len(d.body) == 0 {
		d.phase = PhaseAwaitingContinue
	}
}

// Type reveals one more rune. It returns false when not typing.
func (d *Dialogue) Type() bool {
	if d.phase != PhaseTyping {
		return false
	}
	d.revealed++
	if d.revealed >= len(d.body) {
		d.revealed = len(d.body)
		d.phase = PhaseAwaitingContinue
	}
	return true
}

// Continue handles the continue input. While typing it reveals the whole
// body; while awaiting it closes the dialogue, or starts the celebration
// when the closing beat is dismissed with every coin collected.
func (d *Dialogue) Continue(allCollected bool) ContinueResult {
	switch d.phase {
	case PhaseTyping:
		d.revealed = len(d.body)
		d.phase = PhaseAwaitingContinue
		return ContinueSkipped
	case PhaseAwaitingContinue:
		celebrate := d.closing && allCollected
		d.clear()
		if celebrate {
			d.phase = PhaseCelebrating
			return ContinueCelebrate
		}
		return ContinueDismissed
	}
	return ContinueIgnored
}

// Reset returns the machine to Inactive.
func (d *Dialogue) Reset() {
	d.clear()
}

func (d *Dialogue) clear() {
	*d = Dialogue{}
}

// Phase returns the current state.
func (d *Dialogue) Phase() Phase { return d.phase }

// Active reports whether a dialogue box is open.
func (d *Dialogue) Active() bool {
	return d.phase == PhaseTyping || d.phase == PhaseAwaitingContinue
}

// Beat returns the open beat index and entry.
func (d *Dialogue) Beat() (int, Beat, bool) {
	if !d.Active() {
		return -1, Beat{}, false
	}
	return d.beat, d.entry, true
}

// Revealed returns the typed-out prefix of the body.
func (d *Dialogue) Revealed() string {
	if !d.Active() {
		return ""
	}
	return string(d.body[:d.revealed])
}

// Closing reports whether the open beat is the closing one.
func (d *Dialogue) Closing() bool {
	return d.Active() && d.closing
}
