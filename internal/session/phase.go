package session

import "fmt"

// Phase is the lifecycle state of a study session.
type Phase int

const (
	PhaseIdle       Phase = iota // No study material
	PhaseGenerating              // Waiting on the three generation requests
	PhaseReady                   // Material, flashcards and MCQs are available
)

var phaseNames = [...]string{"idle", "generating", "ready"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("session: unknown phase %q", text)
}
