package deck

// Performance is the most recent grade a flashcard received.
type Performance int

const (
	PerformanceNew Performance = iota // never graded
	PerformanceHard
	PerformanceGood
	PerformanceEasy
)

var performanceNames = [...]string{"new", "hard", "good", "easy"}

func (p Performance) String() string {
	if p < PerformanceNew || p > PerformanceEasy {
		return "unknown"
	}
	return performanceNames[p]
}

// IsValid reports whether p is a known performance.
func (p Performance) IsValid() bool {
	return p >= PerformanceNew && p <= PerformanceEasy
}

func (p Performance) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, ErrInvalidPerformance
	}
	return []byte(p.String()), nil
}

func (p *Performance) UnmarshalText(text []byte) error {
	for i, name := range performanceNames {
		if name == string(text) {
			*p = Performance(i)
			return nil
		}
	}
	return ErrInvalidPerformance
}

// Rating is the grade a learner gives a flashcard during recall.
type Rating int

const (
	RatingHard Rating = iota + 1
	RatingGood
	RatingEasy
)

func (r Rating) String() string {
	switch r {
	case RatingHard:
		return "hard"
	case RatingGood:
		return "good"
	case RatingEasy:
		return "easy"
	default:
		return "unknown"
	}
}

// IsValid reports whether r is hard, good or easy.
func (r Rating) IsValid() bool {
	return r >= RatingHard && r <= RatingEasy
}

// Correct reports whether the rating counts as a correct recall.
func (r Rating) Correct() bool {
	return r == RatingGood || r == RatingEasy
}

// Performance maps the rating onto the card performance it produces.
func (r Rating) Performance() Performance {
	switch r {
	case RatingHard:
		return PerformanceHard
	case RatingGood:
		return PerformanceGood
	case RatingEasy:
		return PerformanceEasy
	default:
		return PerformanceNew
	}
}

// ParseRating converts "hard", "good" or "easy" to a Rating.
func ParseRating(s string) (Rating, error) {
	switch s {
	case "hard":
		return RatingHard, nil
	case "good":
		return RatingGood, nil
	case "easy":
		return RatingEasy, nil
	default:
		return 0, ErrInvalidRating
	}
}

func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, ErrInvalidRating
	}
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
