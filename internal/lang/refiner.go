package lang

import (
	"fmt"

	"github.com/abadojack/whatlanggo"
	"github.com/pemistahl/lingua-go"
)

// Refiner is a statistical language detector consulted for mixed-script text.
// It reports false when it cannot name English or Persian with confidence.
type Refiner interface {
	Refine(text string) (Tag, bool)
	Name() string
}

// NewRefiner creates the refiner with the given name: "whatlanggo", "lingua"
// or "none" (nil refiner)
func NewRefiner(name string, minConfidence float64) (Refiner, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "whatlanggo":
		return NewWhatlangRefiner(minConfidence), nil
	case "lingua":
		return NewLinguaRefiner(minConfidence), nil
	default:
		return nil, fmt.Errorf("unknown language refiner: %s", name)
	}
}

// WhatlangRefiner refines detection with whatlanggo trigram statistics
type WhatlangRefiner struct {
	options       whatlanggo.Options
	minConfidence float64
}

// NewWhatlangRefiner creates a whatlanggo refiner restricted to English and Persian
func NewWhatlangRefiner(minConfidence float64) *WhatlangRefiner {
	return &WhatlangRefiner{
		options: whatlanggo.Options{
			Whitelist: map[whatlanggo.Lang]bool{
				whatlanggo.Eng: true,
				whatlanggo.Pes: true,
			},
		},
		minConfidence: minConfidence,
	}
}

// Refine implements Refiner
func (r *WhatlangRefiner) Refine(text string) (Tag, bool) {
	info := whatlanggo.DetectWithOptions(text, r.options)
	if info.Confidence < r.minConfidence {
		return "", false
	}

	switch info.Lang {
	case whatlanggo.Eng:
		return EN, true
	case whatlanggo.Pes:
		return FA, true
	default:
		return "", false
	}
}

// Name implements Refiner
func (r *WhatlangRefiner) Name() string {
	return "whatlanggo"
}

// LinguaRefiner refines detection with lingua-go n-gram models
type LinguaRefiner struct {
	detector      lingua.LanguageDetector
	minConfidence float64
}

// NewLinguaRefiner builds a lingua detector for English and Persian only
func NewLinguaRefiner(minConfidence float64) *LinguaRefiner {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Persian).
		Build()

	return &LinguaRefiner{detector: detector, minConfidence: minConfidence}
}

// Refine implements Refiner
func (r *LinguaRefiner) Refine(text string) (Tag, bool) {
	language, ok := r.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	if r.detector.ComputeLanguageConfidence(text, language) < r.minConfidence {
		return "", false
	}

	switch language {
	case lingua.English:
		return EN, true
	case lingua.Persian:
		return FA, true
	default:
		return "", false
	}
}

// Name implements Refiner
func (r *LinguaRefiner) Name() string {
	return "lingua"
}
