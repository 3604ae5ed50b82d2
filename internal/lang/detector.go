package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultMinLength is the minimum rune count before a refiner is consulted
const DefaultMinLength = 10

// Detector classifies text as English or Persian
type Detector struct {
	refiner   Refiner
	minLength int
	log       *zap.SugaredLogger
}

// NewDetector creates a detector. refiner may be nil.
func NewDetector(refiner Refiner, minLength int, log *zap.SugaredLogger) *Detector {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Detector{refiner: refiner, minLength: minLength, log: log}
}

// Detect returns the language of text. It never fails: empty input and
// anything it cannot place yields Default.
func (d *Detector) Detect(text string) Tag {
	text = strings.TrimSpace(text)
	if text == "" {
		return Default
	}

	letters, persian := countScript(text)
	switch {
	case persian == 0:
		d.log.Debugw("language detected", "method", "script", "language", EN)
		return EN
	case persian == letters:
		d.log.Debugw("language detected", "method", "script", "language", FA)
		return FA
	}

	// Mixed script
	if d.refiner != nil && utf8.RuneCountInString(text) >= d.minLength {
		if tag, ok := d.refiner.Refine(text); ok {
			d.log.Debugw("language detected", "method", d.refiner.Name(), "language", tag)
			return tag
		}
	}

	d.log.Debugw("language detected", "method", "script", "language", FA,
		"letters", letters, "persian_letters", persian)
	return FA
}

// countScript counts letters and letters of the Arabic script (which covers
// the Persian alphabet) in text
func countScript(text string) (letters, persian int) {
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Arabic, r) {
			persian++
		}
	}
	return letters, persian
}
