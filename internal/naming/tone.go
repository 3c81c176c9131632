package naming

import "strings"

// Tone selects the extra modifier words mixed into rule-based names.
type Tone string

const (
	Professional Tone = "professional"
	Playful      Tone = "playful"
	Elegant      Tone = "elegant"
	Minimal      Tone = "minimal"
)

// Tones lists the supported tones in display order.
var Tones = []Tone{Professional, Playful, Elegant, Minimal}

// ParseTone maps a free-form tone name to a Tone. Anything unrecognized is Professional.
func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tones {
		if t == known {
			return t
		}
	}
	return Professional
}

// Description is the phrase used to describe the tone to a language model.
func (t Tone) Description() string {
	switch t {
	case Professional:
		return "professional, corporate, and trustworthy"
	case Playful:
		return "fun, creative, and memorable"
	case Elegant:
		return "sophisticated, luxurious, and premium"
	case Minimal:
		return "simple, clean, and modern"
	default:
		return "creative and memorable"
	}
}
