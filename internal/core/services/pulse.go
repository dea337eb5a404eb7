package services

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// pulseFrames is the number of colours in a jump-to-highlight pulse.
const pulseFrames = 12

// ParseColor parses a #RRGGBB hex colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("colour %q: %w", hex, domain.ErrInvalidInput)
	}
	return c, nil
}

// PulseFrames returns hex colours fading from pulse to base, blended in
// HCL space so the fade stays perceptually even.
func PulseFrames(pulse, base string, steps int) ([]string, error) {
	from, err := ParseColor(pulse)
	if err != nil {
		return nil, err
	}
	to, err := ParseColor(base)
	if err != nil {
		return nil, err
	}
	if steps < 2 {
		steps = 2
	}

	frames := make([]string, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		frames[i] = from.BlendHcl(to, t).Clamped().Hex()
	}
	return frames, nil
}

// pulseInterval spreads a pulse of the given duration across its frames.
func pulseInterval(total time.Duration, frames int) time.Duration {
	if frames < 2 {
		return total
	}
	return total / time.Duration(frames-1)
}
