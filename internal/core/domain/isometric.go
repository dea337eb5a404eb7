package domain

// IsoDirection is one of the isometric projections produced for an image.
type IsoDirection string

// Available isometric directions.
const (
	IsoTop       IsoDirection = "top"
	IsoTopFlip   IsoDirection = "top-flip"
	IsoLeft      IsoDirection = "left"
	IsoRight     IsoDirection = "right"
	IsoLeftFlip  IsoDirection = "left-flip"
	IsoRightFlip IsoDirection = "right-flip"
)

// IsoDirections lists every direction in output order.
func IsoDirections() []IsoDirection {
	return []IsoDirection{IsoTop, IsoTopFlip, IsoLeft, IsoRight, IsoLeftFlip, IsoRightFlip}
}

// IsValid returns true if the direction is recognised.
func (d IsoDirection) IsValid() bool {
	switch d {
	case IsoTop, IsoTopFlip, IsoLeft, IsoRight, IsoLeftFlip, IsoRightFlip:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d IsoDirection) String() string {
	return string(d)
}

// IsoVariant is one generated projection of the source image.
type IsoVariant struct {
	Direction IsoDirection
	Scale     float64
	Path      string
}
