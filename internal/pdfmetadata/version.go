package pdfmetadata

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// The Version struct holds a PDF version as a (primary, secondary) pair, e.g. "1.7" is (1, 7).
// It is comparable, so it can be used directly as a map key when counting versions.
type Version struct {
	primary   uint64
	secondary uint64
}

// DefaultVersion is the version a record carries until a "PDF Version" line is seen.
var DefaultVersion = Version{primary: 1, secondary: 0}

// NewVersion builds a Version from its two components.
func NewVersion(primary, secondary uint64) Version {
	return Version{primary: primary, secondary: secondary}
}

func (v Version) Primary() uint64   { return v.primary }
func (v Version) Secondary() uint64 { return v.secondary }

// String renders the version as "primary.secondary".
func (v Version) String() string {
	return strconv.FormatUint(v.primary, 10) + "." + strconv.FormatUint(v.secondary, 10)
}

// Less orders versions by primary then secondary.
func (v Version) Less(other Version) bool {
	if v.primary != other.primary {
		return v.primary < other.primary
	}
	return v.secondary < other.secondary
}

// ParseVersion converts a decimal token into a Version.
//
// The primary component is the integer part. The secondary component is the first digit after the
// decimal point: "1.47" becomes (1, 4), not (1, 5). A token with no fractional part has secondary 0.
// The digit is taken from the shortest decimal form of the parsed value, so "1.70" and "1.7" agree and
// binary rounding of the fraction cannot turn 7 into 6.
func ParseVersion(token string) (Version, error) {
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Version{}, errors.Wrapf(ErrMalformedVersion, "%q", token)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return Version{}, errors.Wrapf(ErrMalformedVersion, "%q is not a non-negative finite number", token)
	}

	decimal := strconv.FormatFloat(value, 'f', -1, 64)
	whole, fraction, _ := strings.Cut(decimal, ".")

	primary, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return Version{}, errors.Wrapf(ErrMalformedVersion, "%q is out of range", token)
	}
	var secondary uint64
	if fraction != "" {
		secondary = uint64(fraction[0] - '0')
	}
	return Version{primary: primary, secondary: secondary}, nil
}

// MarshalYAML stores the version in its "X.Y" form.
func (v Version) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}

// UnmarshalYAML reads a version written by MarshalYAML.
func (v *Version) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var text string
	if err := unmarshal(&text); err != nil {
		return err
	}
	parsed, err := ParseVersion(text)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
