package shared

import (
	"math"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses an optional boolean query parameter. Empty input
// and parse failures both mean "no constraint".
func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// ConvertStringToFloat parses an optional numeric query parameter, reporting
// whether a usable value was present.
func ConvertStringToFloat(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to float")

		return 0, false
	}

	return floatValue, true
}

// FloatsClose compares two amounts the way math.isclose does: within a
// relative tolerance of the larger magnitude, or an absolute tolerance,
// whichever is looser.
func FloatsClose(a, b, relTol, absTol float64) bool {
	diff := math.Abs(a - b)

	return diff <= math.Max(relTol*math.Max(math.Abs(a), math.Abs(b)), absTol)
}

// Round2 rounds an amount to two-decimal currency precision.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
