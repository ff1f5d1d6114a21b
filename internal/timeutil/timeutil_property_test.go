package timeutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any duration built from non-negative H/M/S components, ParseDuration
// recovers 3600*h + 60*m + s.
func TestProperty_ParseDurationComponents(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	componentGen := gen.IntRange(0, 500)

	properties.Property("full H/M/S form round-trips", prop.ForAll(
		func(h, m, s int) bool {
			code := fmt.Sprintf("PT%dH%dM%dS", h, m, s)
			return ParseDuration(code) == h*3600+m*60+s
		},
		componentGen, componentGen, componentGen,
	))

	properties.Property("minutes/seconds form round-trips", prop.ForAll(
		func(m, s int) bool {
			code := fmt.Sprintf("PT%dM%dS", m, s)
			return ParseDuration(code) == m*60+s
		},
		componentGen, componentGen,
	))

	properties.TestingRun(t)
}

// Any input that does not match the restricted grammar yields 0, never an
// error or a panic.
func TestProperty_ParseDurationFailsSoft(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("alpha noise yields zero", prop.ForAll(
		func(s string) bool {
			got := ParseDuration("x" + s)
			return got == 0
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// Feeding NormalizeForStorage its own output yields the same output.
func TestProperty_NormalizeForStorageIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("idempotent on timestamps", prop.ForAll(
		func(unix int64) bool {
			once := NormalizeForStorage(time.Unix(unix, 0))
			return NormalizeForStorage(once) == once
		},
		gen.Int64Range(0, 4102444800), // 1970 through 2100
	))

	properties.Property("idempotent on pre-normalized strings", prop.ForAll(
		func(s string) bool {
			once := NormalizeForStorage(s)
			return NormalizeForStorage(once) == once
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
