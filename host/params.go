package host

import (
	"fmt"

	"github.com/cwbudde/algo-vibrato/dsp/vibrato"
)

// Rows is the number of vibrato rows processed in series.
const Rows = 2

// Mode selects how Press and Release drive a row's trigger.
type Mode int

const (
	// Momentary holds the trigger only while pressed.
	Momentary Mode = iota
	// Latch toggles the trigger on every press.
	Latch
)

func (m Mode) String() string {
	switch m {
	case Momentary:
		return "Momentary"
	case Latch:
		return "Latch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Kind describes how a parameter value is interpreted.
type Kind int

const (
	// KindFloat is a continuous value within its Range.
	KindFloat Kind = iota
	// KindBool is off (0) or on (1).
	KindBool
	// KindChoice indexes into Parameter.Choices.
	KindChoice
)

// Parameter names shared by every row, in layout order.
const (
	NameTrigger   = "trigger"
	NameMode      = "mode"
	NameOnset     = "onset"
	NameRate      = "rate"
	NamePitch     = "pitch"
	NameAmplitude = "amplitude"
	NameFormant   = "formant"
	NameVariation = "variation"
)

var rowNames = [...]string{
	NameTrigger,
	NameMode,
	NameOnset,
	NameRate,
	NamePitch,
	NameAmplitude,
	NameFormant,
	NameVariation,
}

const paramsPerRow = len(rowNames)

// field offsets within a row
const (
	offTrigger = iota
	offMode
	offOnset
	offRate
	offPitch
	offAmplitude
	offFormant
	offVariation
)

var (
	boolRange = vibrato.Range{Min: 0, Max: 1, Interval: 1, Skew: 1, Default: 0}
	modeRange = vibrato.Range{Min: 0, Max: 1, Interval: 1, Skew: 1, Default: float64(Latch)}
)

// Parameter describes one automatable control.
type Parameter struct {
	ID      string
	Name    string
	Label   string
	Row     int
	Kind    Kind
	Range   vibrato.Range
	Choices []string
}

// ParamID returns the identifier of parameter name in row.
func ParamID(row int, name string) string {
	return fmt.Sprintf("row%d_%s", row, name)
}

// Layout returns the parameters of both rows in a stable order.
func Layout() []Parameter {
	out := make([]Parameter, 0, Rows*paramsPerRow)
	for row := 1; row <= Rows; row++ {
		for _, name := range rowNames {
			out = append(out, newParameter(row, name))
		}
	}
	return out
}

func newParameter(row int, name string) Parameter {
	p := Parameter{
		ID:   ParamID(row, name),
		Name: name,
		Row:  row,
		Kind: KindFloat,
	}

	switch name {
	case NameTrigger:
		p.Label, p.Kind, p.Range = "Trigger", KindBool, boolRange
	case NameMode:
		p.Label, p.Kind, p.Range = "Mode", KindChoice, modeRange
		p.Choices = []string{Momentary.String(), Latch.String()}
	case NameOnset:
		p.Label, p.Range = "Onset", vibrato.OnsetRange
	case NameRate:
		p.Label, p.Range = "Rate", vibrato.RateRange
	case NamePitch:
		p.Label, p.Range = "Pitch", vibrato.PitchRange
	case NameAmplitude:
		p.Label, p.Range = "Amplitude", vibrato.PercentRange
	case NameFormant:
		p.Label, p.Range = "Formant", vibrato.PercentRange
	case NameVariation:
		p.Label, p.Range = "Variation", vibrato.PercentRange
	}
	p.Label = fmt.Sprintf("Row %d %s", row, p.Label)
	return p
}
