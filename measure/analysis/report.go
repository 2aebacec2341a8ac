package analysis

import "fmt"

// Report summarizes how a processed signal differs from its source.
type Report struct {
	InputRMS       float64
	OutputRMS      float64
	GainDB         float64
	OutputPeak     float64
	Latency        int
	Correlation    float64
	InputPeakHz    float64
	OutputPeakHz   float64
	InputCentroid  float64
	OutputCentroid float64
	InputSpread    float64
	OutputSpread   float64
	OutputCrest    float64
	OutputFlatness float64
}

// Compare measures out against in. maxLag bounds the latency search.
func Compare(in, out []float64, sampleRate float64, maxLag int) (Report, error) {
	if len(in) != len(out) {
		return Report{}, fmt.Errorf("analysis: length mismatch: %d vs %d", len(in), len(out))
	}

	inSpec, err := NewSpectrum(in, sampleRate)
	if err != nil {
		return Report{}, err
	}
	outSpec, err := NewSpectrum(out, sampleRate)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		InputRMS:       RMS(in),
		OutputRMS:      RMS(out),
		GainDB:         GainDB(in, out),
		OutputPeak:     Peak(out),
		InputCentroid:  inSpec.Centroid(),
		OutputCentroid: outSpec.Centroid(),
		InputSpread:    inSpec.Spread(),
		OutputSpread:   outSpec.Spread(),
		OutputCrest:    CrestFactor(out),
		OutputFlatness: outSpec.Flatness(),
	}
	r.InputPeakHz, _ = inSpec.Peak()
	r.OutputPeakHz, _ = outSpec.Peak()
	r.Latency, r.Correlation = EstimateLatency(in, out, maxLag)
	return r, nil
}
