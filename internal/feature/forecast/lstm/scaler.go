package lstm

// MinMaxScaler rescales values into [0, 1] based on the range seen in Fit.
type MinMaxScaler struct {
	min, max float64
	fitted   bool
}

// Fit records the minimum and maximum of the data.
func (s *MinMaxScaler) Fit(data []float64) {
	if len(data) == 0 {
		return
	}
	s.min, s.max = data[0], data[0]
	for _, v := range data {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.fitted = true
}

// Transform maps values into the fitted range. A constant series maps to 0.
func (s *MinMaxScaler) Transform(data []float64) []float64 {
	out := make([]float64, len(data))
	span := s.max - s.min
	for i, v := range data {
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (v - s.min) / span
	}
	return out
}

// Inverse maps scaled values back to the original range.
func (s *MinMaxScaler) Inverse(data []float64) []float64 {
	out := make([]float64, len(data))
	span := s.max - s.min
	for i, v := range data {
		out[i] = v*span + s.min
	}
	return out
}
