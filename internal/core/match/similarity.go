package match

import "math"

// maxBaseScore is the band the semantic signal is scaled into.
const maxBaseScore = 70

// Similarity computes the cosine similarity of two embedding vectors.
// A zero-magnitude or mismatched vector yields 0 rather than an error.
func Similarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// BaseScore maps a similarity in [0,1] onto the 0-70 base band.
func BaseScore(similarity float64) float64 {
	return similarity * maxBaseScore
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
