package analysis

// HRDetector detecta ondas R por cruce ascendente de un umbral y estima BPM
// a partir de la distancia en samples entre picos consecutivos.
type HRDetector struct {
	threshold  float64
	refractory int // en samples
	sampleRate float64

	index       int
	lastPeak    int
	lastValue   float64
	initialized bool
	havePeak    bool
}

// NewHRDetector threshold es absoluto (p.ej. baseline+40), sampleRate en Hz.
func NewHRDetector(threshold, sampleRate float64) *HRDetector {
	refractory := int(0.2 * sampleRate) // 200ms
	if refractory < 1 {
		refractory = 1
	}
	return &HRDetector{
		threshold:  threshold,
		refractory: refractory,
		sampleRate: sampleRate,
	}
}

// Process devuelve BPM si detecta un nuevo latido
func (h *HRDetector) Process(value float64) (int, bool) {
	idx := h.index
	h.index++

	if !h.initialized {
		h.initialized = true
		h.lastValue = value
		return 0, false
	}

	crossed := h.lastValue < h.threshold && value >= h.threshold
	h.lastValue = value
	if !crossed {
		return 0, false
	}

	if !h.havePeak {
		h.havePeak = true
		h.lastPeak = idx
		return 0, false
	}

	rr := idx - h.lastPeak
	if rr <= h.refractory {
		return 0, false
	}
	h.lastPeak = idx
	return int(60 * h.sampleRate / float64(rr)), true
}

// Reset olvida picos previos.
func (h *HRDetector) Reset() {
	*h = HRDetector{threshold: h.threshold, refractory: h.refractory, sampleRate: h.sampleRate}
}
