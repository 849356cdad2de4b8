package monitor

// Status is the RAG (red/amber/green) health of a model or variable.
type Status string

const (
	StatusGreen Status = "green"
	StatusAmber Status = "amber"
	StatusRed   Status = "red"
)

// RAG thresholds. KS measures discrimination (higher is better), PSI
// measures population drift (lower is better).
const (
	ksGreenMin  = 0.3
	ksAmberMin  = 0.2
	psiGreenMax = 0.2
	psiAmberMax = 0.25
)

// Classify maps KS and PSI to a RAG status. A missing KS is treated as 0
// and a missing PSI as 1, so absent metrics always classify red.
func Classify(ks, psi *float64) Status {
	k, p := 0.0, 1.0
	if ks != nil {
		k = *ks
	}
	if psi != nil {
		p = *psi
	}
	switch {
	case k >= ksGreenMin && p < psiGreenMax:
		return StatusGreen
	case k >= ksAmberMin && p < psiAmberMax:
		return StatusAmber
	default:
		return StatusRed
	}
}

// RowStatus classifies a metric row using its KS and PSI entries.
func RowStatus(r MetricRow) Status {
	var ks, psi *float64
	if v, ok := r.Metrics["KS"]; ok {
		ks = &v
	}
	if v, ok := r.Metrics["PSI"]; ok {
		psi = &v
	}
	return Classify(ks, psi)
}

// VariableStatus grades a single variable's PSI. Thresholds are tighter
// than the model-level ones: drift in one input shows up before it moves
// the score distribution.
func VariableStatus(psi float64) Status {
	switch {
	case psi < 0.1:
		return StatusGreen
	case psi < 0.2:
		return StatusAmber
	default:
		return StatusRed
	}
}
