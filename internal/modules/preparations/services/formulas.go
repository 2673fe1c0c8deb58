package services

import "math"

// ComputeNombreGellules qsp × modeEmploi, nil si un facteur manque
func ComputeNombreGellules(qsp, modeEmploi *int) *int {
	if qsp == nil || modeEmploi == nil {
		return nil
	}
	n := *qsp * *modeEmploi
	return &n
}

// ComputeComprimeEcrase dosageAdapte × qsp × modeEmploi / dosageInitial arrondi au centième.
// nil si un facteur manque ou vaut zéro.
func ComputeComprimeEcrase(dosageAdapte, dosageInitial *float64, qsp, modeEmploi *int) *float64 {
	if dosageAdapte == nil || dosageInitial == nil || qsp == nil || modeEmploi == nil {
		return nil
	}
	if *dosageAdapte == 0 || *dosageInitial == 0 || *qsp == 0 || *modeEmploi == 0 {
		return nil
	}

	value := round2(*dosageAdapte * float64(*qsp) * float64(*modeEmploi) / *dosageInitial)
	return &value
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
