package dto

// StageCount cantidad de negocios en una etapa.
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// KPIResponse agregados sobre los negocios visibles y filtrados.
type KPIResponse struct {
	Total    int          `json:"total"`
	WonCount int          `json:"wonCount"`
	EstSum   float64      `json:"estSum"`
	WonSum   float64      `json:"wonSum"`
	ByStage  []StageCount `json:"byStage"`
}
