package entity

// Etapas del embudo de ventas. No hay grafo de transiciones: cualquier etapa puede pasar a
// cualquier otra, incluidas won y lost.
const (
	StageNew         = "new"
	StageQualify     = "qualify"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageWon         = "won"
	StageLost        = "lost"
)

// Stages en el orden en que se reportan en los KPI.
var Stages = []string{StageNew, StageQualify, StageProposal, StageNegotiation, StageWon, StageLost}

// IsValidStage indica si v es una de las seis etapas. Solo acepta texto.
func IsValidStage(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, st := range Stages {
		if st == s {
			return true
		}
	}
	return false
}

// EnsureStage deja en new un negocio nuevo cuya etapa no es válida o falta.
func EnsureStage(r Record) {
	if !IsValidStage(r[FieldStage]) {
		r[FieldStage] = StageNew
	}
}

// KeepStage descarta un cambio de etapa inválido en una actualización: next conserva la etapa
// de prev y el resto del parche aplica igual.
func KeepStage(prev, next Record) {
	if !IsValidStage(next[FieldStage]) {
		next[FieldStage] = prev[FieldStage]
	}
}
