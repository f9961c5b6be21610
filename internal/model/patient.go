package model

// Patient is the document stored at patients/<name>. The name doubles as
// the storage key; there is no surrogate ID.
type Patient struct {
	Name    string  `json:"name"`
	Records []Visit `json:"records"`
}

// Visit is one clinical encounter, embedded in the patient document in
// insertion order. Clinical fields are optional free text; monetary fields
// default to zero. Balance is computed once when the visit is created and
// never revised afterwards.
type Visit struct {
	Age           *string `json:"age,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	Contact       *string `json:"contact,omitempty"`
	NextOfKin     *string `json:"next_of_kin,omitempty"`
	ChiefComplain *string `json:"chief_complain,omitempty"`
	HPC           *string `json:"hpc,omitempty"`
	PDH           *string `json:"pdh,omitempty"`
	PMH           *string `json:"pmh,omitempty"`
	Diagnosis     *string `json:"diagnosis,omitempty"`
	Treatment     *string `json:"treatment,omitempty"`
	Management    *string `json:"management,omitempty"`
	Medication    *string `json:"medication,omitempty"`
	AmountCharged float64 `json:"amount_charged"`
	AmountPaid    float64 `json:"amount_paid"`
	Balance       float64 `json:"balance"`
}

// AddVisitRequest carries the visit form fields. Amounts arrive as strings
// straight from the form and are validated before anything touches the store.
type AddVisitRequest struct {
	Age           *string `json:"age"`
	Gender        *string `json:"gender"`
	Contact       *string `json:"contact"`
	NextOfKin     *string `json:"next_of_kin"`
	ChiefComplain *string `json:"chief_complain"`
	HPC           *string `json:"hpc"`
	PDH           *string `json:"pdh"`
	PMH           *string `json:"pmh"`
	Diagnosis     *string `json:"diagnosis"`
	Treatment     *string `json:"treatment"`
	Management    *string `json:"management"`
	Medication    *string `json:"medication"`
	AmountCharged string  `json:"amount_charged"`
	AmountPaid    string  `json:"amount_paid"`
}

type CreatePatientRequest struct {
	Name string `json:"name" binding:"required"`
}

// BalanceSummary aggregates the monetary fields across all of a patient's
// visits. Outstanding is total charged minus total paid.
type BalanceSummary struct {
	TotalCharged float64 `json:"total_charged"`
	TotalPaid    float64 `json:"total_paid"`
	Outstanding  float64 `json:"outstanding"`
}

// PatientRecord is the load response: the document plus its balance summary.
type PatientRecord struct {
	Patient *Patient       `json:"patient"`
	Summary BalanceSummary `json:"summary"`
}
