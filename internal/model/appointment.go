package model

// Appointment is the document stored at appointments/<id>, where the id is
// generated by the store on push. PatientName is free text; nothing ties it
// to a patient document.
type Appointment struct {
	PatientName string `json:"patient_name"`
	Contact     string `json:"contact"`
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// CreateAppointmentRequest validates the date up front so the calendar-day
// filter can rely on every stored date being canonical YYYY-MM-DD.
type CreateAppointmentRequest struct {
	PatientName string `json:"patient_name" binding:"required"`
	Contact     string `json:"contact" binding:"required"`
	Reason      string `json:"reason" binding:"required"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string `json:"time" binding:"required,time_hhmm"`
}

// AppointmentRow is one appointment unpacked with its store key, in the
// fixed column order the interface renders.
type AppointmentRow struct {
	ID          string `json:"id"`
	PatientName string `json:"patient_name"`
	Contact     string `json:"contact"`
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}
