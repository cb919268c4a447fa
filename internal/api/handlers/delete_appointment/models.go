package delete_appointment

// DeleteAppointmentResponse HTTP response model
type DeleteAppointmentResponse struct {
	Deleted int `json:"deleted"`
}
