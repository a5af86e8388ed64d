package dto

type UpdatePatientRequest struct {
	DateOfBirth *string `json:"date_of_birth"` // RFC 3339 date
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	BloodGroup  *string `json:"blood_group"`
}
