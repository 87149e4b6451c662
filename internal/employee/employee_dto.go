package employee

type CreateEmployeeRequest struct {
	EmployeeCode  string `json:"employee_code" binding:"omitempty,max=20"`
	FirstName     string `json:"first_name" binding:"required,max=100"`
	LastName      string `json:"last_name" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"omitempty,max=20"`
	DateOfBirth   string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender        string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Address       string `json:"address"`
	Designation   string `json:"designation"`
	Department    string `json:"department"`
	DateOfJoining string `json:"date_of_joining" binding:"required,datetime=2006-01-02"`
	SiteID        string `json:"site_id" binding:"omitempty,uuid"`

	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	IFSCCode          string `json:"ifsc_code" binding:"omitempty,len=11"`
	PANNumber         string `json:"pan_number" binding:"omitempty,len=10"`
	AadhaarNumber     string `json:"aadhaar_number" binding:"omitempty,len=12,numeric"`
	UANNumber         string `json:"uan_number" binding:"omitempty,len=12,numeric"`

	OfferLetterPath string `json:"offer_letter_path"`
	AadhaarCardPath string `json:"aadhaar_card_path"`
	PANCardPath     string `json:"pan_card_path"`

	Status string `json:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE RESIGNED TERMINATED"`
}

// UpdateEmployeeRequest replaces every editable field (PUT).
type UpdateEmployeeRequest = CreateEmployeeRequest

// PatchEmployeeRequest changes only the fields present (PATCH).
type PatchEmployeeRequest struct {
	FirstName     *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName      *string `json:"last_name" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Address       *string `json:"address"`
	Designation   *string `json:"designation"`
	Department    *string `json:"department"`
	SiteID        *string `json:"site_id" binding:"omitempty,uuid"`
	BankName      *string `json:"bank_name"`
	BankAccount   *string `json:"bank_account_number"`
	IFSCCode      *string `json:"ifsc_code" binding:"omitempty,len=11"`
	Status        *string `json:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE RESIGNED TERMINATED"`
	DateOfJoining *string `json:"date_of_joining" binding:"omitempty,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID            string `json:"id"`
	EmployeeCode  string `json:"employee_code"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FullName      string `json:"full_name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Address       string `json:"address,omitempty"`
	Designation   string `json:"designation,omitempty"`
	Department    string `json:"department,omitempty"`
	DateOfJoining string `json:"date_of_joining"`
	SiteID        string `json:"site_id,omitempty"`

	BankName          string `json:"bank_name,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	IFSCCode          string `json:"ifsc_code,omitempty"`
	PANNumber         string `json:"pan_number,omitempty"`
	AadhaarNumber     string `json:"aadhaar_number,omitempty"`
	UANNumber         string `json:"uan_number,omitempty"`

	OfferLetterPath string `json:"offer_letter_path,omitempty"`
	AadhaarCardPath string `json:"aadhaar_card_path,omitempty"`
	PANCardPath     string `json:"pan_card_path,omitempty"`

	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// EmployeeOptionResponse feeds employee pickers.
type EmployeeOptionResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}
