package forgiveness

type ForgiveInput struct {
	LoanID string  `json:"loan_id"`
	Note   *string `json:"note,omitempty"`
}

const defaultNote = "debt forgiveness"
