package domain

import "time"

type LoanType string

const (
	LoanMotorcycle      LoanType = "motorcycle"
	LoanConsumerDurable LoanType = "consumer-durable"
	LoanOther           LoanType = "other"
)

func ParseLoanType(s string) (LoanType, bool) {
	switch LoanType(s) {
	case LoanMotorcycle, LoanConsumerDurable, LoanOther:
		return LoanType(s), true
	default:
		return "", false
	}
}

type LoanStatus string

const (
	LoanPending   LoanStatus = "pending"
	LoanContacted LoanStatus = "contacted"
	LoanApproved  LoanStatus = "approved"
	LoanRejected  LoanStatus = "rejected"
	LoanCompleted LoanStatus = "completed"
)

func ParseLoanStatus(s string) (LoanStatus, bool) {
	switch LoanStatus(s) {
	case LoanPending, LoanContacted, LoanApproved, LoanRejected, LoanCompleted:
		return LoanStatus(s), true
	default:
		return "", false
	}
}

type LoanInquiry struct {
	ID            string     `json:"id"`
	FullName      string     `json:"full_name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	LoanType      LoanType   `json:"loan_type"`
	LoanAmount    *float64   `json:"loan_amount,omitempty"`
	MonthlyIncome *float64   `json:"monthly_income,omitempty"`
	Message       *string    `json:"message,omitempty"`
	Status        LoanStatus `json:"status"`
	AssignedTo    *string    `json:"assigned_to,omitempty"`
	AdminNotes    *string    `json:"admin_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type LoanInquiryRequest struct {
	FullName      string   `json:"full_name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	LoanType      string   `json:"loan_type"`
	LoanAmount    *float64 `json:"loan_amount,omitempty"`
	MonthlyIncome *float64 `json:"monthly_income,omitempty"`
	Message       *string  `json:"message,omitempty"`
}

type LoanPatch struct {
	Status     *string `json:"status,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}
