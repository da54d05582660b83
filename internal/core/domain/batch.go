package domain

import "time"

// Batch is a cohort of students running between two dates. The code name
// is unique across the installation.
type Batch struct {
	ID          int64     `json:"id"`
	CodeName    string    `json:"codeName"`
	DisplayName string    `json:"displayName"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	IsActive    bool      `json:"isActive"`
	BusinessID  int64     `json:"businessId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BatchUser enrolls a user into a batch. One membership per (user, batch).
type BatchUser struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	BatchID   int64     `json:"batchId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
