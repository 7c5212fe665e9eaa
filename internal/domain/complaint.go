package domain

import "time"

// Complaint is a server-owned complaint as seen by the current user.
type Complaint struct {
	ID                int64
	Title             string
	Message           string
	SenderUsername    string
	RecipientDisplay  string
	CreatedAt         time.Time
	IsResponded       bool
	Response          *string
	IsSeenByEmployee  bool
	IsSeenByRecipient bool
}

// ComplaintSubmission is the body of a new complaint.
type ComplaintSubmission struct {
	Title         string
	Message       string
	RecipientType RecipientType
}
