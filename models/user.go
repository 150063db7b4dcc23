package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChaperoneContact is the accompanying adult required for a high school
// student. All fields are optional; response shaping fills in defaults.
type ChaperoneContact struct {
	FirstName string `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// RegistrationDetails exists only for users that completed hackathon
// registration. A nil Registration on User means the account was created
// (e.g. via the email link) but the form was never finished.
type RegistrationDetails struct {
	FirstName           string            `json:"first_name" bson:"first_name,omitempty"`
	LastName            string            `json:"last_name" bson:"last_name,omitempty"`
	School              string            `json:"school,omitempty" bson:"school,omitempty"`
	IsHighSchoolStudent bool              `json:"is_high_school_student" bson:"is_high_school_student,omitempty"`
	Chaperone           *ChaperoneContact `json:"chaperone,omitempty" bson:"chaperone,omitempty"`
}

type User struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string               `json:"email" bson:"email,omitempty"`
	Password     string               `json:"-" bson:"password,omitempty"`
	Role         string               `json:"role" bson:"role,omitempty"`
	CheckinCode  string               `json:"check_in_code" bson:"check_in_code,omitempty"`
	Registration *RegistrationDetails `json:"registration,omitempty" bson:"registration,omitempty"`
	IsFirstLogin bool                 `json:"is_first_login" bson:"isFirstLogin,omitempty"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at,omitempty"`
}

// DisplayName degrades to a generic label for users without registration
// details, so a half-registered account can still be scanned.
func (u *User) DisplayName() string {
	if u.Registration == nil {
		return "Participant"
	}
	return u.Registration.FirstName + " " + u.Registration.LastName
}

// IsMinor reports whether the user registered as a high school student.
func (u *User) IsMinor() bool {
	return u.Registration != nil && u.Registration.IsHighSchoolStudent
}

// BuildChaperoneInfo shapes the chaperone contact for the scanner response.
// Missing name parts collapse to an empty string; missing email/phone are
// surfaced as the literal "N/A" so the scanning admin sees something.
func (u *User) BuildChaperoneInfo() *ChaperoneInfo {
	info := &ChaperoneInfo{
		ChaperoneEmail: "N/A",
		ChaperonePhone: "N/A",
	}
	if u.Registration == nil || u.Registration.Chaperone == nil {
		return info
	}

	ch := u.Registration.Chaperone
	info.ChaperoneName = strings.TrimSpace(ch.FirstName + " " + ch.LastName)
	if ch.Email != "" {
		info.ChaperoneEmail = ch.Email
	}
	if ch.Phone != "" {
		info.ChaperonePhone = ch.Phone
	}
	return info
}

type UserRegisterPayload struct {
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Role                string `json:"role" validate:"required,oneof=admin hacker volunteer"`
	FirstName           string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName            string `json:"last_name" validate:"omitempty,max=100"`
	School              string `json:"school"`
	IsHighSchoolStudent bool   `json:"is_high_school_student"`
	ChaperoneFirstName  string `json:"chaperone_first_name"`
	ChaperoneLastName   string `json:"chaperone_last_name"`
	ChaperoneEmail      string `json:"chaperone_email" validate:"omitempty,email"`
	ChaperonePhone      string `json:"chaperone_phone"`
}

type UserLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdatePayload struct {
	FirstName           string `json:"first_name,omitempty" validate:"omitempty,min=2,max=100"`
	LastName            string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	School              string `json:"school,omitempty"`
	IsHighSchoolStudent *bool  `json:"is_high_school_student,omitempty"`
	ChaperoneFirstName  string `json:"chaperone_first_name,omitempty"`
	ChaperoneLastName   string `json:"chaperone_last_name,omitempty"`
	ChaperoneEmail      string `json:"chaperone_email,omitempty" validate:"omitempty,email"`
	ChaperonePhone      string `json:"chaperone_phone,omitempty"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

type Claims struct {
	UserID       primitive.ObjectID `json:"user_id"`
	Email        string             `json:"email"`
	Role         string             `json:"role"`
	IsFirstLogin bool               `json:"is_first_login"`
}

type RoleCount struct {
	Role  string `bson:"_id" json:"role"`
	Count int64  `bson:"count" json:"count"`
}

type DashboardStats struct {
	TotalUsers            int64       `json:"total_users"`
	TotalHackers          int64       `json:"total_hackers"`
	TotalMinors           int64       `json:"total_minors"`
	TotalEvents           int64       `json:"total_events"`
	TotalCheckins         int64       `json:"total_checkins"`
	PendingReimbursements int64       `json:"pending_reimbursements"`
	RoleDistribution      []RoleCount `json:"role_distribution"`
	RecentActivity        []string    `json:"recent_activity"`
}
