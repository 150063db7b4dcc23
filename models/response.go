package models

// Success Response Models

// RegisterSuccessResponse represents successful registration response
type RegisterSuccessResponse struct {
	Message string `json:"message" example:"User registered successfully (by admin)"`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
}

// LoginSuccessResponse represents successful login response
type LoginSuccessResponse struct {
	Message      string `json:"message" example:"Login successful"`
	Token        string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	UserID       string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	Role         string `json:"role" example:"hacker"`
	IsFirstLogin bool   `json:"is_first_login" example:"true"`
}

// ScanSuccessResponse represents a successful check-in validation
type ScanSuccessResponse struct {
	Success             bool           `json:"success" example:"true"`
	ID                  string         `json:"id" example:"507f1f77bcf86cd799439011"`
	Name                string         `json:"name" example:"Alex Kim"`
	Message             string         `json:"message" example:"User successfully checked in."`
	IsHighSchoolStudent bool           `json:"isHighSchoolStudent" example:"false"`
	ChaperoneInfo       *ChaperoneInfo `json:"chaperoneInfo,omitempty"`
}

// ScanFailureResponse represents a recoverable scan failure (invalid code,
// already checked in). Name is only set when the code resolved to a user.
type ScanFailureResponse struct {
	Success bool   `json:"success" example:"false"`
	Name    string `json:"name,omitempty" example:"Alex Kim"`
	Message string `json:"message" example:"User has already checked in."`
}

// GetUserSuccessResponse represents successful get user response
type GetUserSuccessResponse struct {
	Message string `json:"message" example:"User found"`
	User    User   `json:"user"`
}

// GetAllUsersSuccessResponse represents successful get all users response
type GetAllUsersSuccessResponse struct {
	Message string `json:"message" example:"Users retrieved successfully"`
	Users   []User `json:"users"`
	Total   int    `json:"total" example:"10"`
}

// Error Response Models

// ErrorResponse represents basic error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Error  string `json:"error" example:"Validation failed"`
	Errors string `json:"errors" example:"email: invalid email format"`
}

// UnauthorizedErrorResponse represents unauthorized error response
type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Invalid or missing token"`
}

// ForbiddenErrorResponse represents forbidden error response
type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"You are not authorized to perform this action."`
}

// NotFoundErrorResponse represents not found error response
type NotFoundErrorResponse struct {
	Error string `json:"error" example:"User not found"`
}
