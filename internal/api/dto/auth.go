package dto

// RegisterRequest is the registration payload
type RegisterRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	StudentID       string `json:"studentId" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// VerifyEmailRequest carries the emailed OTP back to the server
type VerifyEmailRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	OTP       string `json:"otp" binding:"required"`
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	Token  string          `json:"token"`
	Member *MemberResponse `json:"member"`
}
