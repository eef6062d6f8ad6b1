package auth

// refreshResponse is the /auth/refresh response body. Older backend
// deployments used "token" instead of "accessToken"; both are accepted.
type refreshResponse struct {
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
}

// loginRequest is the /auth/login request body
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the /auth/login response body
type loginResponse struct {
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}

// registerRequest is the /auth/register request body
type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// logoutRequest is the /auth/logout request body
type logoutRequest struct {
	Email string `json:"email"`
}

// messageResponse covers the auth endpoints that only return a message
type messageResponse struct {
	Message string `json:"message"`
}

// verificationRequest is shared by the send/confirm verification endpoints
type verificationRequest struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}
