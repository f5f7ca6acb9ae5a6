package auth

// UserMessage maps an identity-provider error code to the fixed set of
// user-facing strings the login screen shows. Anything unmapped falls back
// to a generic retry message so raw provider codes never leak to users.
func UserMessage(code string) string {
	switch code {
	case "auth/invalid-credential", "auth/wrong-password", "auth/user-not-found", "auth/invalid-email":
		return "Invalid email or password. Please try again."
	case "auth/weak-password":
		return "Password should be at least 6 characters."
	case "auth/email-already-in-use":
		return "An account with this email already exists."
	case "auth/too-many-requests":
		return "Too many failed attempts. Please wait a moment and try again."
	case "auth/network-request-failed":
		return "Network error. Check your connection and try again."
	case "auth/user-disabled":
		return "This account has been disabled. Contact the administrator."
	default:
		return "Something went wrong. Please try again."
	}
}
