package validation

// ValidateUsername checks the username length in characters.
func ValidateUsername(username string) error {
	return Var("username", username, "notblank,min=3,max=50")
}

// ValidateEmail checks that email is a syntactically valid address.
func ValidateEmail(email string) error {
	return Var("email", email, "required,email,max=255")
}
