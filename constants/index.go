package constants

const (
	ERROR_INPUT          = "Invalid input"
	ERROR_INTERNAL_ERROR = "Internal server error"

	MISSING_LOGIN_INPUT = "Username and password are required"
	INVALID_USERNAME    = "Username does not exist"
	INVALID_PASSWORD    = "Incorrect password"
	ACCOUNT_NOT_ACTIVE  = "Account is disabled"
	NOT_ADMIN           = "Admin permission required"

	MOVIE_NOT_FOUND   = "Movie not found"
	THEATER_NOT_FOUND = "Theater not found"
	SHOWING_NOT_FOUND = "Showing not found"
	TICKET_NOT_FOUND  = "Ticket not found"
	SHOWING_SOLD_OUT  = "No seats available for this showing"

	ROLE_ADMIN = "ADMIN"
	ROLE_STAFF = "STAFF"

	// Management UI will not accept theaters larger than this.
	MAX_SEAT_CAPACITY = 50
)
