package response

// Messages shown to API clients.
const (
	MsgUserExists      = "User already exist. Please login"
	MsgUserNotFound    = "User does not exist"
	MsgWrongPassword   = "Incorrect password!"
	MsgAccountCreated  = "Account created successfully!"
	MsgLoggedIn        = "Logged in successfully!"
	MsgLoggedOut       = "Logout successful"
	MsgResetLinkSent   = "Password reset link sent to your email"
	MsgResetPending    = "A reset link was already sent. Please check your email"
	MsgPasswordUpdated = "Password updated successfully, Login now!"
	MsgPasswordsDiffer = "Password and confirm password do not match"
	MsgInvalidToken    = "Invalid or expired token"

	MsgRetrieved = "Retrieved successfully"
	MsgUpdated   = "Updated successfully"
	MsgDeleted   = "Deleted successfully"
	MsgSubmitted = "Form submitted successfully"
	MsgLiked     = "Like updated!"

	MsgPostNotFound    = "Blog not found"
	MsgCommentNotFound = "Comment not found"
	MsgImageNotFound   = "Image not found"
	MsgSlugTaken       = "A blog with this title already exists"
	MsgInvalidFileType = "Only jpg, jpeg and png files are allowed"
	MsgMissingFile     = "File is required"
)
