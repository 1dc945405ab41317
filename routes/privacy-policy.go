package routes

import (
	"fmt"
	"net/http"
)

// PrivacyPolicyHandler serves the privacy policy linked from the app store listing
func PrivacyPolicyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	html := `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>LoveMatch Privacy Policy</title>
</head>
<body>
	<h1>Privacy Policy</h1>
	<p>LoveMatch stores the email and password hash you sign up with, your profile (name, username, bio,
	gender, gender preference and profile image) and the likes, dislikes and matches you make.</p>
	<p>Your profile is shown to other users in the swipe feed. Your likes and dislikes are never shown to anyone.</p>
	<p>Messages are only visible to the two people in a match.</p>
</body>
</html>
`
	fmt.Fprint(w, html)
}
