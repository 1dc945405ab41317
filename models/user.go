package models

// UserData is the profile document of a user
type UserData struct {
	UserID           string   `dynamodbav:"userId" json:"userId"`                                           // Partition Key
	Name             string   `dynamodbav:"name,omitempty" json:"name,omitempty"`                           // Display name
	Username         string   `dynamodbav:"username,omitempty" json:"username,omitempty"`                   // Unique, indexed via GSI
	ImageURL         string   `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`                   // Download URL of the profile image
	Bio              string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`                             // Short biography
	Gender           string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`                       // MALE, FEMALE, ANY
	GenderPreference string   `dynamodbav:"genderPreference,omitempty" json:"genderPreference,omitempty"`   // MALE, FEMALE, ANY
	SwipesLeft       []string `dynamodbav:"swipesLeft,stringset,omitempty" json:"swipesLeft,omitempty"`     // Disliked user ids
	SwipesRight      []string `dynamodbav:"swipesRight,stringset,omitempty" json:"swipesRight,omitempty"`   // Liked user ids without a match yet
	Matches          []string `dynamodbav:"matches,stringset,omitempty" json:"matches,omitempty"`           // Matched user ids
	CreatedAt        string   `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`                 // RFC3339
	UpdatedAt        string   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`                 // RFC3339
}

// DisplayName is what other users see in chats: the name, or the username when no name is set.
func (u *UserData) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// HasSwiped reports whether the user already swiped on or matched with otherID.
func (u *UserData) HasSwiped(otherID string) bool {
	return containsID(u.SwipesLeft, otherID) || containsID(u.SwipesRight, otherID) || containsID(u.Matches, otherID)
}

// Likes reports whether otherID is in the user's right swipes.
func (u *UserData) Likes(otherID string) bool {
	return containsID(u.SwipesRight, otherID)
}

// IsMatchedWith reports whether otherID is in the user's matches.
func (u *UserData) IsMatchedWith(otherID string) bool {
	return containsID(u.Matches, otherID)
}

// ChatUser returns the snapshot stored on a chat record.
func (u *UserData) ChatUser() ChatUser {
	return ChatUser{
		UserID:   u.UserID,
		Name:     u.DisplayName(),
		ImageURL: u.ImageURL,
	}
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Public is the view of a profile shown to other users: swipe history stays private.
func (u UserData) Public() UserData {
	u.SwipesLeft = nil
	u.SwipesRight = nil
	u.Matches = nil
	return u
}

// ProfileUpdate carries the editable profile fields. Nil keeps the stored value.
type ProfileUpdate struct {
	Name             *string `json:"name,omitempty"`
	Username         *string `json:"username,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	ImageURL         *string `json:"imageUrl,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	GenderPreference *string `json:"genderPreference,omitempty"`
}

// Attribute names of the swipe sets on UserData
const (
	AttrSwipesLeft  = "swipesLeft"
	AttrSwipesRight = "swipesRight"
	AttrMatches     = "matches"
)

// UsersTable is the DynamoDB table name for user profiles
const UsersTable = "Users"

// UsernameIndex is the GSI on Users keyed by username
const UsernameIndex = "username-index"
