package domain

// Favorite links a user to an external recipe. Title and Image are copied from
// the client when the favorite is created and never refreshed.
type Favorite struct {
	ID       string
	UserID   string
	RecipeID string
	Title    string
	Image    string
}
