package request

// RegisterRequest is the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=4,max=128"`
}

// LoginRequest is the request body for authenticating
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// SubmitScoreRequest is the request body for recording a finished game.
// Omitted player_name, mode, and grid_size take guest-play defaults.
type SubmitScoreRequest struct {
	UserID     int64   `json:"user_id" validate:"gte=0"`
	PlayerName string  `json:"player_name" validate:"max=64"`
	Time       float64 `json:"time" validate:"gte=0"`
	Mistakes   int     `json:"mistakes" validate:"gte=0"`
	Mode       string  `json:"mode" validate:"omitempty,oneof=classic timeattack"`
	GridSize   int     `json:"grid_size" validate:"omitempty,oneof=3 4 5"`
}
