package model

// RegisterRequest は新規登録APIのリクエストボディ
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス。クライアントは起動時にXPを表示する
type LoginResponse struct {
	Token            string `json:"token"`
	ExperiencePoints int    `json:"experience_points"`
}
