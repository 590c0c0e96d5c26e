package model

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	Points      int64  `json:"points"`
	TotalEarned int64  `json:"total_earned"`
}

type GetMeRequest struct{}

type GetMeResponse User
