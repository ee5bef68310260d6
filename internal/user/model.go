package user

import "time"

// User - демо аккаунт. Его ID совпадает с id счёта в леджере.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // будем хранить только хэш
	CreatedAt time.Time `json:"created_at"`
}
