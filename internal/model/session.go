package model

import "strings"

// Session - авторизованный пользователь API, привязанный к Telegram аккаунту
type Session struct {
	UserID      string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        Role   `json:"role"`
	Token       string `json:"token"`
	DisplayName string `json:"name"`
}

// BuildDisplayName собирает имя для приветствия
func BuildDisplayName(firstName, lastName, fallback string) string {
	name := strings.TrimSpace(firstName + " " + lastName)
	if name == "" {
		return fallback
	}
	return name
}

// Can проверяет право текущей роли
func (s *Session) Can(c Capability) bool {
	if s == nil {
		return false
	}
	return s.Role.Can(c)
}
