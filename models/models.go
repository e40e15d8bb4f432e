package models

// All returns every persisted model, in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&RefreshToken{},
		&Review{},
		&Project{},
		&TeamMember{},
		&Inquiry{},
	}
}
