package domain

import "github.com/supabase-community/supabase-go"

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}

type SupabaseClient interface {
	Initialize() error
	ValidateToken(token string) (*SupabaseUser, error)

	DB() *supabase.Client
}
