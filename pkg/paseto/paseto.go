package paseto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hackathon-portal/config"
	"hackathon-portal/models"
)

type Maker struct {
	paseto       *paseto.V2
	symmetricKey []byte
}

// NewPasetoMaker builds a token maker from the configured symmetric key.
// The key is resolved lazily here instead of in an init so that packages
// importing this one can be compiled and tested without a configured secret.
func NewPasetoMaker() (*Maker, error) {
	cfg := config.LoadConfig()

	var decodedKey []byte
	var err error

	// The secret may be stored URL-safe or standard base64; accept both.
	decodedKey, err = base64.URLEncoding.DecodeString(cfg.PASETO_SECRET)
	if err != nil {
		decodedKey, err = base64.StdEncoding.DecodeString(cfg.PASETO_SECRET)
		if err != nil {
			return nil, fmt.Errorf("failed to decode PASETO_SECRET: %w", err)
		}
	}

	if len(decodedKey) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET must be exactly 32 bytes after Base64 decoding, got %d bytes", len(decodedKey))
	}

	return &Maker{
		paseto:       paseto.NewV2(),
		symmetricKey: decodedKey,
	}, nil
}

func (m *Maker) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	exp := now.Add(24 * time.Hour)

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: exp,
		NotBefore:  now,
	}

	// Custom claims are stored as strings
	token.Set("user_id", user.ID.Hex())
	token.Set("email", user.Email)
	token.Set("role", user.Role)
	token.Set("is_first_login", fmt.Sprintf("%v", user.IsFirstLogin))

	return m.paseto.Encrypt(m.symmetricKey, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var footer string

	err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &footer)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	var claims models.Claims

	userIDStr := token.Get("user_id")
	objectID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %v", err)
	}
	claims.UserID = objectID
	claims.Email = token.Get("email")
	claims.Role = token.Get("role")
	claims.IsFirstLogin = (token.Get("is_first_login") == "true")

	return &claims, nil
}
