package utils

import (
	"testing"

	"consultorio-server/internal/config"
	"consultorio-server/internal/models"
)

func testUser() *models.User {
	user := &models.User{Username: "consultorio"}
	user.ID = "7b6e2a40-1111-4a3c-9f61-2d3a8c4e5f60"
	return user
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test_secret", JWTExpirationHours: 1}

	token, err := GenerateToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "7b6e2a40-1111-4a3c-9f61-2d3a8c4e5f60" {
		t.Errorf("claims.UserID = %q", claims.UserID)
	}
	if claims.Username != "consultorio" {
		t.Errorf("claims.Username = %q", claims.Username)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test_secret", JWTExpirationHours: 1}

	token, err := GenerateToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ValidateToken(token, "a_different_secret"); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test_secret", JWTExpirationHours: -1}

	token, err := GenerateToken(testUser(), cfg)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ValidateToken(token, cfg.JWTSecret); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}
