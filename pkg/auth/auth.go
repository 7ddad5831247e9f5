package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ningrum77/puskesmas-bok/pkg/database"
)

// Roles. Admin unlocks every mutation; tamu (guest) is read-only and needs
// no password.
const (
	RoleAdmin = "admin"
	RoleGuest = "tamu"
)

var jwtSecret = []byte(os.Getenv("JWT_SECRET"))
var jwtAlgorithm = jwt.SigningMethodHS256

// SetSecret overrides the JWT signing secret loaded from the environment.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for a user with the given role
func CreateToken(username, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(jwtSecret)
}

// VerifyToken verifies a JWT token
func VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Authenticate checks the shared admin password against the stored account.
func Authenticate(db *gorm.DB, password string) (*database.AdminAccount, error) {
	var account database.AdminAccount
	if err := db.Where("username = ?", "admin").First(&account).Error; err != nil {
		return nil, err
	}
	if !CheckPasswordHash(password, account.PasswordHash) {
		return nil, errors.New("wrong password")
	}
	return &account, nil
}

// ChangePassword replaces the shared admin password.
func ChangePassword(db *gorm.DB, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return db.Model(&database.AdminAccount{}).
		Where("username = ?", "admin").
		Update("password_hash", hash).Error
}

// EnsureAdminExists checks if the admin account exists, if not create one
// from environment variables.
func EnsureAdminExists(db *gorm.DB) error {
	var count int64
	db.Model(&database.AdminAccount{}).Count(&count)

	if count == 0 {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			password = "bokkupu"
		}

		hash, err := HashPassword(password)
		if err != nil {
			return err
		}

		account := database.AdminAccount{
			Username:     "admin",
			PasswordHash: hash,
		}

		err = db.Create(&account).Error
		if err == nil {
			println("Default admin account created")
		}
		return err
	}
	return nil
}
