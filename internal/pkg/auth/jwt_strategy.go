package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/memoriza/memoriza/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

type claims struct {
	GroupID         int64  `json:"group_id"`
	Admin           bool   `json:"admin"`
	EmployeeGroupID *int64 `json:"employee_group_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTStrategy implements auth token creation/verification with HS256-signed
// JSON web tokens carrying identity, group and admin claims.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken generates a signed token for the user.
func (s *JWTStrategy) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	c := claims{
		GroupID:         int64(user.GroupID),
		Admin:           user.IsAdmin(),
		EmployeeGroupID: user.EmployeeGroupID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// ParseToken validates the token and returns the encoded identity.
func (s *JWTStrategy) ParseToken(token string) (*Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:          userID,
		GroupID:         model.Group(c.GroupID),
		Admin:           c.Admin,
		EmployeeGroupID: c.EmployeeGroupID,
	}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
