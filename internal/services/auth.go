package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ownessay/ownessay-backend/internal/apperrors"
	"github.com/ownessay/ownessay-backend/internal/logger"
	"github.com/ownessay/ownessay-backend/internal/repos"
	"github.com/ownessay/ownessay-backend/internal/requestdata"
	"github.com/ownessay/ownessay-backend/internal/types"
)

const (
	maxLoginAttempts   = 5
	loginAttemptWindow = 15 * time.Minute
)

type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Nickname string    `json:"nickname"`
	Timezone string    `json:"timezone"`
}

type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	User         UserInfo `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, email, nickname, password string) (*UserInfo, error)
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserInfo, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, nickname, timezone *string) (*UserInfo, error)
	ContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	redisClient  *redis.Client
	jwtSecretKey []byte
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

// NewAuthService builds the auth service. redisClient may be nil, which
// disables the login-attempt throttle.
func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, redisClient *redis.Client, jwtSecretKey string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		redisClient:  redisClient,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

func (s *authService) Register(ctx context.Context, email, nickname, password string) (*UserInfo, error) {
	var user *types.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		emailTaken, eErr := s.userRepo.ExistsByEmail(ctx, tx, email)
		if eErr != nil {
			return fmt.Errorf("failed to check email: %w", eErr)
		}
		if emailTaken {
			return apperrors.WithCode(apperrors.KindConflict, "AUTH001", "email is already in use")
		}
		nickTaken, nErr := s.userRepo.ExistsByNickname(ctx, tx, nickname)
		if nErr != nil {
			return fmt.Errorf("failed to check nickname: %w", nErr)
		}
		if nickTaken {
			return apperrors.WithCode(apperrors.KindConflict, "AUTH002", "nickname is already in use")
		}

		hash, hErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hErr != nil {
			return fmt.Errorf("failed to hash password: %w", hErr)
		}
		created, cErr := s.userRepo.Create(ctx, tx, &types.User{
			ID:           uuid.New(),
			Email:        email,
			Nickname:     nickname,
			PasswordHash: string(hash),
			Timezone:     "Asia/Seoul",
			IsActive:     true,
		})
		if cErr != nil {
			return fmt.Errorf("failed to create user: %w", cErr)
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Registered user", "user_id", user.ID, "email", user.Email)
	return userInfoFrom(user), nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	if err := s.checkLoginAttempts(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		s.recordFailedAttempt(ctx, email)
		return nil, apperrors.WithCode(apperrors.KindNotFound, "AUTH003", "user not found")
	}
	if !user.IsActive {
		return nil, apperrors.WithCode(apperrors.KindUnauthorized, "AUTH005", "account is disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailedAttempt(ctx, email)
		return nil, apperrors.WithCode(apperrors.KindUnauthorized, "AUTH004", "invalid password")
	}

	s.clearLoginAttempts(ctx, email)

	accessToken, err := s.generateToken(user, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", "user_id", user.ID)
	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
		User:         *userInfoFrom(user),
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperrors.WithCode(apperrors.KindNotFound, "AUTH003", "user not found")
	}
	return userInfoFrom(user), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, nickname, timezone *string) (*UserInfo, error) {
	var user *types.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := s.userRepo.GetByID(ctx, tx, userID)
		if gErr != nil {
			return fmt.Errorf("failed to load user: %w", gErr)
		}
		if existing == nil {
			return apperrors.WithCode(apperrors.KindNotFound, "AUTH003", "user not found")
		}
		if nickname != nil && *nickname != existing.Nickname {
			taken, nErr := s.userRepo.ExistsByNickname(ctx, tx, *nickname)
			if nErr != nil {
				return fmt.Errorf("failed to check nickname: %w", nErr)
			}
			if taken {
				return apperrors.WithCode(apperrors.KindConflict, "AUTH002", "nickname is already in use")
			}
			existing.Nickname = *nickname
		}
		if timezone != nil {
			existing.Timezone = *timezone
		}
		if uErr := s.userRepo.Update(ctx, tx, existing); uErr != nil {
			return fmt.Errorf("failed to update user: %w", uErr)
		}
		user = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return userInfoFrom(user), nil
}

// ContextFromToken validates tokenString and returns ctx carrying the
// authenticated user's request data. Used by the auth middleware.
func (s *authService) ContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecretKey, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthorized, "invalid token", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, apperrors.WithCode(apperrors.KindUnauthorized, "AUTH009", "malformed token")
	}

	user, err := s.userRepo.GetByEmail(ctx, nil, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperrors.WithCode(apperrors.KindUnauthorized, "AUTH003", "user not found")
	}
	if !user.IsActive {
		return nil, apperrors.WithCode(apperrors.KindUnauthorized, "AUTH005", "account is disabled")
	}

	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		UserID: user.ID,
		Email:  user.Email,
	}), nil
}

func (s *authService) generateToken(user *types.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecretKey)
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUnauthorized, "failed to generate token", err)
	}
	return signed, nil
}

func loginAttemptKey(email string) string {
	return "login_attempts:" + email
}

func (s *authService) checkLoginAttempts(ctx context.Context, email string) error {
	if s.redisClient == nil {
		return nil
	}
	count, err := s.redisClient.Get(ctx, loginAttemptKey(email)).Int()
	if err != nil && err != redis.Nil {
		s.log.Warn("Login throttle check failed, allowing attempt", "error", err)
		return nil
	}
	if count >= maxLoginAttempts {
		return apperrors.WithCode(apperrors.KindUnauthorized, "AUTH015", "too many login attempts, try again later")
	}
	return nil
}

func (s *authService) recordFailedAttempt(ctx context.Context, email string) {
	if s.redisClient == nil {
		return
	}
	key := loginAttemptKey(email)
	if err := s.redisClient.Incr(ctx, key).Err(); err != nil {
		s.log.Warn("Failed to record login attempt", "error", err)
		return
	}
	s.redisClient.Expire(ctx, key, loginAttemptWindow)
}

func (s *authService) clearLoginAttempts(ctx context.Context, email string) {
	if s.redisClient == nil {
		return
	}
	s.redisClient.Del(ctx, loginAttemptKey(email))
}

func userInfoFrom(user *types.User) *UserInfo {
	return &UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Timezone: user.Timezone,
	}
}
