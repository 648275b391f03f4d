package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"boardhub/internal/auth"
	"boardhub/internal/models"
	"boardhub/internal/store"
	"boardhub/internal/utils"

	"gorm.io/gorm"
)

// Sign-up messages
const (
	MsgDuplicateLoginID  = "duplicate login id"
	MsgDuplicateNickname = "duplicate nickname"
	MsgDuplicateEmail    = "duplicate email"
	MsgEmailNotVerified  = "email not verified"
	MsgCodeMismatch      = "verification code mismatch"
	MsgCodeExpired       = "verification code expired"
	MsgLoginFailed       = "invalid login id or password"
	MsgNotGoogleAccount  = "account does not use google sign-in"
)

const (
	verificationCodeLength = 4
	verificationCodeTTL    = 10 * time.Minute
	maxCodeAttempts        = 5
)

// TokenIssuer signs access tokens for signed-in users.
type TokenIssuer interface {
	Issue(u *models.User) (string, error)
}

type SignUpInput struct {
	LoginID  string `json:"userId"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Birth    string `json:"birth"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type UserService struct {
	db       *gorm.DB
	users    store.Users
	mailer   Mailer
	tokens   TokenIssuer
	google   auth.IDTokenDecoder
	hashCost int
	now      func() time.Time
	logger   *slog.Logger
}

func NewUserService(db *gorm.DB, users store.Users, mailer Mailer, tokens TokenIssuer, google auth.IDTokenDecoder, hashCost int, logger *slog.Logger) *UserService {
	return &UserService{
		db:       db,
		users:    users,
		mailer:   mailer,
		tokens:   tokens,
		google:   google,
		hashCost: hashCost,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *UserService) exists(ctx context.Context, op, column, value, dupMsg string) (Result, error) {
	found, err := s.users.Exists(s.db.WithContext(ctx), column, value)
	if err != nil {
		return Result{}, failure(s.logger, op, err)
	}
	if found {
		return Result{Success: false, Message: dupMsg}, nil
	}
	return ok(nil), nil
}

func (s *UserService) CheckLoginID(ctx context.Context, loginID string) (Result, error) {
	return s.exists(ctx, "check login id", "login_id", loginID, MsgDuplicateLoginID)
}

func (s *UserService) CheckNickname(ctx context.Context, nickname string) (Result, error) {
	return s.exists(ctx, "check nickname", "nickname", nickname, MsgDuplicateNickname)
}

func (s *UserService) CheckEmail(ctx context.Context, email string) (Result, error) {
	return s.exists(ctx, "check email", "email", email, MsgDuplicateEmail)
}

// SendVerificationCode mails a fresh code and stores it, replacing any earlier one.
func (s *UserService) SendVerificationCode(ctx context.Context, email string) (Result, error) {
	code := utils.GenerateRandomCode(verificationCodeLength)

	if err := s.mailer.SendVerificationCode(email, code); err != nil {
		return Result{}, failure(s.logger, "send verification code", err)
	}
	if err := s.users.SaveEmailCode(s.db.WithContext(ctx), email, code, s.now().Add(verificationCodeTTL)); err != nil {
		return Result{}, failure(s.logger, "send verification code", err)
	}
	return ok(nil), nil
}

// CheckVerificationCode marks the address verified when code matches. A code stops
// matching once it expires or after maxCodeAttempts wrong guesses.
func (s *UserService) CheckVerificationCode(ctx context.Context, email, code string) (Result, error) {
	db := s.db.WithContext(ctx)

	ec, err := s.users.FindEmailCode(db, email)
	if errors.Is(err, store.ErrNotFound) {
		return Result{Success: false, Message: MsgCodeMismatch}, nil
	}
	if err != nil {
		return Result{}, failure(s.logger, "check verification code", err)
	}
	if ec.Attempts >= maxCodeAttempts || s.now().After(ec.ExpiresAt) {
		return Result{Success: false, Message: MsgCodeExpired}, nil
	}
	if ec.Code != code {
		if err := s.users.CountFailedCheck(db, email); err != nil {
			return Result{}, failure(s.logger, "check verification code", err)
		}
		return Result{Success: false, Message: MsgCodeMismatch}, nil
	}

	if err := s.users.MarkEmailChecked(db, email); err != nil {
		return Result{}, failure(s.logger, "check verification code", err)
	}
	return ok(nil), nil
}

func (s *UserService) SignUp(ctx context.Context, in SignUpInput) (Result, error) {
	checks := []func() (Result, error){
		func() (Result, error) { return s.CheckLoginID(ctx, in.LoginID) },
		func() (Result, error) { return s.CheckNickname(ctx, in.Nickname) },
		func() (Result, error) { return s.CheckEmail(ctx, in.Email) },
		func() (Result, error) { return s.emailVerified(ctx, in.Email) },
	}
	for _, check := range checks {
		res, err := check()
		if err != nil || !res.Success {
			return res, err
		}
	}

	hash, err := utils.HashPassword(in.Password, s.hashCost)
	if err != nil {
		return Result{}, failure(s.logger, "sign up", err)
	}

	user := &models.User{
		LoginID:   in.LoginID,
		Password:  hash,
		Name:      in.Name,
		Birth:     in.Birth,
		Nickname:  in.Nickname,
		Email:     in.Email,
		LoginType: models.LoginTypeLocal,
		Grade:     models.GradeMember,
	}
	if err := s.users.Create(s.db.WithContext(ctx), user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Result{Success: false, Message: MsgDuplicateLoginID}, nil
		}
		return Result{}, failure(s.logger, "sign up", err)
	}
	return ok(user.ID), nil
}

func (s *UserService) emailVerified(ctx context.Context, email string) (Result, error) {
	ec, err := s.users.FindEmailCode(s.db.WithContext(ctx), email)
	if errors.Is(err, store.ErrNotFound) {
		return Result{Success: false, Message: MsgEmailNotVerified}, nil
	}
	if err != nil {
		return Result{}, failure(s.logger, "check email verified", err)
	}
	if !ec.Checked {
		return Result{Success: false, Message: MsgEmailNotVerified}, nil
	}
	return ok(nil), nil
}

// Login checks a local account's password and returns an access token.
func (s *UserService) Login(ctx context.Context, loginID, password string) (Result, error) {
	user, err := s.users.FindByLoginID(s.db.WithContext(ctx), loginID)
	if errors.Is(err, store.ErrNotFound) {
		return Result{Success: false, Message: MsgLoginFailed}, nil
	}
	if err != nil {
		return Result{}, failure(s.logger, "login", err)
	}
	if user.LoginType != models.LoginTypeLocal || !utils.CheckPasswordHash(password, user.Password) {
		return Result{Success: false, Message: MsgLoginFailed}, nil
	}
	return s.signIn(user)
}

// GoogleLogin signs in the Google account matching the verified ID token's email,
// creating it on first use. Accounts registered with a password are never matched.
func (s *UserService) GoogleLogin(ctx context.Context, idToken string) (Result, error) {
	profile, err := s.google.Decode(idToken)
	if err != nil {
		return Result{}, failure(s.logger, "google login", err)
	}

	db := s.db.WithContext(ctx)
	user, err := s.users.FindByEmail(db, profile.Email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.createGoogleUser(ctx, profile)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Result{Success: false, Message: MsgNotGoogleAccount}, nil
		}
	}
	if err != nil {
		return Result{}, failure(s.logger, "google login", err)
	}
	if user.LoginType != models.LoginTypeGoogle {
		s.logger.Warn("google sign-in refused for password account", "user", user.ID)
		return Result{Success: false, Message: MsgNotGoogleAccount}, nil
	}
	return s.signIn(user)
}

func (s *UserService) createGoogleUser(ctx context.Context, profile *auth.GoogleProfile) (*models.User, error) {
	nickname := profile.Name
	if nickname == "" {
		nickname, _, _ = strings.Cut(profile.Email, "@")
	}
	taken, err := s.users.Exists(s.db.WithContext(ctx), "nickname", nickname)
	if err != nil {
		return nil, err
	}
	if taken {
		nickname = fmt.Sprintf("%s-%s", nickname, utils.GenerateRandomCode(verificationCodeLength))
	}

	// google accounts never sign in with a password
	hash, err := utils.HashPassword(utils.GenerateRandomCode(32), s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		LoginID:   profile.Email,
		Password:  hash,
		Name:      profile.Name,
		Nickname:  nickname,
		Email:     profile.Email,
		LoginType: models.LoginTypeGoogle,
		Grade:     models.GradeMember,
		Img:       profile.Picture,
	}
	if err := s.users.Create(s.db.WithContext(ctx), user); err != nil {
		return nil, err
	}
	s.logger.Info("google user created", "user", user.ID)
	return user, nil
}

func (s *UserService) signIn(user *models.User) (Result, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return Result{}, failure(s.logger, "sign in", err)
	}
	return ok(TokenResponse{AccessToken: token}), nil
}
