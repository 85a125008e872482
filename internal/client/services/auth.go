package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/dmitrijs2005/mochamagic/internal/cryptox"
)

// AuthService manages accounts and the current session.
//
// Validation failures are returned as common sentinel errors and shown on
// the banner; store failures are returned wrapped.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*models.User, error)
	Login(ctx context.Context, identifier string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	// CurrentSession returns the session if its token verifies, else nil.
	CurrentSession(ctx context.Context) (*models.Session, error)
	UpdateProfile(ctx context.Context, p models.Profile) (*models.Session, error)
}

type SignupRequest struct {
	Fullname        string
	Email           string
	Password        []byte
	ConfirmPassword []byte
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

const minPasswordLen = 6

type authService struct {
	d Deps
}

func NewAuthService(d Deps) AuthService {
	return &authService{d: d.withDefaults()}
}

func (a *authService) fail(err error) error {
	a.d.Notifier.Error(bannerText(err))
	return err
}

// validateSignup applies the checks in the order the user should see them.
func validateSignup(req SignupRequest) error {
	if req.Fullname == "" || req.Email == "" || len(req.Password) == 0 || len(req.ConfirmPassword) == 0 {
		return common.ErrMissingFields
	}
	if !IsValidEmail(req.Email) {
		return common.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return common.ErrPasswordTooShort
	}
	if string(req.Password) != string(req.ConfirmPassword) {
		return common.ErrPasswordMismatch
	}
	return nil
}

func (a *authService) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	req.Fullname = strings.TrimSpace(req.Fullname)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateSignup(req); err != nil {
		return nil, a.fail(err)
	}

	list, err := a.d.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, u := range list {
		if u.Email == req.Email {
			return nil, a.fail(common.ErrEmailTaken)
		}
		maxID = max(maxID, u.ID)
	}

	now := a.d.Now()
	id := now.UnixMilli()
	if id <= maxID {
		id = maxID + 1
	}

	first, last := models.SplitName(req.Fullname)
	user := models.User{
		ID:        id,
		Fullname:  req.Fullname,
		FirstName: first,
		LastName:  last,
		Email:     req.Email,
		Password:  cryptox.HashPassword(req.Password),
		City:      common.DefaultCity,
		Rewards:   0,
		CreatedAt: now.UTC(),
	}

	if err := a.d.Users.SaveUsers(ctx, append(list, user)); err != nil {
		return nil, err
	}

	a.d.Log.Info(ctx, "account created", "user_id", user.ID)
	a.d.Notifier.Success("Account created successfully! Redirecting to login...")
	a.d.Nav.Navigate(PageLogin, a.d.Delays.Signup)

	return &user, nil
}

// findUser returns the index of the first account matching identifier.
func (a *authService) findUser(list []models.User, identifier string) int {
	for i, u := range list {
		if u.Email == identifier || (a.d.LoginByName && u.Fullname == identifier) {
			return i
		}
	}
	return -1
}

func (a *authService) Login(ctx context.Context, identifier string, password []byte) (*models.Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || len(password) == 0 {
		return nil, a.fail(common.ErrMissingFields)
	}

	list, err := a.d.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	idx := a.findUser(list, identifier)
	if idx < 0 {
		return nil, a.fail(common.ErrAccountNotFound)
	}
	user := list[idx]

	if !cryptox.CheckPassword(user.Password, password) {
		return nil, a.fail(common.ErrIncorrectPassword)
	}

	if !cryptox.IsHashed(user.Password) {
		list[idx].Password = cryptox.HashPassword(password)
		if err := a.d.Users.SaveUsers(ctx, list); err != nil {
			a.d.Log.Warn(ctx, "failed to upgrade legacy password", "user_id", user.ID, "error", err)
		} else {
			a.d.Log.Info(ctx, "upgraded legacy password", "user_id", user.ID)
		}
	}

	token, err := a.d.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	session := models.NewSession(user, token)
	if err := a.d.Users.SetSession(ctx, session); err != nil {
		return nil, err
	}

	a.d.Log.Info(ctx, "logged in", "user_id", user.ID)
	a.d.Notifier.Success("Login successful! Welcome back, " + user.Fullname + "!")
	a.d.Nav.Navigate(PageRewards, a.d.Delays.Login)

	return &session, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.d.Users.ClearSession(ctx); err != nil {
		return err
	}

	a.d.Notifier.Success("Logged out successfully")
	a.d.Nav.Navigate(PageHome, a.d.Delays.Logout)
	return nil
}

func (a *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	s, err := a.d.Users.GetSession(ctx)
	if err != nil || s == nil {
		return nil, err
	}

	// sessions written before tokens existed carry none
	if s.Token == "" {
		return s, nil
	}

	id, err := a.d.Tokens.Verify(s.Token)
	if err != nil {
		if !errors.Is(err, common.ErrTokenExpired) {
			a.d.Log.Warn(ctx, "discarding session with bad token", "error", err)
		}
		return nil, nil
	}
	if id != s.ID {
		a.d.Log.Warn(ctx, "discarding session for another user", "session_id", s.ID, "token_id", id)
		return nil, nil
	}
	return s, nil
}

func (a *authService) UpdateProfile(ctx context.Context, p models.Profile) (*models.Session, error) {
	s, err := a.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, a.fail(common.ErrNotLoggedIn)
	}

	p.Fullname = strings.TrimSpace(p.Fullname)

	list, err := a.d.Users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(list, s.ID)
	if idx < 0 {
		return nil, a.fail(common.ErrAccountNotFound)
	}

	p.Apply(&list[idx])
	if err := a.d.Users.SaveUsers(ctx, list); err != nil {
		return nil, err
	}

	updated := models.NewSession(list[idx], s.Token)
	if err := a.d.Users.SetSession(ctx, updated); err != nil {
		return nil, err
	}

	a.d.Notifier.Success("Profile updated")
	return &updated, nil
}

func indexByID(list []models.User, id int64) int {
	for i, u := range list {
		if u.ID == id {
			return i
		}
	}
	return -1
}
