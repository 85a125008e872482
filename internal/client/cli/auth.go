package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
	"github.com/dmitrijs2005/mochamagic/internal/common"
)

func (a *App) Signup(ctx context.Context) error {
	fullname, err := GetSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	_, err = a.authService.Signup(ctx, services.SignupRequest{
		Fullname:        fullname,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	return err
}

func (a *App) Login(ctx context.Context) error {
	prompt := "Email"
	if a.config.LoginByName {
		prompt = "Email or full name"
	}
	identifier, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.authService.Login(ctx, identifier, password)
	return err
}

func (a *App) Logout(ctx context.Context) error {
	return a.authService.Logout(ctx)
}

// Profile shows the account details and lets the user change them. Blank
// answers keep the current value.
func (a *App) Profile(ctx context.Context) error {
	s, err := a.authService.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		_, err := a.authService.UpdateProfile(ctx, models.Profile{})
		return err
	}

	fmt.Fprintf(a.out, "Name:     %s\nEmail:    %s\nPhone:    %s\nAddress:  %s\nCity:     %s\nPostcode: %s\nPoints:   %d\n",
		s.Fullname, s.Email, s.Phone, s.Address, s.City, s.PostalCode, s.Rewards)

	ok, err := Confirm(a.reader, "Edit profile?", a.out)
	if err != nil || !ok {
		return err
	}

	var p models.Profile
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &p.Fullname},
		{"Phone", &p.Phone},
		{"Address", &p.Address},
		{"City", &p.City},
		{"Postal code", &p.PostalCode},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt+" (blank to keep)", a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	_, err = a.authService.UpdateProfile(ctx, p)
	return err
}
