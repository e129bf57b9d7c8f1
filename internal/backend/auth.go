package backend

import (
	"context"
	"net/http"

	"github.com/oktaviandwip/musalabel-storefront/internal/auth"
	"github.com/oktaviandwip/musalabel-storefront/internal/session"
)

// userRow mirrors the backend's capitalized user JSON.
type userRow struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	Email       string `json:"Email"`
	Role        string `json:"Role"`
	PhoneNumber string `json:"Phone_number"`
	Address1    string `json:"Address1"`
	Address2    string `json:"Address2"`
	Address3    string `json:"Address3"`
	Image       string `json:"Image"`
}

func (u userRow) profile() session.Profile {
	return session.Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Address1:    u.Address1,
		Address2:    u.Address2,
		Address3:    u.Address3,
		Image:       u.Image,
	}
}

func (c *Client) Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		IsGoogle bool   `json:"isGoogle"`
	}{creds.Email, creds.Password, creds.Google}

	var data struct {
		Token string  `json:"Token"`
		User  userRow `json:"User"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/", body, &data); err != nil {
		return nil, err
	}

	return &auth.LoginResult{Token: data.Token, Profile: data.User.profile()}, nil
}

func (c *Client) Signup(ctx context.Context, in auth.SignupInput) error {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{in.Name, in.Email, in.Password}

	return c.doJSON(ctx, http.MethodPost, "/users/signup", body, nil)
}

func (c *Client) SendResetPIN(ctx context.Context, email string) (string, error) {
	body := struct {
		Email string `json:"email"`
	}{email}

	var data struct {
		PIN string `json:"pin"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", body, &data); err != nil {
		return "", err
	}
	return data.PIN, nil
}

func (c *Client) UpdatePassword(ctx context.Context, email, password string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	return c.doJSON(ctx, http.MethodPatch, "/users/password", body, nil)
}

// UpdatePhoneAddress writes the profile's contact fields through to the
// backend.
func (c *Client) UpdatePhoneAddress(ctx context.Context, p session.Profile) error {
	body := struct {
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		Address1    string `json:"address1"`
		Address2    string `json:"address2"`
		Address3    string `json:"address3"`
	}{p.Email, p.PhoneNumber, p.Address1, p.Address2, p.Address3}

	return c.doJSON(ctx, http.MethodPatch, "/users/phone-address", body, nil)
}
