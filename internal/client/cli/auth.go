package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) prompt(text string) (string, error) {
	return getSimpleText(a.reader, text, a.out)
}

func (a *App) readCredentials() (string, []byte, error) {
	email, err := a.prompt("Enter email")
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register prompts for the profile and credentials, creates the account and
// keeps the session token the server returns.
func (a *App) Register(ctx context.Context) error {
	first, err := a.prompt("Enter first name")
	if err != nil {
		return err
	}
	last, err := a.prompt("Enter last name")
	if err != nil {
		return err
	}
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	err = a.api.Register(ctx, models.RegisterInput{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  string(password),
	})
	if err != nil {
		return err
	}

	a.setEmail(email)
	fmt.Fprintln(a.out, "Success!")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.setEmail(email)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout drops the session token.
func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.setEmail("")
	return nil
}

func (a *App) setEmail(email string) {
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
}
