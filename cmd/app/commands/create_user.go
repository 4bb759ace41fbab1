package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	userDomain "github.com/allisson/taskhub/internal/user/domain"
	userUsecase "github.com/allisson/taskhub/internal/user/usecase"
)

// RunCreateUser creates a new user account. When password is empty the
// command prompts for it interactively. Outputs the created user in either
// text or JSON format; the password hash is never printed.
//
// Requirements: the database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUsecase.UseCase,
	logger *slog.Logger,
	name string,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("email", email))

	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
	}

	user, err := useCase.CreateUser(ctx, userUsecase.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputUserJSON(user, io)
	} else {
		outputUserText(user, io)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email),
	)

	return nil
}

// promptForPassword interactively prompts the user for a password.
func promptForPassword(io IOTuple) (string, error) {
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// outputUserText prints the created user in a human-readable format.
func outputUserText(user *userDomain.User, io IOTuple) {
	_, _ = fmt.Fprintln(io.Writer, "User created successfully!")
	_, _ = fmt.Fprintf(io.Writer, "ID:    %s\n", user.ID.String())
	_, _ = fmt.Fprintf(io.Writer, "Name:  %s\n", user.Name)
	_, _ = fmt.Fprintf(io.Writer, "Email: %s\n", user.Email)
}

// outputUserJSON prints the created user as JSON.
func outputUserJSON(user *userDomain.User, io IOTuple) {
	payload := map[string]string{
		"id":         user.ID.String(),
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt.Format(time.RFC3339),
	}

	encoder := json.NewEncoder(io.Writer)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(payload)
}
