package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	identityDomain "github.com/viralspark/gateway/internal/identity/domain"
	identityUseCase "github.com/viralspark/gateway/internal/identity/usecase"
)

// RunCreateUser registers a new user account with the given email, password
// and role. Supports both text/JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email string,
	password string,
	role string,
	format string,
) error {
	logger.Info("creating user",
		slog.String("email", email),
		slog.String("role", role),
	)

	input := &identityDomain.CreateUserInput{
		Email:    email,
		Password: password,
		Role:     role,
	}

	user, err := userUseCase.Register(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputCreateUserJSON(writer, user)
	} else {
		outputCreateUserText(writer, user)
	}

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", user.Role),
	)

	return nil
}

// outputCreateUserText outputs the result in human-readable text format.
func outputCreateUserText(writer io.Writer, user *identityDomain.User) {
	fmt.Fprintln(writer, "User created successfully!")
	fmt.Fprintf(writer, "ID:     %s\n", user.ID)
	fmt.Fprintf(writer, "Email:  %s\n", user.Email)
	fmt.Fprintf(writer, "Role:   %s\n", user.Role)
	fmt.Fprintf(writer, "Active: %t\n", user.Active)
}

// outputCreateUserJSON outputs the result in JSON format for machine consumption.
func outputCreateUserJSON(writer io.Writer, user *identityDomain.User) {
	result := map[string]interface{}{
		"id":     user.ID.String(),
		"email":  user.Email,
		"role":   user.Role,
		"active": user.Active,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(writer, string(jsonBytes))
}
