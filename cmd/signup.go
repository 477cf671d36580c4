package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/staffbook/staffql/internal/record"
	"github.com/staffbook/staffql/internal/ui"
)

var (
	signupUsername string
	signupEmail    string
	signupJSON     bool
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a user account",
	Long: `Create a user account through the signup mutation.

Fields not given as flags are asked for interactively. When stdin is not a
terminal, the password is read from its first line instead.

Examples:
  # Fill in everything interactively
  staffql signup

  # Scripted
  echo 's3cret' | staffql signup --username ada --email ada@example.com --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, email := signupUsername, signupEmail
		var password string

		if term.IsTerminal(int(os.Stdin.Fd())) {
			if err := signupForm(&username, &email, &password).Run(); err != nil {
				return err
			}
		} else {
			p, err := readPassword(os.Stdin)
			if err != nil {
				return err
			}
			password = p
		}

		user, err := signup(cmd.Context(), username, email, password)
		if err != nil {
			return err
		}

		if signupJSON {
			out, err := json.Marshal(map[string]string{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
			})
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%s %s %s\n", ui.Success.Render("Signed up"), ui.Bold.Render(user.Username), ui.ID.Render(user.ID))
		return nil
	},
}

// signupForm asks for the fields that are still empty.
func signupForm(username, email, password *string) *huh.Form {
	var fields []huh.Field
	if *username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(username).
			Validate(required("username")))
	}
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(required("email")))
	}
	fields = append(fields, huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(password).
		Validate(required("password")))

	return huh.NewForm(huh.NewGroup(fields...))
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// readPassword returns the first line of r.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password provided on stdin")
	}
	return line, nil
}

// signup runs the signup mutation resolver against the open store.
func signup(ctx context.Context, username, email, password string) (*record.User, error) {
	resolver, err := newResolver(ctx, false)
	if err != nil {
		return nil, err
	}
	return resolver.Mutation().Signup(ctx, username, email, password)
}

func init() {
	signupCmd.Flags().StringVarP(&signupUsername, "username", "u", "", "Username")
	signupCmd.Flags().StringVarP(&signupEmail, "email", "e", "", "Email address")
	signupCmd.Flags().BoolVar(&signupJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(signupCmd)
}
