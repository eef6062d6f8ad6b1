package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vasfood/vasfood-cli/internal/app"
	"github.com/vasfood/vasfood-cli/internal/auth"
	"github.com/vasfood/vasfood-cli/internal/session"
)

func newLoginCmd(a func() *app.App) *cobra.Command {
	var email, password string
	var useGoogle bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password, or via Google",
		RunE: func(cmd *cobra.Command, args []string) error {
			if useGoogle {
				return googleLogin(cmd, a())
			}

			if email == "" {
				email = prompt("Email: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}

			err := a().Auth.Login(cmd.Context(), email, password)
			if errors.Is(err, auth.ErrNotVerified) {
				fmt.Fprintln(os.Stderr, "Your email address is not verified yet. Run `vasfood verify send` to request a code.")
				return err
			}
			if err != nil {
				return err
			}

			a().Profiles.Invalidate()
			rememberIdentity(cmd, a())
			fmt.Println("Logged in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")
	cmd.Flags().BoolVar(&useGoogle, "google", false, "sign in with Google in the browser")
	return cmd
}

func googleLogin(cmd *cobra.Command, a *app.App) error {
	fmt.Println("Open this URL in your browser to sign in with Google:")
	fmt.Println()
	fmt.Println("  " + auth.GoogleAuthURL(a.Config.APIBaseURL))
	fmt.Println()

	result, err := auth.WaitForCallback(cmd.Context(), a.Config.OAuthListenAddr, a.Logger)
	if err != nil {
		return fmt.Errorf("google sign-in: %w", err)
	}

	a.Store.SetToken(result.AccessToken)
	a.Profiles.Invalidate()
	rememberIdentity(cmd, a)
	fmt.Println("Signed in with Google.")
	return nil
}

// rememberIdentity fetches the profile and persists the non-sensitive
// display fields. Failure is cosmetic, so it only logs.
func rememberIdentity(cmd *cobra.Command, a *app.App) {
	profile, err := a.Profiles.Get(cmd.Context())
	if err != nil {
		a.Logger.Debug().Err(err).Msg("could not fetch profile after login")
		return
	}
	a.Store.SetEmail(profile.Email)

	id := &session.Identity{Email: profile.Email, FullName: profile.FullName, Role: profile.Role}
	if err := session.SaveIdentity(session.DefaultIdentityPath(), id); err != nil {
		a.Logger.Debug().Err(err).Msg("could not persist identity")
	}
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func newLogoutCmd(a func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear local credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a().Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			a().Profiles.Invalidate()
			if err := session.ClearIdentity(session.DefaultIdentityPath()); err != nil {
				a().Logger.Debug().Err(err).Msg("could not clear identity file")
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func newSignupCmd(a func() *app.App) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = prompt("Full name: ")
			}
			if email == "" {
				email = prompt("Email: ")
			}
			if password == "" {
				password = prompt("Password: ")
			}
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}
			if err := a().Auth.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			fmt.Println("Account created. Check your inbox and run `vasfood verify confirm` to finish.")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")
	return cmd
}

func newResetPasswordCmd(a func() *app.App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Email a password reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = prompt("Email: ")
			}
			if err := a().Auth.SendResetPasswordCode(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Println("Reset code sent. Follow the link in the email to finish.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newVerifyCmd(a func() *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify your email address",
	}

	var email string
	send := &cobra.Command{
		Use:   "send",
		Short: "Email a fresh verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = prompt("Email: ")
			}
			if err := a().Auth.SendVerificationCode(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Println("Verification code sent. Check your inbox.")
			return nil
		},
	}
	send.Flags().StringVar(&email, "email", "", "account email")

	var confirmEmail, code string
	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Submit the emailed verification code",
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirmEmail == "" {
				confirmEmail = prompt("Email: ")
			}
			if code == "" {
				code = prompt("Code: ")
			}
			if err := a().Auth.ConfirmVerificationCode(cmd.Context(), confirmEmail, code); err != nil {
				return err
			}
			fmt.Println("Email verified. You can log in now.")
			return nil
		},
	}
	confirm.Flags().StringVar(&confirmEmail, "email", "", "account email")
	confirm.Flags().StringVar(&code, "code", "", "verification code")

	cmd.AddCommand(send, confirm)
	return cmd
}
