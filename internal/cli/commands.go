// Package cli holds the one-shot operator commands of the quoteadmin binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/proappliance/quoteadmin/internal/clipboard"
	"github.com/proappliance/quoteadmin/internal/security"
	"github.com/proappliance/quoteadmin/internal/services"
	"gorm.io/gorm"
)

const fullAddressField = "full_address"

type Commands struct {
	auth      *services.AuthService
	seeder    *services.SeedService
	quotes    *services.QuoteService
	publicURL string
	out       io.Writer

	readPassword func(prompt string) (string, error)
	clipboard    clipboard.Writer
}

type Option func(*Commands)

// WithPasswordReader replaces the no-echo terminal prompt.
func WithPasswordReader(read func(prompt string) (string, error)) Option {
	return func(commands *Commands) {
		if read != nil {
			commands.readPassword = read
		}
	}
}

func WithClipboard(writer clipboard.Writer) Option {
	return func(commands *Commands) {
		if writer != nil {
			commands.clipboard = writer
		}
	}
}

func NewCommands(auth *services.AuthService, seeder *services.SeedService, quotes *services.QuoteService, publicURL string, out io.Writer, options ...Option) *Commands {
	if out == nil {
		out = os.Stdout
	}
	commands := &Commands{
		auth:         auth,
		seeder:       seeder,
		quotes:       quotes,
		publicURL:    strings.TrimRight(publicURL, "/"),
		out:          out,
		readPassword: terminalPasswordReader(os.Stdin, out),
		clipboard:    clipboard.SystemWriter{},
	}
	for _, option := range options {
		option(commands)
	}
	return commands
}

// InviteLink is the login page URL that opens invite setup for token.
func InviteLink(publicURL string, token string) string {
	query := url.Values{}
	query.Set("access_token", token)
	query.Set("type", "invite")
	return strings.TrimRight(publicURL, "/") + "/?" + query.Encode()
}

func (commands *Commands) Invite(ctx context.Context, email string) error {
	session, err := commands.auth.InviteUser(ctx, email)
	if err != nil {
		return fmt.Errorf("invite %s: %w", email, err)
	}

	fmt.Fprintf(commands.out, "Invite created for %s (valid until %s)\n", session.Email, session.ExpiresAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintln(commands.out, InviteLink(commands.publicURL, session.AccessToken))
	return nil
}

// ResetPassword clears the password, signs the user out everywhere and
// prints a fresh invite link.
func (commands *Commands) ResetPassword(ctx context.Context, email string) error {
	session, err := commands.auth.ResetStaffPassword(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("staff user %s not found", services.NormalizeAuthEmail(email))
	}
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintf(commands.out, "Password cleared for %s; all sessions ended.\n", session.Email)
	fmt.Fprintln(commands.out, "Send this link so a new password can be chosen:")
	fmt.Fprintln(commands.out, InviteLink(commands.publicURL, session.AccessToken))
	return nil
}

// SetPassword creates the staff user when missing and sets its password from
// two hidden prompts. Existing sessions of the user are ended.
func (commands *Commands) SetPassword(ctx context.Context, email string) error {
	password, err := commands.readPassword("New password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirm, err := commands.readPassword("Repeat password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return fmt.Errorf("password must be %d to 72 characters: %w", services.MinPasswordLength, err)
	}

	invite, err := commands.auth.InviteUser(ctx, email)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", email, err)
	}
	session, err := commands.auth.UpdateUser(ctx, invite.AccessToken, services.UserUpdate{Password: password, PasswordSet: true})
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if err := commands.auth.RevokeUserSessions(ctx, session.UserID); err != nil {
		return err
	}

	fmt.Fprintf(commands.out, "Password set for %s\n", session.Email)
	return nil
}

// Seed inserts the sample quotes and reports every record. It fails only when
// no record could be inserted.
func (commands *Commands) Seed(ctx context.Context) error {
	results := commands.seeder.Seed(ctx)
	for _, result := range results {
		switch {
		case result.Err != nil:
			fmt.Fprintf(commands.out, "FAIL %-24s %v\n", result.CustomerName, result.Err)
		default:
			fmt.Fprintf(commands.out, "ok   %-24s %s (%d appliances)\n", result.CustomerName, result.QuoteID, result.Appliances)
		}
	}

	seeded := services.CountSeeded(results)
	fmt.Fprintf(commands.out, "Seeded %d of %d quotes\n", seeded, len(results))
	if seeded == 0 && len(results) > 0 {
		return errors.New("no quotes were seeded")
	}
	return nil
}

// Copy puts the raw value of one quote field on the system clipboard.
func (commands *Commands) Copy(ctx context.Context, quoteID string, field string) error {
	detail, err := commands.quotes.LoadDetail(ctx, quoteID)
	if err != nil {
		return err
	}

	key := strings.ToLower(strings.TrimSpace(field))
	var value string
	if key == fullAddressField {
		value = services.FullAddress(detail.Quote)
	} else {
		var found bool
		value, found = services.QuoteCopyValue(detail.Quote, key)
		if !found {
			return fmt.Errorf("field %q is empty or unknown; available: %s", field, strings.Join(availableFields(detail), ", "))
		}
	}

	button := clipboard.NewButton(commands.clipboard)
	if !button.Copy(value) {
		return errors.New("copy failed")
	}
	fmt.Fprintf(commands.out, "Copied %s of %s\n", key, detail.Quote.CustomerName)
	return nil
}

func availableFields(detail services.QuoteDetail) []string {
	fields := services.QuoteCopyFields(detail.Quote)
	keys := make([]string, 0, len(fields)+1)
	for _, field := range fields {
		keys = append(keys, field.Key)
	}
	if services.FullAddress(detail.Quote) != "" {
		keys = append(keys, fullAddressField)
	}
	return keys
}

// GenerateSecret prints a value suitable for SECRET_KEY.
func GenerateSecret(out io.Writer) error {
	secret, err := security.NewSecretKey()
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	fmt.Fprintln(out, secret)
	return nil
}
