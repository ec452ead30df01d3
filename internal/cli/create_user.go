package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/config"
	"github.com/mrlokans/libris/internal/database"
	"github.com/mrlokans/libris/internal/database/users"
	"github.com/mrlokans/libris/internal/entities"
	"github.com/mrlokans/libris/internal/services"
)

// CreateUserCommand provisions a persisted account with any role.
// Registration over HTTP always creates readers, so creators and extra
// admins are created here.
type CreateUserCommand struct {
	Handle      string
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Role        string

	cfg *config.Config
	out io.Writer
}

func NewCreateUserCommand(cfg *config.Config) *CreateUserCommand {
	return &CreateUserCommand{cfg: cfg, out: os.Stdout}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.Handle, "handle", "", "Login handle (generated when empty)")
	fs.StringVar(&cmd.Name, "name", "", "Display name (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.PhoneNumber, "phone", "", "Phone number")
	fs.StringVar(&cmd.Password, "password", "", "Password (required)")
	fs.StringVar(&cmd.Role, "role", string(entities.UserRoleUser), "Role: admin, creator or user")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -name <name> -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account in the configured database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -name \"Ana Reyes\" -email ana@example.com -password s3cret -role creator\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case cmd.Name == "":
		return fmt.Errorf("required flag -name not provided")
	case cmd.Email == "":
		return fmt.Errorf("required flag -email not provided")
	case cmd.Password == "":
		return fmt.Errorf("required flag -password not provided")
	}
	if !entities.UserRole(cmd.Role).Valid() {
		return fmt.Errorf("invalid role %q", cmd.Role)
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.Open(cmd.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	passwords, err := auth.NewPasswordScheme(cmd.cfg.Auth)
	if err != nil {
		return err
	}

	registration := services.NewRegistrationService(users.NewRepository(db.DB), passwords)
	user, err := registration.CreateUser(services.RegisterInput{
		Handle:      cmd.Handle,
		Name:        cmd.Name,
		Email:       cmd.Email,
		PhoneNumber: cmd.PhoneNumber,
		Password:    cmd.Password,
		Role:        entities.UserRole(cmd.Role),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(cmd.out, "Created %s %q with handle %s\n", user.Role, user.Name, user.Handle)
	return nil
}
