// Command seeduser provisions a login user directly in the database.
// A fresh deployment has no users, so run this once after migrations to
// create the first admin before the API can be used.
// Usage: go run ./cmd/seeduser -email admin@example.com -password secret -name "Admin" [-role admin]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"greenlens/internal/config"
	"greenlens/internal/domain"
	"greenlens/internal/repository/postgres"
	"greenlens/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	email := flag.String("email", "", "email address of the user to create")
	password := flag.String("password", "", "plaintext password, hashed before storage")
	name := flag.String("name", "", "full name of the user")
	role := flag.String("role", string(domain.RoleAdmin), "role to assign (admin or member)")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		flag.Usage()
		return errors.New("email, password, and name are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	users := service.NewUserService(postgres.NewUserRepo(db))
	user, err := users.Create(context.Background(), service.CreateUserInput{
		Email:    *email,
		Password: *password,
		FullName: *name,
		Role:     domain.UserRole(*role),
	})
	if errors.Is(err, domain.ErrEmailTaken) {
		log.Printf("user %s already exists, nothing to do", *email)
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("created %s user %s (%s)", user.Role, user.Email, user.ID)
	return nil
}
