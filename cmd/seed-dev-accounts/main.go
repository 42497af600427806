package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"timecard.backend/internal/config"
	"timecard.backend/internal/domain/entities"
	domainerrors "timecard.backend/internal/domain/errors"
	"timecard.backend/internal/infrastructure/datasources/postgres"
	"timecard.backend/internal/infrastructure/mailer"
	"timecard.backend/internal/infrastructure/repositories"
	"timecard.backend/internal/usecases"
	"timecard.backend/pkg/crypto"
)

const devGeopointID = "ChIJUUWhWpJa6IkRxyb1X3N_H1A"

var openSeedDB = postgres.NewConnection

var openSeedSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type devAccount struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      entities.UserRole
	phone     string
}

type seedRuntime interface {
	Exists(ctx context.Context, email string) (bool, error)
	Invite(ctx context.Context, invite *entities.Invite) error
	SignUp(ctx context.Context, input *entities.SignUpInput) (*entities.SignUpResult, error)
}

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	getenv  func(string) string
	prepare func(cfg *config.Config) (seedRuntime, io.Closer, error)
	token   func() (string, error)
	out     io.Writer
}

type seedRuntimeImpl struct {
	identityRepo *repositories.IdentityRepository
	inviteRepo   *repositories.InviteRepository
	invites      *usecases.InviteUsecase
}

func (r seedRuntimeImpl) Exists(ctx context.Context, email string) (bool, error) {
	_, err := r.identityRepo.GetByEmail(ctx, email)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r seedRuntimeImpl) Invite(ctx context.Context, invite *entities.Invite) error {
	return r.inviteRepo.Upsert(ctx, invite)
}

func (r seedRuntimeImpl) SignUp(ctx context.Context, input *entities.SignUpInput) (*entities.SignUpResult, error) {
	return r.invites.SignUp(ctx, input)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		getenv:  os.Getenv,
		prepare: func(cfg *config.Config) (seedRuntime, io.Closer, error) {
			db, err := openSeedDB(cfg.Database)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}
			sqlDB, err := openSeedSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}
			return newSeedRuntime(db, cfg), sqlDB, nil
		},
		token: crypto.GenerateVerificationToken,
		out:   os.Stdout,
	}
}

func newSeedRuntime(db *gorm.DB, cfg *config.Config) seedRuntimeImpl {
	identityRepo := repositories.NewIdentityRepository(db)
	inviteRepo := repositories.NewInviteRepository(db)
	invites := usecases.NewInviteUsecase(
		inviteRepo,
		identityRepo,
		repositories.NewUserRepository(db),
		repositories.NewGeopointRepository(db),
		repositories.NewUserSettingsRepository(db),
		repositories.NewUnitOfWork(db),
		mailer.NewLogMailer(),
		cfg.Server.BaseURL,
	)
	return seedRuntimeImpl{identityRepo: identityRepo, inviteRepo: inviteRepo, invites: invites}
}

func devAccounts(getenv func(string) string) ([]devAccount, error) {
	required := []string{"ADMIN_EMAIL", "ADMIN_PASSWORD", "EMPLOYEE_EMAIL", "EMPLOYEE_PASSWORD"}
	for _, key := range required {
		if getenv(key) == "" {
			return nil, fmt.Errorf("missing environment variable %s", key)
		}
	}
	return []devAccount{
		{
			email:     getenv("ADMIN_EMAIL"),
			password:  getenv("ADMIN_PASSWORD"),
			firstName: "Super",
			lastName:  "Admin",
			role:      entities.UserRoleAdmin,
			phone:     "1234567890",
		},
		{
			email:     getenv("EMPLOYEE_EMAIL"),
			password:  getenv("EMPLOYEE_PASSWORD"),
			firstName: "Employee",
			lastName:  "User",
			role:      entities.UserRoleEmployee,
			phone:     "0987654321",
		},
	}, nil
}

func devGeopoint() *entities.GeopointInput {
	lat, lng := 40.7580, -73.9855
	return &entities.GeopointInput{
		ID:               devGeopointID,
		Latitude:         &lat,
		Longitude:        &lng,
		FormattedAddress: "Times Square, New York, NY 10036, USA",
	}
}

// seedAccount registers one account through the invite and signup flow so the
// identity, user, geopoint and settings rows are written the same way the API
// writes them.
func seedAccount(ctx context.Context, rt seedRuntime, acct devAccount, token string) (uuid.UUID, error) {
	if err := rt.Invite(ctx, &entities.Invite{
		ID:    uuid.New(),
		Email: acct.email,
		Role:  acct.role,
		Token: null.StringFrom(token),
	}); err != nil {
		return uuid.Nil, fmt.Errorf("failed creating invite for %s: %w", acct.email, err)
	}

	res, err := rt.SignUp(ctx, &entities.SignUpInput{
		Email:       acct.email,
		Token:       token,
		Password:    acct.password,
		PhoneNumber: acct.phone,
		FirstName:   acct.firstName,
		LastName:    acct.lastName,
		Geopoint:    devGeopoint(),
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed creating %s account: %w", acct.role, err)
	}
	return res.UserID, nil
}

func runSeed(deps seedDeps) error {
	def := defaultSeedDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.token == nil {
		deps.token = def.token
	}
	if deps.out == nil {
		deps.out = def.out
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	accounts, err := devAccounts(deps.getenv)
	if err != nil {
		return err
	}

	cfg := deps.loadCfg()
	rt, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	for _, acct := range accounts {
		exists, err := rt.Exists(ctx, acct.email)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", acct.email, err)
		}
		if exists {
			_, _ = fmt.Fprintf(deps.out, "%s account %s already exists, skipping\n", acct.role, acct.email)
			continue
		}

		token, err := deps.token()
		if err != nil {
			return fmt.Errorf("failed generating invite token: %w", err)
		}
		id, err := seedAccount(ctx, rt, acct, token)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(deps.out, "Created %s account %s (user_id=%s)\n", acct.role, acct.email, id)
	}
	return nil
}

func main() {
	if err := runSeed(defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
