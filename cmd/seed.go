package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/authn"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var seed struct {
	email     string
	firstName string
	lastName  string
	password  string
}

var seedCmd = &cobra.Command{
	Use:   "seed-superuser",
	Short: "Create the first superuser if none exists",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer assetDB.Close()

		ctx := context.Background()

		n, err := assetDB.CountSuperusers(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to count superusers")
		}
		if n > 0 {
			log.Info().Int("superusers", n).Msg("A superuser already exists, nothing to do")
			return
		}

		user, err := superuserFromFlags()
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid superuser details")
		}

		if err := assetDB.CreateUser(ctx, user); err != nil {
			log.Fatal().Err(err).Msg("Failed to create superuser")
		}

		log.Info().Str("user_id", user.ID.String()).Str("email", user.Email).Msg("Superuser created")
	},
}

// superuserFromFlags validates the seed flags and hashes the password.
func superuserFromFlags() (*models.User, error) {
	email := authn.NormalizeEmail(seed.email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", models.ErrInvalidInput)
	}

	hash, err := authn.HashPassword(seed.password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		FirstName:    strings.TrimSpace(seed.firstName),
		LastName:     strings.TrimSpace(seed.lastName),
		Email:        email,
		Role:         models.RoleSuperuser,
		PasswordHash: hash,
	}, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seed.email, "email", "", "email address of the superuser")
	seedCmd.Flags().StringVar(&seed.firstName, "first-name", "Super", "first name of the superuser")
	seedCmd.Flags().StringVar(&seed.lastName, "last-name", "User", "last name of the superuser")
	seedCmd.Flags().StringVar(&seed.password, "password", "", "initial password of the superuser")
	seedCmd.MarkFlagRequired("email")
	seedCmd.MarkFlagRequired("password")
}
