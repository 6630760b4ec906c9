package cmd

import (
	"example.com/acgl/services/inventory/config"
	"example.com/acgl/services/inventory/internal/auth"
	"example.com/acgl/services/inventory/internal/database"
	"example.com/acgl/services/inventory/internal/models"
	"example.com/acgl/services/inventory/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	seedUsername string
	seedPassword string
	seedFullName string
	seedUserType string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an application user",
	Long:  `Create or update a user account with a bcrypt-hashed password.`,
	Run:   runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedUsername, "username", "admin", "username for the account")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "password for the account (required)")
	seedCmd.Flags().StringVar(&seedFullName, "full-name", "Administrator", "display name for the account")
	seedCmd.Flags().StringVar(&seedUserType, "user-type", "admin", "account type (admin, user)")
	seedCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	repo := repository.NewRepository(db)
	user := &models.User{
		Username:     seedUsername,
		PasswordHash: hash,
		FullName:     seedFullName,
		UserType:     seedUserType,
		IsActive:     true,
	}

	if err := repo.SaveUser(cmd.Context(), user); err != nil {
		log.Fatalf("Failed to save user: %v", err)
	}

	log.WithFields(logrus.Fields{
		"username":  user.Username,
		"user_type": user.UserType,
	}).Info("User seeded")
}
