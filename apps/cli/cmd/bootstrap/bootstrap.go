package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

// Command applies the embedded schema DDL to the target database. It is
// idempotent: every statement uses IF NOT EXISTS.
func Command() *cobra.Command {
	var databaseURL string

	c := &cobra.Command{
		Use:   "bootstrap",
		Short: "Apply the database schema",
		Long:  "Apply the embedded schema DDL (rooms, tenants, complaints) to the target database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			url, err := resolveDatabaseURL(databaseURL)
			if err != nil {
				return err
			}

			pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: url})
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}
			defer persistence.ClosePool(pool)

			if err := persistence.Bootstrap(ctx, pool); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Schema bootstrap complete.")
			return nil
		},
	}

	c.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection string (falls back to DATABASE_URL)")
	return c
}

func resolveDatabaseURL(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("database URL is required (--database-url flag or DATABASE_URL env)")
}
