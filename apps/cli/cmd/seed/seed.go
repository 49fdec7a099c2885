package seed

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	complaintsrepo "github.com/aadinathdeepak/pg-management-app/domains/complaints/be/repo"
	complaintsservice "github.com/aadinathdeepak/pg-management-app/domains/complaints/be/service"
	roomsrepo "github.com/aadinathdeepak/pg-management-app/domains/rooms/be/repo"
	roomsservice "github.com/aadinathdeepak/pg-management-app/domains/rooms/be/service"
	"github.com/aadinathdeepak/pg-management-app/domains/tenants/be/ledger"
	tenantsrepo "github.com/aadinathdeepak/pg-management-app/domains/tenants/be/repo"
	tenantsservice "github.com/aadinathdeepak/pg-management-app/domains/tenants/be/service"
	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

// Command populates the database with a small demo dataset: two rooms, two
// tenants with partial rent history, and one open complaint.
func Command() *cobra.Command {
	var databaseURL string

	c := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo rooms, tenants and complaints",
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

			roomStore, err := persistence.NewRoomStore(pool)
			if err != nil {
				return fmt.Errorf("init room store: %w", err)
			}
			tenantStore, err := persistence.NewTenantStore(pool)
			if err != nil {
				return fmt.Errorf("init tenant store: %w", err)
			}
			complaintStore, err := persistence.NewComplaintStore(pool)
			if err != nil {
				return fmt.Errorf("init complaint store: %w", err)
			}

			roomSvc := roomsservice.New(roomsrepo.NewPostgresRepository(roomStore))
			tenantSvc := tenantsservice.New(tenantsrepo.NewPostgresRepository(tenantStore))
			complaintSvc := complaintsservice.New(complaintsrepo.NewPostgresRepository(complaintStore))

			for _, room := range []roomsservice.CreateInput{
				{RoomNumber: "101", Capacity: 2, Price: 6000},
				{RoomNumber: "102", Capacity: 3, Price: 5500},
			} {
				if _, err := roomSvc.Create(ctx, room); err != nil {
					return fmt.Errorf("create room %s: %w", room.RoomNumber, err)
				}
			}

			now := time.Now()
			arjun, err := tenantSvc.Add(ctx, tenantsservice.AddInput{
				Name:          "Arjun Kumar",
				Phone:         "9876543210",
				RoomNumber:    "101",
				JoinDate:      now.AddDate(0, -3, 0),
				DepositAmount: 12000,
				RentAmount:    6000,
			})
			if err != nil {
				return fmt.Errorf("create tenant: %w", err)
			}

			if _, err := tenantSvc.Add(ctx, tenantsservice.AddInput{
				Name:          "Vivek Singh",
				Phone:         "9123456789",
				RoomNumber:    "102",
				JoinDate:      now.AddDate(0, -1, 0),
				DepositAmount: 11000,
				RentAmount:    5500,
			}); err != nil {
				return fmt.Errorf("create tenant: %w", err)
			}

			// Mark last month paid for the older tenant so the ledger has a
			// mix of Paid and Pending months.
			lastMonth := ledger.MonthOf(now.AddDate(0, -1, 0))
			if err := tenantSvc.ToggleRent(ctx, arjun.ID, lastMonth.Label()); err != nil {
				return fmt.Errorf("mark rent paid: %w", err)
			}

			if _, err := complaintSvc.Create(ctx, complaintsservice.CreateInput{
				RoomNumber:  "101",
				IssueType:   "WiFi",
				Description: "Router keeps dropping connection in the evenings",
			}); err != nil {
				return fmt.Errorf("create complaint: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Seed complete: 2 rooms, 2 tenants, 1 complaint.")
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
