package migrate

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

// GetMigrateCmd wires the schema subcommand for the distraction-events
// database.
func GetMigrateCmd(dbURL string) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the distraction-events schema migrations",
		Run: func(cmd *cobra.Command, args []string) {
			m, err := migrate.New("file://migrations", dbURL)
			if err != nil {
				log.Fatal("❌ Failed to open migration source:", err)
			}

			if down {
				rollback(m)
				return
			}

			if err := m.Up(); err != nil {
				if errors.Is(err, migrate.ErrNoChange) {
					fmt.Println("⚠️ Schema already up to date.")
					return
				}
				log.Fatal("❌ Migration failed:", err)
			}
			fmt.Println("✅ Schema migrated.")
		},
	}

	cmd.Flags().BoolVarP(&down, "down", "d", false, "Roll the schema back instead")

	return cmd
}

func rollback(m *migrate.Migrate) {
	err := m.Down()
	switch {
	case err == nil:
		fmt.Println("✅ Schema rolled back.")
	case errors.Is(err, migrate.ErrNoChange):
		fmt.Println("⚠️ Nothing to roll back.")
	case strings.Contains(err.Error(), "dirty"):
		// A half-applied run leaves the version flagged dirty; clear the
		// flag and retry once.
		fmt.Println("⚠️ Dirty schema version, forcing a reset before rollback...")
		m.Force(0)
		m.Down()
	default:
		log.Fatal("❌ Rollback failed:", err)
	}
}
