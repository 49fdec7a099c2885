package root

import (
	"github.com/aadinathdeepak/pg-management-app/apps/cli/cmd/bootstrap"
	"github.com/aadinathdeepak/pg-management-app/apps/cli/cmd/seed"
)

func init() {
	Root().AddCommand(bootstrap.Command())
	Root().AddCommand(seed.Command())
}
