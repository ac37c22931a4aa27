package main

import (
	"errors"
	"fmt"
	"path"

	"github.com/hack-pad/hackpadfs"
	"github.com/spf13/cobra"

	"github.com/kittclouds/rolegen/internal/logging"
	"github.com/kittclouds/rolegen/internal/store"
	"github.com/kittclouds/rolegen/pkg/catalog"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load a catalog file into the SQLite store",
		Args:  cobra.NoArgs,
		RunE:  a.runImport,
	}
}

func (a *app) runImport(cmd *cobra.Command, _ []string) error {
	if a.cfg.Catalog == "" || a.cfg.DB == "" {
		return errors.New("import needs both --catalog and --db")
	}

	fsys, name, err := hostFile(a.cfg.Catalog)
	if err != nil {
		return err
	}
	data, err := hackpadfs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	f, err := catalog.Decode(data, path.Ext(name))
	if err != nil {
		return err
	}
	// Reject dangling references before anything is written.
	if _, err := f.Resolve(); err != nil {
		return err
	}

	st, err := store.NewSQLiteStoreWithDSN(a.cfg.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := store.Import(st, f); err != nil {
		return err
	}
	count, err := st.CountRoles()
	if err != nil {
		return err
	}

	logging.New("import").Info("catalog imported", "file", a.cfg.Catalog, "db", a.cfg.DB)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d factions, %d subalignments, %d roles (%d stored)\n",
		len(f.Factions), len(f.Subalignments), len(f.Roles), count)
	return nil
}
