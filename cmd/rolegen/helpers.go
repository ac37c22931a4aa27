package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/spf13/cobra"

	"github.com/kittclouds/rolegen/internal/logging"
	"github.com/kittclouds/rolegen/internal/store"
	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/mention"
	"github.com/kittclouds/rolegen/pkg/script"
	"github.com/kittclouds/rolegen/pkg/suggest"
)

var errNoCatalog = errors.New("no catalog: pass --catalog or --db (or set ROLEGEN_CATALOG / ROLEGEN_DB)")

// hostFile maps an OS path onto the host filesystem.
func hostFile(path string) (hackpadfs.FS, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	fsys := osfs.NewFS()
	name, err := fsys.FromOSPath(abs)
	if err != nil {
		return nil, "", err
	}
	return fsys, name, nil
}

// loadRoles reads the catalog file when one is configured, else the store.
func (a *app) loadRoles() ([]catalog.Role, error) {
	log := logging.New("catalog")

	if a.cfg.Catalog != "" {
		fsys, name, err := hostFile(a.cfg.Catalog)
		if err != nil {
			return nil, err
		}
		roles, err := catalog.Load(fsys, name)
		if err != nil {
			return nil, err
		}
		log.Debug("catalog loaded", "file", a.cfg.Catalog, "roles", len(roles))
		return roles, nil
	}

	if a.cfg.DB != "" {
		st, err := store.NewSQLiteStoreWithDSN(a.cfg.DB)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		roles, err := store.Roles(st)
		if err != nil {
			return nil, fmt.Errorf("load catalog from %s: %w", a.cfg.DB, err)
		}
		log.Debug("catalog loaded", "db", a.cfg.DB, "roles", len(roles))
		return roles, nil
	}

	return nil, errNoCatalog
}

// readScript returns the script named by args, or stdin when there is no
// argument or it is "-".
func readScript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read script: %w", err)
		}
		return string(data), nil
	}

	fsys, name, err := hostFile(args[0])
	if err != nil {
		return "", err
	}
	data, err := hackpadfs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(data), nil
}

// prepareText rewrites channel mentions when asked to.
func prepareText(text string, roles []catalog.Role, mentions bool) (string, error) {
	if !mentions {
		return text, nil
	}
	return mention.New(roles).Rewrite(text)
}

// explain decorates a failed lookup with close catalog names.
func (a *app) explain(err error, roles []catalog.Role) error {
	var perr *script.ParseError
	if !errors.As(err, &perr) || perr.Kind != script.NoMatchingRoles || a.cfg.Suggestions <= 0 {
		return err
	}

	ix := suggest.NewIndex(nil, "")
	ix.Build(roles)

	var hints []string
	for _, lit := range script.Literals(script.ParseExpression(perr.Expr).Filters) {
		for _, s := range ix.Suggest(lit, a.cfg.Suggestions) {
			hints = append(hints, fmt.Sprintf("%q", s))
		}
	}
	if len(hints) == 0 {
		return err
	}
	return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hints, ", "))
}
